package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract([]byte("  This contract is made between...  \n"), MediaTypeText)
	require.NoError(t, err)
	assert.Equal(t, "This contract is made between...", text)
}

func TestExtract_EmptyText(t *testing.T) {
	_, err := Extract([]byte("   \n\t  "), MediaTypeText)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtract_InvalidUTF8(t *testing.T) {
	_, err := Extract([]byte{0xff, 0xfe, 0xfd}, MediaTypeText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestExtract_UnsupportedMediaType(t *testing.T) {
	_, err := Extract([]byte("data"), "application/msword")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestExtract_MalformedPDF(t *testing.T) {
	_, err := Extract([]byte("definitely not a pdf"), MediaTypePDF)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestExtract_EmptyPDFPayload(t *testing.T) {
	_, err := Extract(nil, MediaTypePDF)
	assert.ErrorIs(t, err, ErrNoText)
}
