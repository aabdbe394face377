package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"legalai-review/internal/ai"
	"legalai-review/internal/metrics"
	"legalai-review/internal/model"
	"legalai-review/internal/pkg/docxreport"
	"legalai-review/internal/pkg/extract"
	"legalai-review/internal/pkg/logger"
	"legalai-review/internal/session"
)

var (
	ErrExtraction     = errors.New("document extraction failed")
	ErrRecordNotFound = errors.New("analysis record not found")
)

// AnalysisRecordStore is the history store contract: append plus ordered and
// filename lookups.
type AnalysisRecordStore interface {
	Create(record *model.AnalysisRecord) error
	ListByUserID(userID uint) ([]model.AnalysisRecord, error)
	GetByIDAndUserID(id, userID uint) (*model.AnalysisRecord, error)
	LatestByFilename(userID uint, filename string) (*model.AnalysisRecord, error)
}

// HistoryCache is optional; a nil cache disables it.
type HistoryCache interface {
	GetHistory(ctx context.Context, userID uint) ([]model.AnalysisRecord, bool, error)
	SetHistory(ctx context.Context, userID uint, records []model.AnalysisRecord) error
	DeleteHistory(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

// AuditPublisher is optional; a nil publisher disables audit events.
type AuditPublisher interface {
	Publish(ctx context.Context, entry model.AuditEntry) error
}

// ArchiveStore is optional; a nil store disables archiving of originals.
type ArchiveStore interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) (string, error)
}

type AnalysisService struct {
	records      AnalysisRecordStore
	sessions     *session.Store
	completer    ai.Completer
	historyCache HistoryCache
	publisher    AuditPublisher
	archive      ArchiveStore
	variant      ai.PromptVariant
	maxDocChars  int
	log          zerolog.Logger
}

func NewAnalysisService(
	records AnalysisRecordStore,
	sessions *session.Store,
	completer ai.Completer,
	historyCache HistoryCache,
	publisher AuditPublisher,
	archive ArchiveStore,
	variant ai.PromptVariant,
	maxDocChars int,
) *AnalysisService {
	if variant != ai.VariantRental {
		variant = ai.VariantGeneral
	}
	if maxDocChars <= 0 {
		maxDocChars = ai.DefaultMaxDocumentChars
	}
	return &AnalysisService{
		records:      records,
		sessions:     sessions,
		completer:    completer,
		historyCache: historyCache,
		publisher:    publisher,
		archive:      archive,
		variant:      variant,
		maxDocChars:  maxDocChars,
		log:          logger.Get(),
	}
}

type AnalyzeInput struct {
	UserID    uint
	Username  string
	Filename  string
	Payload   []byte
	MediaType string
}

// AnalyzeResult is tagged: Failed marks a completion failure whose description
// is carried in Report, where callers historically displayed it. Failed
// results are never persisted to history.
type AnalyzeResult struct {
	RecordID  uint      `json:"record_id,omitempty"`
	Filename  string    `json:"filename"`
	Report    string    `json:"report"`
	Failed    bool      `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

// Analyze runs the full pipeline: extract, truncate, one synchronous model
// call, persist, cache invalidate, audit, and session start. Each analysis is
// seeded only by the freshly extracted text, never by a prior report.
func (s *AnalysisService) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	if input.UserID == 0 || len(input.Payload) == 0 {
		return nil, ErrInvalidInput
	}
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		filename = "untitled"
	}

	text, err := extract.Extract(input.Payload, input.MediaType)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeExtractionError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	s.archiveOriginal(ctx, input, filename)

	messages := ai.AnalysisMessages(s.variant, text, s.maxDocChars)
	report, err := s.completer.Complete(ctx, messages)
	if err != nil {
		// The failure is surfaced where the report would be shown, but it is
		// not written to history.
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeLLMError).Inc()
		s.log.Warn().Err(err).Str("filename", filename).Msg("analysis completion failed")
		s.sessions.Start(input.UserID, filename, text, "")
		return &AnalyzeResult{
			Filename:  filename,
			Report:    "Error: " + err.Error(),
			Failed:    true,
			CreatedAt: time.Now(),
		}, nil
	}
	report = strings.TrimSpace(report)
	if report == "" {
		report = "The model returned an empty response."
	}

	record := &model.AnalysisRecord{
		UserID:   input.UserID,
		Filename: filename,
		Report:   report,
	}
	if err := s.records.Create(record); err != nil {
		return nil, err
	}

	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, input.UserID)
		_ = s.historyCache.DeleteHistory(ctx, input.UserID)
	}
	s.publishAudit(ctx, input, record)
	s.sessions.Start(input.UserID, filename, text, report)
	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	return &AnalyzeResult{
		RecordID:  record.ID,
		Filename:  record.Filename,
		Report:    record.Report,
		CreatedAt: record.CreatedAt,
	}, nil
}

// ListHistory returns the user's records newest first, through the cache when
// one is configured and clean.
func (s *AnalysisService) ListHistory(ctx context.Context, userID uint) ([]model.AnalysisRecord, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	records, err := s.records.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, userID, records)
		}
	}
	return records, nil
}

func (s *AnalysisService) GetRecord(userID, recordID uint) (*model.AnalysisRecord, error) {
	if userID == 0 || recordID == 0 {
		return nil, ErrInvalidInput
	}
	record, err := s.records.GetByIDAndUserID(recordID, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// LookupByFilename returns the most recent record with that filename.
func (s *AnalysisService) LookupByFilename(userID uint, filename string) (*model.AnalysisRecord, error) {
	filename = strings.TrimSpace(filename)
	if userID == 0 || filename == "" {
		return nil, ErrInvalidInput
	}
	record, err := s.records.LatestByFilename(userID, filename)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// ExportRecord renders a stored report as .docx bytes plus a download name.
// The full stored filename is kept in the download name, extension included.
func (s *AnalysisService) ExportRecord(userID, recordID uint) ([]byte, string, error) {
	record, err := s.GetRecord(userID, recordID)
	if err != nil {
		return nil, "", err
	}
	payload, err := docxreport.Build(record.Report, record.Filename, record.CreatedAt)
	if err != nil {
		return nil, "", err
	}
	return payload, "Report_" + record.Filename + ".docx", nil
}

func (s *AnalysisService) archiveOriginal(ctx context.Context, input AnalyzeInput, filename string) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("%d/%s%s", input.UserID, uuid.NewString(), filepath.Ext(filename))
	if _, err := s.archive.Put(ctx, key, input.Payload, input.MediaType); err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("archive original failed")
	}
}

func (s *AnalysisService) publishAudit(ctx context.Context, input AnalyzeInput, record *model.AnalysisRecord) {
	if s.publisher == nil {
		return
	}
	entry := model.AuditEntry{
		UserID:   input.UserID,
		Username: input.Username,
		RecordID: record.ID,
		Filename: record.Filename,
		Action:   "analysis.completed",
	}
	if err := s.publisher.Publish(ctx, entry); err != nil {
		s.log.Warn().Err(err).Uint("record_id", record.ID).Msg("publish audit entry failed")
	}
}
