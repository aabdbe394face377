package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"legalai-review/internal/app"
	"legalai-review/internal/pkg/extract"
	"legalai-review/internal/transport/http/response"
)

const (
	maxUploadSize = 10 << 20 // 10 MB
	docxMIME      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type AnalysisHandler struct {
	analysisService *app.AnalysisService
}

func NewAnalysisHandler(analysisService *app.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Create accepts a multipart form with "file" (PDF or plain text), runs the
// analysis and returns the report.
func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 10MB)")
		return
	}

	mediaType, ok := mediaTypeForUpload(file.Filename)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF and plain text files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), app.AnalyzeInput{
		UserID:    userID,
		Username:  getUsernameFromContext(c),
		Filename:  file.Filename,
		Payload:   payload,
		MediaType: mediaType,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrExtraction):
			response.Error(c, http.StatusBadRequest, response.CodeExtractionFailed, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "analysis failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *AnalysisHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	records, err := h.analysisService.ListHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list history failed")
		return
	}

	response.OK(c, records)
}

func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	recordID, err := parseUintParam(c, "id")
	if err != nil || recordID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid record id")
		return
	}

	record, err := h.analysisService.GetRecord(userID, recordID)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	response.OK(c, record)
}

// Lookup returns the most recent record with the given filename.
func (h *AnalysisHandler) Lookup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	filename := strings.TrimSpace(c.Query("filename"))
	if filename == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing filename")
		return
	}

	record, err := h.analysisService.LookupByFilename(userID, filename)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	response.OK(c, record)
}

// Export streams a stored report as a .docx download.
func (h *AnalysisHandler) Export(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	recordID, err := parseUintParam(c, "id")
	if err != nil || recordID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid record id")
		return
	}

	payload, downloadName, err := h.analysisService.ExportRecord(userID, recordID)
	if err != nil {
		respondRecordError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+downloadName+`"`)
	c.Data(http.StatusOK, docxMIME, payload)
}

func respondRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, response.CodeRecordNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch record failed")
	}
}

func mediaTypeForUpload(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extract.MediaTypePDF, true
	case ".txt":
		return extract.MediaTypeText, true
	default:
		return "", false
	}
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	u, err := strconv.ParseUint(c.Param(key), 10, 64)
	return uint(u), err
}
