package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalai-review/internal/app"
	"legalai-review/internal/transport/http/response"
)

type ReviewHandler struct {
	reviewService *app.ReviewService
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func NewReviewHandler(reviewService *app.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Ask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.reviewService.Ask(c.Request.Context(), userID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoActiveSession):
			response.Error(c, http.StatusNotFound, response.CodeNoActiveSession, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *ReviewHandler) Transcript(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	transcript, err := h.reviewService.Transcript(userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoActiveSession):
			response.Error(c, http.StatusNotFound, response.CodeNoActiveSession, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch transcript failed")
		}
		return
	}

	response.OK(c, gin.H{"transcript": transcript})
}

// EndSession clears the active document session (logout / new document).
func (h *ReviewHandler) EndSession(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	h.reviewService.EndSession(userID)
	response.OK(c, gin.H{"cleared": true})
}
