package app

import (
	"context"
	"errors"
	"strings"

	"legalai-review/internal/ai"
	"legalai-review/internal/metrics"
	"legalai-review/internal/session"
)

var ErrNoActiveSession = errors.New("no document loaded; analyze a contract first")

// ReviewService answers follow-up questions about the contract held in the
// user's active document session. The model is instructed to answer only from
// that text; the full document rides along on every turn.
type ReviewService struct {
	sessions    *session.Store
	completer   ai.Completer
	maxDocChars int
}

func NewReviewService(sessions *session.Store, completer ai.Completer, maxDocChars int) *ReviewService {
	if maxDocChars <= 0 {
		maxDocChars = ai.DefaultMaxDocumentChars
	}
	return &ReviewService{
		sessions:    sessions,
		completer:   completer,
		maxDocChars: maxDocChars,
	}
}

type AskResult struct {
	Answer string `json:"answer"`
	Failed bool   `json:"failed"`
}

// Ask appends a Q&A turn to the transcript. History is sent oldest first with
// the new question as the final turn. A completion failure becomes the
// assistant's reply text, same as a failed analysis.
func (s *ReviewService) Ask(ctx context.Context, userID uint, question string) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if userID == 0 || question == "" {
		return nil, ErrInvalidInput
	}

	sess, ok := s.sessions.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}

	messages := ai.ReviewMessages(sess.DocumentText, question, sess.Transcript, s.maxDocChars)
	answer, err := s.completer.Complete(ctx, messages)
	failed := false
	if err != nil {
		answer = "Error: " + err.Error()
		failed = true
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = "The model returned an empty response."
	}

	s.sessions.AppendTurns(userID,
		ai.ChatMessage{Role: ai.RoleUser, Content: question},
		ai.ChatMessage{Role: ai.RoleAssistant, Content: answer},
	)
	metrics.ReviewTurnsTotal.Inc()

	return &AskResult{Answer: answer, Failed: failed}, nil
}

// Transcript returns the active session's turns in chronological order.
func (s *ReviewService) Transcript(userID uint) ([]ai.ChatMessage, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	return sess.Transcript, nil
}

// EndSession drops the active document session and its transcript.
func (s *ReviewService) EndSession(userID uint) {
	if userID == 0 {
		return
	}
	s.sessions.Clear(userID)
}
