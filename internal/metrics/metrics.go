package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK              = "ok"
	OutcomeLLMError        = "llm_error"
	OutcomeExtractionError = "extraction_error"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "legalai_analyses_total",
		Help: "Contract analyses by outcome.",
	}, []string{"outcome"})

	ReviewTurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legalai_review_turns_total",
		Help: "Q&A turns answered against an active document session.",
	})
)
