package ai

import "strings"

// DefaultMaxDocumentChars is the character budget applied to document text
// before it is sent to the model. Longer documents are silently truncated,
// not rejected.
const DefaultMaxDocumentChars = 15000

// PromptVariant selects the analysis system instruction.
type PromptVariant string

const (
	// VariantGeneral asks the model to classify the document type itself.
	VariantGeneral PromptVariant = "general"
	// VariantRental assumes a residential lease with the tenant as the client.
	VariantRental PromptVariant = "rental"
)

const generalSystemPrompt = `You are an expert contract lawyer. Your client is the party asked to sign the document.
Analyze the provided document for abusive, unlawful or risky clauses.

Structure your answer like this:
1. DOCUMENT TYPE: classify the kind of contract you were given.
2. EXECUTIVE SUMMARY: (2 lines).
3. RISK LEVEL: (Low/Medium/High).
4. CLAUSE ANALYSIS: list the critical points. Always cite the statute or code article that justifies each observation.
5. RECOMMENDATION: Sign, Negotiate or Reject?

Use clear Markdown formatting.`

const rentalSystemPrompt = `You are a lawyer specialised in residential tenancy law. Your client is the tenant.
Analyze the provided rental contract for abusive, unlawful or risky clauses.

Structure your answer like this:
1. EXECUTIVE SUMMARY: (2 lines).
2. RISK LEVEL: (Low/Medium/High).
3. CLAUSE ANALYSIS: list the critical points. Always cite the civil code article or the tenancy act provision that justifies each observation.
4. RECOMMENDATION: Sign, Negotiate or Reject?

Use clear Markdown formatting.`

const reviewSystemPrompt = `You are a legal assistant answering questions about one specific contract.
Answer only from the contract text supplied below. If the answer is not contained in the contract text, say so explicitly instead of guessing.

Contract text:
`

// TruncateDocument returns exactly the first limit characters of text.
// Counting is by rune so a multi-byte character is never split.
func TruncateDocument(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultMaxDocumentChars
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// AnalysisMessages builds the fixed-structure analysis prompt for the
// truncated document text.
func AnalysisMessages(variant PromptVariant, documentText string, limit int) []ChatMessage {
	system := generalSystemPrompt
	if variant == VariantRental {
		system = rentalSystemPrompt
	}
	return []ChatMessage{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: "Analyze this legal text: " + TruncateDocument(documentText, limit)},
	}
}

// ReviewMessages builds a grounded Q&A prompt. The document text rides in the
// system message and is re-sent in full (subject to the same truncation
// budget) on every turn. History is chronological, oldest first; the new
// question goes last.
func ReviewMessages(documentText, question string, history []ChatMessage, limit int) []ChatMessage {
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{
		Role:    RoleSystem,
		Content: reviewSystemPrompt + TruncateDocument(documentText, limit),
	})
	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = RoleUser
		}
		messages = append(messages, ChatMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, ChatMessage{
		Role:    RoleUser,
		Content: strings.TrimSpace(question),
	})
	return messages
}
