package model

// Enrichment is the AI-derived bundle attached to a note or a document.
// A nil Summary or nil Tags means the field was never computed.
type Enrichment struct {
	Summary     *string  `json:"summary"`
	Tags        []string `json:"tags"`
	KeyConcepts []string `json:"key_concepts"`
}
