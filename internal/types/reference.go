package types

// ExplanationEntry is one entry of the explanatory-notes reference document
type ExplanationEntry struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// GeneralRule is one entry of the general-rules document
type GeneralRule struct {
	Head1 string `json:"head1"`
	Text  string `json:"text"`
}
