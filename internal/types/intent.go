package types

import "strings"

// Intent is the handling strategy chosen for a question
type Intent string

const (
	// IntentWebSearch is for general product, industry and trade information
	IntentWebSearch Intent = "web_search"
	// IntentClassification is for HS code, classification and tariff questions
	IntentClassification Intent = "hs_classification"
	// IntentManual is for in-depth explanatory-notes analysis
	IntentManual Intent = "hs_manual"
)

// DefaultIntent is used whenever classification fails or is ambiguous
const DefaultIntent = IntentClassification

// Intents lists every valid intent
func Intents() []Intent {
	return []Intent{IntentWebSearch, IntentClassification, IntentManual}
}

// ParseIntent maps a label to an Intent. Surrounding whitespace and case are ignored.
func ParseIntent(s string) (Intent, bool) {
	label := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, intent := range Intents() {
		if label == intent {
			return intent, true
		}
	}
	return DefaultIntent, false
}
