package hscode

import (
	"fmt"
	"strings"

	"github.com/jonathan/hs-advisor/internal/types"
)

// Level is the granularity of an explanation
type Level int

// Explanation levels, keyed by code prefix length
const (
	LevelSection    Level = 2
	LevelHeading    Level = 4
	LevelSubheading Level = 6
)

func (l Level) String() string {
	switch l {
	case LevelSection:
		return "section"
	case LevelHeading:
		return "heading"
	case LevelSubheading:
		return "subheading"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Explanation is the result for one level. When Found is false, Text holds
// the not-found placeholder for that level.
type Explanation struct {
	Level Level  `json:"level"`
	Code  string `json:"code,omitempty"`
	Text  string `json:"text"`
	Found bool   `json:"found"`
}

// Lookup holds the three levels resolved for one code. Each level is
// resolved independently, so a heading can be found while its section is not.
type Lookup struct {
	Code       string      `json:"code"`
	Section    Explanation `json:"section"`
	Heading    Explanation `json:"heading"`
	Subheading Explanation `json:"subheading"`
}

// Explainer resolves codes against the explanatory notes reference.
// It is built once from loaded documents and is safe for concurrent reads.
type Explainer struct {
	reference    []types.ExplanationEntry
	generalRules string
	messages     Messages
}

// ExplainerOption configures an Explainer
type ExplainerOption func(*Explainer)

// WithMessages replaces the default Korean messages
func WithMessages(m Messages) ExplainerOption {
	return func(e *Explainer) {
		e.messages = m
	}
}

// NewExplainer creates an Explainer. The reference keeps document order;
// the general-rules preamble is rendered once here.
func NewExplainer(reference []types.ExplanationEntry, rules []types.GeneralRule, opts ...ExplainerOption) *Explainer {
	e := &Explainer{
		reference:    reference,
		generalRules: RenderGeneralRules(rules),
		messages:     KoreanMessages(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RenderGeneralRules joins "head1\ntext" per rule with newlines, skipping
// rules where both fields are empty.
func RenderGeneralRules(rules []types.GeneralRule) string {
	parts := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.Head1 == "" && rule.Text == "" {
			continue
		}
		parts = append(parts, rule.Head1+"\n"+rule.Text)
	}
	return strings.Join(parts, "\n")
}

// GeneralRules returns the rendered general-rules preamble
func (e *Explainer) GeneralRules() string {
	return e.generalRules
}

// Lookup resolves the section (code[:2]), heading (code[:4]) and subheading
// (code[:6]) explanations. The first reference entry with an equal code wins.
func (e *Explainer) Lookup(code string) Lookup {
	return Lookup{
		Code:       code,
		Section:    e.resolve(code, LevelSection, e.messages.SectionNotFound),
		Heading:    e.resolve(code, LevelHeading, e.messages.HeadingNotFound),
		Subheading: e.resolve(code, LevelSubheading, e.messages.SubheadingNotFound),
	}
}

func (e *Explainer) resolve(code string, level Level, placeholder string) Explanation {
	n := int(level)
	if len(code) < n {
		return Explanation{Level: level, Text: placeholder}
	}
	prefix := code[:n]
	for _, entry := range e.reference {
		if entry.Code == prefix {
			return Explanation{Level: level, Code: prefix, Text: entry.Text, Found: true}
		}
	}
	return Explanation{Level: level, Code: prefix, Text: placeholder}
}

// Explanations renders one block per code: the general-rules preamble
// followed by the section, heading and subheading texts. A block is written
// for every code, found or not, since each level always carries either its
// text or its placeholder.
func (e *Explainer) Explanations(codes []string) string {
	var sb strings.Builder
	for _, code := range codes {
		lookup := e.Lookup(code)
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf(e.messages.BlockTitle, code))
		sb.WriteString("\n")
		sb.WriteString(e.messages.GeneralRulesLabel + "\n" + e.generalRules + "\n\n")
		sb.WriteString(e.messages.SectionLabel + "\n" + lookup.Section.Text + "\n\n")
		sb.WriteString(e.messages.HeadingLabel + "\n" + lookup.Heading.Text + "\n\n")
		sb.WriteString(e.messages.SubheadingLabel + "\n" + lookup.Subheading.Text + "\n")
	}
	return sb.String()
}
