// Package types provides type definitions for structured data used throughout the hs-advisor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SourceKind identifies the kind of corpus partition a record was loaded from
type SourceKind string

const (
	// KindCase is a partition of classification-case precedents
	KindCase SourceKind = "case"
	// KindCommittee is the HS committee decision collection
	KindCommittee SourceKind = "committee"
	// KindCouncil is the HS council decision collection
	KindCouncil SourceKind = "council"
)

// Record is one document of a corpus source. Fields keeps the document as
// decoded, with numbers held as json.Number so their original text survives.
type Record struct {
	Source string
	Kind   SourceKind
	Seq    int
	Fields map[string]any
}

// Field returns the named field rendered as a string.
// The boolean is false when the field is absent or null.
func (r *Record) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// FieldNames returns the record's field names in sorted order.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Text returns the canonical JSON form of the record: keys sorted at every
// level, no HTML escaping, non-ASCII text kept as is.
func (r *Record) Text() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Fields); err != nil {
		// Fields come from a JSON decoder, so they always re-encode.
		return fmt.Sprint(r.Fields)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// SearchText flattens the record into "key value" text in sorted key order.
// It is the text the keyword index is built from.
func (r *Record) SearchText() string {
	var sb strings.Builder
	writeSearchText(&sb, r.Fields)
	return strings.TrimSpace(sb.String())
}

func writeSearchText(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(k)
			sb.WriteByte(' ')
			writeSearchText(sb, val[k])
		}
	case []any:
		for _, item := range val {
			writeSearchText(sb, item)
		}
	case string:
		sb.WriteString(val)
		sb.WriteByte(' ')
	case json.Number:
		sb.WriteString(val.String())
		sb.WriteByte(' ')
	default:
		sb.WriteString(fmt.Sprint(val))
		sb.WriteByte(' ')
	}
}

// Hit is a scored retrieval result
type Hit struct {
	Source string  `json:"source"`
	Record *Record `json:"-"`
	Score  int     `json:"score"`
}

// MarshalJSON renders the hit with the record fields inline as "item".
func (h Hit) MarshalJSON() ([]byte, error) {
	var item map[string]any
	if h.Record != nil {
		item = h.Record.Fields
	}
	return json.Marshal(struct {
		Source string         `json:"source"`
		Item   map[string]any `json:"item"`
		Score  int            `json:"score"`
	}{h.Source, item, h.Score})
}
