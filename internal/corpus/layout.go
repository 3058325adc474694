package corpus

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/hs-advisor/internal/types"
)

// Default file names of the knowledge directory
const (
	DefaultCasePattern      = "HS분류사례_part%d.json"
	DefaultCasePartitions   = 10
	DefaultCommitteeFile    = "HS위원회.json"
	DefaultCouncilFile      = "HS협의회.json"
	DefaultGeneralRulesFile = "통칙_grouped.json"
	DefaultReferenceFile    = "grouped_11_end.json"
)

// Layout describes where the knowledge documents live
type Layout struct {
	Dir              string
	CasePattern      string // fmt pattern taking the 1-based partition number
	CasePartitions   int
	CommitteeFile    string
	CouncilFile      string
	GeneralRulesFile string
	ReferenceFile    string
}

// DefaultLayout returns the standard layout rooted at dir
func DefaultLayout(dir string) Layout {
	return Layout{
		Dir:              dir,
		CasePattern:      DefaultCasePattern,
		CasePartitions:   DefaultCasePartitions,
		CommitteeFile:    DefaultCommitteeFile,
		CouncilFile:      DefaultCouncilFile,
		GeneralRulesFile: DefaultGeneralRulesFile,
		ReferenceFile:    DefaultReferenceFile,
	}
}

// SourceSpec names one corpus source and the file it is read from
type SourceSpec struct {
	Name string
	Path string
	Kind types.SourceKind
}

// Sources returns the corpus sources in load order:
// case partitions 1..N, then the committee and council decisions.
func (l Layout) Sources() []SourceSpec {
	specs := make([]SourceSpec, 0, l.CasePartitions+2)
	for i := 1; i <= l.CasePartitions; i++ {
		specs = append(specs, l.spec(fmt.Sprintf(l.CasePattern, i), types.KindCase))
	}
	if l.CommitteeFile != "" {
		specs = append(specs, l.spec(l.CommitteeFile, types.KindCommittee))
	}
	if l.CouncilFile != "" {
		specs = append(specs, l.spec(l.CouncilFile, types.KindCouncil))
	}
	return specs
}

// GeneralRulesPath returns the path of the general-rules document
func (l Layout) GeneralRulesPath() string {
	return filepath.Join(l.Dir, l.GeneralRulesFile)
}

// ReferencePath returns the path of the explanatory notes reference
func (l Layout) ReferencePath() string {
	return filepath.Join(l.Dir, l.ReferenceFile)
}

func (l Layout) spec(file string, kind types.SourceKind) SourceSpec {
	return SourceSpec{
		Name: strings.TrimSuffix(file, filepath.Ext(file)),
		Path: filepath.Join(l.Dir, file),
		Kind: kind,
	}
}
