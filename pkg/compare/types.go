// Package compare turns a baseline and a local version of a source file into a
// structured comparison: changed lines with significance, inferred relationships
// such as renames and control-flow changes, impact metrics, and recommendations.
package compare

import (
	"fmt"
	"strings"
)

// ChangeKind is the kind of a changed line
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// Level is a three-step rating used for significance and maintainability impact
type Level int

const (
	Low Level = iota
	Medium
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name
func (l *Level) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "low":
		*l = Low
	case "medium":
		*l = Medium
	case "high":
		*l = High
	default:
		return fmt.Errorf("unknown level %q", string(text))
	}
	return nil
}

// Depth selects how much inference a comparison performs
type Depth int

const (
	// Basic computes changes, metrics and recommendations only
	Basic Depth = iota
	// Detailed adds rename and logic-change inference
	Detailed
	// Comprehensive adds dependency and method-move inference
	Comprehensive
)

func (d Depth) String() string {
	switch d {
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Comprehensive:
		return "comprehensive"
	default:
		return "unknown"
	}
}

// ParseDepth converts a depth name into a Depth
func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return Basic, nil
	case "detailed", "":
		return Detailed, nil
	case "comprehensive":
		return Comprehensive, nil
	default:
		return Basic, fmt.Errorf("unknown analysis depth %q (want basic, detailed or comprehensive)", s)
	}
}

// ChangeRecord is one changed, non-blank line
type ChangeRecord struct {
	Kind ChangeKind `json:"kind"`
	// LineNumber is a 0-based counter over every line the diff consumed,
	// not a physical line number of either file.
	LineNumber   int    `json:"line_number"`
	Content      string `json:"content"`
	Significance Level  `json:"significance"`
}

// RelationshipKind is the kind of an inferred relationship
type RelationshipKind string

const (
	MethodRename     RelationshipKind = "method_rename"
	MethodMove       RelationshipKind = "method_move"
	LogicChange      RelationshipKind = "logic_change"
	DependencyChange RelationshipKind = "dependency_change"
)

// RelationshipRecord is an inferred correspondence between the two versions
type RelationshipRecord struct {
	Kind         RelationshipKind `json:"kind"`
	OldReference string           `json:"old_reference"`
	NewReference string           `json:"new_reference"`
	Confidence   float64          `json:"confidence"`
	Description  string           `json:"description"`
}

// Metrics summarizes the size and impact of a comparison
type Metrics struct {
	TotalChanges          int     `json:"total_changes"`
	SignificantChanges    int     `json:"significant_changes"`
	ComplexityScore       float64 `json:"complexity_score"`
	MaintainabilityImpact Level   `json:"maintainability_impact"`
}

// ComparisonResult is everything a comparison produces
type ComparisonResult struct {
	Changes         []ChangeRecord       `json:"changes"`
	Relationships   []RelationshipRecord `json:"relationships"`
	Recommendations []string             `json:"recommendations"`
	Metrics         Metrics              `json:"metrics"`
}

// CountKind returns how many change records have the given kind
func (r *ComparisonResult) CountKind(kind ChangeKind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// RelationshipsOf returns the relationships with the given kind, in order
func (r *ComparisonResult) RelationshipsOf(kind RelationshipKind) []RelationshipRecord {
	var out []RelationshipRecord
	for _, rel := range r.Relationships {
		if rel.Kind == kind {
			out = append(out, rel)
		}
	}
	return out
}
