package compare

import (
	"fmt"
	"strings"

	"github.com/fumiya-kume/ccrefactor/pkg/diff"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

// Comparator runs comparisons and reports progress to a logger
type Comparator struct {
	logger logger.LoggerInterface
}

// NewComparator creates a comparator; a nil logger discards output
func NewComparator(log logger.LoggerInterface) *Comparator {
	return &Comparator{logger: logger.OrNop(log)}
}

// Compare is a convenience wrapper around a comparator without logging
func Compare(local, baseline string, depth Depth) *ComparisonResult {
	return NewComparator(nil).Compare(local, baseline, depth)
}

// Compare diffs baseline against local and derives relationships, metrics and
// recommendations. Basic depth skips relationship inference entirely.
func (c *Comparator) Compare(local, baseline string, depth Depth) *ComparisonResult {
	result := &ComparisonResult{
		Changes:       ChangeRecords(diff.Lines(baseline, local)),
		Relationships: []RelationshipRecord{},
	}

	if depth >= Detailed {
		result.Relationships = append(result.Relationships, DetectRenames(local, baseline)...)
		result.Relationships = append(result.Relationships, DetectLogicChanges(local, baseline)...)
	}
	if depth >= Comprehensive {
		result.Relationships = append(result.Relationships, DetectMethodMoves(local, baseline)...)
		result.Relationships = append(result.Relationships, DetectDependencyChanges(local, baseline)...)
	}

	result.Metrics = CalculateMetrics(result.Changes, result.Relationships)
	result.Recommendations = Recommend(result)

	c.logger.Debug("compared at %s depth: %d changes, %d relationships, complexity %.2f",
		depth, len(result.Changes), len(result.Relationships), result.Metrics.ComplexityScore)

	return result
}

// ChangeRecords converts an edit script into change records. The line counter
// advances for every line of every block; blank added or removed lines are counted
// but produce no record.
func ChangeRecords(blocks []diff.Block) []ChangeRecord {
	records := []ChangeRecord{}
	counter := 0

	for _, block := range blocks {
		for _, line := range block.Lines {
			lineNumber := counter
			counter++

			if block.Tag == diff.Unchanged {
				continue
			}
			content := strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(content) == "" {
				continue
			}

			kind := ChangeAdded
			if block.Tag == diff.Removed {
				kind = ChangeRemoved
			}
			records = append(records, ChangeRecord{
				Kind:         kind,
				LineNumber:   lineNumber,
				Content:      content,
				Significance: ClassifySignificance(content),
			})
		}
	}
	return records
}

// AnalyzeOptions selects the categories AnalyzeChanges reports
type AnalyzeOptions struct {
	MethodTracking bool
	LogicAnalysis  bool
}

// ChangeAnalysis holds method and logic changes with a summary line per category
type ChangeAnalysis struct {
	MethodChanges []RelationshipRecord `json:"method_changes"`
	LogicChanges  []RelationshipRecord `json:"logic_changes"`
	Summary       string               `json:"summary"`
}

const noChangesSummary = "No significant method or logic changes detected."

// AnalyzeChanges reports renamed methods and control-flow changes between two versions
func AnalyzeChanges(local, baseline string, opts AnalyzeOptions) *ChangeAnalysis {
	analysis := &ChangeAnalysis{
		MethodChanges: []RelationshipRecord{},
		LogicChanges:  []RelationshipRecord{},
	}

	if opts.MethodTracking {
		analysis.MethodChanges = append(analysis.MethodChanges, DetectRenames(local, baseline)...)
	}
	if opts.LogicAnalysis {
		analysis.LogicChanges = append(analysis.LogicChanges, DetectLogicChanges(local, baseline)...)
	}

	analysis.Summary = summarize(len(analysis.MethodChanges), len(analysis.LogicChanges))
	return analysis
}

func summarize(methods, logic int) string {
	if methods == 0 && logic == 0 {
		return noChangesSummary
	}

	lines := []string{fmt.Sprintf("Found %d significant change(s):", methods+logic)}
	if methods > 0 {
		lines = append(lines, fmt.Sprintf("- %d method change(s)", methods))
	}
	if logic > 0 {
		lines = append(lines, fmt.Sprintf("- %d logic change(s)", logic))
	}
	return strings.Join(lines, "\n")
}
