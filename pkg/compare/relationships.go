package compare

import (
	"fmt"
	"strings"
)

const (
	// AcceptanceThreshold is the confidence a rename must exceed to be reported
	AcceptanceThreshold = 0.7

	logicChangeConfidence = 0.9
	methodMoveConfidence  = 0.8
	dependencyConfidence  = 1.0
)

var controlFlowKeywords = []string{"if", "else", "for", "while", "switch", "case", "try", "catch"}

// DetectRenames proposes one MethodRename per local identifier that does not occur in
// the baseline, pairing it with the most similar baseline identifier when that
// similarity exceeds AcceptanceThreshold. Ties go to the earliest baseline identifier.
func DetectRenames(local, baseline string) []RelationshipRecord {
	localIDs := unique(ExtractIdentifiers(local))
	baselineIDs := unique(ExtractIdentifiers(baseline))

	known := make(map[string]bool, len(baselineIDs))
	for _, id := range baselineIDs {
		known[id] = true
	}

	var records []RelationshipRecord
	for _, id := range localIDs {
		if known[id] {
			continue
		}

		best, bestScore := "", 0.0
		for _, candidate := range baselineIDs {
			if score := Similarity(id, candidate); score > bestScore {
				best, bestScore = candidate, score
			}
		}

		if bestScore > AcceptanceThreshold && best != id {
			records = append(records, RelationshipRecord{
				Kind:         MethodRename,
				OldReference: best,
				NewReference: id,
				Confidence:   bestScore,
				Description:  fmt.Sprintf("Method %q appears to have been renamed to %q", best, id),
			})
		}
	}
	return records
}

// DetectLogicChanges compares the control-flow lines of both versions position by position.
// It does not align the sequences, so reordering control-flow lines reports every
// shifted position as a modification.
func DetectLogicChanges(local, baseline string) []RelationshipRecord {
	localFlow := controlFlowLines(local)
	baselineFlow := controlFlowLines(baseline)

	n := len(localFlow)
	if len(baselineFlow) > n {
		n = len(baselineFlow)
	}

	var records []RelationshipRecord
	for i := 0; i < n; i++ {
		switch {
		case i >= len(baselineFlow):
			records = append(records, logicChange("", localFlow[i],
				fmt.Sprintf("Control flow added: %s", localFlow[i])))
		case i >= len(localFlow):
			records = append(records, logicChange(baselineFlow[i], "",
				fmt.Sprintf("Control flow removed: %s", baselineFlow[i])))
		case localFlow[i] != baselineFlow[i]:
			records = append(records, logicChange(baselineFlow[i], localFlow[i],
				fmt.Sprintf("Control flow modified: %s -> %s", baselineFlow[i], localFlow[i])))
		}
	}
	return records
}

func logicChange(oldRef, newRef, description string) RelationshipRecord {
	return RelationshipRecord{
		Kind:         LogicChange,
		OldReference: oldRef,
		NewReference: newRef,
		Confidence:   logicChangeConfidence,
		Description:  description,
	}
}

// controlFlowLines returns trimmed lines containing a control-flow keyword as a plain substring
func controlFlowLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, kw := range controlFlowKeywords {
			if strings.Contains(trimmed, kw) {
				lines = append(lines, trimmed)
				break
			}
		}
	}
	return lines
}

// DetectDependencyChanges reports module specifiers imported by only one of the versions
func DetectDependencyChanges(local, baseline string) []RelationshipRecord {
	localMods := importedModules(local)
	baselineMods := importedModules(baseline)

	inLocal := toSet(localMods)
	inBaseline := toSet(baselineMods)

	var records []RelationshipRecord
	for _, mod := range baselineMods {
		if !inLocal[mod] {
			records = append(records, RelationshipRecord{
				Kind:         DependencyChange,
				OldReference: mod,
				Confidence:   dependencyConfidence,
				Description:  fmt.Sprintf("Dependency removed: %s", mod),
			})
		}
	}
	for _, mod := range localMods {
		if !inBaseline[mod] {
			records = append(records, RelationshipRecord{
				Kind:         DependencyChange,
				NewReference: mod,
				Confidence:   dependencyConfidence,
				Description:  fmt.Sprintf("Dependency added: %s", mod),
			})
		}
	}
	return records
}

// DetectMethodMoves reports functions declared in both versions whose position among
// the shared functions changed
func DetectMethodMoves(local, baseline string) []RelationshipRecord {
	localFns := declaredFunctions(local)
	baselineFns := declaredFunctions(baseline)

	inLocal := toSet(localFns)
	inBaseline := toSet(baselineFns)

	var sharedBaseline, sharedLocal []string
	for _, fn := range baselineFns {
		if inLocal[fn] {
			sharedBaseline = append(sharedBaseline, fn)
		}
	}
	for _, fn := range localFns {
		if inBaseline[fn] {
			sharedLocal = append(sharedLocal, fn)
		}
	}

	localPos := make(map[string]int, len(sharedLocal))
	for i, fn := range sharedLocal {
		localPos[fn] = i
	}

	var records []RelationshipRecord
	for i, fn := range sharedBaseline {
		if j := localPos[fn]; j != i {
			records = append(records, RelationshipRecord{
				Kind:         MethodMove,
				OldReference: fmt.Sprintf("%s#%d", fn, i+1),
				NewReference: fmt.Sprintf("%s#%d", fn, j+1),
				Confidence:   methodMoveConfidence,
				Description:  fmt.Sprintf("Method %q moved from position %d to %d", fn, i+1, j+1),
			})
		}
	}
	return records
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
