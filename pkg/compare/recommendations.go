package compare

const (
	RecommendSplitCommits  = "This change has a high maintainability impact: split into smaller commits so each can be reviewed on its own"
	RecommendRenameDocs    = "Methods were renamed: update documentation for renames and check external callers"
	RecommendVerifyRemoval = "More lines were removed than added: verify intentional removal of functionality"
	RecommendUnitTests     = "The complexity score is high: add unit tests covering the changed behavior"
)

// Recommend evaluates every trigger independently, in a fixed order
func Recommend(result *ComparisonResult) []string {
	recs := []string{}

	if result.Metrics.MaintainabilityImpact == High {
		recs = append(recs, RecommendSplitCommits)
	}
	if len(result.RelationshipsOf(MethodRename)) > 0 {
		recs = append(recs, RecommendRenameDocs)
	}
	if result.CountKind(ChangeRemoved) > result.CountKind(ChangeAdded) {
		recs = append(recs, RecommendVerifyRemoval)
	}
	if result.Metrics.ComplexityScore > 7 {
		recs = append(recs, RecommendUnitTests)
	}

	return recs
}
