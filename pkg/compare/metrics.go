package compare

const (
	maxComplexity = 10.0

	totalWeight        = 0.1
	significantWeight  = 0.5
	relationshipWeight = 0.3
)

// ComplexityScore weights total changes, High-significance changes and relationships,
// saturating at 10
func ComplexityScore(total, significant, relationships int) float64 {
	score := totalWeight*float64(total) +
		significantWeight*float64(significant) +
		relationshipWeight*float64(relationships)
	if score > maxComplexity {
		return maxComplexity
	}
	return score
}

// MaintainabilityImpact steps from Low to High as the score or the number of
// significant changes grows
func MaintainabilityImpact(score float64, significant int) Level {
	switch {
	case score >= 7 || significant >= 15:
		return High
	case score < 3 && significant < 5:
		return Low
	default:
		return Medium
	}
}

// CalculateMetrics derives Metrics from the changes and relationships of a comparison
func CalculateMetrics(changes []ChangeRecord, relationships []RelationshipRecord) Metrics {
	significant := 0
	for _, c := range changes {
		if c.Significance == High {
			significant++
		}
	}

	score := ComplexityScore(len(changes), significant, len(relationships))
	return Metrics{
		TotalChanges:          len(changes),
		SignificantChanges:    significant,
		ComplexityScore:       score,
		MaintainabilityImpact: MaintainabilityImpact(score, significant),
	}
}
