package compare

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity scores two identifiers in [0,1], case-sensitively.
//
// The base score is 1 - editDistance/max(len). A name that extends another one
// (getUser -> getUserData) also scores 0.5 + 0.5*len(short)/len(long), and the
// higher of the two wins. Both formulas are symmetric and give 1.0 for equal names.
// For extensions the reported score is therefore above the plain edit-distance
// ratio: getUserInfo -> getUserInfo2 scores 0.958 rather than 0.917.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}

	score := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
	if ext := extensionScore(a, b, la, lb); ext > score {
		score = ext
	}
	return score
}

func extensionScore(a, b string, la, lb int) float64 {
	short, long, ls, ll := a, b, la, lb
	if ls > ll {
		short, long, ls, ll = b, a, lb, la
	}
	if ls == 0 || !strings.HasPrefix(long, short) {
		return 0
	}
	return 0.5 + 0.5*float64(ls)/float64(ll)
}
