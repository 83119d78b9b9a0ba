package dcql

import "strings"

// InformationScorer assigns a sensitivity score to a claims path. Lower
// scores disclose less; the satisfier tries claim sets in ascending score
// order (principle of least information).
type InformationScorer interface {
	Score(p Pointer) int
}

// Attribute-name substrings that mark a claim as highly identifying.
var dangerousProperties = []string{"birth", "date", "address", "street"}

// Attribute-name substrings that mark a claim as deliberately hiding
// information, such as age_over_NN predicates.
var hidingProperties = []string{"age_over"}

const (
	scoreDangerous = 4
	scoreDefault   = 2
	scoreHiding    = 1
)

// SensitivityScorer scores name parts by substring heuristics. Index and
// wildcard parts carry no information of their own and score zero.
type SensitivityScorer struct{}

// Score sums the per-part weights of all name parts.
func (SensitivityScorer) Score(p Pointer) int {
	score := 0
	for _, part := range p {
		if part.Kind() != PartName {
			continue
		}
		score += scoreAttribute(part.MemberName())
	}
	return score
}

func scoreAttribute(attribute string) int {
	for _, dp := range dangerousProperties {
		if strings.Contains(attribute, dp) {
			return scoreDangerous
		}
	}
	for _, hp := range hidingProperties {
		if strings.Contains(attribute, hp) {
			return scoreHiding
		}
	}
	return scoreDefault
}
