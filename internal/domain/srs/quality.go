package srs

import (
	"fmt"

	"github.com/phrazzld/lexis-api/internal/domain"
)

// Quality is the 0-5 recall rating fed to the scheduler.
type Quality int

// Named points on the quality scale. 1 and 2 are valid failing grades without a name.
const (
	QualityForgot       Quality = 0
	QualityRecalledHard Quality = 3
	QualityRecalled     Quality = 4
	QualityInstant      Quality = 5
)

// Valid reports whether q is on the 0-5 scale.
func (q Quality) Valid() bool {
	return q >= QualityForgot && q <= QualityInstant
}

// GrammarGrade is the coarser 0-3 grade used by grammar card reviews.
type GrammarGrade int

// grammarQuality maps grammar grades to scheduler quality.
var grammarQuality = [...]Quality{
	0: QualityForgot,
	1: QualityRecalledHard,
	2: QualityRecalled,
	3: QualityInstant,
}

// QualityFromGrammarGrade translates a grammar grade to quality.
// Grades outside 0-3 are rejected with a validation error.
func QualityFromGrammarGrade(g GrammarGrade) (Quality, error) {
	if g < 0 || int(g) >= len(grammarQuality) {
		return 0, fmt.Errorf("%w: grammar grade %d out of range 0-3", domain.ErrValidation, g)
	}
	return grammarQuality[g], nil
}
