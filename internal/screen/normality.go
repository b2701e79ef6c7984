package screen

import (
	"gonum.org/v1/gonum/stat"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// DefaultSignificanceLevel is the conventional normality threshold.
const DefaultSignificanceLevel = 0.05

// Classifier decides whether a returns series is statistically consistent
// with a normal distribution at the configured significance level.
type Classifier struct {
	Alpha float64
}

// NewClassifier creates a Classifier. A non-positive alpha falls back to
// the default significance level.
func NewClassifier(alpha float64) *Classifier {
	if alpha <= 0 {
		alpha = DefaultSignificanceLevel
	}
	return &Classifier{Alpha: alpha}
}

// Verdict classifies a log-return series. When the verdict is negative the
// second return names why. p-values equal to Alpha do not pass: the
// threshold is a strict greater-than.
func (c *Classifier) Verdict(returns []float64) (bool, models.ExclusionReason) {
	if len(returns) < 3 {
		return false, models.ReasonInsufficientHistory
	}
	if stat.StdDev(returns, nil) == 0 {
		return false, models.ReasonDegenerateSeries
	}

	_, p, err := ShapiroWilk(returns)
	if err != nil {
		return false, models.ReasonDegenerateSeries
	}
	if p > c.Alpha {
		return true, ""
	}
	return false, models.ReasonNotNormal
}

// IsNormal reports the bare verdict.
func (c *Classifier) IsNormal(returns []float64) bool {
	ok, _ := c.Verdict(returns)
	return ok
}
