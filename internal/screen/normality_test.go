package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

func TestNewClassifierDefaultsAlpha(t *testing.T) {
	assert.Equal(t, DefaultSignificanceLevel, NewClassifier(0).Alpha)
	assert.Equal(t, DefaultSignificanceLevel, NewClassifier(-1).Alpha)
	assert.Equal(t, 0.01, NewClassifier(0.01).Alpha)
}

func TestClassifierVerdict(t *testing.T) {
	c := NewClassifier(DefaultSignificanceLevel)

	tests := []struct {
		name       string
		returns    []float64
		wantNormal bool
		wantReason models.ExclusionReason
	}{
		{
			name:       "too few returns",
			returns:    []float64{0.01, -0.02},
			wantNormal: false,
			wantReason: models.ReasonInsufficientHistory,
		},
		{
			name:       "zero variance",
			returns:    []float64{0, 0, 0, 0},
			wantNormal: false,
			wantReason: models.ReasonDegenerateSeries,
		},
		{
			name: "bell shaped returns pass",
			returns: []float64{
				-0.021, -0.014, -0.009, -0.005, -0.002,
				0.002, 0.005, 0.009, 0.014, 0.021,
			},
			wantNormal: true,
			wantReason: "",
		},
		{
			name: "outlier heavy returns fail",
			returns: []float64{
				0.001, -0.002, 0.002, -0.001, 0.001,
				-0.002, 0.001, 0.002, -0.001, 0.45,
			},
			wantNormal: false,
			wantReason: models.ReasonNotNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal, reason := c.Verdict(tt.returns)
			assert.Equal(t, tt.wantNormal, normal)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

// A p-value exactly at the significance level does not pass; the gate
// requires strictly greater.
func TestClassifierThresholdIsStrict(t *testing.T) {
	returns := []float64{-0.02, -0.01, 0.0, 0.01, 0.02}
	_, p, err := ShapiroWilk(returns)
	assert.NoError(t, err)

	atThreshold := NewClassifier(p)
	normal, reason := atThreshold.Verdict(returns)
	assert.False(t, normal)
	assert.Equal(t, models.ReasonNotNormal, reason)

	justBelow := NewClassifier(p * 0.999)
	normal, _ = justBelow.Verdict(returns)
	assert.True(t, normal)
}
