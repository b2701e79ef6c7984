package screen

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Errors returned by ShapiroWilk for samples the test is undefined on.
var (
	ErrSampleTooSmall = errors.New("shapiro-wilk: sample must have at least 3 points")
	ErrZeroRange      = errors.New("shapiro-wilk: all sample values are identical")
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ShapiroWilk computes the Shapiro-Wilk W statistic and its p-value for
// the null hypothesis that the sample is drawn from a normal distribution.
// It follows Royston's AS R94 approximation, valid for 3 <= n <= 5000.
func ShapiroWilk(sample []float64) (w, p float64, err error) {
	n := len(sample)
	if n < 3 {
		return 0, 0, ErrSampleTooSmall
	}

	x := append([]float64(nil), sample...)
	sort.Float64s(x)
	if x[0] == x[n-1] {
		return 0, 0, ErrZeroRange
	}

	a := wilkWeights(n)

	var num, mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var ss float64
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		ss += d * d
	}
	w = num * num / ss
	if w > 1 {
		w = 1
	}

	return w, wilkPValue(w, n), nil
}

// wilkWeights computes the coefficient vector a of the W statistic
// from the expected normal order statistics (Royston 1995).
func wilkWeights(n int) []float64 {
	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
		return a
	}

	m := make([]float64, n)
	var mSum2 float64
	for i := 0; i < n; i++ {
		m[i] = stdNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mSum2 += m[i] * m[i]
	}

	u := 1 / math.Sqrt(float64(n))
	rsn := 1 / math.Sqrt(mSum2)

	an := -2.706056*pow5(u) + 4.434685*pow4(u) - 2.071190*pow3(u) -
		0.147981*u*u + 0.221157*u + m[n-1]*rsn

	var phi float64
	if n > 5 {
		an1 := -3.582633*pow5(u) + 5.682633*pow4(u) - 1.752461*pow3(u) -
			0.293762*u*u + 0.042981*u + m[n-2]*rsn
		phi = (mSum2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*an*an - 2*an1*an1)
		a[n-1], a[n-2] = an, an1
		a[0], a[1] = -an, -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	} else {
		phi = (mSum2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1] = an
		a[0] = -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}
	return a
}

// wilkPValue maps the W statistic to an upper-tail p-value using
// Royston's normalizing transformations.
func wilkPValue(w float64, n int) float64 {
	switch {
	case n == 3:
		// Exact for n = 3.
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	case n <= 11:
		fn := float64(n)
		gamma := 0.459*fn - 2.273
		mu := -0.0006714*pow3(fn) + 0.025054*fn*fn - 0.39978*fn + 0.5440
		sigma := math.Exp(-0.0020322*pow3(fn) + 0.062767*fn*fn - 0.77857*fn + 1.3822)
		z := (-math.Log(gamma-math.Log(1-w)) - mu) / sigma
		return clamp01(stdNormal.Survival(z))
	default:
		l := math.Log(float64(n))
		mu := 0.0038915*pow3(l) - 0.083751*l*l - 0.31082*l - 1.5861
		sigma := math.Exp(0.0030302*l*l - 0.082676*l - 0.4803)
		z := (math.Log(1-w) - mu) / sigma
		return clamp01(stdNormal.Survival(z))
	}
}

func pow3(x float64) float64 { return x * x * x }
func pow4(x float64) float64 { return x * x * x * x }
func pow5(x float64) float64 { return x * x * x * x * x }

func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
