// Package estimator computes confidence intervals around the aggregate
// values the executor rescales from a sample, so callers can judge how
// much to trust an approximate result.
package estimator

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// CIResult carries a point estimate alongside its confidence interval.
type CIResult struct {
	Estimate        float64 `json:"estimate"`
	StdError        float64 `json:"std_error"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Lower           float64 `json:"ci_low"`
	Upper           float64 `json:"ci_high"`
	SampleFraction  float64 `json:"sample_fraction"`
	RelativeError   float64 `json:"relative_error"`
}

// ZScore returns the two-sided z critical value for a confidence level.
// Unrecognized levels fall back to 95%.
func ZScore(confidence float64) float64 {
	switch {
	case math.Abs(confidence-0.90) < 1e-9:
		return 1.6448536269514722
	case math.Abs(confidence-0.95) < 1e-9:
		return 1.959963984540054
	case math.Abs(confidence-0.99) < 1e-9:
		return 2.5758293035489004
	default:
		return 1.959963984540054
	}
}

// SumCI computes an analytic CI for a sum rescaled from a uniform sample
// of rate f. sampleValuesVariance is the sample variance of the values
// contributing to sumSample.
func SumCI(sumSample float64, sampleValuesVariance float64, nSample int, f float64, confidence float64) CIResult {
	varSumSample := sampleValuesVariance * float64(nSample)
	est := sumSample / f
	se := math.Sqrt(varSumSample) / f
	z := ZScore(confidence)
	rel := 0.0
	if est != 0 {
		rel = se / math.Abs(est)
	}
	return CIResult{
		Estimate: est, StdError: se, ConfidenceLevel: confidence,
		Lower: est - z*se, Upper: est + z*se,
		SampleFraction: f, RelativeError: rel,
	}
}

// CountCI computes an analytic CI for a COUNT(*) rescaled from a uniform
// sample of rate f, using the binomial variance approximation with the
// rescaled estimate standing in for the unknown population size.
func CountCI(countSample int64, f float64, confidence float64) CIResult {
	est := float64(countSample) / f
	varSample := est * f * (1 - f)
	se := math.Sqrt(varSample) / f
	z := ZScore(confidence)
	rel := 0.0
	if est != 0 {
		rel = se / math.Abs(est)
	}
	return CIResult{
		Estimate: est, StdError: se, ConfidenceLevel: confidence,
		Lower: est - z*se, Upper: est + z*se,
		SampleFraction: f, RelativeError: rel,
	}
}

// BootstrapCI computes a percentile bootstrap CI for a scaled estimate.
// scaleFunc reduces a slice of sample values to a statistic (sum, mean,
// …); scale converts that statistic into a population-level estimate
// (typically 1/sampleFraction); B is the resample count.
func BootstrapCI(values []float64, scaleFunc func([]float64) float64, scale float64, B int, confidence float64) CIResult {
	if len(values) == 0 {
		return CIResult{}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	n := len(values)

	originalEst := scaleFunc(values) * scale

	bootstrapEsts := make([]float64, B)
	resample := make([]float64, n)
	for i := 0; i < B; i++ {
		for j := 0; j < n; j++ {
			resample[j] = values[rng.Intn(n)]
		}
		bootstrapEsts[i] = scaleFunc(resample) * scale
	}

	sort.Float64s(bootstrapEsts)

	alpha := 1.0 - confidence
	lowerIdx := int(math.Floor(float64(B) * alpha / 2.0))
	upperIdx := int(math.Ceil(float64(B)*(1.0-alpha/2.0))) - 1
	if lowerIdx < 0 {
		lowerIdx = 0
	}
	if upperIdx >= B {
		upperIdx = B - 1
	}

	mean := 0.0
	for _, est := range bootstrapEsts {
		mean += est
	}
	mean /= float64(B)

	variance := 0.0
	for _, est := range bootstrapEsts {
		variance += (est - mean) * (est - mean)
	}
	variance /= float64(B - 1)
	stdErr := math.Sqrt(variance)

	relErr := 0.0
	if originalEst != 0 {
		relErr = stdErr / math.Abs(originalEst)
	}

	return CIResult{
		Estimate:        originalEst,
		StdError:        stdErr,
		ConfidenceLevel: confidence,
		Lower:           bootstrapEsts[lowerIdx],
		Upper:           bootstrapEsts[upperIdx],
		SampleFraction:  1.0 / scale,
		RelativeError:   relErr,
	}
}
