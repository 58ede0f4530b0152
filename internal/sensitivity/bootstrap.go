package sensitivity

import (
	"fmt"
	"math/rand"

	"github.com/montanaflynn/stats"
)

// bootstrapConfidence resamples base points with replacement, re-estimates
// the indices each time, and returns the percentile-interval half-width per
// parameter at the configured confidence level. The same resampled indices
// are applied to every block so rows stay aligned.
func bootstrapConfidence(fA, fB []float64, fAB, fBA [][]float64, opts Options) (firstConf, totalConf []float64, err error) {
	dims := len(fAB)
	n := len(fA)
	reps := opts.BootstrapSamples

	firstBoot := make([][]float64, dims)
	totalBoot := make([][]float64, dims)
	for d := 0; d < dims; d++ {
		firstBoot[d] = make([]float64, reps)
		totalBoot[d] = make([]float64, reps)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	idx := make([]int, n)
	for rep := 0; rep < reps; rep++ {
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		first, total, _ := estimate(fA, fB, fAB, fBA, idx)
		for d := 0; d < dims; d++ {
			firstBoot[d][rep] = first[d]
			totalBoot[d][rep] = total[d]
		}
	}

	alpha := 1 - opts.Confidence
	loP := 100 * alpha / 2
	hiP := 100 * (1 - alpha/2)

	firstConf = make([]float64, dims)
	totalConf = make([]float64, dims)
	for d := 0; d < dims; d++ {
		firstConf[d], err = halfWidth(firstBoot[d], loP, hiP)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap interval for first-order index %d: %w", d, err)
		}
		totalConf[d], err = halfWidth(totalBoot[d], loP, hiP)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap interval for total-order index %d: %w", d, err)
		}
	}
	return firstConf, totalConf, nil
}

func halfWidth(sample []float64, loP, hiP float64) (float64, error) {
	lo, err := stats.Percentile(sample, loP)
	if err != nil {
		return 0, err
	}
	hi, err := stats.Percentile(sample, hiP)
	if err != nil {
		return 0, err
	}
	return (hi - lo) / 2, nil
}
