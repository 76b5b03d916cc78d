// Package planner computes capture timestamps for the sampling modes.
package planner

import (
	"context"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/user/vidsnap/pkg/pipeline"
)

// Plan maps a duration and mode parameters to an ordered list of capture
// timestamps in milliseconds. rng is only used by the random modes and may
// be nil for equal interval.
func Plan(durationMs int64, mode pipeline.Mode, params pipeline.PlanParams, rng *rand.Rand) (pipeline.SamplingPlan, error) {
	if durationMs <= 0 {
		return pipeline.SamplingPlan{}, fmt.Errorf("%w: duration must be positive, got %d ms", pipeline.ErrInvalidConfig, durationMs)
	}

	var (
		ts  []int64
		err error
	)
	switch mode {
	case pipeline.ModeEqualInterval:
		ts, err = equalInterval(durationMs, params.IntervalMs)
	case pipeline.ModeRandom:
		ts, err = random(durationMs, params.RandomCount, rng)
	case pipeline.ModeOrthogonal:
		ts, err = orthogonal(durationMs, params.OrthogonalCount, rng)
	default:
		err = fmt.Errorf("%w: unknown mode %d", pipeline.ErrInvalidConfig, int(mode))
	}
	if err != nil {
		return pipeline.SamplingPlan{}, err
	}

	return pipeline.SamplingPlan{
		Mode:       mode,
		DurationMs: durationMs,
		Timestamps: ts,
	}, nil
}

// equalInterval returns 0, k, 2k, ... with floor(d/k) entries, at least one.
func equalInterval(durationMs, intervalMs int64) ([]int64, error) {
	if intervalMs <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %d ms", pipeline.ErrInvalidConfig, intervalMs)
	}
	n := max(durationMs/intervalMs, 1)
	ts := make([]int64, n)
	for i := range ts {
		ts[i] = int64(i) * intervalMs
	}
	return ts, nil
}

// random draws min(count, d) distinct millisecond values from [0, d).
// Floyd's algorithm: a collision with an earlier draw is resolved by taking
// the upper bound of the current range, which cannot have been drawn yet.
func random(durationMs int64, count int, rng *rand.Rand) ([]int64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: random count must be positive, got %d", pipeline.ErrInvalidConfig, count)
	}
	rng = orDefault(rng)

	n := min(int64(count), durationMs)
	seen := make(map[int64]struct{}, n)
	ts := make([]int64, 0, n)
	for j := durationMs - n; j < durationMs; j++ {
		t := rng.Int64N(j + 1)
		if _, dup := seen[t]; dup {
			t = j
		}
		seen[t] = struct{}{}
		ts = append(ts, t)
	}
	slices.Sort(ts)
	return ts, nil
}

// orthogonal splits [0, d) into n strata and draws one value from each.
// Strata bounds are integer milliseconds, so n is capped at d to keep every
// stratum non-empty.
func orthogonal(durationMs int64, count int, rng *rand.Rand) ([]int64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: orthogonal count must be positive, got %d", pipeline.ErrInvalidConfig, count)
	}
	rng = orDefault(rng)

	n := min(int64(count), durationMs)
	ts := make([]int64, n)
	for i := int64(0); i < n; i++ {
		lo, hi := Stratum(durationMs, n, i)
		ts[i] = lo + rng.Int64N(hi-lo)
	}
	return ts, nil
}

// Stratum returns the half-open bounds [lo, hi) of stratum i out of n.
func Stratum(durationMs, n, i int64) (lo, hi int64) {
	return boundary(durationMs, n, i), boundary(durationMs, n, i+1)
}

// boundary returns floor(i*d/n) for 0 <= i <= n without overflowing:
// i*d/n = i*(d/n) + i*(d%n)/n, and the last product is taken in 128 bits.
func boundary(d, n, i int64) int64 {
	q, r := d/n, d%n
	hi, lo := bits.Mul64(uint64(i), uint64(r))
	frac, _ := bits.Div64(hi, lo, uint64(n))
	return i*q + int64(frac)
}

// NewRand returns a generator for seed, or a time-seeded one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func orDefault(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return NewRand(0)
	}
	return rng
}

// Stage adapts Plan to the pipeline.Stage interface.
type Stage struct {
	rng *rand.Rand
}

// NewStage creates a planning stage drawing from rng.
func NewStage(rng *rand.Rand) *Stage {
	return &Stage{rng: orDefault(rng)}
}

// Execute computes the sampling plan for input.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.SamplingPlan, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.SamplingPlan{}, err
	}
	return Plan(input.DurationMs, input.Mode, input.Params, s.rng)
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.PlanInput, pipeline.SamplingPlan] = (*Stage)(nil)
