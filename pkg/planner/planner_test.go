package planner

import (
	"context"
	"errors"
	"math"
	"math/big"
	"slices"
	"testing"

	"github.com/user/vidsnap/pkg/pipeline"
)

func TestPlan_EqualIntervalScenario(t *testing.T) {
	plan, err := Plan(12000, pipeline.ModeEqualInterval, pipeline.PlanParams{IntervalMs: 3000}, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	expected := []int64{0, 3000, 6000, 9000}
	if !slices.Equal(plan.Timestamps, expected) {
		t.Errorf("expected %v, got %v", expected, plan.Timestamps)
	}
	if plan.Len() != 4 {
		t.Errorf("expected length 4, got %d", plan.Len())
	}
}

func TestPlan_EqualIntervalProperties(t *testing.T) {
	tests := []struct {
		duration int64
		interval int64
	}{
		{1, 1},
		{10, 3},
		{10000, 3000},
		{10000, 10000},
		{9999, 10000}, // interval longer than the video
		{3600000, 1000},
		{7, 2},
	}

	for _, tt := range tests {
		plan, err := Plan(tt.duration, pipeline.ModeEqualInterval, pipeline.PlanParams{IntervalMs: tt.interval}, nil)
		if err != nil {
			t.Fatalf("Plan(%d, %d) failed: %v", tt.duration, tt.interval, err)
		}

		want := max(int(tt.duration/tt.interval), 1)
		if plan.Len() != want {
			t.Errorf("Plan(%d, %d): expected %d entries, got %d", tt.duration, tt.interval, want, plan.Len())
		}
		for i, ts := range plan.Timestamps {
			if ts < 0 || ts >= tt.duration {
				t.Errorf("Plan(%d, %d): timestamp %d out of range", tt.duration, tt.interval, ts)
			}
			if i > 0 && ts-plan.Timestamps[i-1] != tt.interval {
				t.Errorf("Plan(%d, %d): step %d differs by %d", tt.duration, tt.interval, i, ts-plan.Timestamps[i-1])
			}
		}
	}
}

func TestPlan_RandomProperties(t *testing.T) {
	tests := []struct {
		duration int64
		count    int
	}{
		{1, 1},
		{1, 5},
		{10, 10},
		{10, 25},
		{10000, 10},
		{10000, 9999},
		{600000, 500},
	}

	for _, tt := range tests {
		plan, err := Plan(tt.duration, pipeline.ModeRandom, pipeline.PlanParams{RandomCount: tt.count}, NewRand(42))
		if err != nil {
			t.Fatalf("Plan(%d, %d) failed: %v", tt.duration, tt.count, err)
		}

		want := min(int64(tt.count), tt.duration)
		if int64(plan.Len()) != want {
			t.Errorf("Plan(%d, %d): expected %d entries, got %d", tt.duration, tt.count, want, plan.Len())
		}
		for i, ts := range plan.Timestamps {
			if ts < 0 || ts >= tt.duration {
				t.Errorf("Plan(%d, %d): timestamp %d out of range", tt.duration, tt.count, ts)
			}
			if i > 0 && ts <= plan.Timestamps[i-1] {
				t.Errorf("Plan(%d, %d): not strictly ascending at %d", tt.duration, tt.count, i)
			}
		}
	}
}

func TestPlan_RandomFullRangeCoversEveryMillisecond(t *testing.T) {
	plan, err := Plan(50, pipeline.ModeRandom, pipeline.PlanParams{RandomCount: 50}, NewRand(7))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	for i, ts := range plan.Timestamps {
		if ts != int64(i) {
			t.Fatalf("expected every millisecond once, got %v", plan.Timestamps)
		}
	}
}

func TestPlan_RandomIsDeterministicForSeed(t *testing.T) {
	params := pipeline.PlanParams{RandomCount: 20}
	a, _ := Plan(100000, pipeline.ModeRandom, params, NewRand(99))
	b, _ := Plan(100000, pipeline.ModeRandom, params, NewRand(99))
	if !slices.Equal(a.Timestamps, b.Timestamps) {
		t.Errorf("expected identical plans for the same seed")
	}
}

func TestPlan_OrthogonalScenario(t *testing.T) {
	plan, err := Plan(10000, pipeline.ModeOrthogonal, pipeline.PlanParams{OrthogonalCount: 5}, NewRand(1))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", plan.Len())
	}
	for i, ts := range plan.Timestamps {
		lo, hi := int64(i)*2000, int64(i+1)*2000
		if ts < lo || ts >= hi {
			t.Errorf("entry %d = %d, expected within [%d, %d)", i, ts, lo, hi)
		}
	}
}

func TestPlan_OrthogonalProperties(t *testing.T) {
	tests := []struct {
		duration int64
		count    int
	}{
		{1, 1},
		{7, 3},
		{10000, 1},
		{10000, 7},
		{10001, 9999},
		{3600000, 100},
	}

	for _, tt := range tests {
		plan, err := Plan(tt.duration, pipeline.ModeOrthogonal, pipeline.PlanParams{OrthogonalCount: tt.count}, NewRand(3))
		if err != nil {
			t.Fatalf("Plan(%d, %d) failed: %v", tt.duration, tt.count, err)
		}
		if plan.Len() != tt.count {
			t.Fatalf("Plan(%d, %d): expected %d entries, got %d", tt.duration, tt.count, tt.count, plan.Len())
		}
		n := int64(tt.count)
		for i, ts := range plan.Timestamps {
			lo, hi := Stratum(tt.duration, n, int64(i))
			if ts < lo || ts >= hi {
				t.Errorf("Plan(%d, %d): entry %d = %d outside stratum [%d, %d)", tt.duration, tt.count, i, ts, lo, hi)
			}
			if i > 0 && ts <= plan.Timestamps[i-1] {
				t.Errorf("Plan(%d, %d): not ascending at %d", tt.duration, tt.count, i)
			}
		}
	}
}

func TestPlan_OrthogonalCapsAtDuration(t *testing.T) {
	plan, err := Plan(4, pipeline.ModeOrthogonal, pipeline.PlanParams{OrthogonalCount: 10}, NewRand(5))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !slices.Equal(plan.Timestamps, []int64{0, 1, 2, 3}) {
		t.Errorf("expected one entry per millisecond, got %v", plan.Timestamps)
	}
}

func TestStratum_LargeValues(t *testing.T) {
	tests := []struct {
		duration, n int64
	}{
		{math.MaxInt64, 3},
		{math.MaxInt64, math.MaxInt64 / 2},
		{math.MaxInt64 - 1, 1 << 40},
		{1 << 62, (1 << 62) - 1},
		{10000, 7},
	}

	for _, tt := range tests {
		indices := []int64{0, 1, tt.n / 2, tt.n - 1}
		for _, i := range indices {
			lo, hi := Stratum(tt.duration, tt.n, i)
			wantLo := exactBoundary(tt.duration, tt.n, i)
			wantHi := exactBoundary(tt.duration, tt.n, i+1)
			if lo != wantLo || hi != wantHi {
				t.Errorf("Stratum(%d, %d, %d) = [%d, %d), want [%d, %d)", tt.duration, tt.n, i, lo, hi, wantLo, wantHi)
			}
			if lo >= hi {
				t.Errorf("Stratum(%d, %d, %d) is empty: [%d, %d)", tt.duration, tt.n, i, lo, hi)
			}
		}
		if _, hi := Stratum(tt.duration, tt.n, tt.n-1); hi != tt.duration {
			t.Errorf("Stratum(%d, %d): last bound %d, want %d", tt.duration, tt.n, hi, tt.duration)
		}
	}
}

func exactBoundary(d, n, i int64) int64 {
	v := new(big.Int).Mul(big.NewInt(i), big.NewInt(d))
	return v.Quo(v, big.NewInt(n)).Int64()
}

func TestPlan_OrthogonalLongDuration(t *testing.T) {
	const duration = math.MaxInt64 / 2
	plan, err := Plan(duration, pipeline.ModeOrthogonal, pipeline.PlanParams{OrthogonalCount: 1000}, NewRand(8))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	for i, ts := range plan.Timestamps {
		if ts < 0 || ts >= duration {
			t.Fatalf("entry %d = %d out of range", i, ts)
		}
		if i > 0 && ts <= plan.Timestamps[i-1] {
			t.Fatalf("not ascending at %d", i)
		}
	}
}

func TestPlan_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		duration int64
		mode     pipeline.Mode
		params   pipeline.PlanParams
	}{
		{"zero duration", 0, pipeline.ModeEqualInterval, pipeline.PlanParams{IntervalMs: 10}},
		{"negative duration", -5, pipeline.ModeRandom, pipeline.PlanParams{RandomCount: 10}},
		{"zero interval", 1000, pipeline.ModeEqualInterval, pipeline.PlanParams{}},
		{"negative interval", 1000, pipeline.ModeEqualInterval, pipeline.PlanParams{IntervalMs: -1}},
		{"zero random count", 1000, pipeline.ModeRandom, pipeline.PlanParams{RandomCount: 0}},
		{"zero orthogonal count", 1000, pipeline.ModeOrthogonal, pipeline.PlanParams{OrthogonalCount: 0}},
		{"unknown mode", 1000, pipeline.Mode(9), pipeline.PlanParams{IntervalMs: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.duration, tt.mode, tt.params, NewRand(1))
			if !errors.Is(err, pipeline.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage(NewRand(11))
	plan, err := stage.Execute(context.Background(), pipeline.PlanInput{
		DurationMs: 5000,
		Mode:       pipeline.ModeEqualInterval,
		Params:     pipeline.PlanParams{IntervalMs: 1000},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if plan.Len() != 5 {
		t.Errorf("expected 5 entries, got %d", plan.Len())
	}
}

func TestStage_ExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStage(nil).Execute(ctx, pipeline.PlanInput{DurationMs: 1000, Params: pipeline.PlanParams{IntervalMs: 10}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
