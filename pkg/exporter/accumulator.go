package exporter

import (
	"sort"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

// outcome is the result of one plan step.
type outcome struct {
	index       int
	timestampMs int64
	path        string
	err         error
}

// accumulator folds step outcomes into a result. It is used by one
// goroutine at a time: the job goroutine, or the collector when writes run
// in a pool.
type accumulator struct {
	total      int
	onProgress func(completed, total int)
	logger     ports.Logger

	written  []outcome
	failures []pipeline.FrameFailure
}

func newAccumulator(total int, onProgress func(completed, total int), logger ports.Logger) *accumulator {
	return &accumulator{
		total:      total,
		onProgress: onProgress,
		logger:     logger,
	}
}

func (a *accumulator) add(o outcome) {
	if o.err != nil {
		a.logger.Warn("Capture failed at %d ms: %s", o.timestampMs, o.err)
		a.failures = append(a.failures, pipeline.FrameFailure{
			Index:       o.index,
			TimestampMs: o.timestampMs,
			Kind:        pipeline.KindOf(o.err),
			Err:         o.err,
		})
	} else {
		a.written = append(a.written, o)
		a.logger.Debug("Captured %d/%d at %d ms", o.index+1, a.total, o.timestampMs)
	}

	if a.onProgress != nil {
		a.onProgress(a.completed(), a.total)
	}
}

func (a *accumulator) completed() int {
	return len(a.written) + len(a.failures)
}

// fill copies the accumulated outcomes into r in plan order.
func (a *accumulator) fill(r *pipeline.ExportResult) {
	sort.Slice(a.written, func(i, j int) bool {
		return a.written[i].index < a.written[j].index
	})
	sort.Slice(a.failures, func(i, j int) bool {
		return a.failures[i].Index < a.failures[j].Index
	})

	r.Succeeded = len(a.written)
	r.Paths = make([]string, len(a.written))
	for i, o := range a.written {
		r.Paths[i] = o.path
	}
	r.Failures = a.failures
}
