// Package exporter runs export jobs: it opens a video, plans capture
// timestamps and writes one image per timestamp on a background goroutine.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/planner"
	"github.com/user/vidsnap/pkg/ports"
)

// FrameWriter persists one captured frame and returns the written path.
type FrameWriter interface {
	Write(frame pipeline.CapturedFrame, job pipeline.ExportJob) (string, error)
}

// Callbacks receive job events. Both run on a background goroutine, except
// OnComplete for a job rejected by Start, which runs on the caller's.
// Callbacks must not call Wait.
type Callbacks struct {
	// OnProgress is called after every finished capture with a monotonic
	// completed count.
	OnProgress func(completed, total int)
	// OnComplete is called exactly once with the final result.
	OnComplete func(result pipeline.ExportResult)
}

// Controller runs a single export job. A Controller cannot be restarted;
// create a new one per job.
type Controller struct {
	source ports.VideoSource
	writer FrameWriter
	fs     ports.FileSystem
	logger ports.Logger

	// newPlanner builds the planning stage for a job seed.
	newPlanner func(seed uint64) pipeline.Stage[pipeline.PlanInput, pipeline.SamplingPlan]

	state     atomic.Int32
	started   atomic.Bool
	cancelled atomic.Bool

	completeOnce sync.Once
	done         chan struct{}
	result       pipeline.ExportResult
}

// New creates a Controller. fs is used to validate the export directory.
func New(source ports.VideoSource, writer FrameWriter, fs ports.FileSystem, logger ports.Logger) *Controller {
	return &Controller{
		source: source,
		writer: writer,
		fs:     fs,
		logger: logger.WithComponent("export"),
		newPlanner: func(seed uint64) pipeline.Stage[pipeline.PlanInput, pipeline.SamplingPlan] {
			return planner.NewStage(planner.NewRand(seed))
		},
		done: make(chan struct{}),
	}
}

// Start validates job and runs it in the background. Validation errors wrap
// pipeline.ErrInvalidConfig; in that case the controller is Failed and
// OnComplete has already fired when Start returns.
func (c *Controller) Start(ctx context.Context, job pipeline.ExportJob, cb Callbacks) error {
	if !c.started.CompareAndSwap(false, true) {
		return pipeline.ErrAlreadyStarted
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.WriteWorkers < 1 {
		job.WriteWorkers = 1
	}

	if err := c.validate(job); err != nil {
		c.logger.Error("Invalid export settings: %s", err)
		c.finish(cb, pipeline.ExportResult{
			JobID: job.ID,
			State: pipeline.StateFailed,
			Err:   err,
		})
		return err
	}

	c.state.Store(int32(pipeline.StatePlanning))
	go c.run(ctx, job, cb)
	return nil
}

// Cancel asks the job to stop before the next capture. A capture in
// progress finishes first. Safe to call from any goroutine, any number of
// times, before or after Start.
func (c *Controller) Cancel() {
	c.cancelled.Store(true)
}

// Wait blocks until the job has completed and returns its result.
// Calling Wait before Start blocks until a job started later completes.
func (c *Controller) Wait() pipeline.ExportResult {
	<-c.done
	return c.result
}

// Done returns a channel closed once the result is available.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// State returns the current lifecycle state.
func (c *Controller) State() pipeline.State {
	return pipeline.State(c.state.Load())
}

func (c *Controller) stopRequested(ctx context.Context) bool {
	return c.cancelled.Load() || ctx.Err() != nil
}

func (c *Controller) run(ctx context.Context, job pipeline.ExportJob, cb Callbacks) {
	start := time.Now()
	result := pipeline.ExportResult{JobID: job.ID}

	defer func() {
		result.Elapsed = time.Since(start)
		c.finish(cb, result)
	}()

	c.logger.Info("Starting export %s: %s", job.ID, job.VideoPath)

	plan, err := c.prepare(ctx, job)
	if err != nil {
		if errors.Is(err, errStopped) {
			result.State = pipeline.StateCancelled
			c.logger.Info("Export cancelled before capture")
			return
		}
		result.State = pipeline.StateFailed
		result.Err = err
		c.logger.Error("Export failed: %s", err)
		return
	}
	defer c.source.Close()

	c.state.Store(int32(pipeline.StateCapturing))
	result.DurationMs = plan.DurationMs
	result.Planned = plan.Len()
	c.logger.Info("Planned %d captures (%s mode)", plan.Len(), job.Mode.String())

	acc := newAccumulator(plan.Len(), cb.OnProgress, c.logger)
	var stopped bool
	if job.WriteWorkers > 1 {
		c.logger.Debug("Writing with %d workers", job.WriteWorkers)
		stopped = c.capturePooled(ctx, job, plan, acc)
	} else {
		stopped = c.captureEach(ctx, job, plan, nil, acc.add, func(frame pipeline.CapturedFrame) {
			acc.add(c.writeFrame(frame, job))
		})
	}
	acc.fill(&result)

	if stopped {
		result.State = pipeline.StateCancelled
		c.logger.Info("Export cancelled after %d/%d captures", result.Completed(), result.Planned)
		return
	}
	result.State = pipeline.StateCompleted
	c.logger.Info("Export completed: %d succeeded, %d failed", result.Succeeded, len(result.Failures))
}

// errStopped reports a cancellation observed before capture began.
var errStopped = errors.New("exporter: stopped")

// prepare opens the video and computes the plan. Errors other than
// errStopped are fatal. The source is left open only on success.
func (c *Controller) prepare(ctx context.Context, job pipeline.ExportJob) (pipeline.SamplingPlan, error) {
	if c.stopRequested(ctx) {
		return pipeline.SamplingPlan{}, errStopped
	}

	durationMs, err := c.source.Open(ctx, job.VideoPath)
	if err != nil {
		if ctx.Err() != nil {
			return pipeline.SamplingPlan{}, errStopped
		}
		if !errors.Is(err, pipeline.ErrOpen) {
			err = fmt.Errorf("%w: %w", pipeline.ErrOpen, err)
		}
		c.logger.Error("Failed to open video: %s", err)
		return pipeline.SamplingPlan{}, err
	}
	if job.DurationMs > 0 {
		durationMs = job.DurationMs
	}
	c.logger.Debug("Video duration: %d ms", durationMs)

	plan, err := c.newPlanner(job.Seed).Execute(ctx, pipeline.PlanInput{
		DurationMs: durationMs,
		Mode:       job.Mode,
		Params:     job.Params,
	})
	if err != nil {
		c.source.Close()
		if c.stopRequested(ctx) {
			return pipeline.SamplingPlan{}, errStopped
		}
		return pipeline.SamplingPlan{}, fmt.Errorf("plan: %w", err)
	}
	return plan, nil
}

// captureEach seeks every planned timestamp in order. Capture failures go
// to emit, frames go to write. A non-nil acquire is called before each
// seek and may block. It reports whether the loop was stopped before the
// plan was exhausted.
func (c *Controller) captureEach(
	ctx context.Context,
	job pipeline.ExportJob,
	plan pipeline.SamplingPlan,
	acquire func(),
	emit func(outcome),
	write func(pipeline.CapturedFrame),
) bool {
	total := plan.Len()
	for i, ts := range plan.Timestamps {
		if c.stopRequested(ctx) {
			return true
		}
		if acquire != nil {
			acquire()
			if c.stopRequested(ctx) {
				return true
			}
		}

		img, err := c.source.SeekAndDecode(ctx, ts, job.SeekTimeout)
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			// Interrupted, not a per-frame failure
			return true
		}
		if err != nil {
			emit(outcome{index: i, timestampMs: ts, err: err})
			continue
		}

		frame := pipeline.CapturedFrame{Index: i, Total: total, TimestampMs: ts, Image: img}
		if !frame.Valid() {
			emit(outcome{index: i, timestampMs: ts, err: fmt.Errorf("%w: empty image at %d ms", pipeline.ErrInvalidFrame, ts)})
			continue
		}
		write(frame)
	}
	return false
}

func (c *Controller) writeFrame(frame pipeline.CapturedFrame, job pipeline.ExportJob) outcome {
	path, err := c.writer.Write(frame, job)
	return outcome{index: frame.Index, timestampMs: frame.TimestampMs, path: path, err: err}
}

func (c *Controller) finish(cb Callbacks, result pipeline.ExportResult) {
	c.completeOnce.Do(func() {
		c.result = result
		c.state.Store(int32(result.State))
		if cb.OnComplete != nil {
			cb.OnComplete(result)
		}
		close(c.done)
	})
}
