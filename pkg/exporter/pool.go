package exporter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/user/vidsnap/pkg/pipeline"
)

// capturePooled captures sequentially and hands frames to WriteWorkers
// writers. A step holds one of WriteWorkers slots from its seek until the
// collector has accounted for it, so at most WriteWorkers steps are
// unaccounted at any time. Writers drop frames once a stop is requested.
// When Cancel is called from progress report i, at most
// i+WriteWorkers-1 steps complete. A single collector owns the
// accumulator, so progress stays monotonic.
func (c *Controller) capturePooled(ctx context.Context, job pipeline.ExportJob, plan pipeline.SamplingPlan, acc *accumulator) bool {
	slots := make(chan struct{}, job.WriteWorkers)
	frames := make(chan pipeline.CapturedFrame)
	outcomes := make(chan outcome, job.WriteWorkers)

	var (
		wg      sync.WaitGroup
		dropped atomic.Int32
	)
	for i := 0; i < job.WriteWorkers; i++ {
		wg.Add(1)
		go c.writeWorker(ctx, &wg, job, frames, outcomes, slots, &dropped)
	}

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for o := range outcomes {
			acc.add(o)
			<-slots
		}
	}()

	stopped := c.captureEach(ctx, job, plan,
		func() { slots <- struct{}{} },
		func(o outcome) { outcomes <- o },
		func(frame pipeline.CapturedFrame) { frames <- frame },
	)

	close(frames)
	wg.Wait()
	close(outcomes)
	<-collected

	return stopped || dropped.Load() > 0
}

// writeWorker writes frames from the frames channel until it is closed.
// Frames received after a stop request are released without writing.
func (c *Controller) writeWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	job pipeline.ExportJob,
	frames <-chan pipeline.CapturedFrame,
	outcomes chan<- outcome,
	slots <-chan struct{},
	dropped *atomic.Int32,
) {
	defer wg.Done()
	for frame := range frames {
		if c.stopRequested(ctx) {
			dropped.Add(1)
			<-slots
			continue
		}
		outcomes <- c.writeFrame(frame, job)
	}
}
