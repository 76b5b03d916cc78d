package main

import "github.com/user/vidsnap/pkg/ports"

// progressReporter logs export progress in steps of ten percent.
type progressReporter struct {
	logger  ports.Logger
	lastPct int
}

func newProgressReporter(logger ports.Logger) *progressReporter {
	return &progressReporter{logger: logger, lastPct: -1}
}

func (p *progressReporter) update(completed, total int) {
	if total <= 0 {
		return
	}
	pct := completed * 100 / total
	if pct/10 == p.lastPct/10 && completed != total {
		return
	}
	p.lastPct = pct
	p.logger.Info("Progress: %d/%d (%d%%)", completed, total, pct)
}
