// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package indexer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/codi/core"
)

// ProgressMonitor is a Monitor that writes a single updating progress line.
type ProgressMonitor struct {
	writer         io.Writer
	total          int
	current        int
	skipped        int
	degraded       int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

var _ Monitor = (*ProgressMonitor)(nil)

// NewProgressMonitor creates a new progress monitor.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N files
func NewProgressMonitor(writer io.Writer, reportInterval int) *ProgressMonitor {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressMonitor{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking a run over the given number of files.
func (p *ProgressMonitor) Start(_ string, files int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.total = files
	p.current = 0
	p.skipped = 0
	p.degraded = 0
	p.lastReported = 0
}

// FileIndexed counts a completed file.
func (p *ProgressMonitor) FileIndexed(_ *core.FileRecord) {
	p.increment(func() {})
}

// FileDegraded counts a file indexed with fallback metadata.
func (p *ProgressMonitor) FileDegraded(_ string, _ error) {
	p.increment(func() { p.degraded++ })
}

// FileSkipped counts a file that could not be indexed.
func (p *ProgressMonitor) FileSkipped(_ string, _ error) {
	p.increment(func() { p.skipped++ })
}

// Finish prints the final progress line.
func (p *ProgressMonitor) Finish(_ []*core.FileRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	if p.skipped > 0 || p.degraded > 0 {
		fmt.Fprintf(p.writer, " (%d skipped, %d degraded)", p.skipped, p.degraded)
	}
	fmt.Fprintln(p.writer) // Print newline after final progress
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressMonitor) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

func (p *ProgressMonitor) increment(count func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	count()
	p.current++
	if p.current > p.total {
		p.current = p.total
	}

	// Report if we've crossed a report interval
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressMonitor) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rIndexing: %d/%d (%.1f%%) - %.1f files/s",
		p.current, p.total, percentage, rate)
}
