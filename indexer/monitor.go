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

import "github.com/poiesic/codi/core"

// Monitor receives per-file progress from an index run.
// Methods may be called from multiple worker goroutines.
type Monitor interface {
	Start(run string, files int)
	FileIndexed(record *core.FileRecord)
	FileDegraded(path string, err error)
	FileSkipped(path string, err error)
	Finish(records []*core.FileRecord)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)          {}
func (n *noopMonitor) FileIndexed(_ *core.FileRecord) {}
func (n *noopMonitor) FileDegraded(_ string, _ error) {}
func (n *noopMonitor) FileSkipped(_ string, _ error)  {}
func (n *noopMonitor) Finish(_ []*core.FileRecord)    {}
