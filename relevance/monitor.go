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

package relevance

import "github.com/poiesic/codi/core"

// RankMonitor receives callbacks while a keyword set is ranked against an index.
type RankMonitor interface {
	Start(keywords []string, records int)
	Scored(path string, b Breakdown)
	Skipped(path string)
	Finish(matches []core.Match)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []string, _ int)      {}
func (n *noopMonitor) Scored(_ string, _ Breakdown) {}
func (n *noopMonitor) Skipped(_ string)             {}
func (n *noopMonitor) Finish(_ []core.Match)        {}
