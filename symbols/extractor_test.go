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

package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "javascript function",
			content: "function validateEmail(value) { return true }",
			want:    []string{"validateEmail"},
		},
		{
			name:    "arrow assignment",
			content: "const sendMail = (to, body) => { }",
			want:    []string{"sendMail"},
		},
		{
			name:    "exported function counted once",
			content: "export function login(user) {}",
			want:    []string{"login"},
		},
		{
			name:    "class declaration",
			content: "class AuthService extends Base {}",
			want:    []string{"AuthService"},
		},
		{
			name:    "python def and class",
			content: "class Invoice:\n    def total(self):\n        pass\n",
			want:    []string{"Invoice", "total"},
		},
		{
			name:    "java methods",
			content: "public String getName() {}\nprivate void reset(int x) {}\nprotected List<String> items() {}",
			want:    []string{"getName", "items", "reset"},
		},
		{
			name:    "duplicates removed",
			content: "function a() {}\nfunction a() {}\nconst a = () => 1",
			want:    []string{"a"},
		},
		{
			name:    "nothing found",
			content: "just some prose without declarations",
			want:    []string{},
		},
		{
			name:    "empty content",
			content: "",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.content))
		})
	}
}

func TestExtract_OverMatchingIsAccepted(t *testing.T) {
	// Words inside comments and strings still match; the scan is heuristic.
	got := Extract(`// the function helper below
const msg = "class Widget"`)
	assert.Contains(t, got, "helper")
	assert.Contains(t, got, "Widget")
}

func TestExtract_Sorted(t *testing.T) {
	got := Extract("def zeta(): pass\ndef alpha(): pass\ndef mid(): pass")
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, got)
}
