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

package openai

import (
	"fmt"

	"github.com/poiesic/codi/ai"
)

// metadataSchema describes the object requested in full mode.
const metadataSchema = `{
  "keywords": [],
  "capabilities": [],
  "side_effects": [],
  "inputs": [],
  "outputs": [],
  "risks": [],
  "patterns": [],
  "data_entities": [],
  "external_dependencies": []
}`

// keywordSchema describes the object requested in keyword mode.
const keywordSchema = `{
  "keywords": []
}`

const metadataPromptTemplate = `You are an expert software architect. Analyze the code below and extract deep semantic metadata.
Describe WHAT the code does and why it exists, not the syntax or the framework it is written in.

Output ONLY valid JSON. Do not include any preamble or explanation. Return exactly this structure,
where every value is a list of short descriptive strings:

%s

Rules:
- No library or framework names (React, Express, Django, Spring, etc).
- No trivial syntax terms (function, const, import, class, return, etc).
- Use meaningful business verbs and domain nouns.
- Capture intent, behavior, purpose, domain actions, hidden workflows, data flow and responsibilities.
- Use an empty list for anything that does not apply.

--------------------
CODE:
%s
--------------------`

const keywordPromptTemplate = `You are an expert system. Extract semantic, task-related keywords from the text below.

Output ONLY valid JSON with exactly this structure:

%s

Rules:
- No code syntax terms.
- No framework or library names.
- Only conceptual, task-related keywords.
- The JSON must parse without errors.

--------------------
TEXT:
%s
--------------------`

// buildPrompt returns the single user message for the given mode with the
// input text embedded.
func buildPrompt(mode ai.Mode, text string) string {
	if mode == ai.ModeKeywords {
		return fmt.Sprintf(keywordPromptTemplate, keywordSchema, text)
	}
	return fmt.Sprintf(metadataPromptTemplate, metadataSchema, text)
}
