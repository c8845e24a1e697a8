// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Colour modes accepted by ColourEnabled.
const (
	ColourAuto   = "auto"
	ColourAlways = "always"
	ColourNever  = "never"
)

// IsTerminal checks whether a given file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColourEnabled determines whether output to a given file should be coloured
// under a given mode.  In "auto" mode, colour is used only for terminals.
func ColourEnabled(mode string, f *os.File) bool {
	switch strings.ToLower(mode) {
	case ColourAlways:
		return true
	case ColourNever:
		return false
	default:
		return IsTerminal(f)
	}
}

// Highlighter applies consistent highlighting to the different elements of
// analysis output.  When disabled, all text is returned unchanged.
type Highlighter struct {
	enabled bool
}

// NewHighlighter constructs a highlighter which is either enabled or not.
func NewHighlighter(enabled bool) Highlighter {
	return Highlighter{enabled}
}

// Label highlights a block label.
func (p Highlighter) Label(text string) string {
	return p.apply(BoldAnsiEscape().FgColour(TERM_BLUE), text)
}

// Bottom highlights an unsatisfiable value.
func (p Highlighter) Bottom(text string) string {
	return p.apply(NewAnsiEscape().FgColour(TERM_YELLOW), text)
}

// Error highlights an error message.
func (p Highlighter) Error(text string) string {
	return p.apply(BoldAnsiEscape().FgColour(TERM_RED), text)
}

// Marker highlights the part of a source line to which an error refers.
func (p Highlighter) Marker(text string) string {
	return p.apply(NewAnsiEscape().FgColour(TERM_GREEN), text)
}

func (p Highlighter) apply(escape AnsiEscape, text string) string {
	if !p.enabled {
		return text
	}
	//
	return escape.Wrap(text)
}
