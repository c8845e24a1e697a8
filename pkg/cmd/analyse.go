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
package cmd

import (
	"fmt"
	"io"

	"github.com/consensys/go-crab/pkg/analysis"
	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/domain"
	"github.com/consensys/go-crab/pkg/domain/interval"
	"github.com/consensys/go-crab/pkg/domain/trace"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/util/termio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrSyntax is returned when a program file contains syntax errors.  The
// errors themselves are printed before this is returned.
var ErrSyntax = errors.New("syntax errors in program")

// RunOptions determines what is analysed, and what is reported.
type RunOptions struct {
	Config
	// Labels of the blocks to execute.  When empty, a default path is
	// followed from the entry block.
	Path []string
	// Print the control-flow graph before analysing it.
	PrintCfg bool
}

// Analyse a program file along a single path, writing the invariant after each
// block to a given writer.
func Analyse(w io.Writer, filename string, opts RunOptions) error {
	hl := termio.NewHighlighter(opts.Colour == termio.ColourAlways)
	//
	if opts.Rationals {
		return analyse[number.Q](w, filename, opts, hl)
	}
	//
	return analyse[number.Z](w, filename, opts, hl)
}

// Check a program file is well-formed, writing its control-flow graph to a
// given writer.
func Check(w io.Writer, filename string, config Config) error {
	hl := termio.NewHighlighter(config.Colour == termio.ColourAlways)
	//
	if config.Rationals {
		return check[number.Q](w, filename, hl)
	}
	//
	return check[number.Z](w, filename, hl)
}

func check[N number.Number[N]](w io.Writer, filename string, hl termio.Highlighter) error {
	program, err := loadProgram[N](w, filename, hl)
	if err != nil {
		return err
	}
	//
	fmt.Fprint(w, program.CFG.String())
	//
	if program.Domain != "" {
		if _, err := domain.Lookup(program.Domain); err != nil {
			return err
		}
	}
	//
	return nil
}

func analyse[N number.Number[N]](w io.Writer, filename string, opts RunOptions, hl termio.Highlighter) error {
	program, err := loadProgram[N](w, filename, hl)
	if err != nil {
		return err
	}
	//
	name := opts.Domain
	if name == "" {
		name = program.Domain
	}
	//
	if name == "" {
		name = domain.Intervals
	}
	//
	desc, err := domain.Lookup(name)
	if err != nil {
		return err
	}
	//
	log.Debugf("analysing %s using %s", filename, desc.Name)
	//
	switch desc.Name {
	case domain.Intervals:
		// Intervals are only defined over the integers
		if p, ok := any(program).(*cfg.Program[number.Z]); ok {
			return execute(w, p, interval.NewTop(), opts, hl)
		}
		//
		return errors.Errorf("domain %s requires integer arithmetic", desc.Name)
	case domain.Trace:
		return execute(w, program, trace.New[N](), opts, hl)
	}
	//
	panic(util.InvariantViolation(fmt.Sprintf("no implementation for domain %s", desc.Name)))
}

func execute[N number.Number[N], D domain.Numerical[N, D]](w io.Writer, program *cfg.Program[N], init D,
	opts RunOptions, hl termio.Highlighter) error {
	//
	if opts.PrintCfg {
		fmt.Fprintln(w, program.CFG.String())
	}
	//
	path, err := analysis.Path(program.CFG, opts.Path, opts.MaxSteps)
	if err != nil {
		return errors.Wrap(err, "invalid path")
	}
	//
	perf := util.NewPerfStats()
	tr := analysis.New[N](init)
	//
	for _, inv := range tr.ExecPath(path) {
		value := inv.Value.String()
		//
		if inv.Value.IsBottom() {
			value = hl.Bottom(value)
		}
		//
		fmt.Fprintf(w, "%s=%s\n", hl.Label(inv.Label), value)
	}
	//
	perf.Log("Analysis")
	//
	if opts.Stats {
		fmt.Fprint(w, tr.Stats().String())
	}
	//
	if n := tr.Stats().Outcome(analysis.Generalised) + tr.Stats().Outcome(analysis.Skipped); n > 0 {
		log.Warnf("%d statement(s) approximated", n)
	}
	//
	return nil
}

func loadProgram[N number.Number[N]](w io.Writer, filename string, hl termio.Highlighter) (*cfg.Program[N], error) {
	program, _, errs, err := cfg.ParseFile[N](filename)
	//
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	} else if len(errs) > 0 {
		printSyntaxErrors(w, errs, hl)
		return nil, errors.Wrapf(ErrSyntax, "%s (%d errors)", filename, len(errs))
	}
	//
	return program, nil
}
