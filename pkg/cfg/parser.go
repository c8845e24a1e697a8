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
package cfg

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/util/source"
	"github.com/consensys/go-crab/pkg/util/source/sexp"
	"github.com/consensys/go-crab/pkg/variable"
)

// Program represents the contents of a program file, namely a control-flow
// graph along with the variables it uses and an (optional) abstract domain
// directive.
type Program[N number.Number[N]] struct {
	// Control-flow graph of the program.
	CFG *CFG[N]
	// Variables used in the program.
	Variables *variable.Factory
	// Name of the abstract domain requested by the program file, or empty if
	// none was given.
	Domain string
}

// Parse a program file.  A program file is a sequence of top-level
// S-expressions, each of which is either a directive or a block:
//
//	(domain intervals)
//	(var a array)
//	(entry bb0)
//	(block bb0 (assign x 0) (goto bb1 bb2))
//
// Blocks contain zero or more statements, followed optionally by a goto
// identifying their successors.  The first block is the entry block, unless an
// entry directive is given.
func Parse[N number.Number[N]](srcfile *source.File) (*Program[N], []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := newParser[N](srcmap)
	//
	return p.parseProgram(terms)
}

// ParseFile reads and parses a given program file.
func ParseFile[N number.Number[N]](filename string) (*Program[N], *source.File, []source.SyntaxError, error) {
	files, err := source.ReadFiles(filename)
	if err != nil {
		return nil, nil, nil, err
	}
	//
	program, errs := Parse[N](files[0])
	//
	return program, files[0], errs, nil
}

// ============================================================================
// Parser
// ============================================================================

type parser[N number.Number[N]] struct {
	srcmap     *source.Map[sexp.SExp]
	vars       *variable.Factory
	translator *sexp.Translator[linear.Expression[N]]
	program    *Program[N]
}

func newParser[N number.Number[N]](srcmap *source.Map[sexp.SExp]) *parser[N] {
	p := &parser[N]{srcmap: srcmap, vars: variable.NewFactory()}
	p.translator = p.newExpressionTranslator()
	//
	return p
}

func (p *parser[N]) parseProgram(terms []sexp.SExp) (*Program[N], []source.SyntaxError) {
	var (
		errors []source.SyntaxError
		blocks []*sexp.List
		entry  *sexp.List
		domain string
	)
	// Directives
	for _, term := range terms {
		list := term.AsList()
		//
		switch {
		case list == nil:
			errors = append(errors, *p.syntaxError(term, "unexpected symbol"))
		case list.Len() >= 2 && list.Get(1).AsSymbol() == nil:
			errors = append(errors, *p.syntaxError(list.Get(1), "expected name"))
		case list.MatchSymbols(2, "domain") && list.Len() == 2:
			if domain != "" {
				errors = append(errors, *p.syntaxError(term, "duplicate domain directive"))
			}
			//
			domain = list.Get(1).AsSymbol().Value
		case list.MatchSymbols(3, "var") && list.Len() == 3:
			errors = append(errors, p.parseDeclaration(list)...)
		case list.MatchSymbols(2, "entry") && list.Len() == 2:
			if entry != nil {
				errors = append(errors, *p.syntaxError(term, "duplicate entry directive"))
			}
			//
			entry = list
		case list.MatchSymbols(2, "block"):
			blocks = append(blocks, list)
		default:
			errors = append(errors, *p.syntaxError(term, "unknown declaration"))
		}
	}
	//
	if len(errors) > 0 {
		return nil, errors
	} else if len(blocks) == 0 {
		return nil, []source.SyntaxError{*p.srcmap.Source().SyntaxError(source.NewSpan(0, 0), "no blocks")}
	}
	// Blocks
	graph := NewCFG[N](blocks[0].Get(1).AsSymbol().Value)
	//
	for i, block := range blocks {
		label := block.Get(1).AsSymbol().Value
		//
		if _, ok := graph.Get(label); ok && i != 0 {
			errors = append(errors, *p.syntaxError(block.Get(1), "duplicate block"))
		}
		//
		graph.Insert(label)
	}
	//
	if entry != nil {
		if err := graph.SetEntry(entry.Get(1).AsSymbol().Value); err != nil {
			errors = append(errors, *p.syntaxError(entry.Get(1), err.Error()))
		}
	}
	//
	p.program = &Program[N]{graph, p.vars, domain}
	//
	for _, block := range blocks {
		errors = append(errors, p.parseBlock(block)...)
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return p.program, nil
}

func (p *parser[N]) parseDeclaration(list *sexp.List) []source.SyntaxError {
	var (
		name = list.Get(1).AsSymbol()
		kind = list.Get(2).AsSymbol()
	)
	//
	if !isIdentifier(name.Value) {
		return p.syntaxErrors(name, "invalid variable name")
	} else if kind == nil {
		return p.syntaxErrors(list.Get(2), "expected type")
	}
	//
	t, ok := variable.ParseType(kind.Value)
	if !ok {
		return p.syntaxErrors(kind, "unknown type")
	} else if _, err := p.vars.Get(name.Value, t); err != nil {
		return p.syntaxErrors(list, err.Error())
	}
	//
	return nil
}

func (p *parser[N]) parseBlock(list *sexp.List) []source.SyntaxError {
	var (
		errors   []source.SyntaxError
		label    = list.Get(1).AsSymbol().Value
		block, _ = p.program.CFG.Get(label)
		body     = list.Elements[2:]
	)
	//
	for i, elem := range body {
		stmt := elem.AsList()
		//
		if stmt == nil || stmt.Len() == 0 || stmt.Get(0).AsSymbol() == nil {
			errors = append(errors, *p.syntaxError(elem, "invalid statement"))
		} else if stmt.Head() == "goto" {
			if i != len(body)-1 {
				errors = append(errors, *p.syntaxError(elem, "goto must terminate block"))
			}
			//
			errors = append(errors, p.parseGoto(label, stmt)...)
		} else {
			errors = append(errors, p.parseStatement(block, stmt)...)
		}
	}
	//
	return errors
}

func (p *parser[N]) parseGoto(label string, stmt *sexp.List) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	for _, target := range stmt.Elements[1:] {
		if sym := target.AsSymbol(); sym == nil {
			errors = append(errors, *p.syntaxError(target, "expected block label"))
		} else if err := p.program.CFG.AddEdge(label, sym.Value); err != nil {
			errors = append(errors, *p.syntaxError(target, err.Error()))
		}
	}
	//
	return errors
}

func (p *parser[N]) parseStatement(block *BasicBlock[N], stmt *sexp.List) []source.SyntaxError {
	var (
		head = stmt.Head()
		args = stmt.Elements[1:]
		errs []source.SyntaxError
	)
	// Binary operations
	if op, ok := ParseBinaryOperator(head); ok {
		return p.parseBinaryOp(block, op, stmt)
	}
	//
	switch head {
	case "assign":
		if errs = p.checkArity(stmt, 2); errs == nil {
			lhs, errs1 := p.numericVariable(args[0])
			rhs, errs2 := p.translator.Translate(args[1])
			//
			if errs = concat(errs1, errs2); errs == nil {
				block.Assign(lhs, rhs)
			}
		}
	case "assume":
		if errs = p.checkArity(stmt, 1); errs == nil {
			var c linear.Constraint[N]
			//
			if c, errs = p.parseConstraint(args[0]); errs == nil {
				block.Assume(c)
			}
		}
	case "havoc":
		if errs = p.checkArity(stmt, 1); errs == nil {
			var x variable.Variable
			//
			if x, errs = p.numericVariable(args[0]); errs == nil {
				block.Havoc(x)
			}
		}
	case "unreachable":
		if errs = p.checkArity(stmt, 0); errs == nil {
			block.Unreachable()
		}
	case "array-init":
		if errs = p.checkArity(stmt, 1); errs == nil {
			var a variable.Variable
			//
			if a, errs = p.typedVariable(args[0], variable.Array); errs == nil {
				block.ArrayInit(a)
			}
		}
	case "array-store":
		errs = p.parseArrayStore(block, stmt)
	case "array-load":
		if errs = p.checkArity(stmt, 3); errs == nil {
			x, errs1 := p.numericVariable(args[0])
			a, errs2 := p.typedVariable(args[1], variable.Array)
			i, errs3 := p.translator.Translate(args[2])
			//
			if errs = concat(errs1, errs2, errs3); errs == nil {
				block.ArrayLoad(x, a, i)
			}
		}
	case "ptr-store":
		if errs = p.checkArity(stmt, 2); errs == nil {
			ptr, errs1 := p.typedVariable(args[0], variable.Pointer)
			x, errs2 := p.numericVariable(args[1])
			//
			if errs = concat(errs1, errs2); errs == nil {
				block.PtrStore(ptr, x)
			}
		}
	case "ptr-load":
		if errs = p.checkArity(stmt, 2); errs == nil {
			x, errs1 := p.numericVariable(args[0])
			ptr, errs2 := p.typedVariable(args[1], variable.Pointer)
			//
			if errs = concat(errs1, errs2); errs == nil {
				block.PtrLoad(x, ptr)
			}
		}
	case "ptr-assign":
		if errs = p.checkArity(stmt, 3); errs == nil {
			lhs, errs1 := p.typedVariable(args[0], variable.Pointer)
			ptr, errs2 := p.typedVariable(args[1], variable.Pointer)
			off, errs3 := p.translator.Translate(args[2])
			//
			if errs = concat(errs1, errs2, errs3); errs == nil {
				block.PtrAssign(lhs, ptr, off)
			}
		}
	case "ptr-object":
		errs = p.parsePtrObject(block, stmt)
	case "ptr-function":
		if errs = p.checkArity(stmt, 2); errs == nil {
			lhs, errs1 := p.typedVariable(args[0], variable.Pointer)
			fn, errs2 := p.identifier(args[1])
			//
			if errs = concat(errs1, errs2); errs == nil {
				block.PtrFunction(lhs, fn)
			}
		}
	case "call":
		errs = p.parseCall(block, stmt)
	case "return":
		if errs = p.checkArity(stmt, 1); errs == nil {
			var x variable.Variable
			//
			if x, errs = p.anyVariable(args[0]); errs == nil {
				block.Return(x)
			}
		}
	default:
		errs = p.syntaxErrors(stmt, "unknown statement")
	}
	//
	return errs
}

func (p *parser[N]) parseBinaryOp(block *BasicBlock[N], op BinaryOperator, stmt *sexp.List) []source.SyntaxError {
	if errs := p.checkArity(stmt, 3); errs != nil {
		return errs
	}
	//
	z, errs1 := p.numericVariable(stmt.Get(1))
	x, errs2 := p.translator.Translate(stmt.Get(2))
	y, errs3 := p.translator.Translate(stmt.Get(3))
	//
	if errs := concat(errs1, errs2, errs3); errs != nil {
		return errs
	}
	//
	block.BinOp(op, z, x, y)
	//
	return nil
}

func (p *parser[N]) parseArrayStore(block *BasicBlock[N], stmt *sexp.List) []source.SyntaxError {
	var singleton bool
	//
	switch {
	case stmt.Len() == 5 && stmt.Get(4).AsSymbol() != nil && stmt.Get(4).AsSymbol().Value == "singleton":
		singleton = true
	case stmt.Len() != 4:
		return p.syntaxErrors(stmt, "incorrect number of arguments")
	}
	//
	a, errs1 := p.typedVariable(stmt.Get(1), variable.Array)
	i, errs2 := p.translator.Translate(stmt.Get(2))
	v, errs3 := p.translator.Translate(stmt.Get(3))
	//
	if errs := concat(errs1, errs2, errs3); errs != nil {
		return errs
	}
	//
	block.ArrayStore(a, i, v, singleton)
	//
	return nil
}

func (p *parser[N]) parsePtrObject(block *BasicBlock[N], stmt *sexp.List) []source.SyntaxError {
	if errs := p.checkArity(stmt, 2); errs != nil {
		return errs
	}
	//
	lhs, errs := p.typedVariable(stmt.Get(1), variable.Pointer)
	if errs != nil {
		return errs
	}
	//
	sym := stmt.Get(2).AsSymbol()
	if sym == nil {
		return p.syntaxErrors(stmt.Get(2), "expected object identifier")
	}
	//
	obj, err := strconv.ParseUint(sym.Value, 10, 32)
	if err != nil {
		return p.syntaxErrors(sym, "invalid object identifier")
	}
	//
	block.PtrObject(lhs, uint(obj))
	//
	return nil
}

func (p *parser[N]) parseCall(block *BasicBlock[N], stmt *sexp.List) []source.SyntaxError {
	var (
		lhs    = util.None[variable.Variable]()
		args   []variable.Variable
		errors []source.SyntaxError
	)
	//
	if stmt.Len() < 3 {
		return p.syntaxErrors(stmt, "incorrect number of arguments")
	}
	// Result (if any)
	if sym := stmt.Get(1).AsSymbol(); sym == nil || sym.Value != "_" {
		x, errs := p.anyVariable(stmt.Get(1))
		lhs = util.Some(x)
		errors = append(errors, errs...)
	}
	// Function
	fn, errs := p.identifier(stmt.Get(2))
	errors = append(errors, errs...)
	// Arguments
	for _, arg := range stmt.Elements[3:] {
		x, errs := p.anyVariable(arg)
		args = append(args, x)
		errors = append(errors, errs...)
	}
	//
	if len(errors) == 0 {
		block.Call(lhs, fn, args...)
	}
	//
	return errors
}

func (p *parser[N]) parseConstraint(term sexp.SExp) (linear.Constraint[N], []source.SyntaxError) {
	var (
		empty linear.Constraint[N]
		list  = term.AsList()
	)
	//
	if list == nil || list.Len() != 3 || list.Get(0).AsSymbol() == nil {
		return empty, p.syntaxErrors(term, "invalid constraint")
	}
	//
	lhs, errs1 := p.translator.Translate(list.Get(1))
	rhs, errs2 := p.translator.Translate(list.Get(2))
	//
	if errs := concat(errs1, errs2); errs != nil {
		return empty, errs
	}
	//
	switch list.Head() {
	case "<=":
		return linear.LessEq(lhs, rhs), nil
	case ">=":
		return linear.GreaterEq(lhs, rhs), nil
	case "==":
		return linear.Equal(lhs, rhs), nil
	case "!=":
		return linear.NotEqual(lhs, rhs), nil
	case "<":
		c, err := linear.LessThan(lhs, rhs)
		return c, p.checkError(term, err)
	case ">":
		c, err := linear.GreaterThan(lhs, rhs)
		return c, p.checkError(term, err)
	}
	//
	return empty, p.syntaxErrors(list.Get(0), "unknown comparator")
}

// ============================================================================
// Expressions
// ============================================================================

func (p *parser[N]) newExpressionTranslator() *sexp.Translator[linear.Expression[N]] {
	t := sexp.NewTranslator[linear.Expression[N]](p.srcmap)
	// Constants
	t.AddSymbolRule(func(s string) (linear.Expression[N], bool, error) {
		var n N
		//
		if c, ok := n.Parse(s); ok {
			return linear.Const(c), true, nil
		}
		//
		return linear.Expression[N]{}, false, nil
	})
	// Variables
	t.AddSymbolRule(func(s string) (linear.Expression[N], bool, error) {
		if !isIdentifier(s) {
			return linear.Expression[N]{}, false, nil
		}
		//
		x, err := p.numeric(s)
		//
		return linear.Var[N](x), true, err
	})
	//
	t.AddRecursiveListRule("+", func(_ string, args []linear.Expression[N]) (linear.Expression[N], error) {
		if len(args) == 0 {
			return linear.Expression[N]{}, errors.New("empty sum")
		}
		//
		return linear.Sum(args...), nil
	})
	t.AddRecursiveListRule("-", func(_ string, args []linear.Expression[N]) (linear.Expression[N], error) {
		switch len(args) {
		case 0:
			return linear.Expression[N]{}, errors.New("empty subtraction")
		case 1:
			return args[0].Neg(), nil
		}
		//
		return args[0].Sub(linear.Sum(args[1:]...)), nil
	})
	t.AddRecursiveListRule("*", func(_ string, args []linear.Expression[N]) (linear.Expression[N], error) {
		var (
			factor = number.One[N]()
			term   *linear.Expression[N]
		)
		//
		if len(args) == 0 {
			return linear.Expression[N]{}, errors.New("empty product")
		}
		//
		for i := range args {
			if args[i].IsConstant() {
				factor = factor.Mul(args[i].Constant())
			} else if term == nil {
				term = &args[i]
			} else {
				return linear.Expression[N]{}, errors.New("non-linear expression")
			}
		}
		//
		if term == nil {
			return linear.Const(factor), nil
		}
		//
		return term.Scale(factor), nil
	})
	//
	return t
}

// ============================================================================
// Helpers
// ============================================================================

// Get the numeric variable with the given name, creating it as an integer
// variable if it does not exist.
func (p *parser[N]) numeric(name string) (variable.Variable, error) {
	if x, ok := p.vars.Lookup(name); ok {
		if !x.Type().IsNumeric() {
			return x, fmt.Errorf("%s variable %s used in numeric context", x.Type(), name)
		}
		//
		return x, nil
	}
	//
	return p.vars.Get(name, variable.Int)
}

func (p *parser[N]) numericVariable(term sexp.SExp) (variable.Variable, []source.SyntaxError) {
	name, errs := p.identifier(term)
	if errs != nil {
		return variable.Variable{}, errs
	}
	//
	x, err := p.numeric(name)
	//
	return x, p.checkError(term, err)
}

func (p *parser[N]) typedVariable(term sexp.SExp, kind variable.Type) (variable.Variable, []source.SyntaxError) {
	name, errs := p.identifier(term)
	if errs != nil {
		return variable.Variable{}, errs
	}
	//
	x, err := p.vars.Get(name, kind)
	//
	return x, p.checkError(term, err)
}

func (p *parser[N]) anyVariable(term sexp.SExp) (variable.Variable, []source.SyntaxError) {
	name, errs := p.identifier(term)
	if errs != nil {
		return variable.Variable{}, errs
	}
	//
	if x, ok := p.vars.Lookup(name); ok {
		return x, nil
	}
	//
	x, err := p.vars.Get(name, variable.Int)
	//
	return x, p.checkError(term, err)
}

func (p *parser[N]) identifier(term sexp.SExp) (string, []source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil && isIdentifier(sym.Value) {
		return sym.Value, nil
	}
	//
	return "", p.syntaxErrors(term, "expected identifier")
}

func (p *parser[N]) checkArity(stmt *sexp.List, n int) []source.SyntaxError {
	if stmt.Len() != n+1 {
		return p.syntaxErrors(stmt, "incorrect number of arguments")
	}
	//
	return nil
}

func (p *parser[N]) checkError(term sexp.SExp, err error) []source.SyntaxError {
	if err != nil {
		return p.syntaxErrors(term, err.Error())
	}
	//
	return nil
}

func (p *parser[N]) syntaxError(term sexp.SExp, msg string) *source.SyntaxError {
	return p.srcmap.SyntaxError(term, msg)
}

func (p *parser[N]) syntaxErrors(term sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.syntaxError(term, msg)}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		} else if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' && r != '\'' {
			return false
		}
	}
	//
	return s != "" && s != "_"
}

func concat[T any](items ...[]T) []T {
	var result []T
	//
	for _, item := range items {
		result = append(result, item...)
	}
	//
	return result
}
