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
	"strings"
	"testing"

	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/util/source"
	"github.com/consensys/go-crab/pkg/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cfg_01(t *testing.T) {
	program := checkParse[number.Z](t, `
(var a array)
(block entry
  (assign x 0)
  (add z x y)
  (assume (<= z 10))
  (goto exit))
(block exit (havoc x))`)
	//
	assert.Equal(t, "entry:\n  x = 0;\n  z = x+y;\n  assume(z <= 10);\n  goto exit;\n\nexit:\n  havoc(x);\n",
		program.CFG.String())
	assert.Equal(t, "entry", program.CFG.Entry().Label())
	assert.Equal(t, "", program.Domain)
	//
	exit, ok := program.CFG.Get("exit")
	require.True(t, ok)
	assert.Equal(t, []string{"entry"}, exit.Predecessors())
	assert.Empty(t, exit.Successors())
	// Variables
	a, _ := program.Variables.Lookup("a")
	z, _ := program.Variables.Lookup("z")
	assert.Equal(t, variable.Array, a.Type())
	assert.Equal(t, variable.Int, z.Type())
}

func Test_Cfg_02(t *testing.T) {
	program := checkParse[number.Z](t, `
(domain trace)
(entry b)
(block a (goto b))
(block b (goto a c))
(block c)`)
	//
	assert.Equal(t, "trace", program.Domain)
	assert.Equal(t, "b", program.CFG.Entry().Label())
	assert.Equal(t, []string{"a", "c"}, program.CFG.Entry().Successors())
	assert.Equal(t, uint(3), program.CFG.Len())
	//
	var labels []string
	for block := range program.CFG.Blocks() {
		labels = append(labels, block.Label())
	}
	//
	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func Test_Cfg_03(t *testing.T) {
	program := checkParse[number.Z](t, `
(block entry
  (mul z x 3)
  (sdiv z z (+ 1 1))
  (assign y (+ (* 2 x) (- z) 1))
  (assign w (- x y 4))
  (assign v (* 2 (+ x 1) 3))
  (assume (> x y))
  (assume (!= x 0))
  (assume (== (* 2 x) y))
  (assume (>= x (- 5))))`)
	//
	checkStatements(t, program.CFG.Entry(),
		"z = x*3",
		"z = z/2",
		"y = 2x-z+1",
		"w = x-y-4",
		"v = 6x+6",
		"assume(-x+y <= -1)",
		"assume(x != 0)",
		"assume(2x-y = 0)",
		"assume(-x <= 5)")
}

func Test_Cfg_04(t *testing.T) {
	program := checkParse[number.Z](t, `
(var p ptr)
(block entry
  (array-init a)
  (array-store a i v)
  (array-store a (+ i 1) 0 singleton)
  (array-load x a i)
  (ptr-store p x)
  (ptr-load y p)
  (ptr-assign q p 4)
  (ptr-object p 1)
  (ptr-function p f)
  (call r f x y)
  (call _ g)
  (return r)
  (unreachable))`)
	//
	checkStatements(t, program.CFG.Entry(),
		"array_init(a)",
		"array_store(a,i,v)",
		"array_store(a,i+1,0,singleton)",
		"x = array_load(a,i)",
		"*(p) = x",
		"y = *(p)",
		"q = &(p) + 4",
		"p = &(1)",
		"p = &(f)",
		"r = call f(x,y)",
		"call g()",
		"return r",
		"unreachable")
	//
	q, _ := program.Variables.Lookup("q")
	assert.Equal(t, variable.Pointer, q.Type())
}

func Test_Cfg_05(t *testing.T) {
	// Rationals
	program := checkParse[number.Q](t, `(block entry (assign x (* 1/2 y)) (assume (<= x 0.25)))`)
	checkStatements(t, program.CFG.Entry(), "x = 1/2y", "assume(x <= 1/4)")
}

func Test_Cfg_06(t *testing.T) {
	var (
		vars  = variable.NewFactory()
		x     = vars.Int("x")
		y     = vars.Int("y")
		z     = vars.Int("z")
		a     = variable.New("a", variable.Array)
		graph = NewCFG[number.Z]("entry")
		entry = graph.Entry()
		exit  = graph.Insert("exit")
	)
	//
	entry.Add(z, linear.Var[number.Z](x), linear.Var[number.Z](y))
	entry.ArrayLoad(x, a, linear.Var[number.Z](y))
	entry.Call(util.Some(z), "f", x, y)
	exit.Return(z)
	require.NoError(t, graph.AddEdge("entry", "exit"))
	assert.Error(t, graph.AddEdge("entry", "missing"))
	// Defs and uses
	stmts := entry.Statements()
	checkDefUse(t, stmts[0], "{z}", "{x,y}")
	checkDefUse(t, stmts[1], "{x}", "{a,y}")
	checkDefUse(t, stmts[2], "{z}", "{x,y}")
	checkDefUse(t, exit.Statements()[0], "{}", "{z}")
	//
	assert.Equal(t, BinaryOpKind, stmts[0].Kind())
	assert.Equal(t, "array-load", stmts[1].Kind().String())
}

func Test_Cfg_07(t *testing.T) {
	for _, op := range []BinaryOperator{Add, Sub, Mul, SDiv, UDiv, SRem, URem, And, Or, Xor, Shl, LShr, AShr} {
		parsed, ok := ParseBinaryOperator(op.Name())
		//
		assert.True(t, ok)
		assert.Equal(t, op, parsed)
	}
	//
	assert.True(t, Add.IsCommutative())
	assert.True(t, Xor.IsCommutative())
	assert.False(t, Sub.IsCommutative())
	assert.False(t, Shl.IsCommutative())
}

// ============================================================================
// Negative Tests
// ============================================================================

func Test_Cfg_Err01(t *testing.T) {
	checkParseError[number.Z](t, "", "no blocks")
}

func Test_Cfg_Err02(t *testing.T) {
	checkParseError[number.Z](t, "(block a (foo x))", "unknown statement")
}

func Test_Cfg_Err03(t *testing.T) {
	checkParseError[number.Z](t, "(block a (goto b))", "unknown block b")
}

func Test_Cfg_Err04(t *testing.T) {
	checkParseError[number.Z](t, "(block a (assign z (* x y)))", "non-linear expression")
}

func Test_Cfg_Err05(t *testing.T) {
	checkParseError[number.Z](t, "(var a array)\n(block b (assign a 1))", "array variable a used in numeric context")
}

func Test_Cfg_Err06(t *testing.T) {
	checkParseError[number.Q](t, "(block a (assume (< x 1)))", linear.ErrNonIntegralNegation.Error())
}

func Test_Cfg_Err07(t *testing.T) {
	checkParseError[number.Z](t, "(block a)\n(block a)", "duplicate block")
}

func Test_Cfg_Err08(t *testing.T) {
	checkParseError[number.Z](t, "(block a (add x y))", "incorrect number of arguments")
}

func Test_Cfg_Err09(t *testing.T) {
	checkParseError[number.Z](t, "(block a (goto a) (havoc x))", "goto must terminate block")
}

func Test_Cfg_Err10(t *testing.T) {
	checkParseError[number.Z](t, "(var x int)\n(var x array)\n(block a)", "variable x redeclared as array (was int)")
}

func Test_Cfg_Err11(t *testing.T) {
	checkParseError[number.Z](t, "(block a (assume (=< x 1)))", "unknown comparator")
}

func Test_Cfg_Err12(t *testing.T) {
	checkParseError[number.Z](t, "(block a (assign x (+ 1", "unexpected end-of-file")
}

// ============================================================================
// Helpers
// ============================================================================

func checkParse[N number.Number[N]](t *testing.T, text string) *Program[N] {
	t.Helper()
	//
	program, errs := Parse[N](source.NewFile("test.lisp", []byte(text)))
	//
	for _, err := range errs {
		t.Errorf("%s", err.Error())
	}
	//
	require.NotNil(t, program)
	//
	return program
}

func checkParseError[N number.Number[N]](t *testing.T, text string, msg string) {
	t.Helper()
	//
	_, errs := Parse[N](source.NewFile("test.lisp", []byte(text)))
	//
	for _, err := range errs {
		if strings.Contains(err.Message(), msg) {
			return
		}
	}
	//
	t.Errorf("expected error \"%s\", got %v", msg, errs)
}

func checkStatements[N number.Number[N]](t *testing.T, block *BasicBlock[N], expected ...string) {
	t.Helper()
	//
	var actual []string
	//
	for _, stmt := range block.Statements() {
		actual = append(actual, stmt.String())
	}
	//
	assert.Equal(t, expected, actual)
}

func checkDefUse(t *testing.T, stmt Statement[number.Z], defs string, uses string) {
	t.Helper()
	//
	assert.Equal(t, defs, variable.SetString(stmt.Defs()), "defs of %s", stmt.String())
	assert.Equal(t, uses, variable.SetString(stmt.Uses()), "uses of %s", stmt.String())
}
