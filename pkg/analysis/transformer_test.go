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
package analysis

import (
	"testing"

	"github.com/consensys/go-crab/pkg/cfg"
	"github.com/consensys/go-crab/pkg/domain"
	"github.com/consensys/go-crab/pkg/domain/interval"
	"github.com/consensys/go-crab/pkg/domain/trace"
	"github.com/consensys/go-crab/pkg/linear"
	"github.com/consensys/go-crab/pkg/util"
	"github.com/consensys/go-crab/pkg/util/number"
	"github.com/consensys/go-crab/pkg/util/source"
	"github.com/consensys/go-crab/pkg/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Expr = linear.Expression[number.Z]

var (
	vars = variable.NewFactory()
	x    = vars.Int("x")
	y    = vars.Int("y")
	z    = vars.Int("z")
	k    = vars.Int("k")
	a    = variable.New("a", variable.Array)
	p    = variable.New("p", variable.Pointer)
)

// ============================================================================
// End-to-end
// ============================================================================

func Test_Analysis_01(t *testing.T) {
	program := checkParse(t, `
(block entry
  (add z x y)
  (assume (<= z 10))
  (havoc x))`)
	//
	env := execEntry(program)
	//
	checkInterval(t, env, "z", "[-oo, 10]")
	checkInterval(t, env, "x", "[-oo, +oo]")
	checkInterval(t, env, "y", "[-oo, +oo]")
	assert.Equal(t, "{z -> [-oo, 10]}", env.String())
}

func Test_Analysis_02(t *testing.T) {
	program := checkParse(t, `
(block entry (assign x 1) (goto dead))
(block dead
  (unreachable)
  (assume (<= x 0))
  (add y x 1)
  (assign y 2)
  (goto exit))
(block exit (assign z 3))`)
	//
	tr := New[number.Z](interval.NewTop())
	path, err := Path(program.CFG, nil, 0)
	require.NoError(t, err)
	//
	invs := tr.ExecPath(path)
	require.Len(t, invs, 3)
	assert.Equal(t, "entry", invs[0].Label)
	assert.Equal(t, "{x -> [1, 1]}", invs[0].Value.String())
	assert.Equal(t, "_|_", invs[1].Value.String())
	assert.Equal(t, "_|_", invs[2].Value.String())
	//
	assert.Equal(t, uint(4), tr.Stats().Outcome(Dead))
	assert.Equal(t, uint(2), tr.Stats().Outcome(Applied))
	assert.Equal(t, uint(3), tr.Stats().Kind(cfg.AssignKind))
	assert.Equal(t, uint(1), tr.Stats().Kind(cfg.AssumeKind))
	assert.Equal(t, uint(1), tr.Stats().Kind(cfg.BinaryOpKind))
}

func Test_Analysis_05(t *testing.T) {
	tr := New[number.Z](interval.NewTop())
	assert.Equal(t, Applied, tr.Exec(&cfg.Unreachable[number.Z]{}))
	// Every later statement is absorbed, whatever its kind
	assert.Equal(t, Dead, tr.Exec(&cfg.Assume[number.Z]{Constraint: linear.LessEq(v(x), c(0))}))
	assert.Equal(t, Dead, tr.Exec(&cfg.BinaryOp[number.Z]{Op: cfg.Add, Lhs: y, Left: v(x), Right: c(1)}))
	assert.Equal(t, Dead, tr.Exec(&cfg.Assign[number.Z]{Lhs: y, Rhs: c(2)}))
	assert.Equal(t, Dead, tr.Exec(&cfg.Havoc[number.Z]{Var: y}))
	//
	assert.True(t, tr.Value().IsBottom())
	assert.Equal(t, uint(4), tr.Stats().Outcome(Dead))
}

func Test_Analysis_03(t *testing.T) {
	tr := New[number.Z](trace.New[number.Z]())
	tr.Exec(&cfg.Assign[number.Z]{Lhs: k, Rhs: c(0)})
	before := tr.Value().String()
	// a[2k+1] = v
	outcome := tr.Exec(&cfg.ArrayStore[number.Z]{Array: a, Index: linear.Term(z64(2), k).Plus(z64(1)), Value: v(y)})
	//
	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, before, tr.Value().String())
}

func Test_Analysis_04(t *testing.T) {
	program := checkParse(t, `
(block entry
  (assign x 0)
  (goto loop))
(block loop
  (add x x 1)
  (assume (<= x 5))
  (goto loop exit))
(block exit)`)
	//
	tr := New[number.Z](interval.NewTop())
	path, err := Path(program.CFG, []string{"entry", "loop", "loop", "exit"}, 0)
	require.NoError(t, err)
	//
	invs := tr.ExecPath(path)
	require.Len(t, invs, 4)
	assert.Equal(t, "{x -> [1, 1]}", invs[1].Value.String())
	assert.Equal(t, "{x -> [2, 2]}", invs[2].Value.String())
	assert.Equal(t, "{x -> [2, 2]}", invs[3].Value.String())
}

// ============================================================================
// Binary operations
// ============================================================================

func Test_BinOp_01(t *testing.T) {
	checkBinOp(t, cfg.Add, v(x), v(y), Applied, "z := x + y")
	checkBinOp(t, cfg.Add, v(x), c(3), Applied, "z := x + 3")
	checkBinOp(t, cfg.SDiv, v(x), c(3), Applied, "z := x / 3")
}

func Test_BinOp_02(t *testing.T) {
	checkBinOp(t, cfg.Add, c(3), v(x), Generalised, "z := x + 3")
	checkBinOp(t, cfg.Mul, c(3), v(x), Generalised, "z := x * 3")
	checkBinOp(t, cfg.Sub, c(3), v(x), Generalised, "z := -x+3")
}

func Test_BinOp_03(t *testing.T) {
	checkBinOp(t, cfg.Add, v(x).AddVar(y), c(1), Generalised, "z := x+y+1")
	checkBinOp(t, cfg.Sub, v(x), v(y).Plus(z64(2)), Generalised, "z := x-y-2")
	checkBinOp(t, cfg.Mul, linear.Term(z64(2), x), c(3), Generalised, "z := 6x")
	checkBinOp(t, cfg.Mul, c(-1), v(x).AddVar(y), Generalised, "z := -x-y")
}

func Test_BinOp_04(t *testing.T) {
	checkBinOp(t, cfg.SDiv, v(x).Plus(z64(1)), v(y), Generalised, "forget(z)")
	checkBinOp(t, cfg.SDiv, c(3), v(x), Generalised, "forget(z)")
	checkBinOp(t, cfg.Mul, v(x).AddVar(y), v(y), Generalised, "forget(z)")
}

// ============================================================================
// Other statements
// ============================================================================

func Test_Transformer_01(t *testing.T) {
	tr := New[number.Z](trace.New[number.Z]())
	//
	checkExec(t, tr, &cfg.Assume[number.Z]{Constraint: linear.LessEq(v(x), c(2))}, Applied)
	checkExec(t, tr, &cfg.Havoc[number.Z]{Var: x}, Applied)
	checkExec(t, tr, &cfg.ArrayInit[number.Z]{Array: a}, Applied)
	checkExec(t, tr, &cfg.ArrayStore[number.Z]{Array: a, Index: v(k), Value: c(1), Singleton: true}, Applied)
	checkExec(t, tr, &cfg.ArrayLoad[number.Z]{Lhs: x, Array: a, Index: v(k)}, Applied)
	checkExec(t, tr, &cfg.ArrayLoad[number.Z]{Lhs: x, Array: a, Index: c(0)}, Skipped)
	//
	assert.Equal(t, []string{"assume(x <= 2)", "forget(x)", "array_init(a)", "a[k] := 1 (singleton)",
		"x := a[k]", "forget(x)"}, tr.Value().Calls())
}

func Test_Transformer_02(t *testing.T) {
	tr := New[number.Z](trace.New[number.Z]())
	//
	checkExec(t, tr, &cfg.PtrStore[number.Z]{Ptr: p, Value: x}, Applied)
	checkExec(t, tr, &cfg.PtrLoad[number.Z]{Lhs: x, Ptr: p}, Applied)
	checkExec(t, tr, &cfg.PtrAssign[number.Z]{Lhs: p, Ptr: p, Offset: c(4)}, Applied)
	checkExec(t, tr, &cfg.PtrObject[number.Z]{Lhs: p, Object: 1}, Applied)
	checkExec(t, tr, &cfg.PtrFunction[number.Z]{Lhs: p, Function: "f"}, Applied)
	checkExec(t, tr, &cfg.CallSite[number.Z]{Lhs: util.Some(x), Function: "f", Args: []variable.Variable{y}}, NoRule)
	checkExec(t, tr, &cfg.Return[number.Z]{Var: x}, NoRule)
	//
	assert.Equal(t, []string{"*(p) := x", "x := *(p)", "p := &(p) + 4", "p := &(1)", "p := &(f)"},
		tr.Value().Calls())
}

func Test_Transformer_03(t *testing.T) {
	env := interval.NewTop()
	env.Assign(x, c(1))
	env.Assign(y, c(2))
	tr := New[number.Z](env)
	// Array and pointer statements over a domain supporting neither
	checkExec(t, tr, &cfg.ArrayInit[number.Z]{Array: a}, NoRule)
	checkExec(t, tr, &cfg.ArrayStore[number.Z]{Array: a, Index: v(k), Value: c(1)}, NoRule)
	checkExec(t, tr, &cfg.PtrStore[number.Z]{Ptr: p, Value: x}, NoRule)
	checkExec(t, tr, &cfg.PtrObject[number.Z]{Lhs: p, Object: 1}, NoRule)
	assert.Equal(t, "{x -> [1, 1]; y -> [2, 2]}", tr.Value().String())
	// Loads forget their destination
	checkExec(t, tr, &cfg.ArrayLoad[number.Z]{Lhs: x, Array: a, Index: v(k)}, Skipped)
	checkExec(t, tr, &cfg.PtrLoad[number.Z]{Lhs: y, Ptr: p}, Skipped)
	assert.Equal(t, "{}", tr.Value().String())
	// Initial value is unaffected
	assert.Equal(t, "{x -> [1, 1]; y -> [2, 2]}", env.String())
}

func Test_Transformer_04(t *testing.T) {
	tr := New[number.Z](trace.New[number.Z]())
	//
	checkExec(t, tr, &cfg.Assign[number.Z]{Lhs: x, Rhs: c(1)}, Applied)
	checkExec(t, tr, &cfg.Unreachable[number.Z]{}, Applied)
	checkExec(t, tr, &cfg.Assign[number.Z]{Lhs: x, Rhs: c(2)}, Dead)
	checkExec(t, tr, &cfg.Havoc[number.Z]{Var: x}, Dead)
	//
	assert.True(t, tr.Value().IsBottom())
	assert.Equal(t, uint(4), tr.Stats().Total())
	assert.Equal(t, "statements: 4\n  assign: 2\n  havoc: 1\n  unreachable: 1\noutcomes:\n  applied: 2\n  dead: 2\n",
		tr.Stats().String())
}

// ============================================================================
// Paths
// ============================================================================

func Test_Path_01(t *testing.T) {
	program := checkParse(t, `
(block entry (goto loop))
(block loop (goto loop exit))
(block exit)`)
	//
	checkPath(t, program, nil, 0, "entry", "loop")
	checkPath(t, program, nil, 1, "entry")
	checkPath(t, program, []string{"entry", "loop", "loop", "exit"}, 0, "entry", "loop", "loop", "exit")
	checkPath(t, program, []string{"entry", "loop", "loop", "exit"}, 2, "entry", "loop")
	//
	_, err := Path(program.CFG, []string{"entry", "exit"}, 0)
	assert.EqualError(t, err, "no edge from entry to exit")
	_, err = Path(program.CFG, []string{"entry", "nowhere"}, 0)
	assert.EqualError(t, err, "unknown block nowhere")
}

func Test_Path_02(t *testing.T) {
	program := checkParse(t, `
(block a (goto b))
(block b (goto c))
(block c)`)
	//
	checkPath(t, program, nil, 0, "a", "b", "c")
}

// ============================================================================
// Helpers
// ============================================================================

func checkParse(t *testing.T, text string) *cfg.Program[number.Z] {
	program, errs := cfg.Parse[number.Z](source.NewFile("test.crab", []byte(text)))
	//
	require.Empty(t, errs)
	//
	return program
}

func execEntry(program *cfg.Program[number.Z]) *interval.Env {
	tr := New[number.Z](interval.NewTop())
	//
	return tr.ExecBlock(program.CFG.Entry())
}

func checkInterval(t *testing.T, env *interval.Env, name string, expected string) {
	i, ok := env.Interval(variable.New(name, variable.Int))
	//
	require.True(t, ok)
	assert.Equal(t, expected, i.String(), "interval of %s", name)
}

func checkBinOp(t *testing.T, op cfg.BinaryOperator, l Expr, r Expr, outcome Outcome, call string) {
	tr := New[number.Z](trace.New[number.Z]())
	//
	checkExec(t, tr, &cfg.BinaryOp[number.Z]{Op: op, Lhs: z, Left: l, Right: r}, outcome)
	assert.Equal(t, []string{call}, tr.Value().Calls())
	assert.Equal(t, uint(1), tr.Stats().Kind(cfg.BinaryOpKind))
}

func checkExec[D domain.Numerical[number.Z, D]](t *testing.T, tr *Transformer[number.Z, D], stmt cfg.Statement[number.Z],
	expected Outcome) {
	assert.Equal(t, expected, tr.Exec(stmt), "executing %s", stmt)
}

func checkPath(t *testing.T, program *cfg.Program[number.Z], labels []string, steps uint, expected ...string) {
	path, err := Path(program.CFG, labels, steps)
	require.NoError(t, err)
	//
	var actual []string
	for _, block := range path {
		actual = append(actual, block.Label())
	}
	//
	assert.Equal(t, expected, actual)
}

func c(n int64) Expr {
	return linear.Const(z64(n))
}

func v(x variable.Variable) Expr {
	return linear.Var[number.Z](x)
}

func z64(n int64) number.Z {
	return number.NewZ(n)
}
