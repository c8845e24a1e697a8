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
package variable

import (
	"fmt"
)

// Factory interns variables by name, thus ensuring that a given name always
// identifies the same variable (and, in particular, the same type).
type Factory struct {
	vars map[string]Variable
	// Variables in order of creation
	order []Variable
}

// NewFactory constructs an empty variable factory.
func NewFactory() *Factory {
	return &Factory{make(map[string]Variable), nil}
}

// Get returns the variable with the given name, creating it with the given
// type if it does not already exist.  An error is returned if the variable
// exists with a different type.
func (p *Factory) Get(name string, kind Type) (Variable, error) {
	if v, ok := p.vars[name]; ok {
		if v.kind != kind {
			return v, fmt.Errorf("variable %s redeclared as %s (was %s)", name, kind, v.kind)
		}
		//
		return v, nil
	}
	//
	v := Variable{name, kind}
	p.vars[name] = v
	p.order = append(p.order, v)
	//
	return v, nil
}

// Lookup returns the variable with the given name, if it exists.
func (p *Factory) Lookup(name string) (Variable, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// Int returns the integer variable with the given name, creating it if
// necessary.  This panics if the name is already used for a variable of
// another type, and is intended for programmatic construction.
func (p *Factory) Int(name string) Variable {
	v, err := p.Get(name, Int)
	if err != nil {
		panic(err.Error())
	}
	//
	return v
}

// Variables returns all variables created so far, in order of creation.
func (p *Factory) Variables() []Variable {
	return p.order
}
