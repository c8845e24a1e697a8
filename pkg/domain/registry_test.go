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
package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Registry_01(t *testing.T) {
	d, err := Lookup("intervals")
	require.NoError(t, err)
	assert.Equal(t, Intervals, d.Name)
	//
	d, err = Lookup("TRACE")
	require.NoError(t, err)
	assert.Equal(t, Trace, d.Name)
}

func Test_Registry_02(t *testing.T) {
	for _, name := range []string{"zones", "octagons", "polyhedra", "dis-intervals", "terms"} {
		_, err := Lookup(name)
		assert.Equal(t, ErrUnsupportedDomain, errors.Cause(err), name)
	}
}

func Test_Registry_03(t *testing.T) {
	_, err := Lookup("boxes")
	assert.Equal(t, ErrUnknownDomain, errors.Cause(err))
	assert.Contains(t, err.Error(), "\"boxes\"")
}

func Test_Registry_04(t *testing.T) {
	assert.Equal(t, []string{"intervals", "trace"}, Names())
	assert.Len(t, Descriptors(), 7)
}
