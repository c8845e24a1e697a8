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
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownDomain is returned when looking up a domain name which is not
// recognised.
var ErrUnknownDomain = errors.New("unknown abstract domain")

// ErrUnsupportedDomain is returned when looking up a recognised domain which
// is not available in this build.
var ErrUnsupportedDomain = errors.New("abstract domain not supported")

// Descriptor provides information about a named abstract domain.
type Descriptor struct {
	// Name used to select this domain.
	Name string
	// Description of this domain, as shown in command-line help.
	Description string
	// Supported indicates whether this domain can be instantiated.
	Supported bool
}

// Intervals is the name of the reference interval domain.
const Intervals = "intervals"

// Trace is the name of the recording domain.
const Trace = "trace"

var descriptors = []Descriptor{
	{Intervals, "non-relational integer intervals", true},
	{Trace, "records every operation applied to it", true},
	{"zones", "difference-bound matrices", false},
	{"octagons", "octagons", false},
	{"polyhedra", "convex polyhedra", false},
	{"dis-intervals", "disjunctive intervals", false},
	{"terms", "term equivalences", false},
}

// Lookup returns the descriptor for the domain of the given name.  This fails
// for unknown domains, and for domains which are known but not supported.
func Lookup(name string) (Descriptor, error) {
	i := slices.IndexFunc(descriptors, func(d Descriptor) bool {
		return strings.EqualFold(d.Name, name)
	})
	//
	if i < 0 {
		return Descriptor{}, errors.Wrapf(ErrUnknownDomain, "%q", name)
	} else if !descriptors[i].Supported {
		return descriptors[i], errors.Wrapf(ErrUnsupportedDomain, "%q", name)
	}
	//
	return descriptors[i], nil
}

// Descriptors returns every known domain, whether supported or not.
func Descriptors() []Descriptor {
	return slices.Clone(descriptors)
}

// Names returns the names of all supported domains.
func Names() []string {
	var names []string
	//
	for _, d := range descriptors {
		if d.Supported {
			names = append(names, d.Name)
		}
	}
	//
	return names
}
