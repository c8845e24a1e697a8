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
package util

import "fmt"

// InvariantViolation is the value used to panic when an internal invariant is
// found not to hold, such as encountering an impossible enumeration value.
// Such panics indicate a programming error and are never recovered from.
type InvariantViolation string

func (p InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", string(p))
}
