// Copyright 2020-2021 Dolthub, Inc.
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

package selector

import "github.com/eyalvardi/marsdb/selector/bsonvalue"

// newRangeElementMatcher builds the element matcher for $lt/$lte/$gt/
// $gte. An array operand always yields a false predicate (no compile
// error: MongoDB treats it as an unsatisfiable range, not a bad
// selector). null/undefined operands and values are both normalized to
// null before the type-code comparison.
func newRangeElementMatcher(op string, operand Value) elementMatcher {
	if bsonvalue.IsArray(operand) {
		return elementMatcher{match: func(Value) (bool, *int) { return false, nil }}
	}
	normOperand := normalizeNullish(operand)
	return elementMatcher{
		match: func(v Value) (bool, *int) {
			nv := normalizeNullish(v)
			if !bsonvalue.SameComparisonClass(nv, normOperand) {
				return false, nil
			}
			c := bsonvalue.Cmp(nv, normOperand)
			switch op {
			case "$lt":
				return c < 0, nil
			case "$lte":
				return c <= 0, nil
			case "$gt":
				return c > 0, nil
			case "$gte":
				return c >= 0, nil
			}
			return false, nil
		},
	}
}

func normalizeNullish(v Value) Value {
	if bsonvalue.IsNullish(v) {
		return nil
	}
	return v
}
