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

// newEqualityElementMatcher builds the element matcher for an implicit
// equality literal: {field: <scalar|array|mapping>}. A null or
// undefined operand matches any nullish value; otherwise it's
// bsonvalue.DeepEquals.
func newEqualityElementMatcher(operand Value) elementMatcher {
	nullish := bsonvalue.IsNullish(operand)
	return elementMatcher{
		match: func(v Value) (bool, *int) {
			if nullish {
				return bsonvalue.IsNullish(v), nil
			}
			return bsonvalue.DeepEquals(v, operand), nil
		},
	}
}
