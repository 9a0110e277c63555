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

import (
	"fmt"

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newInElementMatcher builds the element matcher for $in (and, lifted
// and inverted at the branched layer, $nin). operand must be an array
// none of whose elements is an operator mapping (regex literals are
// fine); each element compiles to an equality or regex element matcher,
// and the value (null-normalized) matches if any element matcher
// succeeds. A regex element is compiled with st's configured regex
// engine, the same as a top-level regex literal or $regex.
func newInElementMatcher(operand Value, st *compileState) (elementMatcher, error) {
	arr, ok := bsonvalue.AsArray(operand)
	if !ok {
		return elementMatcher{}, ErrInvalidOperand.New("$in", fmt.Sprintf("expected array, got %T", operand))
	}
	matchers := make([]elementMatcher, 0, len(arr))
	for _, elem := range arr {
		if re, ok := elem.(primitive.Regex); ok {
			m, err := newRegexElementMatcher(re.Pattern, re.Options, st.cfg.DefaultRegexEngine)
			if err != nil {
				return elementMatcher{}, err
			}
			matchers = append(matchers, m)
			continue
		}
		if bsonvalue.IsOperatorMapping(elem, false) {
			return elementMatcher{}, ErrInvalidOperand.New("$in", "cannot nest an operator mapping inside $in")
		}
		matchers = append(matchers, newEqualityElementMatcher(elem))
	}
	return elementMatcher{
		match: func(v Value) (bool, *int) {
			nv := normalizeNullish(v)
			for _, m := range matchers {
				if matched, _ := m.match(nv); matched {
					return true, nil
				}
			}
			return false, nil
		},
	}, nil
}
