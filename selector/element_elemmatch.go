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
)

// newElemMatchMatcher builds $elemMatch. Its operand compiles one of
// two ways depending on shape: a pure operator mapping (every top-level
// key starts with "$") compiles through the value-selector compiler
// into a branchedMatcher tested against a one-element synthetic
// branch; anything else compiles through the document-selector
// compiler (with inElemMatch set, so its field paths stay out of the
// top-level paths set) and is applied directly to mapping/array
// elements.
func newElemMatchMatcher(operand Value, st *compileState) (elementMatcher, error) {
	if !bsonvalue.IsMapping(operand) {
		return elementMatcher{}, ErrInvalidSelectorShape.New(fmt.Sprintf("$elemMatch operand must be a mapping, got %v (%T)", operand, operand))
	}

	if bsonvalue.IsOperatorMapping(operand, false) {
		bm, err := compileValueSelector(operand, st, false)
		if err != nil {
			return elementMatcher{}, err
		}
		return elementMatcher{
			dontExpandLeafArrays: true,
			match:                elemMatchBranchedMatch(bm),
		}, nil
	}

	dm, err := compileDocumentSelector(operand, st, false, true)
	if err != nil {
		return elementMatcher{}, err
	}
	return elementMatcher{
		dontExpandLeafArrays: true,
		match:                elemMatchDocumentMatch(dm),
	}, nil
}

func elemMatchBranchedMatch(bm branchedMatcher) func(Value) (bool, *int) {
	return func(v Value) (bool, *int) {
		arr, ok := bsonvalue.AsArray(v)
		if !ok {
			return false, nil
		}
		for i, e := range arr {
			r := bm([]Branch{{Value: e, DontIterate: true}})
			if r.Matched {
				return true, intPtr(i)
			}
		}
		return false, nil
	}
}

func elemMatchDocumentMatch(dm documentMatcher) func(Value) (bool, *int) {
	return func(v Value) (bool, *int) {
		arr, ok := bsonvalue.AsArray(v)
		if !ok {
			return false, nil
		}
		for i, e := range arr {
			if bsonvalue.IsMapping(e) || bsonvalue.IsArray(e) {
				if dm(e).Matched {
					return true, intPtr(i)
				}
				continue
			}
		}
		return false, nil
	}
}
