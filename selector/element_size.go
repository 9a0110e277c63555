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
	"github.com/spf13/cast"
)

// newSizeElementMatcher builds the element matcher for $size: a
// numeric operand is used directly, a string operand coerces to 0, and
// any other non-number is a compile error. $size never expands leaf
// arrays: it tests the branch's raw array value, never its elements.
func newSizeElementMatcher(operand Value) (elementMatcher, error) {
	size, err := sizeOperand(operand)
	if err != nil {
		return elementMatcher{}, err
	}
	return elementMatcher{
		dontExpandLeafArrays: true,
		match: func(v Value) (bool, *int) {
			arr, ok := bsonvalue.AsArray(v)
			return ok && len(arr) == size, nil
		},
	}, nil
}

func sizeOperand(operand Value) (int, error) {
	switch operand.(type) {
	case int32, int64, int, float64, float32:
		n, err := cast.ToIntE(operand)
		if err != nil {
			return 0, ErrInvalidOperand.New("$size", fmt.Sprintf("%v", operand))
		}
		return n, nil
	case string:
		return 0, nil
	default:
		return 0, ErrInvalidOperand.New("$size", fmt.Sprintf("operand %v (%T) cannot be coerced to a size", operand, operand))
	}
}
