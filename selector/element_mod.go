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
	"math"

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
	"github.com/spf13/cast"
)

// newModElementMatcher builds the element matcher for $mod: operand
// must be a two-element array of numbers [divisor, remainder]; the
// value matches if it is itself a number and value % divisor ==
// remainder.
func newModElementMatcher(operand Value) (elementMatcher, error) {
	arr, ok := bsonvalue.AsArray(operand)
	if !ok || len(arr) != 2 {
		return elementMatcher{}, ErrInvalidOperand.New("$mod", fmt.Sprintf("expected a 2-element array, got %v", operand))
	}
	divisor, err := numericValue(arr[0])
	if err != nil {
		return elementMatcher{}, ErrInvalidOperand.New("$mod", "divisor must be a number")
	}
	remainder, err := numericValue(arr[1])
	if err != nil {
		return elementMatcher{}, ErrInvalidOperand.New("$mod", "remainder must be a number")
	}
	return elementMatcher{
		match: func(v Value) (bool, *int) {
			n, err := numericValue(v)
			if err != nil {
				return false, nil
			}
			return math.Mod(n, divisor) == remainder, nil
		},
	}, nil
}

func numericValue(v Value) (float64, error) {
	switch v.(type) {
	case int32, int64, int, float64, float32:
		return cast.ToFloat64E(v)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
