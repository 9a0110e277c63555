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
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// newTypeElementMatcher builds the element matcher for $type: operand
// must be a BSON type-code number. $type requests
// dontIncludeLeafArrays, so an array field itself is never tested
// against the operand — only its elements are: $type:4 does not match
// {a:[5]} but matches {a:[[5]]}.
func newTypeElementMatcher(operand Value) (elementMatcher, error) {
	switch operand.(type) {
	case int32, int64, int, float64, float32:
	default:
		return elementMatcher{}, ErrInvalidOperand.New("$type", fmt.Sprintf("expected a BSON type code, got %v", operand))
	}
	code, err := cast.ToIntE(operand)
	if err != nil {
		return elementMatcher{}, ErrInvalidOperand.New("$type", fmt.Sprintf("expected a BSON type code, got %v", operand))
	}
	want := bsontype.Type(code)
	return elementMatcher{
		dontIncludeLeafArrays: true,
		match: func(v Value) (bool, *int) {
			if bsonvalue.IsUndefined(v) {
				return false, nil
			}
			return bsonvalue.TypeCode(v) == want, nil
		},
	}, nil
}
