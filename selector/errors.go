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

import "gopkg.in/src-d/go-errors.v1"

// Compile-time error kinds. All but ErrInvalidDocument are raised only
// while compiling a selector; ErrInvalidDocument is the sole runtime
// error, raised by Matcher.DocumentMatches.
var (
	// ErrInvalidSelectorShape covers a top-level boolean/array/binary
	// selector, a non-array (or empty-array) $and/$or/$nor operand, a
	// non-mapping $elemMatch operand, and a $options value containing
	// characters outside {i, m, g}.
	ErrInvalidSelectorShape = errors.NewKind("invalid selector shape: %s")

	// ErrUnknownOperator covers any $-prefixed key that is not a
	// recognized logical or value operator.
	ErrUnknownOperator = errors.NewKind("unrecognized operator: %q")

	// ErrInvalidOperand covers an operator whose operand has the wrong
	// type or shape: $mod not a [divisor, remainder] pair of numbers,
	// $in/$nin/$all not given an array, $type not given a number, $size
	// given neither a number nor a string,
	// $all containing an operator mapping, $in nesting a $-operator.
	ErrInvalidOperand = errors.NewKind("invalid operand for %s: %s")

	// ErrOperatorContext covers an operator used somewhere it is not
	// allowed: $near outside the root selector, $options without a
	// sibling $regex, $maxDistance without a sibling $near.
	ErrOperatorContext = errors.NewKind("%s")

	// ErrInvalidDocument is the one runtime error: DocumentMatches was
	// called with a value that is not a mapping.
	ErrInvalidDocument = errors.NewKind("document must be a mapping, got %T")
)
