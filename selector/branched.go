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

// liftElement is C5's core wrapper: it turns a single-value element
// matcher into a branchedMatcher by calling C3 (unless the element
// matcher asked not to) and returning the first branch whose value
// satisfies the predicate.
func liftElement(em elementMatcher) branchedMatcher {
	return func(branches []Branch) MatchResult {
		use := branches
		if !em.dontExpandLeafArrays {
			use = expand(branches, em.dontIncludeLeafArrays)
		}
		for _, b := range use {
			matched, idx := em.match(b.Value)
			if !matched {
				continue
			}
			indices := b.ArrayIndices
			if indices == nil && idx != nil {
				indices = ArrayIndices{{Index: *idx, Explicit: false}}
			}
			return okResult(indices)
		}
		return failResult()
	}
}

// invertBranched implements the DeMorgan-style inversion $not, $ne, and
// $nin all share: if any branch satisfied inner, the inversion fails;
// otherwise it matches with no array indices (there is no single
// "successful" branch to report a position for).
func invertBranched(inner branchedMatcher) branchedMatcher {
	return func(branches []Branch) MatchResult {
		if inner(branches).Matched {
			return failResult()
		}
		return MatchResult{Matched: true}
	}
}

// newExistsBranched builds $exists: operandTruthy false negates the
// "value is defined on some branch" test.
func newExistsBranched(operandTruthy bool) branchedMatcher {
	base := liftElement(elementMatcher{
		match: func(v Value) (bool, *int) {
			return !bsonvalue.IsUndefined(v), nil
		},
	})
	if operandTruthy {
		return base
	}
	return invertBranched(base)
}

// newAllBranched builds $all: every element of operand must
// independently match some branch (not necessarily the same branch for
// every element), so each element becomes its own branchedMatcher and
// the results are ANDed. A regex element is compiled with st's
// configured regex engine, the same as a top-level regex literal or
// $regex.
func newAllBranched(operand Value, st *compileState) (branchedMatcher, error) {
	arr, ok := bsonvalue.AsArray(operand)
	if !ok || len(arr) == 0 {
		return nil, ErrInvalidOperand.New("$all", fmt.Sprintf("expected a non-empty array, got %v", operand))
	}
	subs := make([]branchedMatcher, 0, len(arr))
	for _, elem := range arr {
		if bsonvalue.IsOperatorMapping(elem, false) {
			return nil, ErrInvalidOperand.New("$all", "elements may not be operator mappings")
		}
		if re, ok := elem.(primitive.Regex); ok {
			em, err := newRegexElementMatcher(re.Pattern, re.Options, st.cfg.DefaultRegexEngine)
			if err != nil {
				return nil, err
			}
			subs = append(subs, liftElement(em))
			continue
		}
		subs = append(subs, liftElement(newEqualityElementMatcher(elem)))
	}
	return unifiedAndBranched(subs), nil
}

// identityBranched always matches with no metadata: used for $options
// and $maxDistance, whose validation happens against a sibling operator
// and which otherwise contribute nothing to the AND they sit in.
func identityBranched() branchedMatcher {
	return func([]Branch) MatchResult { return okResult(nil) }
}

// unifiedAndBranched is the C5 half of the unified AND: 0 matchers
// short-circuits to always-true, 1 matcher is returned unchanged,
// otherwise every matcher must succeed, propagating the first Distance
// and the last ArrayIndices seen among succeeding sub-matchers, and
// erasing both if the overall result is false.
func unifiedAndBranched(matchers []branchedMatcher) branchedMatcher {
	switch len(matchers) {
	case 0:
		return func([]Branch) MatchResult { return okResult(nil) }
	case 1:
		return matchers[0]
	}
	return func(branches []Branch) MatchResult {
		var firstDistance *float64
		var lastIndices ArrayIndices
		for _, m := range matchers {
			r := m(branches)
			if !r.Matched {
				return failResult()
			}
			if r.Distance != nil && firstDistance == nil {
				firstDistance = r.Distance
			}
			if r.ArrayIndices != nil {
				lastIndices = r.ArrayIndices
			}
		}
		return MatchResult{Matched: true, ArrayIndices: lastIndices, Distance: firstDistance}
	}
}
