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

// Package selector compiles a declarative selector (a tree of field
// constraints and logical operators, modeled on the MongoDB query
// language) into a Matcher that can be applied, repeatedly and
// concurrently, to documents. It is organized as a tree of small matcher
// values interpreted by a handful of match functions, built bottom-up
// from value comparison (bsonvalue) through path resolution, element
// predicates, branch-lifted predicates, and finally whole document
// predicates.
package selector

import "github.com/eyalvardi/marsdb/selector/bsonvalue"

// Value is any document or operand value. See bsonvalue.Value for the
// concrete shapes it may take.
type Value = bsonvalue.Value

// IndexStep is one step recorded in a Branch's ArrayIndices: either an
// Explicit numeric path segment ("a.0.b") or an Implicit branch taken
// while fanning a query out across an array field's elements.
type IndexStep struct {
	Index    int
	Explicit bool
}

// ArrayIndices is the ordered sequence of array positions traversed
// while resolving a path, consumed by the positional $ update operator
// and by sort-key generation (both external to this module).
type ArrayIndices []IndexStep

// Ints extracts the plain index values, dropping the Explicit/Implicit
// tag, for callers (like sort-key generation) that only need positions.
func (a ArrayIndices) Ints() []int {
	if len(a) == 0 {
		return nil
	}
	out := make([]int, len(a))
	for i, s := range a {
		out[i] = s.Index
	}
	return out
}

// Branch is one candidate value reached while resolving a path against
// a document.
type Branch struct {
	Value Value
	// ArrayIndices is nil when the path never crossed an array.
	ArrayIndices ArrayIndices
	// DontIterate is set when the path ended in an explicit numeric
	// index into an array whose element is itself an array: branch
	// expansion must not flatten it further.
	DontIterate bool
}

// MatchResult is the outcome of applying a compiled matcher to a branch
// sequence or a document. Distance and ArrayIndices are both absent
// (nil/zero) whenever Matched is false.
type MatchResult struct {
	Matched      bool
	ArrayIndices ArrayIndices
	// Distance is populated only by $near, and only on a match.
	Distance *float64
}

func failResult() MatchResult {
	return MatchResult{Matched: false}
}

func okResult(indices ArrayIndices) MatchResult {
	return MatchResult{Matched: true, ArrayIndices: indices}
}

// branchedMatcher is C5: a predicate over a sequence of branches.
type branchedMatcher func(branches []Branch) MatchResult

// documentMatcher is C6: a predicate over a whole document.
type documentMatcher func(doc Value) MatchResult
