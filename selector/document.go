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
	"strings"

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
)

type mappingEntry struct {
	Key   string
	Value Value
}

func entries(v Value) []mappingEntry {
	keys := bsonvalue.MappingKeys(v)
	out := make([]mappingEntry, 0, len(keys))
	for _, k := range keys {
		val, _ := bsonvalue.MappingGet(v, k)
		out = append(out, mappingEntry{Key: k, Value: val})
	}
	return out
}

var logicalOperators = map[string]bool{
	"$and": true, "$or": true, "$nor": true, "$where": true, "$comment": true,
}

// compileDocumentSelector is C6: it compiles a mapping selector,
// iterating its entries and dispatching $-prefixed keys to the logical
// operator table and everything else to a field-path lookup + compiled
// value selector.
func compileDocumentSelector(sel Value, st *compileState, isRoot, inElemMatch bool) (documentMatcher, error) {
	subs := make([]documentMatcher, 0, len(bsonvalue.MappingKeys(sel)))

	for _, e := range entries(sel) {
		if strings.HasPrefix(e.Key, "$") {
			st.markNotSimple()
			if !logicalOperators[e.Key] {
				if st.cfg.AllowUnknownOperators {
					subs = append(subs, func(Value) MatchResult { return okResult(nil) })
					continue
				}
				return nil, ErrUnknownOperator.New(e.Key)
			}
			dm, err := compileLogicalOperator(e.Key, e.Value, st, inElemMatch)
			if err != nil {
				return nil, err
			}
			subs = append(subs, dm)
			continue
		}

		if !inElemMatch {
			st.addPath(e.Key)
		}
		lookup := MakeLookupFunction(e.Key, false)
		bm, err := compileValueSelector(e.Value, st, isRoot)
		if err != nil {
			return nil, err
		}
		subs = append(subs, func(doc Value) MatchResult {
			return bm(lookup(doc))
		})
	}

	return unifiedAndDocument(subs), nil
}

func compileLogicalOperator(op string, operand Value, st *compileState, inElemMatch bool) (documentMatcher, error) {
	switch op {
	case "$and":
		return compileLogicalArray(op, operand, st, inElemMatch, unifiedAndDocument)
	case "$or":
		return compileOr(operand, st, inElemMatch)
	case "$nor":
		return compileNor(operand, st, inElemMatch)
	case "$where":
		st.markWhere()
		st.markNotSimple()
		return compileWhere(operand)
	case "$comment":
		return func(Value) MatchResult { return okResult(nil) }, nil
	}
	return nil, ErrUnknownOperator.New(op)
}

func compileLogicalArray(op string, operand Value, st *compileState, inElemMatch bool, combine func([]documentMatcher) documentMatcher) (documentMatcher, error) {
	arr, ok := bsonvalue.AsArray(operand)
	if !ok || len(arr) == 0 {
		return nil, ErrInvalidSelectorShape.New(fmt.Sprintf("%s requires a non-empty array of selectors", op))
	}
	subs := make([]documentMatcher, 0, len(arr))
	for _, elem := range arr {
		if !bsonvalue.IsMapping(elem) {
			return nil, ErrInvalidSelectorShape.New(fmt.Sprintf("%s elements must be mappings", op))
		}
		dm, err := compileDocumentSelector(elem, st, false, inElemMatch)
		if err != nil {
			return nil, err
		}
		subs = append(subs, dm)
	}
	return combine(subs), nil
}

func compileOr(operand Value, st *compileState, inElemMatch bool) (documentMatcher, error) {
	st.markNotSimple()
	arr, ok := bsonvalue.AsArray(operand)
	if !ok || len(arr) == 0 {
		return nil, ErrInvalidSelectorShape.New("$or requires a non-empty array of selectors")
	}
	subs := make([]documentMatcher, 0, len(arr))
	for _, elem := range arr {
		if !bsonvalue.IsMapping(elem) {
			return nil, ErrInvalidSelectorShape.New("$or elements must be mappings")
		}
		dm, err := compileDocumentSelector(elem, st, false, inElemMatch)
		if err != nil {
			return nil, err
		}
		subs = append(subs, dm)
	}
	if len(subs) == 1 {
		// Single-child $or is returned unchanged, ArrayIndices included:
		// {$or: [S]} must behave exactly like S.
		return subs[0], nil
	}
	return func(doc Value) MatchResult {
		for _, dm := range subs {
			if r := dm(doc); r.Matched {
				return okResult(nil)
			}
		}
		return failResult()
	}, nil
}

func compileNor(operand Value, st *compileState, inElemMatch bool) (documentMatcher, error) {
	st.markNotSimple()
	arr, ok := bsonvalue.AsArray(operand)
	if !ok || len(arr) == 0 {
		return nil, ErrInvalidSelectorShape.New("$nor requires a non-empty array of selectors")
	}
	subs := make([]documentMatcher, 0, len(arr))
	for _, elem := range arr {
		if !bsonvalue.IsMapping(elem) {
			return nil, ErrInvalidSelectorShape.New("$nor elements must be mappings")
		}
		dm, err := compileDocumentSelector(elem, st, false, inElemMatch)
		if err != nil {
			return nil, err
		}
		subs = append(subs, dm)
	}
	return func(doc Value) MatchResult {
		for _, dm := range subs {
			if dm(doc).Matched {
				return failResult()
			}
		}
		return okResult(nil)
	}, nil
}

func compileWhere(operand Value) (documentMatcher, error) {
	switch fn := operand.(type) {
	case Predicate:
		return func(doc Value) MatchResult { return MatchResult{Matched: fn(doc)} }, nil
	case func(Value) bool:
		return func(doc Value) MatchResult { return MatchResult{Matched: fn(doc)} }, nil
	case string:
		// The source language builds a `function(obj){ return <expr>; }`
		// closure from the string and evaluates it with the document
		// bound as `this`. That is a deliberate trust boundary this
		// module does not replicate: a string $where is rejected at
		// compile time rather than evaluated, so callers who need
		// $where pass a Predicate instead.
		_ = fn
		return nil, ErrInvalidSelectorShape.New("string $where is not supported; pass a selector.Predicate")
	default:
		return nil, ErrInvalidSelectorShape.New(fmt.Sprintf("$where must be a selector.Predicate, got %T", operand))
	}
}

// unifiedAndDocument is the C6 half of the unified AND: identical
// short-circuit/propagation rules to unifiedAndBranched, but over
// documentMatcher applied to a whole document instead of a branch set.
func unifiedAndDocument(matchers []documentMatcher) documentMatcher {
	switch len(matchers) {
	case 0:
		return func(Value) MatchResult { return okResult(nil) }
	case 1:
		return matchers[0]
	}
	return func(doc Value) MatchResult {
		var firstDistance *float64
		var lastIndices ArrayIndices
		for _, m := range matchers {
			r := m(doc)
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
