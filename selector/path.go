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
	"strconv"
	"strings"

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
)

// LookupFunc resolves a path against a document, producing every branch
// it reaches.
type LookupFunc func(doc Value) []Branch

// MakeLookupFunction builds a reusable LookupFunc for path. forSort
// suppresses implicit array branching when the next path segment is
// numeric, the behavior the sort-key generator (external to this
// module) needs so that "a.0" addresses array index 0 unambiguously
// instead of also branching over every mapping element of a.
func MakeLookupFunction(path string, forSort bool) LookupFunc {
	parts := strings.Split(path, ".")
	return func(doc Value) []Branch {
		return Lookup(parts, doc, forSort)
	}
}

// Lookup resolves a dotted path (already split into parts) against
// document doc, in sort-key mode when forSort is true. doc is assumed
// to be a mapping; callers validate that (see Matcher.DocumentMatches).
func Lookup(parts []string, doc Value, forSort bool) []Branch {
	var out []Branch
	walkPath(doc, parts, nil, forSort, func(b Branch) {
		out = append(out, b)
	})
	return out
}

func walkPath(node Value, parts []string, indices ArrayIndices, forSort bool, emit func(Branch)) {
	p0, rest := parts[0], parts[1:]

	if arr, ok := bsonvalue.AsArray(node); ok {
		idx, ok := parseArrayIndex(p0, len(arr))
		if !ok {
			return
		}
		childIndices := appendIndex(indices, IndexStep{Index: idx, Explicit: true})
		child := arr[idx]
		if len(rest) == 0 {
			emit(Branch{
				Value:        child,
				ArrayIndices: childIndices,
				DontIterate:  bsonvalue.IsArray(child),
			})
			return
		}
		if bsonvalue.IsIndexable(child) {
			walkPath(child, rest, childIndices, forSort, emit)
		}
		// child is a scalar but the path isn't exhausted: no branch to
		// yield, unlike the "dead end" rule below for mapping nodes,
		// which yields an undefined branch.
		return
	}

	// node must be a mapping: Lookup's contract guarantees the
	// top-level doc is one, and every recursive call below only
	// descends into values already confirmed indexable.
	child, present := bsonvalue.MappingGet(node, p0)
	if !present {
		child = bsonvalue.Undefined{}
	}

	if len(rest) == 0 {
		emit(Branch{Value: child, ArrayIndices: indices})
		return
	}

	if !bsonvalue.IsIndexable(child) {
		emit(Branch{Value: bsonvalue.Undefined{}, ArrayIndices: indices})
		return
	}

	walkPath(child, rest, indices, forSort, emit)

	if arr, ok := bsonvalue.AsArray(child); ok {
		suppressImplicit := forSort && bsonvalue.IsNumericKey(rest[0])
		if !suppressImplicit {
			for i, e := range arr {
				if bsonvalue.IsMapping(e) {
					walkPath(e, rest, appendIndex(indices, IndexStep{Index: i, Explicit: false}), forSort, emit)
				}
			}
		}
	}
}

func parseArrayIndex(s string, length int) (int, bool) {
	if !bsonvalue.IsNumericKey(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n >= length {
		return 0, false
	}
	return n, true
}

func appendIndex(indices ArrayIndices, step IndexStep) ArrayIndices {
	out := make(ArrayIndices, len(indices)+1)
	copy(out, indices)
	out[len(indices)] = step
	return out
}
