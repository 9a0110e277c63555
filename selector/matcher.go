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

import "github.com/eyalvardi/marsdb/selector/bsonvalue"

// Matcher is a compiled selector. It is immutable after Compile
// returns and safe to call concurrently from multiple goroutines on
// distinct documents.
type Matcher struct {
	original    Value
	match       documentMatcher
	isSimple    bool
	hasWhere    bool
	hasGeoQuery bool
	paths       []string
}

// DocumentMatches applies the compiled selector to doc, which must be a
// mapping (bson.M/map[string]interface{}/bson.D); any other shape is
// ErrInvalidDocument, the module's one runtime error.
func (m *Matcher) DocumentMatches(doc Value) (MatchResult, error) {
	if !bsonvalue.IsMapping(doc) {
		return MatchResult{}, ErrInvalidDocument.New(doc)
	}
	return m.match(doc), nil
}

// IsSimple reports whether the selector uses only implicit equality and
// scalar-operand $eq/$gt/$gte/$lt/$lte/$ne/$in/$nin.
func (m *Matcher) IsSimple() bool { return m.isSimple }

// HasWhere reports whether the selector contains a $where clause. A
// callable Predicate selector does not set it.
func (m *Matcher) HasWhere() bool { return m.hasWhere }

// HasGeoQuery reports whether the selector contains a $near clause.
func (m *Matcher) HasGeoQuery() bool { return m.hasGeoQuery }

// Paths returns the field paths referenced at the top level of the
// selector (outside any $elemMatch), plus the empty-string sentinel if
// HasWhere is true or the selector is a callable Predicate.
func (m *Matcher) Paths() []string {
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Selector returns the (cloned, normalized) selector the Matcher was
// compiled from, for introspection/debugging.
func (m *Matcher) Selector() Value { return m.original }
