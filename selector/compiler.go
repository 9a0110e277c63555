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
	"github.com/sirupsen/logrus"
)

// Config controls a handful of compile-time choices. The zero Config is
// valid and picks the package's defaults.
type Config struct {
	// DefaultRegexEngine names the regexutil engine used to compile
	// regex literals and $regex operands ("" picks regexutil's own
	// default).
	DefaultRegexEngine string

	// MaxNearCandidates caps how many expanded branches a single $near
	// evaluates before giving up on finding a closer one; 0 means
	// unbounded. Candidates are considered in branch order, so this
	// trades worst-case latency on pathologically large arrays for a
	// possibly-suboptimal (but still in-range) match.
	MaxNearCandidates int

	// AllowUnknownOperators, when true, treats an unrecognized
	// $-prefixed key as an always-true matcher instead of failing the
	// whole compile — an escape hatch for selectors written against a
	// newer operator set than this package knows about. The zero value
	// (false) keeps the default: any unrecognized operator is a compile
	// error.
	AllowUnknownOperators bool

	// Logger receives one structured debug line per compiled selector
	// tree. A nil Logger falls back to the package-level logger.
	Logger *logrus.Logger
}

var packageLogger = logrus.StandardLogger()

func (c Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return packageLogger
}

// pathSentinel is the empty-string path recorded for $where and for a
// callable (predicate-function) selector: a selector with no field
// path still needs some marker in Paths() so callers can tell "runs a
// predicate over the whole document" apart from "matches no paths".
const pathSentinel = ""

// compileState accumulates the flags and path set a Matcher exposes.
// It is written only while compiling; once Compile returns, the
// resulting Matcher treats it as read-only and safe for concurrent
// use.
type compileState struct {
	isSimple    bool
	hasWhere    bool
	hasGeoQuery bool
	paths       map[string]struct{}
	cfg         Config
}

func newCompileState(cfg Config) *compileState {
	return &compileState{isSimple: true, paths: map[string]struct{}{}, cfg: cfg}
}

func (s *compileState) markNotSimple() { s.isSimple = false }
func (s *compileState) markWhere()     { s.hasWhere = true; s.addPath(pathSentinel) }
func (s *compileState) markGeo()       { s.hasGeoQuery = true }
func (s *compileState) addPath(p string) {
	s.paths[p] = struct{}{}
}

// Predicate is a trusted, caller-supplied selector function — this
// module's replacement for the source's $where-via-eval: it receives
// the document directly instead of executing arbitrary injected code.
type Predicate func(doc Value) bool

// Compile is the C7 façade: it validates and compiles selector sel into
// an immutable Matcher. sel may be a Predicate, an _id-shorthand
// scalar, or a mapping (bson.M/bson.D) whose top-level keys are either
// field paths or logical operators.
func Compile(sel Value, cfg Config) (*Matcher, error) {
	st := newCompileState(cfg)

	if pred, ok := sel.(Predicate); ok {
		st.markNotSimple()
		st.addPath(pathSentinel)
		return finishCompile(sel, st, func(doc Value) MatchResult {
			return MatchResult{Matched: pred(doc)}
		}), nil
	}

	if isFalsySelector(sel) {
		return finishCompile(sel, st, func(Value) MatchResult { return failResult() }), nil
	}

	if bsonvalue.SelectorIsID(sel) {
		rewritten := bson2M("_id", sel)
		return compileDocumentTop(rewritten, st)
	}

	switch sel.(type) {
	case bool:
		return nil, ErrInvalidSelectorShape.New("boolean cannot be used as a top-level selector")
	}
	if bsonvalue.IsArray(sel) {
		return nil, ErrInvalidSelectorShape.New("array cannot be used as a top-level selector")
	}
	if bsonvalue.IsBinary(sel) {
		return nil, ErrInvalidSelectorShape.New("binary cannot be used as a top-level selector")
	}
	if !bsonvalue.IsMapping(sel) {
		return nil, ErrInvalidSelectorShape.New(fmt.Sprintf("unsupported selector value %v (%T)", sel, sel))
	}

	if idVal, ok := bsonvalue.MappingGet(sel, "_id"); ok && len(bsonvalue.MappingKeys(sel)) == 1 && isFalsySelector(idVal) {
		return finishCompile(sel, st, func(Value) MatchResult { return failResult() }), nil
	}

	return compileDocumentTop(sel, st)
}

func compileDocumentTop(sel Value, st *compileState) (*Matcher, error) {
	cloned := bsonvalue.Clone(sel)
	dm, err := compileDocumentSelector(cloned, st, true, false)
	if err != nil {
		return nil, err
	}
	return finishCompile(cloned, st, dm), nil
}

func finishCompile(original Value, st *compileState, dm documentMatcher) *Matcher {
	paths := make([]string, 0, len(st.paths))
	for p := range st.paths {
		paths = append(paths, p)
	}
	st.cfg.logger().WithFields(logrus.Fields{
		"isSimple":    st.isSimple,
		"hasWhere":    st.hasWhere,
		"hasGeoQuery": st.hasGeoQuery,
		"pathCount":   len(paths),
	}).Debug("compiled selector")
	return &Matcher{
		original:    original,
		match:       dm,
		isSimple:    st.isSimple,
		hasWhere:    st.hasWhere,
		hasGeoQuery: st.hasGeoQuery,
		paths:       paths,
	}
}

func isFalsySelector(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case int32:
		return t == 0
	case int64:
		return t == 0
	case int:
		return t == 0
	case float64:
		return t == 0
	case string:
		return t == ""
	}
	return bsonvalue.IsUndefined(v)
}

func bson2M(key string, v Value) Value {
	return map[string]interface{}{key: v}
}
