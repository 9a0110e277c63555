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

// elementMatcher is C4: a single-value predicate, plus the branch
// expansion policy the C5 wrapper around it must use. Every family
// (equality, range, $in, $mod, $size, $type, regex, $elemMatch) builds
// one of these; liftElement (branched.go) turns it into a
// branchedMatcher.
//
// match returns the boolean result and, for $elemMatch only, the
// matched element's index (nil otherwise) — the one place an element
// matcher needs to hand back more than a boolean, so the matched
// position can propagate into the result's ArrayIndices.
type elementMatcher struct {
	match func(v Value) (matched bool, index *int)

	// dontExpandLeafArrays: the branched wrapper tests the raw branch
	// value directly, without calling C3 at all ($size, $elemMatch).
	dontExpandLeafArrays bool
	// dontIncludeLeafArrays: the branched wrapper calls C3 with
	// skipArrays=true, so an array leaf is tested only through its
	// elements, never as a whole ($type).
	dontIncludeLeafArrays bool
}

func intPtr(i int) *int {
	return &i
}
