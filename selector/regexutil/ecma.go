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

package regexutil

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

type ecmaMatcher struct {
	re *regexp2.Regexp
}

func (m *ecmaMatcher) Match(s string) bool {
	// MatchString re-runs the match from scratch every call: regexp2
	// carries no lastIndex-style cursor between separate MatchString
	// invocations the way its FindNextMatch iterator does, so this
	// already satisfies the "reset before each test" requirement.
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

// newECMAMatcher compiles pattern using dlclark/regexp2, whose semantics
// (backreferences, lookaround) track JavaScript's RegExp more closely
// than RE2. g has no effect here for the same reason it has none in the
// re2 engine: MatchString only asks "does any match exist".
func newECMAMatcher(pattern, options string) (Matcher, error) {
	var opts regexp2.RegexOptions
	for _, c := range options {
		switch c {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'g':
			// no-op: see doc comment.
		default:
			return nil, fmt.Errorf("unsupported regex option %q for ecma engine", c)
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &ecmaMatcher{re: re}, nil
}
