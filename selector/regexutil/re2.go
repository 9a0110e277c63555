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
	"regexp"
	"strings"
)

type re2Matcher struct {
	re *regexp.Regexp
}

func (m *re2Matcher) Match(s string) bool {
	return m.re.MatchString(s)
}

// newRE2Matcher compiles pattern using Go's stdlib RE2 engine. The i
// (case-insensitive), m (multiline, ^/$ match line boundaries) and s
// (. matches newline) options affect RE2 directly, via the inline
// (?flags) prefix; g
// (global) is a no-op here, since a single MatchString call already
// reports "found anywhere in the string" regardless of how many matches
// there are.
func newRE2Matcher(pattern, options string) (Matcher, error) {
	var flags strings.Builder
	for _, c := range options {
		switch c {
		case 'i', 'm', 's':
			flags.WriteRune(c)
		case 'g':
			// no-op for RE2: see doc comment.
		default:
			return nil, fmt.Errorf("unsupported regex option %q for re2 engine", c)
		}
	}
	full := pattern
	if flags.Len() > 0 {
		full = fmt.Sprintf("(?%s)%s", flags.String(), pattern)
	}
	re, err := regexp.Compile(full)
	if err != nil {
		return nil, err
	}
	return &re2Matcher{re: re}, nil
}
