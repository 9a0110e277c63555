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
	"strings"

	"github.com/eyalvardi/marsdb/selector/regexutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const validRegexOptions = "img"

func validateRegexOptions(options string) error {
	for _, c := range options {
		if !strings.ContainsRune(validRegexOptions, c) {
			return ErrInvalidSelectorShape.New("regex option " + string(c) + " outside {i,m,g}")
		}
	}
	return nil
}

// newRegexElementMatcher builds the element matcher shared by a regex
// literal ({field: /pattern/opts}) and $regex: the value matches if it
// is a string the compiled pattern matches, or a regex whose pattern
// and options are textually identical to this one. engine selects the
// regexutil engine ("" picks the package default).
func newRegexElementMatcher(pattern, options, engine string) (elementMatcher, error) {
	if err := validateRegexOptions(options); err != nil {
		return elementMatcher{}, err
	}
	m, err := regexutil.New(engine, pattern, options)
	if err != nil {
		return elementMatcher{}, err
	}
	return elementMatcher{
		match: func(v Value) (bool, *int) {
			switch t := v.(type) {
			case string:
				return m.Match(t), nil
			case primitive.Regex:
				return t.Pattern == pattern && t.Options == options, nil
			default:
				return false, nil
			}
		},
	}, nil
}
