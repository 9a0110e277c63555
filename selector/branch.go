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

// expand realizes MongoDB's "an operator on an array field matches any
// leaf of that array" rule. For each input branch it always emits the
// branch itself, unless skipArrays is true and the branch's value is an
// array that isn't DontIterate — and it additionally emits one branch
// per array element when the value is an array and isn't DontIterate.
func expand(branches []Branch, skipArrays bool) []Branch {
	out := make([]Branch, 0, len(branches))
	for _, b := range branches {
		arr, isArr := bsonvalue.AsArray(b.Value)
		if !(isArr && !b.DontIterate && skipArrays) {
			out = append(out, Branch{Value: b.Value, ArrayIndices: b.ArrayIndices})
		}
		if isArr && !b.DontIterate {
			for i, e := range arr {
				out = append(out, Branch{
					Value:        e,
					ArrayIndices: appendIndex(b.ArrayIndices, IndexStep{Index: i, Explicit: false}),
				})
			}
		}
	}
	return out
}
