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
	"testing"

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func lookup(path string, doc Value) []Branch {
	return MakeLookupFunction(path, false)(doc)
}

func TestLookupSimpleField(t *testing.T) {
	require := require.New(t)

	branches := lookup("a", bson.M{"a": 1})
	require.Len(branches, 1)
	require.Equal(1, branches[0].Value)
	require.Nil(branches[0].ArrayIndices)
}

func TestLookupMissingField(t *testing.T) {
	require := require.New(t)

	branches := lookup("a", bson.M{"b": 1})
	require.Len(branches, 1)
	require.True(bsonvalue.IsUndefined(branches[0].Value))
}

func TestLookupExplicitIndex(t *testing.T) {
	require := require.New(t)

	branches := lookup("a.0", bson.M{"a": bson.A{5}})
	require.Len(branches, 1)
	require.Equal(5, branches[0].Value)
	require.Equal(ArrayIndices{{Index: 0, Explicit: true}}, branches[0].ArrayIndices)
}

func TestLookupExplicitIndexIntoArrayOfArrays(t *testing.T) {
	require := require.New(t)

	branches := lookup("a.0", bson.M{"a": bson.A{bson.A{5}}})
	require.Len(branches, 1)
	require.Equal(bson.A{5}, branches[0].Value)
	require.True(branches[0].DontIterate)
}

func TestLookupImplicitBranching(t *testing.T) {
	require := require.New(t)

	branches := lookup("a.b", bson.M{"a": bson.A{bson.M{"b": 1}, bson.M{"b": 2}}})
	require.Len(branches, 2)
	require.Equal(1, branches[0].Value)
	require.Equal(ArrayIndices{{Index: 0, Explicit: false}}, branches[0].ArrayIndices)
	require.Equal(2, branches[1].Value)
	require.Equal(ArrayIndices{{Index: 1, Explicit: false}}, branches[1].ArrayIndices)
}

func TestLookupNestedExplicitThenField(t *testing.T) {
	require := require.New(t)

	branches := lookup("a.0.b", bson.M{"a": bson.A{bson.M{"b": 3}}})
	// The explicit step yields b; implicit branching into a's mapping
	// element (which has no "0" key) adds a second, undefined branch.
	require.Len(branches, 2)
	require.Equal(3, branches[0].Value)
	require.Equal(ArrayIndices{{Index: 0, Explicit: true}}, branches[0].ArrayIndices)
}

func TestLookupForSortSuppressesImplicitBranching(t *testing.T) {
	require := require.New(t)

	parts := []string{"a", "0"}
	branches := Lookup(parts, bson.M{"a": bson.A{bson.M{"0": "x"}, bson.M{"0": "y"}}}, true)
	// forSort + numeric next segment: no implicit branching over the
	// mapping elements of a, only the direct recursion into a (the
	// array), where "0" is an explicit index that yields element 0 as
	// the single branch.
	require.Len(branches, 1)
}

func TestLookupDeadEndOnScalar(t *testing.T) {
	require := require.New(t)

	branches := lookup("a.b", bson.M{"a": 5})
	require.Len(branches, 1)
	require.True(bsonvalue.IsUndefined(branches[0].Value))
}

func TestLookupOutOfBoundsIndex(t *testing.T) {
	require := require.New(t)

	branches := lookup("a.5", bson.M{"a": bson.A{1, 2}})
	require.Len(branches, 0)
}
