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

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDocumentAndRequiresAllSubSelectors(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"$and": bson.A{
		bson.M{"a": 1},
		bson.M{"b": 2},
	}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": 1, "b": 2})
	require.NoError(err)
	require.True(r.Matched)

	r, err = m.DocumentMatches(bson.M{"a": 1, "b": 3})
	require.NoError(err)
	require.False(r.Matched)
}

func TestDocumentOrSingleChildPassesThroughArrayIndices(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"$or": bson.A{
		bson.M{"a": bson.M{"$elemMatch": bson.M{"$gt": 5}}},
	}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": bson.A{3, 7, 9}})
	require.NoError(err)
	require.True(r.Matched)
	require.Equal(ArrayIndices{{Index: 1, Explicit: false}}, r.ArrayIndices)
}

func TestDocumentOrMultiChildDiscardsArrayIndices(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"$or": bson.A{
		bson.M{"a": 1},
		bson.M{"a": bson.M{"$elemMatch": bson.M{"$gt": 5}}},
	}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": bson.A{3, 7, 9}})
	require.NoError(err)
	require.True(r.Matched)
	require.Nil(r.ArrayIndices)
}

func TestDocumentNorMatchesOnlyWhenAllSubSelectorsFail(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"$nor": bson.A{
		bson.M{"a": 1},
		bson.M{"b": 2},
	}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": 9, "b": 9})
	require.NoError(err)
	require.True(r.Matched)

	r, err = m.DocumentMatches(bson.M{"a": 1, "b": 9})
	require.NoError(err)
	require.False(r.Matched)
}

func TestDocumentWhereSetsHasWhereAndEmptyPath(t *testing.T) {
	require := require.New(t)

	always := Predicate(func(Value) bool { return true })
	m, err := Compile(bson.M{"$where": always}, Config{})
	require.NoError(err)
	require.True(m.HasWhere())
	require.Contains(m.Paths(), "")

	r, err := m.DocumentMatches(bson.M{"x": 1})
	require.NoError(err)
	require.True(r.Matched)
}

func TestDocumentCommentAlwaysMatches(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"a": 1, "$comment": "explain this"}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": 1})
	require.NoError(err)
	require.True(r.Matched)
}

func TestDocumentUnknownLogicalOperatorErrors(t *testing.T) {
	require := require.New(t)

	_, err := Compile(bson.M{"$bogus": bson.A{}}, Config{})
	require.Error(err)
	require.True(ErrUnknownOperator.Is(err))
}

func TestDocumentAndRejectsEmptyArray(t *testing.T) {
	require := require.New(t)

	_, err := Compile(bson.M{"$and": bson.A{}}, Config{})
	require.Error(err)
	require.True(ErrInvalidSelectorShape.Is(err))
}

func TestDocumentPathsExcludesElemMatchFields(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{
		"a": 1,
		"b": bson.M{"$elemMatch": bson.M{"c": 1, "d": 2}},
	}, Config{})
	require.NoError(err)

	paths := m.Paths()
	require.Contains(paths, "a")
	require.Contains(paths, "b")
	require.NotContains(paths, "c")
	require.NotContains(paths, "d")
}
