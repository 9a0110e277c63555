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

package bsonvalue

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeepEqualsScalars(t *testing.T) {
	require := require.New(t)

	require.True(DeepEquals(nil, primitive.Null{}))
	require.False(DeepEquals(nil, Undefined{}))
	require.True(DeepEquals(int32(1), int32(1)))
	require.True(DeepEquals("a", "a"))
	require.False(DeepEquals("a", "b"))
}

func TestDeepEqualsRegex(t *testing.T) {
	require := require.New(t)

	a := primitive.Regex{Pattern: "^a", Options: "i"}
	b := primitive.Regex{Pattern: "^a", Options: "i"}
	c := primitive.Regex{Pattern: "^a", Options: ""}
	require.True(DeepEquals(a, b))
	require.False(DeepEquals(a, c))
}

func TestDeepEqualsBinary(t *testing.T) {
	require := require.New(t)

	a := primitive.Binary{Subtype: 0, Data: []byte{1, 2, 3}}
	b := primitive.Binary{Subtype: 0, Data: []byte{1, 2, 3}}
	c := primitive.Binary{Subtype: 0, Data: []byte{1, 2, 4}}
	require.True(DeepEquals(a, b))
	require.False(DeepEquals(a, c))
}

func TestDeepEqualsArraysAndMappings(t *testing.T) {
	require := require.New(t)

	require.True(DeepEquals(bson.A{1, 2, 3}, bson.A{1, 2, 3}))
	require.False(DeepEquals(bson.A{1, 2, 3}, bson.A{1, 3, 2}))
	require.True(DeepEquals(bson.M{"a": 1, "b": 2}, bson.M{"b": 2, "a": 1}))
	require.False(DeepEquals(bson.M{"a": 1}, bson.M{"a": 2}))
}

func TestCmpSameType(t *testing.T) {
	require := require.New(t)

	require.Equal(-1, Cmp(int32(1), int32(2)))
	require.Equal(0, Cmp(1.5, 1.5))
	require.Equal(1, Cmp("b", "a"))
}

func TestDeepEqualsCollapsesNumericSubtypes(t *testing.T) {
	require := require.New(t)

	require.True(DeepEquals(5, int32(5)))
	require.True(DeepEquals(int64(5), int32(5)))
	require.True(DeepEquals(5.0, int32(5)))
	require.True(DeepEquals(float32(5), 5))
	require.False(DeepEquals(5, int32(6)))
	require.False(DeepEquals(5.5, int32(5)))
}

func TestCmpAcrossNumericSubtypes(t *testing.T) {
	require := require.New(t)

	require.Equal(0, Cmp(5, int32(5)))
	require.Equal(0, Cmp(int64(5), float64(5)))
	require.Equal(-1, Cmp(int32(1), 1.5))
	require.Equal(1, Cmp(2.5, int32(2)))
}

func TestSameComparisonClassBucketsAllNumericTypes(t *testing.T) {
	require := require.New(t)

	require.True(SameComparisonClass(5, int32(5)))
	require.True(SameComparisonClass(int64(5), 5.5))
	require.False(SameComparisonClass(5, "5"))
	require.True(SameComparisonClass("a", "b"))
	require.False(SameComparisonClass(bson.A{1}, 1))
}

func TestTypeCode(t *testing.T) {
	require := require.New(t)

	require.Equal(bsontype.Null, TypeCode(nil))
	require.Equal(bsontype.Array, TypeCode(bson.A{1}))
	require.Equal(bsontype.EmbeddedDocument, TypeCode(bson.M{}))
	require.Equal(bsontype.String, TypeCode("x"))
}

func TestIsOperatorMapping(t *testing.T) {
	require := require.New(t)

	require.True(IsOperatorMapping(bson.M{"$gt": 1}, false))
	require.False(IsOperatorMapping(bson.M{"$gt": 1, "a": 1}, false))
	require.False(IsOperatorMapping(bson.M{}, false))
	require.True(IsOperatorMapping(bson.M{}, true))
}

func TestIsNumericKey(t *testing.T) {
	require := require.New(t)

	require.True(IsNumericKey("0"))
	require.True(IsNumericKey("12"))
	require.False(IsNumericKey("01"))
	require.False(IsNumericKey(""))
	require.False(IsNumericKey("-1"))
	require.False(IsNumericKey("a"))
}

func TestClone(t *testing.T) {
	require := require.New(t)

	orig := bson.M{"a": bson.A{1, 2, bson.M{"b": 3}}}
	clone := Clone(orig).(bson.M)
	require.True(DeepEquals(orig, clone))

	clonedArr := clone["a"].(bson.A)
	clonedArr[0] = 99
	require.True(DeepEquals(orig, bson.M{"a": bson.A{1, 2, bson.M{"b": 3}}}))
}
