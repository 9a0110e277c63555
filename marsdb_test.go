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

package marsdb_test

import (
	"testing"

	"github.com/eyalvardi/marsdb"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectionFindEquality(t *testing.T) {
	require := require.New(t)

	c := marsdb.New(marsdb.Config{})
	c.Insert(bson.M{"_id": 1, "name": "ada", "age": 32})
	c.Insert(bson.M{"_id": 2, "name": "grace", "age": 41})
	c.Insert(bson.M{"_id": 3, "name": "ada", "age": 19})

	docs, err := c.Find(bson.M{"name": "ada"})
	require.NoError(err)
	require.Len(docs, 2)
}

func TestCollectionFindArrayElement(t *testing.T) {
	require := require.New(t)

	c := marsdb.New(marsdb.Config{})
	c.Insert(bson.M{"_id": 1, "tags": bson.A{"go", "db"}})
	c.Insert(bson.M{"_id": 2, "tags": bson.A{"js"}})

	docs, err := c.Find(bson.M{"tags": "go"})
	require.NoError(err)
	require.Len(docs, 1)
}

func TestCollectionCompileOnceFindMany(t *testing.T) {
	require := require.New(t)

	c := marsdb.New(marsdb.Config{})
	c.Insert(bson.M{"_id": 1, "score": 7})
	c.Insert(bson.M{"_id": 2, "score": 3})

	m, err := c.Compile(bson.M{"score": bson.M{"$gt": 5}})
	require.NoError(err)
	require.True(m.IsSimple())

	matched := c.FindMatching(m)
	require.Len(matched, 1)
}

func TestCollectionFindInvalidSelector(t *testing.T) {
	require := require.New(t)

	c := marsdb.New(marsdb.Config{})
	_, err := c.Find(true)
	require.Error(err)
}
