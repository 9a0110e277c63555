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

func TestNearGeoJSONWithinMaxDistanceMatches(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"loc": bson.M{"$near": bson.M{
		"$geometry":    bson.M{"type": "Point", "coordinates": bson.A{0.0, 0.0}},
		"$maxDistance": 1000000,
	}}}, Config{})
	require.NoError(err)
	require.True(m.HasGeoQuery())
	require.False(m.IsSimple())

	r, err := m.DocumentMatches(bson.M{"loc": bson.M{"type": "Point", "coordinates": bson.A{0.01, 0.01}}})
	require.NoError(err)
	require.True(r.Matched)
	require.NotNil(r.Distance)
}

func TestNearGeoJSONOutsideMaxDistanceFails(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"loc": bson.M{"$near": bson.M{
		"$geometry":    bson.M{"type": "Point", "coordinates": bson.A{0.0, 0.0}},
		"$maxDistance": 10,
	}}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"loc": bson.M{"type": "Point", "coordinates": bson.A{10.0, 10.0}}})
	require.NoError(err)
	require.False(r.Matched)
}

func TestNearPairModeReadsMaxDistanceFromSibling(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"loc": bson.M{"$near": bson.A{0.0, 0.0}, "$maxDistance": 10}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"loc": bson.A{3.0, 4.0}})
	require.NoError(err)
	require.True(r.Matched)
	require.NotNil(r.Distance)
	require.InDelta(5.0, *r.Distance, 0.0001)

	r, err = m.DocumentMatches(bson.M{"loc": bson.A{30.0, 40.0}})
	require.NoError(err)
	require.False(r.Matched)
}

func TestNearPairModePicksSmallestDistanceAmongCandidates(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"loc": bson.M{"$near": bson.A{0.0, 0.0}}}, Config{})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"loc": bson.A{bson.A{3.0, 4.0}, bson.A{1.0, 0.0}}})
	require.NoError(err)
	require.True(r.Matched)
	require.NotNil(r.Distance)
	require.InDelta(1.0, *r.Distance, 0.0001)
}

func TestNearRejectsNonRootUsage(t *testing.T) {
	require := require.New(t)

	_, err := Compile(bson.M{"$or": bson.A{
		bson.M{"loc": bson.M{"$near": bson.A{0.0, 0.0}}},
	}}, Config{})
	require.Error(err)
	require.True(ErrOperatorContext.Is(err))
}

func TestNearMaxCandidatesTruncatesScoredBranches(t *testing.T) {
	require := require.New(t)

	m, err := Compile(bson.M{"loc": bson.M{"$near": bson.A{0.0, 0.0}}}, Config{MaxNearCandidates: 2})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"loc": bson.A{bson.A{100.0, 100.0}, bson.A{1.0, 0.0}}})
	require.NoError(err)
	require.True(r.Matched)
	require.NotNil(r.Distance)
	require.InDelta(141.4213562, *r.Distance, 0.001)
}
