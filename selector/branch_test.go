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

func TestExpandScalarBranch(t *testing.T) {
	require := require.New(t)

	out := expand([]Branch{{Value: 5}}, false)
	require.Len(out, 1)
	require.Equal(5, out[0].Value)
}

func TestExpandArrayBranchEmitsWholeAndElements(t *testing.T) {
	require := require.New(t)

	out := expand([]Branch{{Value: bson.A{3, 8, 4}}}, false)
	require.Len(out, 4)
	require.Equal(bson.A{3, 8, 4}, out[0].Value)
	require.Equal(3, out[1].Value)
	require.Equal(8, out[2].Value)
	require.Equal(4, out[3].Value)
	require.Equal(ArrayIndices{{Index: 1, Explicit: false}}, out[2].ArrayIndices)
}

func TestExpandSkipArraysOmitsWholeArray(t *testing.T) {
	require := require.New(t)

	out := expand([]Branch{{Value: bson.A{1, 2}}}, true)
	require.Len(out, 2)
	require.Equal(1, out[0].Value)
	require.Equal(2, out[1].Value)
}

func TestExpandDontIterateSkipsFlattening(t *testing.T) {
	require := require.New(t)

	out := expand([]Branch{{Value: bson.A{1, 2}, DontIterate: true}}, false)
	require.Len(out, 1)
	require.Equal(bson.A{1, 2}, out[0].Value)
}
