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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// backrefPattern uses a backreference, valid ECMA/regexp2 syntax that
// RE2 (this package's default engine) rejects at compile time. Each
// test below only succeeds if Config.DefaultRegexEngine actually
// reaches the regex literal wherever it sits in the selector tree.
const backrefPattern = `^(a)\1$`

func TestInRegexLiteralUsesConfiguredEngine(t *testing.T) {
	require := require.New(t)

	sel := bson.M{"a": bson.M{"$in": bson.A{primitive.Regex{Pattern: backrefPattern}}}}

	_, err := Compile(sel, Config{})
	require.Error(err, "RE2 cannot compile a backreference")

	m, err := Compile(sel, Config{DefaultRegexEngine: "ecma"})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": "aa"})
	require.NoError(err)
	require.True(r.Matched)
}

func TestAllRegexLiteralUsesConfiguredEngine(t *testing.T) {
	require := require.New(t)

	sel := bson.M{"a": bson.M{"$all": bson.A{primitive.Regex{Pattern: backrefPattern}}}}

	_, err := Compile(sel, Config{})
	require.Error(err, "RE2 cannot compile a backreference")

	m, err := Compile(sel, Config{DefaultRegexEngine: "ecma"})
	require.NoError(err)

	r, err := m.DocumentMatches(bson.M{"a": bson.A{"aa"}})
	require.NoError(err)
	require.True(r.Matched)
}
