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
	"fmt"

	"github.com/eyalvardi/marsdb/selector/regexutil"
	"github.com/spf13/viper"
)

func regexEngineExists(name string) (bool, error) {
	if name == "" {
		return true, nil
	}
	for _, e := range regexutil.Engines() {
		if e == name {
			return true, nil
		}
	}
	return false, fmt.Errorf("unknown regex engine %q", name)
}

// LoadConfig binds a Config out of v (environment, flags, or a config
// file already read into v — the caller owns that). It never requires
// viper: Compile takes a plain Config, and this is strictly an
// optional loader for callers who already keep their settings in one.
func LoadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("selector.defaultRegexEngine", "re2")
	v.SetDefault("selector.maxNearCandidates", 0)
	v.SetDefault("selector.allowUnknownOperators", false)

	engine := v.GetString("selector.defaultRegexEngine")
	if _, err := regexEngineExists(engine); err != nil {
		return Config{}, fmt.Errorf("selector.defaultRegexEngine: %w", err)
	}

	maxNear := v.GetInt("selector.maxNearCandidates")
	if maxNear < 0 {
		return Config{}, fmt.Errorf("selector.maxNearCandidates must be >= 0, got %d", maxNear)
	}

	return Config{
		DefaultRegexEngine:    engine,
		MaxNearCandidates:     maxNear,
		AllowUnknownOperators: v.GetBool("selector.allowUnknownOperators"),
	}, nil
}
