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

// Package regexutil is a small pluggable registry of regex engines, one
// per compiled pattern+options pair a selector's $regex/regex-literal
// operand needs. It mirrors the registration shape of this module's
// teacher's own internal/regex package (named engines, a process-wide
// default, Register/New/Engines/Default/SetDefault).
package regexutil

import (
	"sync"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrRegexNameEmpty is returned by Register when given an empty name.
var ErrRegexNameEmpty = errors.NewKind("cannot register a regex engine with an empty name")

// ErrUnknownEngine is returned by New when asked for an unregistered engine.
var ErrUnknownEngine = errors.NewKind("unknown regex engine: %s")

// Matcher tests a string against one compiled pattern. Implementations
// must be safe to call repeatedly with the same input and return the
// same result every time: no implementation here is allowed to carry
// match-position state between calls.
type Matcher interface {
	Match(s string) bool
}

// Factory compiles a pattern+options pair into a Matcher.
type Factory func(pattern, options string) (Matcher, error)

var (
	mu      sync.RWMutex
	engines = map[string]Factory{}
	order   []string
	dflt    = "re2"
)

func register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := engines[name]; !exists {
		order = append(order, name)
	}
	engines[name] = f
}

// Register adds a new engine under name, overwriting any existing
// registration of the same name.
func Register(name string, f Factory) error {
	if name == "" {
		return ErrRegexNameEmpty.New()
	}
	register(name, f)
	return nil
}

// Engines returns the names of every registered engine, in registration order.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Default returns the name of the engine used when New is called with
// an empty name.
func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return dflt
}

// SetDefault changes the default engine. An empty name resets it to "re2".
func SetDefault(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		name = "re2"
	}
	dflt = name
}

// New compiles pattern+options using the named engine ("" selects the
// current default).
func New(name, pattern, options string) (Matcher, error) {
	if name == "" {
		name = Default()
	}
	mu.RLock()
	f, ok := engines[name]
	mu.RUnlock()
	if !ok {
		return nil, ErrUnknownEngine.New(name)
	}
	return f(pattern, options)
}

func init() {
	register("re2", newRE2Matcher)
	register("ecma", newECMAMatcher)
}
