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

// Package marsdb is a small in-memory document store whose query
// language is the selector package: a MongoDB-style selector compiled
// once into a Matcher and applied to a slice of documents.
package marsdb

import (
	"sync"

	"github.com/eyalvardi/marsdb/selector"
)

// Config configures a Collection. The zero Config is valid and picks
// selector's own defaults.
type Config struct {
	Selector selector.Config
}

// Collection is an in-memory, unindexed set of documents queried via
// compiled selectors. It is safe for concurrent use: Insert takes an
// exclusive lock, Find/FindMatching hold a read lock while they iterate
// the documents, and any given selector.Matcher is itself safe to share
// across goroutines once compiled.
type Collection struct {
	cfg  Config
	mu   sync.RWMutex
	docs []selector.Value
}

// New creates an empty Collection with the given configuration.
func New(cfg Config) *Collection {
	return &Collection{cfg: cfg}
}

// Insert appends doc to the collection.
func (c *Collection) Insert(doc selector.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, doc)
}

// Compile compiles sel against this collection's configured selector
// options. The resulting Matcher may be reused across repeated Find
// calls, or cached by the caller.
func (c *Collection) Compile(sel selector.Value) (*selector.Matcher, error) {
	return selector.Compile(sel, c.cfg.Selector)
}

// Find compiles sel and returns every document it matches, in
// insertion order.
func (c *Collection) Find(sel selector.Value) ([]selector.Value, error) {
	m, err := c.Compile(sel)
	if err != nil {
		return nil, err
	}
	return c.FindMatching(m), nil
}

// FindMatching applies an already-compiled Matcher, skipping recompilation
// for callers that run the same selector repeatedly.
func (c *Collection) FindMatching(m *selector.Matcher) []selector.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]selector.Value, 0, len(c.docs))
	for _, doc := range c.docs {
		res, err := m.DocumentMatches(doc)
		if err != nil {
			continue
		}
		if res.Matched {
			out = append(out, doc)
		}
	}
	return out
}

// Len returns the number of documents currently in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}
