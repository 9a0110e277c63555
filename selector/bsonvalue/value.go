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

// Package bsonvalue implements the value-comparator contract (deep
// equality, total ordering, type-code extraction) that the selector
// compiler and matcher are built against. It is the one place in this
// module that knows the concrete shape of a document value: everything
// else in selector/ talks only in terms of the functions exported here.
package bsonvalue

import (
	"bytes"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/constraints"
)

// Value is any BSON-shaped value: nil, bool, int32, int64, float64,
// string, primitive.Binary, primitive.DateTime, primitive.Regex,
// primitive.ObjectID, primitive.Null, primitive.Undefined, bson.A (an
// array), or bson.M/bson.D (a mapping).
type Value = interface{}

// Undefined is returned by path lookups for an absent field. It is
// distinct from primitive.Null: selector equality treats the two as
// interchangeable, but DeepEquals (the document-level predicate) does
// not.
type Undefined struct{}

// IsUndefined reports whether v is the lookup "absent field" sentinel.
func IsUndefined(v Value) bool {
	_, ok := v.(Undefined)
	if ok {
		return true
	}
	_, ok = v.(primitive.Undefined)
	return ok
}

// IsNull reports whether v is BSON null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(primitive.Null)
	return ok
}

// IsNullish reports whether v is null, undefined, or the Go nil interface.
// Used by the equality and $in element matchers, which normalize operand
// and value nullishness the same way MongoDB does.
func IsNullish(v Value) bool {
	return IsNull(v) || IsUndefined(v)
}

// IsArray reports whether v is a BSON array.
func IsArray(v Value) bool {
	switch v.(type) {
	case bson.A, []interface{}:
		return true
	}
	return false
}

// AsArray returns v's elements if v is an array.
func AsArray(v Value) ([]interface{}, bool) {
	switch t := v.(type) {
	case bson.A:
		return t, true
	case []interface{}:
		return t, true
	}
	return nil, false
}

// IsMapping reports whether v is a BSON document/mapping.
func IsMapping(v Value) bool {
	switch v.(type) {
	case bson.M, map[string]interface{}, bson.D:
		return true
	}
	return false
}

// IsIndexable reports whether v is an array or a mapping: the two
// container shapes path lookup can recurse into.
func IsIndexable(v Value) bool {
	return IsArray(v) || IsMapping(v)
}

// MappingGet returns the value stored at key in mapping v, and whether
// the key was present.
func MappingGet(v Value, key string) (Value, bool) {
	switch t := v.(type) {
	case bson.M:
		val, ok := t[key]
		return val, ok
	case map[string]interface{}:
		val, ok := t[key]
		return val, ok
	case bson.D:
		for _, e := range t {
			if e.Key == key {
				return e.Value, true
			}
		}
		return nil, false
	}
	return nil, false
}

// MappingKeys returns the keys of mapping v in iteration order (the
// document's own order for bson.D, Go's randomized map order otherwise).
func MappingKeys(v Value) []string {
	switch t := v.(type) {
	case bson.D:
		keys := make([]string, len(t))
		for i, e := range t {
			keys[i] = e.Key
		}
		return keys
	case bson.M:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		return keys
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		return keys
	}
	return nil
}

// IsOperatorMapping reports whether v is a mapping whose every top-level
// key begins with '$'. With allowEmpty false (the default use), an empty
// mapping is not considered an operator mapping.
func IsOperatorMapping(v Value, allowEmpty bool) bool {
	if !IsMapping(v) {
		return false
	}
	keys := MappingKeys(v)
	if len(keys) == 0 {
		return allowEmpty
	}
	for _, k := range keys {
		if len(k) == 0 || k[0] != '$' {
			return false
		}
	}
	return true
}

// IsNumericKey reports whether s is a non-empty string of digits naming
// a valid array index ("0", "12", but not "01", "-1", "").
func IsNumericKey(s string) bool {
	if s == "" {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SelectorIsID reports whether v is a scalar acceptable as the shorthand
// top-level selector {_id: v}: a string, number, binary, date, or
// ObjectID — anything except a mapping, array, bool, regex, or nil.
func SelectorIsID(v Value) bool {
	switch v.(type) {
	case nil, bool:
		return false
	}
	if IsMapping(v) || IsArray(v) {
		return false
	}
	if _, ok := v.(primitive.Regex); ok {
		return false
	}
	return true
}

// IsBinary reports whether v is a BSON binary blob.
func IsBinary(v Value) bool {
	_, ok := v.(primitive.Binary)
	return ok
}

// IsNumeric reports whether v is one of the Go types this package
// decodes a BSON number into: int32, int64, int, float64, float32.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case int32, int64, int, float64, float32:
		return true
	}
	return false
}

func isIntegerValue(v Value) bool {
	switch v.(type) {
	case int32, int64, int:
		return true
	}
	return false
}

// SameComparisonClass reports whether a and b belong to the same bucket
// for DeepEquals/Cmp purposes. MongoDB's canonical comparison order
// treats every numeric BSON subtype (int32/int64/double/decimal128) as
// one class — $type is the only operator that distinguishes them — so
// two numbers compare by value across Go types even though TypeCode
// assigns int32, int64/int, and float64/float32 three different codes.
// Every other value compares only within its own exact TypeCode.
func SameComparisonClass(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		return true
	}
	return TypeCode(a) == TypeCode(b)
}

// TypeCode returns the BSON wire type code for v, per the MongoDB BSON
// spec. Undefined maps to bsontype.Undefined even though this package's
// own Undefined sentinel never appears on the wire.
func TypeCode(v Value) bsontype.Type {
	switch t := v.(type) {
	case nil, primitive.Null:
		return bsontype.Null
	case Undefined, primitive.Undefined:
		return bsontype.Undefined
	case bool:
		return bsontype.Boolean
	case int32:
		return bsontype.Int32
	case int64:
		return bsontype.Int64
	case int:
		return bsontype.Int64
	case float64:
		return bsontype.Double
	case float32:
		return bsontype.Double
	case string:
		return bsontype.String
	case primitive.Binary:
		return bsontype.Binary
	case primitive.DateTime:
		return bsontype.DateTime
	case primitive.Regex:
		return bsontype.Regex
	case primitive.ObjectID:
		return bsontype.ObjectID
	case primitive.Timestamp:
		return bsontype.Timestamp
	case primitive.Decimal128:
		return bsontype.Decimal128
	case primitive.MinKey:
		return bsontype.MinKey
	case primitive.MaxKey:
		return bsontype.MaxKey
	case primitive.JavaScript:
		return bsontype.JavaScript
	case primitive.Symbol:
		return bsontype.Symbol
	case bson.A, []interface{}:
		return bsontype.Array
	case bson.M, map[string]interface{}, bson.D:
		return bsontype.EmbeddedDocument
	default:
		_ = t
		return bsontype.EmbeddedDocument
	}
}

// DeepEquals implements extended-JSON equality: regexes compare
// pattern+options, binary compares bytewise, arrays/mappings compare
// structurally and order-sensitively for arrays, and undefined is NOT
// treated as equal to null by this predicate (the selector's equality
// element matcher normalizes that before calling DeepEquals; see
// selector.element_equality.go).
func DeepEquals(a, b Value) bool {
	if IsUndefined(a) || IsUndefined(b) {
		return IsUndefined(a) && IsUndefined(b)
	}
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	switch av := a.(type) {
	case primitive.Regex:
		bv, ok := b.(primitive.Regex)
		return ok && av.Pattern == bv.Pattern && av.Options == bv.Options
	case primitive.Binary:
		bv, ok := b.(primitive.Binary)
		return ok && av.Subtype == bv.Subtype && bytes.Equal(av.Data, bv.Data)
	}
	if arrA, ok := AsArray(a); ok {
		arrB, ok := AsArray(b)
		if !ok || len(arrA) != len(arrB) {
			return false
		}
		for i := range arrA {
			if !DeepEquals(arrA[i], arrB[i]) {
				return false
			}
		}
		return true
	}
	if IsMapping(a) {
		if !IsMapping(b) {
			return false
		}
		keysA := MappingKeys(a)
		keysB := MappingKeys(b)
		if len(keysA) != len(keysB) {
			return false
		}
		for _, k := range keysA {
			va, _ := MappingGet(a, k)
			vb, ok := MappingGet(b, k)
			if !ok || !DeepEquals(va, vb) {
				return false
			}
		}
		return true
	}
	if IsNumeric(a) && IsNumeric(b) {
		return Cmp(a, b) == 0
	}
	if TypeCode(a) != TypeCode(b) {
		return false
	}
	return a == b
}

// Cmp returns -1, 0, or 1 comparing a and b, which MUST share the same
// SameComparisonClass; callers (the range element matcher) are
// responsible for checking that first, matching MongoDB's "no
// cross-type ordering" rule. Two numeric operands compare by value
// regardless of which Go numeric type each decoded into: integers
// compare as int64 (exact for any value either side can hold), and if
// either side is a float the comparison falls back to float64 so a
// non-integral value still orders correctly against an int32/int64/int.
func Cmp(a, b Value) int {
	if IsNumeric(a) && IsNumeric(b) {
		if isIntegerValue(a) && isIntegerValue(b) {
			return cmpOrdered(toInt64(a), toInt64(b))
		}
		return cmpOrdered(toFloat64(a), toFloat64(b))
	}
	switch av := a.(type) {
	case string:
		return cmpOrdered(av, b.(string))
	case primitive.DateTime:
		return cmpOrdered(int64(av), int64(b.(primitive.DateTime)))
	case primitive.ObjectID:
		bv := b.(primitive.ObjectID)
		return bytes.Compare(av[:], bv[:])
	case bool:
		return cmpOrdered(boolToInt(av), boolToInt(b.(bool)))
	}
	return 0
}

func cmpOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toInt64(v Value) int64 {
	switch t := v.(type) {
	case int32:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	}
	return 0
}

func toFloat64(v Value) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case int:
		return float64(t)
	}
	return 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Clone returns a structural deep copy of v.
func Clone(v Value) Value {
	switch t := v.(type) {
	case bson.D:
		out := make(bson.D, len(t))
		for i, e := range t {
			out[i] = primitive.E{Key: e.Key, Value: Clone(e.Value)}
		}
		return out
	case bson.M:
		out := make(bson.M, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case bson.A:
		out := make(bson.A, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	case primitive.Binary:
		data := make([]byte, len(t.Data))
		copy(data, t.Data)
		return primitive.Binary{Subtype: t.Subtype, Data: data}
	default:
		return v
	}
}
