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

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func isNumeric(v Value) bool {
	switch v.(type) {
	case int32, int64, int, float64, float32:
		return true
	}
	return false
}

// compileValueSelector is the C7 helper (value-selector compiler): it
// turns the value found at a field path into a branchedMatcher. isRoot
// is true only when this field sits directly under the top-level
// document selector, which is the only place $near is legal.
func compileValueSelector(val Value, st *compileState, isRoot bool) (branchedMatcher, error) {
	if re, ok := val.(primitive.Regex); ok {
		st.markNotSimple()
		em, err := newRegexElementMatcher(re.Pattern, re.Options, st.cfg.DefaultRegexEngine)
		if err != nil {
			return nil, err
		}
		return liftElement(em), nil
	}

	if bsonvalue.IsOperatorMapping(val, false) {
		keys := bsonvalue.MappingKeys(val)
		hasNear, hasRegex, hasOptions, hasMaxDistance := false, false, false, false
		for _, k := range keys {
			switch k {
			case "$near":
				hasNear = true
			case "$regex":
				hasRegex = true
			case "$options":
				hasOptions = true
			case "$maxDistance":
				hasMaxDistance = true
			}
		}
		if hasOptions && !hasRegex {
			return nil, ErrOperatorContext.New("$options without a sibling $regex")
		}
		if hasMaxDistance && !hasNear {
			return nil, ErrOperatorContext.New("$maxDistance without a sibling $near")
		}

		subs := make([]branchedMatcher, 0, len(keys))
		for _, k := range keys {
			operand, _ := bsonvalue.MappingGet(val, k)
			if !isSimpleOperator(k, operand) {
				st.markNotSimple()
			}
			bm, err := compileOperator(k, operand, val, st, isRoot)
			if err != nil {
				return nil, err
			}
			subs = append(subs, bm)
		}
		return unifiedAndBranched(subs), nil
	}

	return liftElement(newEqualityElementMatcher(val)), nil
}

func isSimpleOperator(op string, operand Value) bool {
	switch op {
	case "$eq":
		return true
	case "$lt", "$lte", "$gt", "$gte":
		return isNumeric(operand)
	case "$ne":
		return !bsonvalue.IsMapping(operand)
	case "$in", "$nin":
		arr, ok := bsonvalue.AsArray(operand)
		if !ok {
			return false
		}
		for _, e := range arr {
			if bsonvalue.IsMapping(e) {
				return false
			}
		}
		return true
	}
	return false
}

func compileOperator(op string, operand, siblingMap Value, st *compileState, isRoot bool) (branchedMatcher, error) {
	switch op {
	case "$eq":
		return liftElement(newEqualityElementMatcher(operand)), nil
	case "$lt", "$lte", "$gt", "$gte":
		return liftElement(newRangeElementMatcher(op, operand)), nil
	case "$ne":
		return invertBranched(liftElement(newEqualityElementMatcher(operand))), nil
	case "$in":
		em, err := newInElementMatcher(operand, st)
		if err != nil {
			return nil, err
		}
		return liftElement(em), nil
	case "$nin":
		em, err := newInElementMatcher(operand, st)
		if err != nil {
			return nil, err
		}
		return invertBranched(liftElement(em)), nil
	case "$mod":
		em, err := newModElementMatcher(operand)
		if err != nil {
			return nil, err
		}
		return liftElement(em), nil
	case "$size":
		em, err := newSizeElementMatcher(operand)
		if err != nil {
			return nil, err
		}
		return liftElement(em), nil
	case "$type":
		em, err := newTypeElementMatcher(operand)
		if err != nil {
			return nil, err
		}
		return liftElement(em), nil
	case "$regex":
		return compileRegexOperator(operand, siblingMap, st)
	case "$options":
		return identityBranched(), nil
	case "$exists":
		return newExistsBranched(isTruthy(operand)), nil
	case "$all":
		return newAllBranched(operand, st)
	case "$elemMatch":
		em, err := newElemMatchMatcher(operand, st)
		if err != nil {
			return nil, err
		}
		return liftElement(em), nil
	case "$not":
		inner, err := compileValueSelector(operand, st, false)
		if err != nil {
			return nil, err
		}
		return invertBranched(inner), nil
	case "$maxDistance":
		return identityBranched(), nil
	case "$near":
		if !isRoot {
			return nil, ErrOperatorContext.New("$near is only valid at the top level of a selector")
		}
		st.markGeo()
		st.markNotSimple()
		return compileNear(operand, siblingMap, st.cfg.MaxNearCandidates)
	}
	if st.cfg.AllowUnknownOperators {
		return identityBranched(), nil
	}
	return nil, ErrUnknownOperator.New(op)
}

func compileRegexOperator(operand, siblingMap Value, st *compileState) (branchedMatcher, error) {
	pattern, options, err := resolveRegexOperand(operand, siblingMap)
	if err != nil {
		return nil, err
	}
	em, err := newRegexElementMatcher(pattern, options, st.cfg.DefaultRegexEngine)
	if err != nil {
		return nil, err
	}
	return liftElement(em), nil
}

func resolveRegexOperand(operand, siblingMap Value) (pattern, options string, err error) {
	var basePattern, baseOptions string
	switch v := operand.(type) {
	case primitive.Regex:
		basePattern, baseOptions = v.Pattern, v.Options
	case string:
		basePattern = v
	default:
		return "", "", ErrInvalidOperand.New("$regex", fmt.Sprintf("expected a string or regex, got %v", operand))
	}
	if opt, ok := bsonvalue.MappingGet(siblingMap, "$options"); ok {
		s, ok := opt.(string)
		if !ok {
			return "", "", ErrInvalidOperand.New("$options", fmt.Sprintf("expected a string, got %v", opt))
		}
		if err := validateRegexOptions(s); err != nil {
			return "", "", err
		}
		baseOptions = s
	}
	return basePattern, baseOptions, nil
}

func isTruthy(v Value) bool {
	return !isFalsySelector(v)
}
