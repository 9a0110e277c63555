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
	"math"

	"github.com/eyalvardi/marsdb/selector/bsonvalue"
	"github.com/eyalvardi/marsdb/selector/geo"
	"github.com/spf13/cast"
)

// compileNear builds $near. The operand picks the mode: a mapping
// carrying $geometry is GeoJSON mode (geodesic distance to a point, or
// a coarse within-radius test against other geometry types); anything
// else is legacy pair mode (Euclidean distance between 2-element
// coordinate arrays), whose $maxDistance lives on the sibling operator
// map rather than on the operand itself. maxCandidates caps how many
// expanded branches are scored (0 = unbounded).
func compileNear(operand, siblingMap Value, maxCandidates int) (branchedMatcher, error) {
	if bsonvalue.IsMapping(operand) {
		if geomVal, ok := bsonvalue.MappingGet(operand, "$geometry"); ok {
			return compileNearGeoJSON(operand, geomVal, maxCandidates)
		}
	}
	return compileNearPair(operand, siblingMap, maxCandidates)
}

func compileNearGeoJSON(operand, geomVal Value, maxCandidates int) (branchedMatcher, error) {
	centerGeom, ok := toGeometry(geomVal)
	if !ok || centerGeom.Type != "Point" {
		return nil, ErrInvalidOperand.New("$near", "$geometry must be a GeoJSON Point")
	}
	center, ok := geo.ParsePoint(centerGeom.Coordinates)
	if !ok {
		return nil, ErrInvalidOperand.New("$near", "$geometry.coordinates must be a [lng, lat] pair")
	}

	maxDistance := math.Inf(1)
	if md, ok := bsonvalue.MappingGet(operand, "$maxDistance"); ok {
		f, err := numericValue(md)
		if err != nil {
			return nil, ErrInvalidOperand.New("$maxDistance", fmt.Sprintf("%v", md))
		}
		maxDistance = f
	}

	distanceFn := func(candidate Value) (float64, bool) {
		cGeom, ok := toGeometry(candidate)
		if !ok {
			return 0, false
		}
		if cGeom.Type == "Point" {
			pt, ok := geo.ParsePoint(cGeom.Coordinates)
			if !ok {
				return 0, false
			}
			return geo.PointDistance(center, pt), true
		}
		if geo.GeometryWithinRadius(cGeom, center, maxDistance) {
			return 0, true
		}
		return maxDistance + 1, true
	}

	return nearBranched(distanceFn, maxDistance, maxCandidates), nil
}

func compileNearPair(operand, siblingMap Value, maxCandidates int) (branchedMatcher, error) {
	origin, ok := toPair(operand)
	if !ok {
		return nil, ErrInvalidOperand.New("$near", fmt.Sprintf("expected a 2-element coordinate pair, got %v", operand))
	}

	maxDistance := math.Inf(1)
	if md, ok := bsonvalue.MappingGet(siblingMap, "$maxDistance"); ok {
		f, err := numericValue(md)
		if err != nil {
			return nil, ErrInvalidOperand.New("$maxDistance", fmt.Sprintf("%v", md))
		}
		maxDistance = f
	}

	distanceFn := func(candidate Value) (float64, bool) {
		pair, ok := toPair(candidate)
		if !ok {
			return 0, false
		}
		return geo.PairDistance(origin, pair), true
	}

	return nearBranched(distanceFn, maxDistance, maxCandidates), nil
}

// nearBranched implements $near's match-time rule: expand branches
// fully (always, regardless of any dontExpandLeafArrays-style
// override), score each with distanceFn, discard out-of-range or
// undistanceable branches, and keep the strictly-smallest-distance
// survivor (ties do not replace the incumbent). maxCandidates, if
// positive, bounds how many expanded branches are scored.
func nearBranched(distanceFn func(Value) (float64, bool), maxDistance float64, maxCandidates int) branchedMatcher {
	return func(branches []Branch) MatchResult {
		use := expand(branches, false)
		if maxCandidates > 0 && len(use) > maxCandidates {
			use = use[:maxCandidates]
		}
		var bestDist *float64
		var bestIndices ArrayIndices
		found := false
		for _, b := range use {
			d, ok := distanceFn(b.Value)
			if !ok || d > maxDistance {
				continue
			}
			if bestDist == nil || d < *bestDist {
				dist := d
				bestDist = &dist
				bestIndices = b.ArrayIndices
				found = true
			}
		}
		if !found {
			return failResult()
		}
		return MatchResult{Matched: true, ArrayIndices: bestIndices, Distance: bestDist}
	}
}

func toGeometry(v Value) (geo.Geometry, bool) {
	if !bsonvalue.IsMapping(v) {
		return geo.Geometry{}, false
	}
	typVal, ok := bsonvalue.MappingGet(v, "type")
	if !ok {
		return geo.Geometry{}, false
	}
	typ, ok := typVal.(string)
	if !ok {
		return geo.Geometry{}, false
	}
	coordsVal, ok := bsonvalue.MappingGet(v, "coordinates")
	if !ok {
		return geo.Geometry{}, false
	}
	coords, ok := bsonvalue.AsArray(coordsVal)
	if !ok {
		return geo.Geometry{}, false
	}
	return geo.ParseGeometry(typ, coords)
}

func toPair(v Value) ([2]float64, bool) {
	var raw []interface{}
	switch {
	case bsonvalue.IsArray(v):
		raw, _ = bsonvalue.AsArray(v)
	case bsonvalue.IsMapping(v):
		x, xok := bsonvalue.MappingGet(v, "x")
		y, yok := bsonvalue.MappingGet(v, "y")
		if !xok || !yok {
			return [2]float64{}, false
		}
		raw = []interface{}{x, y}
	default:
		return [2]float64{}, false
	}
	if len(raw) < 2 {
		return [2]float64{}, false
	}
	x, err1 := cast.ToFloat64E(raw[0])
	y, err2 := cast.ToFloat64E(raw[1])
	if err1 != nil || err2 != nil {
		return [2]float64{}, false
	}
	return [2]float64{x, y}, true
}
