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

// Package geo implements the injected geo-library contract $near needs:
// point-to-point distance and a coarse geometry-within-radius test. It
// deliberately covers only GeoJSON Points and a handful of simple
// geometry shapes — true geodesic polygon/circle intersection is out of
// scope (see the selector package's Non-goals).
package geo

import "math"

// earthRadiusMeters is the Earth radius used by the haversine formula
// below: the WGS84 equatorial radius.
const earthRadiusMeters = 6378137.0

// Point is a GeoJSON Point's coordinate pair, [longitude, latitude].
type Point struct {
	Lng float64
	Lat float64
}

// Geometry is a GeoJSON geometry (Point, MultiPoint, Polygon, etc.): its
// type name and raw coordinates. GeometryWithinRadius tests it against
// a circle given by a center point and a radius.
type Geometry struct {
	Type        string
	Coordinates interface{}
}

// PointDistance returns the great-circle distance between two GeoJSON
// points, in meters, via the haversine formula.
func PointDistance(p, q Point) float64 {
	lat1 := degToRad(p.Lat)
	lat2 := degToRad(q.Lat)
	dLat := degToRad(q.Lat - p.Lat)
	dLng := degToRad(q.Lng - p.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// PairDistance returns the Euclidean distance between two legacy
// coordinate pairs, used by $near's non-GeoJSON ("legacy coordinate
// pair") mode.
func PairDistance(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// GeometryWithinRadius reports whether any point of geom lies within
// radius meters of center. Only Point and MultiPoint geometries are
// supported; anything else conservatively returns false (matching the
// selector's Non-goal: no polygon/circle geometry).
func GeometryWithinRadius(geom Geometry, center Point, radius float64) bool {
	switch geom.Type {
	case "Point":
		pt, ok := asPoint(geom.Coordinates)
		return ok && PointDistance(pt, center) <= radius
	case "MultiPoint":
		coords, ok := geom.Coordinates.([]Point)
		if !ok {
			return false
		}
		for _, pt := range coords {
			if PointDistance(pt, center) <= radius {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ParsePoint converts a raw GeoJSON coordinate pair (as decoded from
// BSON: []interface{}, primitive.A, or []float64) into a Point.
func ParsePoint(v interface{}) (Point, bool) {
	return asPoint(v)
}

// ParseGeometry builds a Geometry from a GeoJSON type name and its raw
// (BSON-decoded) coordinates, normalizing MultiPoint coordinates into
// []Point so GeometryWithinRadius can use them directly.
func ParseGeometry(typ string, coordinates interface{}) (Geometry, bool) {
	if typ == "MultiPoint" {
		raw, ok := asCoordList(coordinates)
		if !ok {
			return Geometry{}, false
		}
		pts := make([]Point, 0, len(raw))
		for _, c := range raw {
			pt, ok := asPoint(c)
			if !ok {
				return Geometry{}, false
			}
			pts = append(pts, pt)
		}
		return Geometry{Type: typ, Coordinates: pts}, true
	}
	return Geometry{Type: typ, Coordinates: coordinates}, true
}

func asCoordList(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []Point:
		out := make([]interface{}, len(t))
		for i, p := range t {
			out[i] = p
		}
		return out, true
	}
	return nil, false
}

func asPoint(v interface{}) (Point, bool) {
	switch t := v.(type) {
	case Point:
		return t, true
	case []float64:
		if len(t) >= 2 {
			return Point{Lng: t[0], Lat: t[1]}, true
		}
	case []interface{}:
		if len(t) >= 2 {
			lng, ok1 := toFloat(t[0])
			lat, ok2 := toFloat(t[1])
			if ok1 && ok2 {
				return Point{Lng: lng, Lat: lat}, true
			}
		}
	}
	return Point{}, false
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
