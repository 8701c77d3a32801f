package geo

import (
	"github.com/golang/geo/s2"
)

// BoundingBox smallest lat/lon rectangle containing coords, returned as (south-west, north-east).
func BoundingBox(coords []Coordinate) (Coordinate, Coordinate) {
	if len(coords) == 0 {
		return Coordinate{}, Coordinate{}
	}
	bounder := s2.NewRectBounder()
	for _, c := range coords {
		bounder.AddPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}
	rect := bounder.RectBound()
	lo, hi := rect.Lo(), rect.Hi()
	return NewCoordinate(lo.Lat.Degrees(), lo.Lng.Degrees()), NewCoordinate(hi.Lat.Degrees(), hi.Lng.Degrees())
}

// ProjectPointToLineCoord closest point to snap on the great-circle segment a-b.
func ProjectPointToLineCoord(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// return in meter
func PointLinePerpendicularDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)

	dist := CalculateHaversineDistance(snap.GetLat(), snap.GetLon(), projectionPoint.GetLat(), projectionPoint.GetLon())

	return dist * 1000
}
