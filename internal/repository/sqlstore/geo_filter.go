package sqlstore

import (
	"fmt"
	"strconv"

	"github.com/org-directory/internal/pkg/geo"
)

// Every literal carries a decimal point: the sqlite math callbacks only accept
// REAL arguments.
var sqlDegToRad = strconv.FormatFloat(geo.DegToRad, 'g', -1, 64)

// haversineA renders the haversine "a" term between the centre (lat1, lon1)
// and the building b, in the same operation order as geo.HaversineDistance.
// The centre latitude is passed in radians, the longitude in degrees.
func haversineA(lat1Rad, lon1 float64) (string, []interface{}) {
	lat2 := "(b.latitude * " + sqlDegToRad + ")"
	sinLat := "sin((" + lat2 + " - ?) / 2.0)"
	sinLon := "sin(((b.longitude - ?) * " + sqlDegToRad + ") / 2.0)"

	expr := "(" + sinLat + " * " + sinLat +
		" + cos(?) * cos(" + lat2 + ") * " + sinLon + " * " + sinLon + ")"
	return expr, []interface{}{lat1Rad, lat1Rad, lat1Rad, lon1, lon1}
}

// geoCondition renders f as a WHERE fragment over the buildings table aliased
// as b. Radius compares the haversine distance against Radius.LimitM, the same
// bound the in-memory store uses.
func geoCondition(f geo.Filter, earthRadiusM float64) (string, []interface{}, error) {
	switch g := f.(type) {
	case geo.Radius:
		a, aArgs := haversineA(g.Lat*geo.DegToRad, g.Lon)

		cond := fmt.Sprintf("? * (2.0 * atan2(sqrt(%[1]s), sqrt(1.0 - %[1]s))) <= ?", a)
		args := make([]interface{}, 0, 2*len(aArgs)+2)
		args = append(args, earthRadiusM)
		args = append(args, aArgs...)
		args = append(args, aArgs...)
		args = append(args, g.LimitM())
		return cond, args, nil

	case geo.BBox:
		cond := "b.latitude BETWEEN ? AND ? AND b.longitude BETWEEN ? AND ?"
		return cond, []interface{}{g.LatMin, g.LatMax, g.LonMin, g.LonMax}, nil

	default:
		return "", nil, fmt.Errorf("unsupported geo filter %T", f)
	}
}
