package geo

import (
	"math"
	"math/rand/v2"
)

const earthRadiusKm = 6371.0

// Coord is a WGS84 latitude/longitude pair in decimal degrees.
type Coord struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Valid reports whether the coordinate lies within the WGS84 ranges.
func (c Coord) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Offset returns c shifted by the given degrees.
func (c Coord) Offset(dLat, dLon float64) Coord {
	return Coord{Lat: c.Lat + dLat, Lon: c.Lon + dLon}
}

// Jitter returns c displaced by a uniform offset in [-delta, delta) on each
// axis. It keeps map markers for co-located items from overlapping.
func (c Coord) Jitter(rng *rand.Rand, delta float64) Coord {
	return c.Offset(
		(rng.Float64()*2-1)*delta,
		(rng.Float64()*2-1)*delta,
	)
}

// DistanceKm returns the great-circle distance to q using the haversine formula.
func (c Coord) DistanceKm(q Coord) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := q.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (q.Lon - c.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Nearest returns the index of the candidate closest to c, or -1 if there
// are no candidates. Ties go to the earlier candidate.
func Nearest(c Coord, candidates []Coord) int {
	best := -1
	bestDist := math.Inf(1)
	for i, q := range candidates {
		if d := c.DistanceKm(q); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
