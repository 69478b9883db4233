package geo

import (
	"math"
	"math/rand/v2"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestValid(t *testing.T) {
	cases := []struct {
		c    Coord
		want bool
	}{
		{Coord{-20.88, 55.45}, true},
		{Coord{90, 180}, true},
		{Coord{-90.1, 0}, false},
		{Coord{0, 180.5}, false},
	}
	for _, tc := range cases {
		if got := tc.c.Valid(); got != tc.want {
			t.Errorf("%+v.Valid() = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	origin := Coord{0, 0}
	if d := origin.DistanceKm(Coord{90, 0}); !approxEqual(d, math.Pi/2*earthRadiusKm, 0.001) {
		t.Errorf("quarter meridian = %f km", d)
	}
	if d := origin.DistanceKm(origin); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}

	north := Coord{-20.8789, 55.4481}
	south := Coord{-21.3393, 55.4781}
	d := north.DistanceKm(south)
	if d < 50 || d > 53 {
		t.Errorf("north to south = %f km, want about 51", d)
	}
	if !approxEqual(d, south.DistanceKm(north), 1e-9) {
		t.Error("distance should be symmetric")
	}
}

func TestJitterBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	c := Coord{-21.0, 55.5}
	for range 1000 {
		j := c.Jitter(rng, 0.05)
		if math.Abs(j.Lat-c.Lat) > 0.05 || math.Abs(j.Lon-c.Lon) > 0.05 {
			t.Fatalf("jitter %+v outside 0.05 of %+v", j, c)
		}
	}
}

func TestJitterDeterministic(t *testing.T) {
	c := Coord{-21.0, 55.5}
	a := c.Jitter(rand.New(rand.NewPCG(3, 4)), 0.05)
	b := c.Jitter(rand.New(rand.NewPCG(3, 4)), 0.05)
	if a != b {
		t.Errorf("same source gave %+v and %+v", a, b)
	}
}

func TestNearest(t *testing.T) {
	candidates := []Coord{
		{-20.8789, 55.4481},
		{-21.3393, 55.4781},
		{-21.0097, 55.2697},
		{-21.0339, 55.7147},
	}
	if got := Nearest(Coord{-21.28, 55.51}, candidates); got != 1 {
		t.Errorf("Nearest(Saint-Pierre area) = %d, want 1", got)
	}
	if got := Nearest(Coord{-21.0, 55.70}, candidates); got != 3 {
		t.Errorf("Nearest(east coast) = %d, want 3", got)
	}
	if got := Nearest(Coord{}, nil); got != -1 {
		t.Errorf("Nearest(no candidates) = %d, want -1", got)
	}
	dup := []Coord{{1, 1}, {1, 1}}
	if got := Nearest(Coord{1, 1}, dup); got != 0 {
		t.Errorf("tie = %d, want 0", got)
	}
}
