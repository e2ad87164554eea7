package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance_SamePoint(t *testing.T) {
	d := HaversineDistance(-6.2146, 106.8451, -6.2146, 106.8451)
	if d != 0 {
		t.Errorf("distance between identical points = %v, want 0", d)
	}
}

func TestHaversineDistance_Symmetry(t *testing.T) {
	cases := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{-6.2146, 106.8451, -6.9175, 107.6191}, // Jakarta - Bandung
		{0, 0, 0.001, 0},
		{51.5074, -0.1278, 48.8566, 2.3522},
	}
	for _, c := range cases {
		ab := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		ba := HaversineDistance(c.lat2, c.lon2, c.lat1, c.lon1)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestHaversineDistance_KnownFixture(t *testing.T) {
	// 0.001 degrees of latitude is roughly 111m anywhere on the globe.
	d := HaversineDistance(0, 0, 0.001, 0)
	if d < 110 || d > 112 {
		t.Errorf("0.001 deg latitude = %vm, want ~111m", d)
	}
}

func TestEvaluate_Inside(t *testing.T) {
	res := Evaluate(-6.2146, 106.8451, 25, -6.2146, 106.8451)
	if !res.Inside {
		t.Error("observation at the fence center should be inside")
	}
	if res.RemainingMeters != 0 {
		t.Errorf("remaining = %v, want 0", res.RemainingMeters)
	}
}

func TestEvaluate_BoundaryInclusive(t *testing.T) {
	d := HaversineDistance(0, 0, 0.001, 0)
	res := Evaluate(0, 0, d, 0.001, 0)
	if !res.Inside {
		t.Errorf("distance == radius should be inside, got %+v", res)
	}
	if res.RemainingMeters != 0 {
		t.Errorf("remaining at boundary = %v, want 0", res.RemainingMeters)
	}
}

func TestEvaluate_Outside(t *testing.T) {
	res := Evaluate(0, 0, 25, 0.001, 0)
	if res.Inside {
		t.Errorf("~111m observation against a 25m fence should be outside, got %+v", res)
	}
	if res.RemainingMeters <= 0 {
		t.Errorf("remaining = %v, want > 0", res.RemainingMeters)
	}
	if math.Abs(res.RemainingMeters-(res.DistanceMeters-25)) > 1e-9 {
		t.Errorf("remaining = %v, want distance - radius = %v", res.RemainingMeters, res.DistanceMeters-25)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{111.19492664455873, 111.19},
		{12.405, 12.41},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
