package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	p := Position{Lat: 35.6762, Lng: 139.6503}
	if d := Distance(p, p); d != 0 {
		t.Errorf("Distance to self = %f, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Position{Lat: 35.6762, Lng: 139.6503}
	b := Position{Lat: 35.6895, Lng: 139.6917}

	ab := Distance(a, b)
	ba := Distance(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Distance not symmetric: %f vs %f", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("Distance between distinct points = %f, want > 0", ab)
	}
}

func TestDistanceKnownPoints(t *testing.T) {
	// Tokyo Station to Shinjuku Station, roughly 6.4 km.
	tokyo := Position{Lat: 35.6812, Lng: 139.7671}
	shinjuku := Position{Lat: 35.6896, Lng: 139.7006}

	d := Distance(tokyo, shinjuku)
	if d < 5.5 || d > 7.5 {
		t.Errorf("Tokyo-Shinjuku distance = %f km, want roughly 6.4", d)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	center := Position{Lat: 35.6762, Lng: 139.6503}

	for _, dist := range []float64{0.1, 0.5, 1.0, 5.0} {
		for i := 0; i < 8; i++ {
			angle := float64(i) / 8 * 2 * math.Pi
			p := Offset(center, dist, angle)
			got := Distance(center, p)
			if math.Abs(got-dist) > dist*0.02 {
				t.Errorf("Offset(%f km, %f rad) landed %f km away", dist, angle, got)
			}
		}
	}
}

func TestOffsetZeroDistance(t *testing.T) {
	center := Position{Lat: 35.6762, Lng: 139.6503}
	p := Offset(center, 0, 1.5)
	if p != center {
		t.Errorf("Offset with zero distance = %+v, want %+v", p, center)
	}
}
