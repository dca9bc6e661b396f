package odds

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/court-edge/internal/models"
)

func TestNormalizeSumsToOne(t *testing.T) {
	cases := [][2]float64{
		{1.80, 2.20},
		{1.01, 15.0},
		{2.0, 2.0},
		{1.57, 2.49},
	}

	for _, prices := range cases {
		q1, q2, err := Normalize(prices[0], prices[1])
		if err != nil {
			t.Fatalf("Normalize(%v) returned error: %v", prices, err)
		}
		if math.Abs(q1+q2-1.0) > 1e-12 {
			t.Fatalf("Normalize(%v): q1+q2 = %f, want 1", prices, q1+q2)
		}
		if q1 <= 0 || q1 >= 1 || q2 <= 0 || q2 >= 1 {
			t.Fatalf("Normalize(%v): probabilities out of (0,1): %f, %f", prices, q1, q2)
		}
	}
}

func TestNormalizeRemovesMargin(t *testing.T) {
	// 1.80 / 2.20 is a 101.01% book; after de-margining the favourite holds
	// 55% of the market.
	q1, q2, err := Normalize(1.80, 2.20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(q1-0.55) > 0.001 {
		t.Fatalf("q1 = %f, want ~0.55", q1)
	}
	if math.Abs(q2-0.45) > 0.001 {
		t.Fatalf("q2 = %f, want ~0.45", q2)
	}
}

func TestNormalizeRejectsInvalidPrices(t *testing.T) {
	for _, prices := range [][2]float64{{1.0, 2.0}, {0.5, 2.0}, {2.0, 1.0}, {-1.0, 2.0}} {
		_, _, err := Normalize(prices[0], prices[1])
		if !errors.Is(err, models.ErrInvalidOdds) {
			t.Fatalf("Normalize(%v): expected ErrInvalidOdds, got %v", prices, err)
		}
	}
}

func TestOverround(t *testing.T) {
	over, err := Overround(2.0, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(over) > 1e-12 {
		t.Fatalf("fair book should carry zero overround, got %f", over)
	}

	over, err = Overround(1.80, 2.20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if over <= 0 {
		t.Fatalf("expected positive overround, got %f", over)
	}
}
