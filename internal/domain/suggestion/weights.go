package suggestion

import "math"

// Weights is the convex combination applied to the eight normalized
// sub-scores of a candidate pairing. All tunable scoring parameters live
// here so the ranking logic stays independently testable.
type Weights struct {
	BookMatch       float64
	TrustScore      float64
	ExchangeHistory float64
	Rating          float64
	Geographic      float64
	Verification    float64
	Priority        float64
	Condition       float64
}

func DefaultWeights() Weights {
	return Weights{
		BookMatch:       0.30,
		TrustScore:      0.15,
		ExchangeHistory: 0.10,
		Rating:          0.10,
		Geographic:      0.10,
		Verification:    0.05,
		Priority:        0.10,
		Condition:       0.10,
	}
}

const weightSumTolerance = 1e-9

func (w Weights) Validate() error {
	sum := w.BookMatch + w.TrustScore + w.ExchangeHistory + w.Rating +
		w.Geographic + w.Verification + w.Priority + w.Condition
	if math.Abs(sum-1.0) > weightSumTolerance {
		return ErrInvalidWeights
	}
	return nil
}
