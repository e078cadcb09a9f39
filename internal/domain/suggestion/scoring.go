package suggestion

import "time"

// CandidateProfile is what the directory knows about a candidate partner.
type CandidateProfile struct {
	TrustScore         float64 // 0-100
	CompletedExchanges int
	AverageRating      float64 // 0-5
	Region             string
	Verified           bool
	LastActiveAt       time.Time
}

// ComponentScores are the eight normalized sub-scores, each in [0,1].
type ComponentScores struct {
	BookMatch       float64
	TrustScore      float64
	ExchangeHistory float64
	Rating          float64
	Geographic      float64
	Verification    float64
	Priority        float64
	Condition       float64
}

const (
	maxTrustScore = 100.0
	maxRating     = 5.0

	// Completed-exchange count at which the history component saturates.
	historySaturation = 10

	// Candidates outside the subject's region still earn a decayed
	// geographic score rather than zero.
	differentRegionScore = 0.3
)

// Score computes the component scores and their weighted aggregate for a
// subject/candidate pairing. give and receive are the best matches in each
// direction as produced by MatchBooks; book-dependent components average
// the best pair found in each direction.
func Score(w Weights, subjectRegion string, candidate CandidateProfile, give, receive []BookMatch) (float64, ComponentScores) {
	c := ComponentScores{
		TrustScore:      clamp01(candidate.TrustScore / maxTrustScore),
		ExchangeHistory: saturate(candidate.CompletedExchanges, historySaturation),
		Rating:          clamp01(candidate.AverageRating / maxRating),
		Geographic:      geographicScore(subjectRegion, candidate.Region),
		Verification:    boolScore(candidate.Verified),
	}

	c.BookMatch = directionalMean(give, receive, func(m BookMatch) float64 { return m.Score })
	c.Priority = directionalMean(give, receive, func(m BookMatch) float64 {
		return clamp01(float64(m.Priority) / MaxWantPriority)
	})
	c.Condition = directionalMean(give, receive, func(m BookMatch) float64 {
		return m.Book.Condition.Score()
	})

	return w.aggregate(c), c
}

func (w Weights) aggregate(c ComponentScores) float64 {
	return clamp01(w.BookMatch*c.BookMatch +
		w.TrustScore*c.TrustScore +
		w.ExchangeHistory*c.ExchangeHistory +
		w.Rating*c.Rating +
		w.Geographic*c.Geographic +
		w.Verification*c.Verification +
		w.Priority*c.Priority +
		w.Condition*c.Condition)
}

// directionalMean averages the best match of each direction; a direction
// with no match contributes zero so one-sided pairings are penalized, not
// discarded.
func directionalMean(give, receive []BookMatch, f func(BookMatch) float64) float64 {
	var g, r float64
	if len(give) > 0 {
		g = f(give[0])
	}
	if len(receive) > 0 {
		r = f(receive[0])
	}
	return (g + r) / 2
}

func geographicScore(subjectRegion, candidateRegion string) float64 {
	if subjectRegion != "" && subjectRegion == candidateRegion {
		return 1.0
	}
	return differentRegionScore
}

func saturate(count, saturation int) float64 {
	if count >= saturation {
		return 1.0
	}
	if count < 0 {
		return 0
	}
	return float64(count) / float64(saturation)
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
