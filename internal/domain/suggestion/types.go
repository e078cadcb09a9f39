package suggestion

import "errors"

var (
	ErrScoreOutOfRange  = errors.New("score must be within [0,1]")
	ErrSameMember       = errors.New("subject and candidate must differ")
	ErrNoPairs          = errors.New("a suggestion needs at least one book pair")
	ErrNotSubject       = errors.New("only the subject member may view this suggestion")
	ErrUnknownCondition = errors.New("unknown book condition")
	ErrInvalidWeights   = errors.New("score weights must sum to 1.0")
)

// Condition is the physical state of a book, best first.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// conditionScores maps condition tiers onto [0.2, 1.0], best to worst.
var conditionScores = map[Condition]float64{
	ConditionNew:     1.0,
	ConditionLikeNew: 0.8,
	ConditionGood:    0.6,
	ConditionFair:    0.4,
	ConditionPoor:    0.2,
}

func NewCondition(s string) (Condition, error) {
	if _, ok := conditionScores[Condition(s)]; !ok {
		return "", ErrUnknownCondition
	}
	return Condition(s), nil
}

func (c Condition) Score() float64 {
	if s, ok := conditionScores[c]; ok {
		return s
	}
	return 0
}

// MaxWantPriority is the top of the 0-10 want-list priority scale.
const MaxWantPriority = 10
