package commands

import (
	"context"
	"errors"
	"sort"

	"bookswap/internal/domain/suggestion"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/config"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type GenerateResult struct {
	Generated int
	Skipped   int
}

type SuggestionCommands interface {
	// Generate runs a full suggestion pass for the member: score every
	// candidate, keep the top pairings above the floor, and persist each in
	// its own transaction so one contended row never voids the whole pass.
	Generate(ctx context.Context, memberID uuid.UUID) (*GenerateResult, error)
	MarkViewed(ctx context.Context, suggestionID, actorID uuid.UUID) error
}

type suggestionCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	cfg     config.SuggestConfig
	weights suggestion.Weights
}

func NewSuggestionCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.SuggestConfig) SuggestionCommands {
	return &suggestionCommandsImpl{
		uow:     uow,
		clock:   clk,
		cfg:     cfg,
		weights: suggestion.DefaultWeights(),
	}
}

type scoredCandidate struct {
	candidateID uuid.UUID
	rank        suggestion.CandidateRank
	pairs       []suggestion.BookPair
}

func (uc *suggestionCommandsImpl) Generate(ctx context.Context, memberID uuid.UUID) (*GenerateResult, error) {
	reads := uc.uow.CommandReads()

	subject, err := reads.MemberByID(ctx, memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrMemberNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	scored, err := uc.scoreCandidates(ctx, reads, subject)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].rank.RanksAbove(scored[j].rank)
	})
	if len(scored) > uc.cfg.MaxPerSubject {
		scored = scored[:uc.cfg.MaxPerSubject]
	}

	result := &GenerateResult{}
	for _, sc := range scored {
		persisted, perr := uc.persistOne(ctx, memberID, sc)
		if perr != nil {
			return nil, perr
		}
		if persisted {
			result.Generated++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

// scoreCandidates evaluates every mutual-interest candidate against the
// subject's offers and wants. Candidates without at least one match in
// each direction, or scoring below the floor, are dropped here.
func (uc *suggestionCommandsImpl) scoreCandidates(ctx context.Context, reads shared.CommandReads, subject *shared.MemberSnapshot) ([]scoredCandidate, error) {
	subjectOffers, err := uc.loadOffers(ctx, reads, subject.ID)
	if err != nil {
		return nil, err
	}
	subjectWants, err := uc.loadWants(ctx, reads, subject.ID)
	if err != nil {
		return nil, err
	}
	if len(subjectOffers) == 0 || len(subjectWants) == 0 {
		return nil, nil
	}

	candidateIDs, err := reads.CandidatesFor(ctx, subject.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var out []scoredCandidate
	for _, candidateID := range candidateIDs {
		candidate, cerr := reads.MemberByID(ctx, candidateID)
		if cerr != nil {
			if infra.IsKind(cerr, infra.KindNotFound) {
				continue
			}
			return nil, errs.Mark(cerr, ErrDatabaseOperationFailed)
		}
		candidateOffers, cerr := uc.loadOffers(ctx, reads, candidateID)
		if cerr != nil {
			return nil, cerr
		}
		candidateWants, cerr := uc.loadWants(ctx, reads, candidateID)
		if cerr != nil {
			return nil, cerr
		}

		give := suggestion.MatchBooks(subjectOffers, candidateWants)
		receive := suggestion.MatchBooks(candidateOffers, subjectWants)
		if len(give) == 0 || len(receive) == 0 {
			continue
		}

		score, _ := suggestion.Score(uc.weights, subject.Region, suggestion.CandidateProfile{
			TrustScore:         candidate.TrustScore,
			CompletedExchanges: candidate.CompletedExchanges,
			AverageRating:      candidate.AverageRating,
			Region:             candidate.Region,
			Verified:           candidate.Verified,
			LastActiveAt:       candidate.LastActiveAt,
		}, give, receive)
		if score < uc.cfg.MinScore {
			continue
		}

		pairs := suggestion.Pair(give, receive, uc.cfg.MaxPairs)
		if len(pairs) == 0 {
			continue
		}
		out = append(out, scoredCandidate{
			candidateID: candidateID,
			rank: suggestion.CandidateRank{
				Score:         score,
				MatchingBooks: len(pairs),
				LastActiveAt:  candidate.LastActiveAt,
			},
			pairs: pairs,
		})
	}
	return out, nil
}

// persistOne upserts a single suggestion in its own transaction. An unviewed
// live suggestion for the pair is kept untouched; viewed or expired ones are
// replaced. A duplicate-key race with a concurrent pass counts as a skip.
func (uc *suggestionCommandsImpl) persistOne(ctx context.Context, memberID uuid.UUID, sc scoredCandidate) (bool, error) {
	persisted := false
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		existing, derr := tx.Reads().SuggestionForPair(ctx, memberID, sc.candidateID)
		if derr != nil && !infra.IsKind(derr, infra.KindNotFound) {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		if existing != nil {
			if !existing.Replaceable(now) {
				return nil
			}
			// A live unviewed row would have blocked above, so every row
			// left for this pair is viewed or expired; clear them all.
			if derr = tx.Suggestions().DeleteForPair(ctx, tx.DB(), memberID, sc.candidateID); derr != nil {
				return errs.Mark(derr, ErrDatabaseOperationFailed)
			}
		}

		s, derr := suggestion.NewSuggestion(
			memberID, sc.candidateID, sc.rank.Score, sc.pairs,
			now.Add(uc.cfg.ValidityWindow), now)
		if derr != nil {
			return errs.Mark(derr, ErrValidation)
		}

		if derr = tx.Suggestions().Create(ctx, tx.DB(), s); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				// A concurrent pass won the insert; keep its row.
				return nil
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		persisted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return persisted, nil
}

func (uc *suggestionCommandsImpl) MarkViewed(ctx context.Context, suggestionID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, derr := tx.Suggestions().GetForUpdate(ctx, tx.DB(), suggestionID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrSuggestionNotFound)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		if derr = s.MarkViewed(actorID, uc.clock.Now()); derr != nil {
			if errors.Is(derr, suggestion.ErrNotSubject) {
				return errs.Mark(derr, ErrForbidden)
			}
			return errs.Mark(derr, ErrValidation)
		}

		if derr = tx.Suggestions().MarkViewed(ctx, tx.DB(), s); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (uc *suggestionCommandsImpl) loadOffers(ctx context.Context, reads shared.CommandReads, memberID uuid.UUID) ([]suggestion.BookOffer, error) {
	books, err := reads.AvailableBooksOf(ctx, memberID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	offers := make([]suggestion.BookOffer, 0, len(books))
	for _, b := range books {
		cond, cerr := suggestion.NewCondition(b.Condition)
		if cerr != nil {
			// Directory rows with unknown conditions still participate,
			// they just earn no condition score.
			cond = suggestion.Condition(b.Condition)
		}
		offers = append(offers, suggestion.BookOffer{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			ISBN:      b.ISBN,
			Category:  b.Category,
			Condition: cond,
		})
	}
	return offers, nil
}

func (uc *suggestionCommandsImpl) loadWants(ctx context.Context, reads shared.CommandReads, memberID uuid.UUID) ([]suggestion.Want, error) {
	rows, err := reads.WantsOf(ctx, memberID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	wants := make([]suggestion.Want, 0, len(rows))
	for _, w := range rows {
		wants = append(wants, suggestion.Want{
			Title:    w.Title,
			Author:   w.Author,
			ISBN:     w.ISBN,
			Category: w.Category,
			Priority: w.Priority,
		})
	}
	return wants, nil
}
