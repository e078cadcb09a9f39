//go:build e2e

package suggestion_test

import (
	"net/http"
	"testing"

	"bookswap/internal/handler/dto/response"
	"bookswap/tests/common/authtest"
	"bookswap/tests/common/dbtest"
	"bookswap/tests/common/httptest"
	"bookswap/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const suggestionsURL = "/api/suggestions"

type SuggestionSuite struct {
	e2e.SharedSuite
}

func (s *SuggestionSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSuggestionSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SuggestionSuite))
}

// seedMutualMatch creates two members whose offers and wants mirror each
// other by exact title, so a generation pass for either one yields a
// suggestion well above the score floor.
func (s *SuggestionSuite) seedMutualMatch(t *testing.T) (subjectID, candidateID uuid.UUID, subjectToken string) {
	goodStanding := dbtest.MemberOpts{
		TrustScore:         80,
		AverageRating:      4.5,
		CompletedExchanges: 12,
		Verified:           true,
	}
	subjectID = dbtest.CreateTestMember(t, s.DB, goodStanding)
	candidateID = dbtest.CreateTestMember(t, s.DB, goodStanding)

	dbtest.CreateTestBook(t, s.DB, subjectID, dbtest.BookOpts{
		Title: "Dune", Author: "Frank Herbert", Category: "sci-fi", Condition: "like_new", Available: true,
	})
	dbtest.CreateTestBook(t, s.DB, candidateID, dbtest.BookOpts{
		Title: "Hyperion", Author: "Dan Simmons", Category: "sci-fi", Condition: "like_new", Available: true,
	})

	dbtest.AddTestWant(t, s.DB, subjectID, dbtest.WantOpts{Title: "Hyperion", Priority: 9})
	dbtest.AddTestWant(t, s.DB, candidateID, dbtest.WantOpts{Title: "Dune", Priority: 9})

	subjectToken = authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, subjectID, "member")
	return subjectID, candidateID, subjectToken
}

func (s *SuggestionSuite) generate(t *testing.T, token string) response.GenerateSuggestionsResponse {
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, suggestionsURL+"/generate", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "generation should succeed")

	var res response.GenerateSuggestionsResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

func (s *SuggestionSuite) list(t *testing.T, token, query string) []*response.SuggestionListItemResponse {
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, suggestionsURL+query, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var items []*response.SuggestionListItemResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
	return items
}

func (s *SuggestionSuite) TestGenerate() {
	s.Run("Normal case: mutual interest yields one suggestion with paired books", func() {
		t := s.T()
		_, candidateID, token := s.seedMutualMatch(t)

		res := s.generate(t, token)
		require.Equal(t, 1, res.Generated)
		require.Equal(t, 0, res.Skipped)

		items := s.list(t, token, "")
		require.Len(t, items, 1)
		require.Equal(t, candidateID.String(), items[0].CandidateID)
		require.GreaterOrEqual(t, items[0].MatchScore, 0.35)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, suggestionsURL+"/"+items[0].ID, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var detail response.SuggestionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &detail))
		require.Len(t, detail.Pairs, 1)
		require.Equal(t, "Dune", detail.Pairs[0].MyBookTitle)
		require.Equal(t, "Hyperion", detail.Pairs[0].TheirBookTitle)
		require.Contains(t, detail.Pairs[0].Reasons, "exact title match")
		require.Contains(t, detail.Pairs[0].Reasons, "high-priority want")
	})

	s.Run("Normal case: equal scores rank the candidate matching more books first", func() {
		t := s.T()
		goodStanding := dbtest.MemberOpts{
			TrustScore:         80,
			AverageRating:      4.5,
			CompletedExchanges: 12,
			Verified:           true,
		}
		subjectID := dbtest.CreateTestMember(t, s.DB, goodStanding)
		oneBookID := dbtest.CreateTestMember(t, s.DB, goodStanding)
		twoBooksID := dbtest.CreateTestMember(t, s.DB, goodStanding)

		// Identical profiles, exact-title matches everywhere, and uniform
		// priorities and conditions make the aggregate scores equal; only
		// the matching-book counts differ.
		dbtest.CreateTestBook(t, s.DB, subjectID, dbtest.BookOpts{Title: "Dune", Condition: "like_new", Available: true})
		dbtest.CreateTestBook(t, s.DB, subjectID, dbtest.BookOpts{Title: "Neuromancer", Condition: "like_new", Available: true})
		dbtest.AddTestWant(t, s.DB, subjectID, dbtest.WantOpts{Title: "Hyperion", Priority: 9})
		dbtest.AddTestWant(t, s.DB, subjectID, dbtest.WantOpts{Title: "Foundation", Priority: 9})
		dbtest.AddTestWant(t, s.DB, subjectID, dbtest.WantOpts{Title: "Snow Crash", Priority: 9})

		dbtest.CreateTestBook(t, s.DB, oneBookID, dbtest.BookOpts{Title: "Hyperion", Condition: "like_new", Available: true})
		dbtest.AddTestWant(t, s.DB, oneBookID, dbtest.WantOpts{Title: "Dune", Priority: 9})

		dbtest.CreateTestBook(t, s.DB, twoBooksID, dbtest.BookOpts{Title: "Foundation", Condition: "like_new", Available: true})
		dbtest.CreateTestBook(t, s.DB, twoBooksID, dbtest.BookOpts{Title: "Snow Crash", Condition: "like_new", Available: true})
		dbtest.AddTestWant(t, s.DB, twoBooksID, dbtest.WantOpts{Title: "Dune", Priority: 9})
		dbtest.AddTestWant(t, s.DB, twoBooksID, dbtest.WantOpts{Title: "Neuromancer", Priority: 9})

		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, subjectID, "member")
		res := s.generate(t, token)
		require.Equal(t, 2, res.Generated)

		items := s.list(t, token, "")
		require.Len(t, items, 2)
		require.Equal(t, items[0].MatchScore, items[1].MatchScore, "profiles are built to score identically")
		require.Equal(t, twoBooksID.String(), items[0].CandidateID, "richer match ranks first on a score tie")
		require.EqualValues(t, 2, items[0].MatchingBooks)
		require.EqualValues(t, 1, items[1].MatchingBooks)
	})

	s.Run("Normal case: a live unviewed suggestion survives a second pass", func() {
		t := s.T()
		_, _, token := s.seedMutualMatch(t)

		first := s.generate(t, token)
		require.Equal(t, 1, first.Generated)

		second := s.generate(t, token)
		require.Equal(t, 0, second.Generated)
		require.Equal(t, 1, second.Skipped)

		require.Len(t, s.list(t, token, ""), 1)
	})

	s.Run("Normal case: one-sided interest yields nothing", func() {
		t := s.T()
		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)

		subjectID := dbtest.CreateTestMember(t, s.DB, dbtest.MemberOpts{Verified: true})
		otherID := dbtest.CreateTestMember(t, s.DB, dbtest.MemberOpts{Verified: true})

		dbtest.CreateTestBook(t, s.DB, subjectID, dbtest.BookOpts{Title: "Dune", Available: true})
		dbtest.CreateTestBook(t, s.DB, otherID, dbtest.BookOpts{Title: "Hyperion", Available: true})
		dbtest.AddTestWant(t, s.DB, subjectID, dbtest.WantOpts{Title: "Hyperion", Priority: 9})
		// The other member wants a book the subject does not own.
		dbtest.AddTestWant(t, s.DB, otherID, dbtest.WantOpts{Title: "Neuromancer", Priority: 9})

		token := jwtHelper.GenerateToken(t, subjectID, "member")
		res := s.generate(t, token)
		require.Equal(t, 0, res.Generated)
		require.Empty(t, s.list(t, token, ""))
	})
}

func (s *SuggestionSuite) TestMarkViewed() {
	s.Run("Normal case: viewing hides the suggestion and frees the slot", func() {
		t := s.T()
		_, _, token := s.seedMutualMatch(t)

		s.generate(t, token)
		items := s.list(t, token, "")
		require.Len(t, items, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, suggestionsURL+"/"+items[0].ID+"/view", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		require.Empty(t, s.list(t, token, ""), "viewed suggestions drop out of the default list")

		visible := s.list(t, token, "?include_viewed=true")
		require.Len(t, visible, 1)
		require.True(t, visible[0].IsViewed)

		// A viewed suggestion is replaceable, so the next pass regenerates
		// and clears the viewed row instead of piling a new one on top.
		res := s.generate(t, token)
		require.Equal(t, 1, res.Generated)
		require.Len(t, s.list(t, token, ""), 1)
		require.Len(t, s.list(t, token, "?include_viewed=true"), 1, "replaced viewed rows must not accumulate")

		// A second view-and-regenerate cycle keeps the pair at one row.
		items = s.list(t, token, "")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, suggestionsURL+"/"+items[0].ID+"/view", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
		res = s.generate(t, token)
		require.Equal(t, 1, res.Generated)
		require.Len(t, s.list(t, token, "?include_viewed=true"), 1)
	})

	s.Run("Error case: only the subject may mark a suggestion viewed", func() {
		t := s.T()
		_, candidateID, token := s.seedMutualMatch(t)

		s.generate(t, token)
		items := s.list(t, token, "")
		require.Len(t, items, 1)

		candidateToken := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, candidateID, "member")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, suggestionsURL+"/"+items[0].ID+"/view", nil, candidateToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}
