//go:build unit

package exchange_test

import (
	"testing"
	"time"

	"bookswap/internal/domain/exchange"
	"bookswap/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccepted(t *testing.T) (*exchange.Exchange, *builder.ExchangeBuilder) {
	t.Helper()
	b := builder.NewExchangeBuilder()
	ex, err := b.BuildDomain()
	require.NoError(t, err)
	require.NotNil(t, ex)
	return ex, b
}

func proposeAndConfirm(t *testing.T, ex *exchange.Exchange, b *builder.ExchangeBuilder, now time.Time) {
	t.Helper()
	require.NoError(t, ex.ProposeMeeting(b.MemberAID, "Central library", nil, now.Add(24*time.Hour), "", now))
	_, err := ex.ConfirmMeeting(b.MemberAID, now)
	require.NoError(t, err)
	scheduled, err := ex.ConfirmMeeting(b.MemberBID, now)
	require.NoError(t, err)
	require.True(t, scheduled)
}

func TestNewFromAcceptedRequest(t *testing.T) {
	t.Run("born accepted with version 1", func(t *testing.T) {
		ex, b := newAccepted(t)

		assert.NotEqual(t, uuid.Nil, ex.ID())
		assert.Equal(t, b.RequestID, ex.RequestID())
		assert.Equal(t, exchange.StatusAccepted, ex.Status())
		assert.EqualValues(t, 1, ex.Version())
		assert.Len(t, ex.Books(), 2)
		assert.Nil(t, ex.Meeting())
	})

	t.Run("requires at least one book", func(t *testing.T) {
		b := builder.NewExchangeBuilder().WithBooks()
		ex, err := b.BuildDomain()
		require.Nil(t, ex)
		require.ErrorIs(t, err, exchange.ErrNoBooks)
	})
}

func TestProposeMeeting(t *testing.T) {
	now := time.Now()

	t.Run("party proposes a meeting", func(t *testing.T) {
		ex, b := newAccepted(t)

		err := ex.ProposeMeeting(b.MemberBID, "Ueno park", nil, now.Add(time.Hour), "by the fountain", now)
		require.NoError(t, err)

		m := ex.Meeting()
		require.NotNil(t, m)
		assert.Equal(t, "Ueno park", m.Location())
		assert.Equal(t, b.MemberBID, m.ScheduledBy())
		assert.False(t, m.ConfirmedByA())
		assert.False(t, m.ConfirmedByB())
		assert.Equal(t, exchange.StatusAccepted, ex.Status())
	})

	t.Run("non-party may not propose", func(t *testing.T) {
		ex, _ := newAccepted(t)
		err := ex.ProposeMeeting(uuid.New(), "Ueno park", nil, now.Add(time.Hour), "", now)
		assert.ErrorIs(t, err, exchange.ErrNotParty)
	})

	t.Run("meeting validation", func(t *testing.T) {
		ex, b := newAccepted(t)

		assert.ErrorIs(t, ex.ProposeMeeting(b.MemberAID, "  ", nil, now.Add(time.Hour), "", now), exchange.ErrEmptyLocation)
		assert.ErrorIs(t, ex.ProposeMeeting(b.MemberAID, "Ueno park", nil, now.Add(-time.Hour), "", now), exchange.ErrMeetingInPast)
		assert.ErrorIs(t, ex.ProposeMeeting(b.MemberAID, "Ueno park", nil, now, "", now), exchange.ErrMeetingInPast)
	})

	t.Run("re-proposing resets confirmations and reopens scheduling", func(t *testing.T) {
		ex, b := newAccepted(t)
		proposeAndConfirm(t, ex, b, now)
		require.Equal(t, exchange.StatusMeetingScheduled, ex.Status())

		err := ex.ProposeMeeting(b.MemberBID, "Somewhere else", nil, now.Add(48*time.Hour), "", now)
		require.NoError(t, err)

		assert.Equal(t, exchange.StatusAccepted, ex.Status())
		assert.False(t, ex.Meeting().ConfirmedByA())
		assert.False(t, ex.Meeting().ConfirmedByB())
		assert.Equal(t, "Somewhere else", ex.Meeting().Location())
	})

	t.Run("not proposable once in progress", func(t *testing.T) {
		ex, b := newAccepted(t)
		proposeAndConfirm(t, ex, b, now)
		require.NoError(t, ex.Start(b.MemberAID, now))

		err := ex.ProposeMeeting(b.MemberAID, "Too late", nil, now.Add(time.Hour), "", now)
		assert.ErrorIs(t, err, exchange.ErrMeetingNotProposable)
	})
}

func TestConfirmMeeting(t *testing.T) {
	now := time.Now()

	t.Run("second confirmation schedules the meeting", func(t *testing.T) {
		ex, b := newAccepted(t)
		require.NoError(t, ex.ProposeMeeting(b.MemberAID, "Central library", nil, now.Add(time.Hour), "", now))

		scheduled, err := ex.ConfirmMeeting(b.MemberAID, now)
		require.NoError(t, err)
		assert.False(t, scheduled)
		assert.Equal(t, exchange.StatusAccepted, ex.Status())

		scheduled, err = ex.ConfirmMeeting(b.MemberBID, now)
		require.NoError(t, err)
		assert.True(t, scheduled)
		assert.Equal(t, exchange.StatusMeetingScheduled, ex.Status())
	})

	t.Run("re-confirming is a no-op", func(t *testing.T) {
		ex, b := newAccepted(t)
		require.NoError(t, ex.ProposeMeeting(b.MemberAID, "Central library", nil, now.Add(time.Hour), "", now))

		_, err := ex.ConfirmMeeting(b.MemberAID, now)
		require.NoError(t, err)
		versionBefore := ex.Version()

		scheduled, err := ex.ConfirmMeeting(b.MemberAID, now)
		require.NoError(t, err)
		assert.False(t, scheduled)
		assert.Equal(t, versionBefore, ex.Version())
	})

	t.Run("confirming without a proposal fails", func(t *testing.T) {
		ex, b := newAccepted(t)
		_, err := ex.ConfirmMeeting(b.MemberAID, now)
		assert.ErrorIs(t, err, exchange.ErrNoMeetingProposed)
	})
}

func TestStart(t *testing.T) {
	now := time.Now()

	t.Run("starts a fully confirmed exchange", func(t *testing.T) {
		ex, b := newAccepted(t)
		proposeAndConfirm(t, ex, b, now)

		require.NoError(t, ex.Start(b.MemberBID, now))
		assert.Equal(t, exchange.StatusInProgress, ex.Status())
	})

	t.Run("cannot start before both confirm", func(t *testing.T) {
		ex, b := newAccepted(t)
		require.NoError(t, ex.ProposeMeeting(b.MemberAID, "Central library", nil, now.Add(time.Hour), "", now))
		_, err := ex.ConfirmMeeting(b.MemberAID, now)
		require.NoError(t, err)

		assert.ErrorIs(t, ex.Start(b.MemberAID, now), exchange.ErrMeetingNotConfirmed)
	})
}

func TestConfirmCompletion(t *testing.T) {
	now := time.Now()

	startExchange := func(t *testing.T) (*exchange.Exchange, *builder.ExchangeBuilder) {
		t.Helper()
		ex, b := newAccepted(t)
		proposeAndConfirm(t, ex, b, now)
		require.NoError(t, ex.Start(b.MemberAID, now))
		return ex, b
	}

	t.Run("second confirmation completes", func(t *testing.T) {
		ex, b := startExchange(t)

		completed, err := ex.ConfirmCompletion(b.MemberAID, now)
		require.NoError(t, err)
		assert.False(t, completed)
		assert.True(t, ex.MemberAConfirmed())
		assert.Nil(t, ex.CompletedAt())

		later := now.Add(time.Minute)
		completed, err = ex.ConfirmCompletion(b.MemberBID, later)
		require.NoError(t, err)
		assert.True(t, completed)
		assert.Equal(t, exchange.StatusCompleted, ex.Status())
		require.NotNil(t, ex.CompletedAt())
		assert.Equal(t, later, *ex.CompletedAt())
	})

	t.Run("re-confirming is a no-op", func(t *testing.T) {
		ex, b := startExchange(t)

		_, err := ex.ConfirmCompletion(b.MemberAID, now)
		require.NoError(t, err)
		versionBefore := ex.Version()

		completed, err := ex.ConfirmCompletion(b.MemberAID, now)
		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, versionBefore, ex.Version())
	})

	t.Run("cannot confirm before the exchange starts", func(t *testing.T) {
		ex, b := newAccepted(t)
		_, err := ex.ConfirmCompletion(b.MemberAID, now)
		assert.ErrorIs(t, err, exchange.ErrInvalidTransition)
	})

	t.Run("cannot confirm after completion", func(t *testing.T) {
		ex, b := startExchange(t)
		_, err := ex.ConfirmCompletion(b.MemberAID, now)
		require.NoError(t, err)
		_, err = ex.ConfirmCompletion(b.MemberBID, now)
		require.NoError(t, err)

		_, err = ex.ConfirmCompletion(b.MemberAID, now)
		assert.ErrorIs(t, err, exchange.ErrTerminalState)
	})
}

func TestCancel(t *testing.T) {
	now := time.Now()

	t.Run("party cancels from any non-terminal state", func(t *testing.T) {
		for _, advance := range []func(*exchange.Exchange, *builder.ExchangeBuilder){
			func(ex *exchange.Exchange, b *builder.ExchangeBuilder) {},
			func(ex *exchange.Exchange, b *builder.ExchangeBuilder) {
				proposeAndConfirm(t, ex, b, now)
			},
			func(ex *exchange.Exchange, b *builder.ExchangeBuilder) {
				proposeAndConfirm(t, ex, b, now)
				require.NoError(t, ex.Start(b.MemberAID, now))
			},
		} {
			ex, b := newAccepted(t)
			advance(ex, b)

			err := ex.Cancel(b.MemberAID, false, exchange.CancelUserCancelled, "changed my mind", now)
			require.NoError(t, err)
			assert.Equal(t, exchange.StatusCancelled, ex.Status())
			require.NotNil(t, ex.Cancellation())
			assert.Equal(t, exchange.CancelUserCancelled, ex.Cancellation().Reason)
		}
	})

	t.Run("non-party needs admin", func(t *testing.T) {
		ex, _ := newAccepted(t)
		stranger := uuid.New()

		err := ex.Cancel(stranger, false, exchange.CancelDispute, "", now)
		assert.ErrorIs(t, err, exchange.ErrNotParty)

		err = ex.Cancel(stranger, true, exchange.CancelAdminCancelled, "fraud report", now)
		require.NoError(t, err)
		assert.Equal(t, exchange.StatusCancelled, ex.Status())
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		ex, b := newAccepted(t)
		require.NoError(t, ex.Cancel(b.MemberAID, false, exchange.CancelUserCancelled, "", now))

		err := ex.Cancel(b.MemberAID, false, exchange.CancelUserCancelled, "", now)
		assert.ErrorIs(t, err, exchange.ErrTerminalState)
	})
}

func TestVersionBumps(t *testing.T) {
	now := time.Now()

	ex, b := newAccepted(t)
	require.EqualValues(t, 1, ex.Version())

	require.NoError(t, ex.ProposeMeeting(b.MemberAID, "Central library", nil, now.Add(time.Hour), "", now))
	assert.EqualValues(t, 2, ex.Version())

	_, err := ex.ConfirmMeeting(b.MemberAID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, ex.Version())

	_, err = ex.ConfirmMeeting(b.MemberBID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, ex.Version())
}
