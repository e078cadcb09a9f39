package exchange

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coordinates is an optional lat/lng pair for the meeting point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Meeting is the embedded scheduling sub-state of an exchange: the proposed
// place and time plus each party's independent confirmation.
type Meeting struct {
	location     string
	coordinates  *Coordinates
	time         time.Time
	notes        string
	confirmedByA bool
	confirmedByB bool
	scheduledBy  uuid.UUID
}

func NewMeeting(location string, coords *Coordinates, at time.Time, notes string, scheduledBy uuid.UUID, now time.Time) (*Meeting, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}
	if len(location) > MaxLocationLength {
		return nil, ErrLocationTooLong
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}
	// Validated at proposal time only; a meeting is never invalidated
	// retroactively by the clock.
	if !at.After(now) {
		return nil, ErrMeetingInPast
	}

	return &Meeting{
		location:    location,
		coordinates: coords,
		time:        at,
		notes:       notes,
		scheduledBy: scheduledBy,
	}, nil
}

func ReconstructMeeting(location string, coords *Coordinates, at time.Time, notes string, confirmedByA, confirmedByB bool, scheduledBy uuid.UUID) *Meeting {
	return &Meeting{
		location:     location,
		coordinates:  coords,
		time:         at,
		notes:        notes,
		confirmedByA: confirmedByA,
		confirmedByB: confirmedByB,
		scheduledBy:  scheduledBy,
	}
}

func (m *Meeting) confirm(p Party) {
	switch p {
	case PartyA:
		m.confirmedByA = true
	case PartyB:
		m.confirmedByB = true
	}
}

func (m *Meeting) confirmed(p Party) bool {
	if p == PartyA {
		return m.confirmedByA
	}
	return m.confirmedByB
}

func (m *Meeting) BothConfirmed() bool {
	return m.confirmedByA && m.confirmedByB
}

func (m *Meeting) Location() string          { return m.location }
func (m *Meeting) Coordinates() *Coordinates { return m.coordinates }
func (m *Meeting) Time() time.Time           { return m.time }
func (m *Meeting) Notes() string             { return m.notes }
func (m *Meeting) ConfirmedByA() bool        { return m.confirmedByA }
func (m *Meeting) ConfirmedByB() bool        { return m.confirmedByB }
func (m *Meeting) ScheduledBy() uuid.UUID    { return m.scheduledBy }
