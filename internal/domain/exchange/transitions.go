package exchange

// Action names a state-changing operation on an exchange.
type Action string

const (
	ActionScheduleMeeting Action = "schedule_meeting"
	ActionReopenMeeting   Action = "reopen_meeting"
	ActionStart           Action = "start"
	ActionComplete        Action = "complete"
	ActionCancel          Action = "cancel"
)

// transitions is the single authority on exchange status changes.
// Cancellation from any non-terminal state is handled structurally here
// rather than by a runtime special case.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionCancel: StatusCancelled,
	},
	StatusAccepted: {
		ActionScheduleMeeting: StatusMeetingScheduled,
		ActionCancel:          StatusCancelled,
	},
	StatusMeetingScheduled: {
		// Re-proposing a meeting drops back to accepted until both parties
		// confirm the new details.
		ActionReopenMeeting: StatusAccepted,
		ActionStart:         StatusInProgress,
		ActionCancel:        StatusCancelled,
	},
	StatusInProgress: {
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
}

func nextStatus(from Status, action Action) (Status, error) {
	to, ok := transitions[from][action]
	if !ok {
		if from.IsTerminal() {
			return "", ErrTerminalState
		}
		return "", ErrInvalidTransition
	}
	return to, nil
}
