package request

// Action is a response-side operation on a pending request.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionCancel Action = "cancel"
)

// transitions is the single authority on request status changes. A missing
// entry means the action is illegal from that status.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionAccept: StatusAccepted,
		ActionReject: StatusRejected,
		ActionCancel: StatusCancelled,
	},
}

func nextStatus(from Status, action Action) (Status, error) {
	to, ok := transitions[from][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}
