package request

import (
	"time"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/usecase/commands"
)

type ProposeMeetingRequest struct {
	Location string    `json:"location" binding:"required,max=255"`
	Lat      *float64  `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng      *float64  `json:"lng" binding:"omitempty,min=-180,max=180"`
	Time     time.Time `json:"time" binding:"required"`
	Notes    string    `json:"notes" binding:"max=500"`
}

func (r *ProposeMeetingRequest) ToInput() commands.ProposeMeetingInput {
	input := commands.ProposeMeetingInput{
		Location: r.Location,
		Time:     r.Time,
		Notes:    r.Notes,
	}
	if r.Lat != nil && r.Lng != nil {
		input.Coordinates = &exchange.Coordinates{Lat: *r.Lat, Lng: *r.Lng}
	}
	return input
}

type CancelExchangeRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details" binding:"max=500"`
}

func (r *CancelExchangeRequest) ToInput() commands.CancelExchangeInput {
	return commands.CancelExchangeInput{
		Reason:  r.Reason,
		Details: r.Details,
	}
}
