package shared

import (
	"time"

	"github.com/google/uuid"
)

// Directory snapshots: read-only data owned by the member/book directory
// collaborator.

type MemberSnapshot struct {
	ID                 uuid.UUID
	Region             string
	TrustScore         float64
	AverageRating      float64
	CompletedExchanges int
	Verified           bool
	IsAdmin            bool
	LastActiveAt       time.Time
}

type BookSnapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Author    string
	ISBN      string
	Category  string
	Condition string
	Available bool
}

type WantSnapshot struct {
	MemberID uuid.UUID
	Title    string
	Author   string
	ISBN     string
	Category string
	Priority int
}
