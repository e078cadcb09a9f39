package repository

import (
	"context"

	"bookswap/internal/infra"
	"bookswap/internal/infra/db"
	"bookswap/internal/pkg/pgconv"
	"bookswap/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// EventRepository appends domain events to the outbox table; a separate
// relay process drains them towards the notification collaborator.
type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) Append(ctx context.Context, dbtx db.DBTX, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal domain event", err)
	}

	sqlStr, args, err := dialect.Insert("domain_events").Prepared(true).Rows(goqu.Record{
		"id":          pgconv.UUIDToPgtype(uuid.New()),
		"topic":       event.Topic,
		"payload":     string(payload),
		"occurred_at": pgconv.TimeToPgtype(event.OccurredAt),
	}).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build event insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to append domain event", err)
	}
	return nil
}
