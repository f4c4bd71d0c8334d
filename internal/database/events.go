package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (q *Queries) LogEvent(ctx context.Context, userEmail string, eventType string, payload interface{}) error {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `INSERT INTO usage_events (id, user_email, event_type, payload) VALUES ($1, $2, $3, $4)`
	_, err = q.db.Exec(ctx, query, uuid.New(), userEmail, eventType, eventBytes)
	if err != nil {
		return err
	}

	return nil
}

type Event struct {
	ID        uuid.UUID       `json:"id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

func (q *Queries) GetEventsSince(ctx context.Context, userEmail string, since time.Time) ([]Event, error) {
	query := `
		SELECT id, event_type, event_time, payload
		FROM usage_events
		WHERE user_email = $1 AND event_time > $2
		ORDER BY event_time ASC
		LIMIT 100
	`
	rows, err := q.db.Query(ctx, query, userEmail, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []Event{}, nil
	}

	return events, nil
}
