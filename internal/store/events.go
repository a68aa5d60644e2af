package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// FocusEvent records one accepted gesture trigger: which item entered
// focus and when, plus the release time once the hold elapsed.
type FocusEvent struct {
	ID          string     `json:"id"`
	ItemID      string     `json:"item_id"`
	ItemTitle   string     `json:"item_title"`
	TriggeredAt time.Time  `json:"triggered_at"`
	ReleasedAt  *time.Time `json:"released_at,omitempty"`
}

// EventRepository provides operations on recorded focus events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the focus event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts a new focus event and returns its generated id.
func (r *EventRepository) Create(itemID, itemTitle string, triggeredAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(
		`INSERT INTO focus_events (id, item_id, item_title, triggered_at) VALUES (?, ?, ?, ?)`,
		id, itemID, itemTitle, triggeredAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// MarkReleased records the release time on an event.
func (r *EventRepository) MarkReleased(id string, releasedAt time.Time) error {
	res, err := r.db.Exec(
		`UPDATE focus_events SET released_at = ? WHERE id = ?`,
		releasedAt, id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the most recent focus events, newest first.
func (r *EventRepository) List(limit int) ([]FocusEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, item_id, item_title, triggered_at, released_at
		 FROM focus_events
		 ORDER BY triggered_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []FocusEvent
	for rows.Next() {
		var e FocusEvent
		var released sql.NullTime
		if err := rows.Scan(&e.ID, &e.ItemID, &e.ItemTitle, &e.TriggeredAt, &released); err != nil {
			return nil, err
		}
		if released.Valid {
			t := released.Time
			e.ReleasedAt = &t
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
