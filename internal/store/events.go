package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"navtree/internal/model"

	"github.com/google/uuid"
)

// AppendEvent records a mutation of menuID in the event log.
func (s Store) AppendEvent(ctx context.Context, typ, menuID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("missing event type")
	}
	menuID = strings.TrimSpace(menuID)
	if menuID == "" {
		return errors.New("missing menu id")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO events(event_id, menu_id, type, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), menuID, typ, string(pb), time.Now().UTC().UnixMilli())
	return err
}

// ReadEvents returns events oldest first. An empty menuID reads every menu; limit <= 0
// means no limit.
func (s Store) ReadEvents(ctx context.Context, menuID string, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, issued_at_unixms, type, menu_id, payload_json FROM events`
	var args []any
	if menuID = strings.TrimSpace(menuID); menuID != "" {
		q += ` WHERE menu_id = ?`
		args = append(args, menuID)
	}
	q += ` ORDER BY issued_at_unixms ASC, rowid ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var id, typ, mid, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &typ, &mid, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, model.Event{
			ID:      id,
			TS:      time.UnixMilli(tsMs).UTC(),
			Type:    typ,
			MenuID:  mid,
			Payload: payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
