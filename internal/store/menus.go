package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"navtree/internal/model"
)

var ErrMenuNotFound = errors.New("menu not found")

const menuColumns = `id, name, location, type, status, description, items_json, created_at_unixms, updated_at_unixms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenu(r rowScanner) (model.Menu, error) {
	var (
		m                    model.Menu
		location, typ, stat  string
		itemsJSON            string
		createdMs, updatedMs int64
	)
	if err := r.Scan(&m.ID, &m.Name, &location, &typ, &stat, &m.Description, &itemsJSON, &createdMs, &updatedMs); err != nil {
		return model.Menu{}, err
	}
	m.Location = model.Location(location)
	m.Type = model.MenuType(typ)
	m.Status = model.Status(stat)
	m.CreatedAt = time.UnixMilli(createdMs).UTC()
	m.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	if err := json.Unmarshal([]byte(itemsJSON), &m.Items); err != nil {
		return model.Menu{}, fmt.Errorf("decode items of menu %s: %w", m.ID, err)
	}
	if m.Items == nil {
		m.Items = []model.MenuItem{}
	}
	return m, nil
}

func (s Store) ListMenus(ctx context.Context) ([]model.Menu, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY created_at_unixms ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Menu{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s Store) GetMenu(ctx context.Context, id string) (model.Menu, error) {
	id = strings.TrimSpace(id)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Menu{}, err
	}
	defer db.Close()

	m, err := scanMenu(db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Menu{}, fmt.Errorf("%w: %s", ErrMenuNotFound, id)
	}
	return m, err
}

// SaveMenu validates and upserts m, replacing its whole item tree. CreatedAt is
// kept from the stored row; UpdatedAt is set to now. The saved menu is returned.
func (s Store) SaveMenu(ctx context.Context, m model.Menu) (model.Menu, error) {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		return model.Menu{}, errors.New("missing menu id")
	}
	if strings.TrimSpace(m.Name) == "" {
		return model.Menu{}, errors.New("missing menu name")
	}
	if err := model.ValidateTree(m); err != nil {
		return model.Menu{}, err
	}
	if m.Items == nil {
		m.Items = []model.MenuItem{}
	}
	if m.Type == "" {
		m.Type = model.MenuTypeMain
	}
	if m.Status == "" {
		m.Status = model.StatusActive
	}
	itemsJSON, err := json.Marshal(m.Items)
	if err != nil {
		return model.Menu{}, err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Menu{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Menu{}, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	var createdMs int64
	err = tx.QueryRowContext(ctx, `SELECT created_at_unixms FROM menus WHERE id = ?`, m.ID).Scan(&createdMs)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
	case err != nil:
		return model.Menu{}, err
	default:
		m.CreatedAt = time.UnixMilli(createdMs).UTC()
	}
	m.UpdatedAt = now

	if _, err := tx.ExecContext(ctx, `INSERT INTO menus(`+menuColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			type = excluded.type,
			status = excluded.status,
			description = excluded.description,
			items_json = excluded.items_json,
			updated_at_unixms = excluded.updated_at_unixms`,
		m.ID, m.Name, string(m.Location), string(m.Type), string(m.Status), m.Description, string(itemsJSON),
		m.CreatedAt.UnixMilli(), m.UpdatedAt.UnixMilli()); err != nil {
		return model.Menu{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Menu{}, err
	}
	m.CreatedAt = time.UnixMilli(m.CreatedAt.UnixMilli()).UTC()
	m.UpdatedAt = time.UnixMilli(m.UpdatedAt.UnixMilli()).UTC()
	return m, nil
}

func (s Store) DeleteMenu(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMenuNotFound, id)
	}
	return nil
}
