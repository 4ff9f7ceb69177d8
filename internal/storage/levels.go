package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
)

// ErrLevelNotFound is returned when no level has the requested id.
var ErrLevelNotFound = errors.New("storage: level not found")

// LevelInfo describes a stored level without its elements.
type LevelInfo struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// encodeLevel serializes the elements of d. The id lives in its own column.
func encodeLevel(d level.Descriptor) (string, error) {
	d.ID = ""
	if d.Blocks == nil {
		d.Blocks = []level.Element{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode level: %w", err)
	}
	return string(data), nil
}

// CreateLevel stores d under a freshly generated id and returns that id.
func (s *Store) CreateLevel(d level.Descriptor) (string, error) {
	doc, err := encodeLevel(d)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if _, err := s.db.Exec("INSERT INTO levels (id, doc) VALUES (?, ?)", id, doc); err != nil {
		return "", fmt.Errorf("storage: cannot create level: %w", err)
	}
	return id, nil
}

// PutLevel stores d under id, replacing any existing document.
// Reports whether the level was newly created. Creation order is kept on
// replacement.
func (s *Store) PutLevel(id string, d level.Descriptor) (bool, error) {
	doc, err := encodeLevel(d)
	if err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM levels WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query level: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO levels (id, doc) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP`,
		id, doc,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save level: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit level: %w", err)
	}
	return exists == 0, nil
}

// UpdateLevel replaces the document of an existing level.
func (s *Store) UpdateLevel(id string, d level.Descriptor) error {
	doc, err := encodeLevel(d)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(
		"UPDATE levels SET doc = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		doc, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update level: %w", err)
	}
	return requireRow(res)
}

// Level returns the level stored under id.
func (s *Store) Level(id string) (level.Descriptor, error) {
	var doc string
	err := s.db.QueryRow("SELECT doc FROM levels WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return level.Descriptor{}, ErrLevelNotFound
	}
	if err != nil {
		return level.Descriptor{}, fmt.Errorf("storage: cannot query level: %w", err)
	}

	d, err := level.Parse([]byte(doc))
	if err != nil {
		return level.Descriptor{}, fmt.Errorf("storage: level %s: %w", id, err)
	}
	d.ID = id
	return d, nil
}

// DeleteLevel removes the level stored under id.
func (s *Store) DeleteLevel(id string) error {
	res, err := s.db.Exec("DELETE FROM levels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}
	return requireRow(res)
}

// LevelIDs returns every level id in creation order.
func (s *Store) LevelIDs() ([]string, error) {
	infos, err := s.Levels()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids, nil
}

// Levels returns metadata for every level in creation order.
func (s *Store) Levels() ([]LevelInfo, error) {
	rows, err := s.db.Query("SELECT id, created_at, updated_at FROM levels ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	infos := []LevelInfo{}
	for rows.Next() {
		var info LevelInfo
		var createdAt, updatedAt any
		if err := rows.Scan(&info.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count affected rows: %w", err)
	}
	if n == 0 {
		return ErrLevelNotFound
	}
	return nil
}
