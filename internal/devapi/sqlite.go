package devapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SqliteStorage keeps every object in a single SQLite table.
//
// Tables:
//
//	objects(id, kind, data)  id INTEGER PRIMARY KEY AUTOINCREMENT
type SqliteStorage struct {
	db *sql.DB
}

func NewSqliteStorage(dbPath string) (*SqliteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps writers serialized without busy retries.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS objects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) Close() error {
	return s.db.Close()
}

func (s *SqliteStorage) List(kind string) ([]Object, error) {
	rows, err := s.db.Query("SELECT id, data FROM objects WHERE kind = ? ORDER BY id", kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Object
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, err
		}
		out = append(out, Object{ID: id, Data: data})
	}
	return out, rows.Err()
}

func (s *SqliteStorage) Get(kind string, id int64) (Object, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT data FROM objects WHERE kind = ? AND id = ?", kind, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Object{}, false, nil
	}
	if err != nil {
		return Object{}, false, err
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Object{}, false, err
	}
	return Object{ID: id, Data: data}, true, nil
}

func (s *SqliteStorage) Create(kind string, data map[string]any) (int64, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec("INSERT INTO objects (kind, data) VALUES (?, ?)", kind, string(raw))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SqliteStorage) Replace(kind string, id int64, data map[string]any) (bool, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return false, err
	}
	res, err := s.db.Exec("UPDATE objects SET data = ? WHERE kind = ? AND id = ?", string(raw), kind, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SqliteStorage) Delete(kind string, id int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM objects WHERE kind = ? AND id = ?", kind, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

var _ Storage = (*SqliteStorage)(nil)
