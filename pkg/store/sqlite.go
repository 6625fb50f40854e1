package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
)

// SQLiteStore keeps templates in a single SQLite database.
type SQLiteStore struct {
	conn *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and applies
// migrations. If path is empty, defaults to <data dir>/templates.db.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = filepath.Join(config.DataDir(), "templates.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create db directory")
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open sqlite")
	}
	// SQLite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: conn, path: path, now: time.Now}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "migrate")
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sections INTEGER NOT NULL DEFAULT 0,
			body TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_updated ON templates(updated_at)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "migration failed: %s", m[:min(len(m), 40)])
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*document.Document, error) {
	var body string
	err := s.conn.QueryRowContext(ctx, `SELECT body FROM templates WHERE id = ?`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load template %s", id)
	}
	return pkgio.UnmarshalJSON([]byte(body))
}

func (s *SQLiteStore) Put(ctx context.Context, doc *document.Document) error {
	if err := checkDoc(doc); err != nil {
		return err
	}
	body, err := pkgio.MarshalJSON(doc)
	if err != nil {
		return err
	}
	sum := summarize(doc, s.now())
	ms := sum.Updated.UnixMilli()

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO templates (id, name, sections, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sections = excluded.sections,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		sum.ID, sum.Name, sum.Sections, string(body), ms, ms)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save template %s", sum.ID)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete template %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, sections, updated_at FROM templates ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list templates")
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum Summary
			ms  int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Sections, &ms); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "scan template")
		}
		sum.Updated = time.UnixMilli(ms).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list templates")
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ Store = (*SQLiteStore)(nil)
