// Package visits keeps a privacy-conscious log of page views: hashed IPs
// only, a twelve month retention window, and the language each view got.
package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

// Visit is one recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Lang      string    `json:"lang"`
	Outcome   string    `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}

// LanguageStat counts views per language and how many of them fell back.
type LanguageStat struct {
	Lang      string `json:"lang"`
	Views     int64  `json:"views"`
	Fallbacks int64  `json:"fallbacks"`
}

type Stats struct {
	TotalVisitors    int64          `json:"total_visitors"`
	UniqueVisitors   int64          `json:"unique_visitors"`
	VisitorsToday    int64          `json:"visitors_today"`
	VisitorsThisWeek int64          `json:"visitors_this_week"`
	FallbackLoads    int64          `json:"fallback_loads"`
	Languages        []LanguageStat `json:"languages"`
	RecentVisitors   []Visit        `json:"recent_visitors"`
}

type Store struct {
	db     *sql.DB
	salt   string
	logger *zap.Logger
}

// Open creates or migrates the database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visits db: %w", err)
	}
	// One writer at a time keeps sqlite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{db: db, salt: salt, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("visitor tracking initialized", zap.String("path", path))
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		lang TEXT,
		outcome TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create visitors table: %w", err)
	}

	// Databases created before language tracking lack these columns.
	for _, column := range []string{"lang", "outcome"} {
		var exists int
		err := s.db.QueryRow(
			`SELECT COUNT(*) FROM pragma_table_info('visitors') WHERE name = ?`, column,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("inspect visitors table: %w", err)
		}
		if exists == 0 {
			if _, err := s.db.Exec(`ALTER TABLE visitors ADD COLUMN ` + column + ` TEXT`); err != nil {
				return fmt.Errorf("add %s column: %w", column, err)
			}
			s.logger.Info("migrated visitors table", zap.String("column", column))
		}
	}
	return nil
}

// HashIP returns a truncated salted hash, stable for the life of the
// process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores v. A zero timestamp means now.
func (s *Store) Record(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, lang, outcome, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Lang, v.Outcome, v.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Cleanup removes visits older than twelve months and returns how many.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM visitors
		WHERE timestamp < datetime('now', '-12 months')
	`)
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		s.logger.Info("privacy cleanup removed old visits", zap.Int64("rows", n))
	}
	return n, nil
}

// Stats aggregates the log for the admin dashboard.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		dst   *int64
		query string
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')`},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')`},
		{&stats.FallbackLoads, `SELECT COUNT(*) FROM visitors WHERE outcome = 'fallback'`},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("visit stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(lang, ''), COUNT(*),
		       SUM(CASE WHEN outcome = 'fallback' THEN 1 ELSE 0 END)
		FROM visitors
		GROUP BY lang
		ORDER BY COUNT(*) DESC, lang
	`)
	if err != nil {
		return nil, fmt.Errorf("language stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ls LanguageStat
		if err := rows.Scan(&ls.Lang, &ls.Views, &ls.Fallbacks); err != nil {
			continue
		}
		stats.Languages = append(stats.Languages, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("language stats: %w", err)
	}

	stats.RecentVisitors, err = s.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Recent returns the latest visits, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''),
		       COALESCE(lang, ''), COALESCE(outcome, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts any
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Lang, &v.Outcome, &ts); err != nil {
			s.logger.Warn("skipping unreadable visit row", zap.Error(err))
			continue
		}
		v.Timestamp = parseTimestamp(ts)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// parseTimestamp accepts what the driver hands back for a DATETIME
// column: a parsed time or the stored text.
func parseTimestamp(raw any) time.Time {
	switch ts := raw.(type) {
	case time.Time:
		return ts.UTC()
	case string:
		t, _ := time.Parse(timeLayout, ts)
		return t
	case []byte:
		t, _ := time.Parse(timeLayout, string(ts))
		return t
	}
	return time.Time{}
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
