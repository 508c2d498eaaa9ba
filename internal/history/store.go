package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"reelrank/internal/config"
	"reelrank/internal/media"
)

// Store manages ranking history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "history.db"))
}

// OpenPath opens the history database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records the start of a ranking run and returns it.
func (s *Store) BeginRun(ctx context.Context, mediaType media.Type) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		MediaType: mediaType,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, media_type, started_at, item_count) VALUES (?, ?, ?, 0)`,
		run.ID,
		string(run.MediaType),
		run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps a run as complete with its final item count.
func (s *Store) FinishRun(ctx context.Context, runID string, itemCount int) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, item_count = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		itemCount,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// SaveRanking stores the selected items of a run in one transaction.
func (s *Store) SaveRanking(ctx context.Context, runID string, items []media.Ranked) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ranking tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		signalsJSON, err := json.Marshal(item.Signals)
		if err != nil {
			return fmt.Errorf("marshal signals: %w", err)
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO ranked_items (
                run_id, rank, tmdb_id, imdb_id, title, year, media_type,
                composite, coverage, signals_json, matched_title, matched_url
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID,
			item.Rank,
			item.TMDBID,
			nullableString(item.IMDBID),
			item.Title(),
			item.Year,
			string(item.Type),
			nullableFloat(item.Composite),
			item.Coverage,
			string(signalsJSON),
			nullableString(item.MatchedTitle),
			nullableString(item.MatchedURL),
		)
		if err != nil {
			return fmt.Errorf("insert ranked item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ranking: %w", err)
	}
	return nil
}

// LatestRun returns the most recent run for a media type, or nil when the
// history is empty.
func (s *Store) LatestRun(ctx context.Context, mediaType media.Type) (*Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE media_type = ? ORDER BY started_at DESC LIMIT 1`,
		string(mediaType),
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs across all media types, newest
// first, up to limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RankingForRun returns the stored ranking rows of one run in rank order.
func (s *Store) RankingForRun(ctx context.Context, runID string) ([]RankedRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, rank, tmdb_id, imdb_id, title, year, media_type,
                composite, coverage, signals_json, matched_title, matched_url
         FROM ranked_items WHERE run_id = ? ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ranking: %w", err)
	}
	defer rows.Close()

	var records []RankedRecord
	for rows.Next() {
		var (
			record       RankedRecord
			imdbID       sql.NullString
			mediaType    string
			composite    sql.NullFloat64
			signalsRaw   sql.NullString
			matchedTitle sql.NullString
			matchedURL   sql.NullString
		)
		if err := rows.Scan(
			&record.RunID,
			&record.Rank,
			&record.TMDBID,
			&imdbID,
			&record.Title,
			&record.Year,
			&mediaType,
			&composite,
			&record.Coverage,
			&signalsRaw,
			&matchedTitle,
			&matchedURL,
		); err != nil {
			return nil, fmt.Errorf("scan ranked item: %w", err)
		}
		record.IMDBID = imdbID.String
		record.MediaType = media.Type(mediaType)
		if composite.Valid {
			record.Composite = media.Float(composite.Float64)
		}
		if signalsRaw.Valid && signalsRaw.String != "" {
			if err := json.Unmarshal([]byte(signalsRaw.String), &record.Signals); err != nil {
				return nil, fmt.Errorf("unmarshal signals: %w", err)
			}
		}
		record.MatchedTitle = matchedTitle.String
		record.MatchedURL = matchedURL.String
		records = append(records, record)
	}
	return records, rows.Err()
}

// Prune removes all but the newest keep runs; cascading deletes drop their
// ranked items too. Returns the number of runs removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
        )`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

const runColumns = "id, media_type, started_at, finished_at, item_count"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		mediaType   string
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(&run.ID, &mediaType, &startedRaw, &finishedRaw, &run.ItemCount); err != nil {
		return nil, err
	}
	run.MediaType = media.Type(mediaType)
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
