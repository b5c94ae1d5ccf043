package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
	_ "modernc.org/sqlite"
)

const databaseFile = "comicwatch.db"

// SQLiteStore keeps snapshots in a local SQLite database, one row per key.
type SQLiteStore struct {
	handler  *sql.DB
	log      zerolog.Logger
	lock     sync.RWMutex
	squirrel sq.StatementBuilderType
}

var _ domain.SnapshotStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) comicwatch.db inside dir.
func NewSQLiteStore(dir string, log zerolog.Logger) (*SQLiteStore, error) {
	db := &SQLiteStore{
		log:      log.With().Str("module", "storage").Str("backend", "sqlite").Logger(),
		squirrel: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}

	var (
		err error
		DSN = filepath.Join(dir, databaseFile) + "?_pragma=busy_timeout%3d1000"
	)

	db.handler, err = sql.Open("sqlite", DSN)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to database")
	}

	if _, err = db.handler.Exec(`PRAGMA journal_mode = wal;`); err != nil {
		db.handler.Close()
		return nil, errors.Wrap(err, "unable to enable WAL mode")
	}

	if err := db.Migrate(); err != nil {
		db.handler.Close()
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	return db, nil
}

// Migrate creates the schema or applies pending migrations, tracked through
// PRAGMA user_version.
func (db *SQLiteStore) Migrate() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	var version int
	if err := db.handler.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return errors.Wrap(err, "failed to query schema version")
	}

	if version == len(snapshotMigrations) {
		return nil
	} else if version > len(snapshotMigrations) {
		return errors.Errorf("snapshot database schema version (%d) is newer than supported (%d)", version, len(snapshotMigrations))
	}

	db.log.Info().Msgf("Beginning database schema upgrade from version %v to version: %v", version, len(snapshotMigrations))

	tx, err := db.handler.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if version == 0 {
		if _, err := tx.Exec(snapshotSchema); err != nil {
			return errors.Wrap(err, "failed to initialize schema")
		}
	} else {
		for i := version; i < len(snapshotMigrations); i++ {
			if snapshotMigrations[i] == "" {
				continue
			}
			db.log.Info().Msgf("Upgrading database schema to version: %v", i+1)
			if _, err := tx.Exec(snapshotMigrations[i]); err != nil {
				return errors.Wrapf(err, "failed to execute migration #%v", i)
			}
		}
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(snapshotMigrations))); err != nil {
		return errors.Wrap(err, "failed to bump schema version")
	}

	return tx.Commit()
}

// Close closes the database connection
func (db *SQLiteStore) Close() error {
	if _, err := db.handler.Exec(`PRAGMA optimize;`); err != nil {
		return errors.Wrap(err, "query planner optimization")
	}

	return db.handler.Close()
}

func (db *SQLiteStore) Exists(ctx context.Context, key string) (bool, error) {
	query, args, err := db.squirrel.
		Select("COUNT(*)").
		From("snapshot").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "error building query")
	}

	db.lock.RLock()
	defer db.lock.RUnlock()

	var n int
	if err := db.handler.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, errors.Wrap(err, "error executing query")
	}

	return n > 0, nil
}

func (db *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := db.squirrel.
		Select("body").
		From("snapshot").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	db.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	db.lock.RLock()
	defer db.lock.RUnlock()

	var body []byte
	if err := db.handler.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(domain.ErrSnapshotNotFound, key)
		}
		return nil, errors.Wrap(err, "error executing query")
	}

	return body, nil
}

func (db *SQLiteStore) Put(ctx context.Context, key string, body []byte) error {
	titles := 0
	if len(body) > 0 {
		titles = bytes.Count(body, []byte("\n")) + 1
	}

	query, args, err := db.squirrel.
		Replace("snapshot").
		Columns("key", "body", "titles", "updated_at").
		Values(key, body, titles, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	db.log.Trace().Str("query", query).Int("titles", titles).Msg("Put")

	db.lock.Lock()
	defer db.lock.Unlock()

	if _, err := db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}
