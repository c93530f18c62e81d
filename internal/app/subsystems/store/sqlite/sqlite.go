package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/pkg/correlation"

	_ "github.com/mattn/go-sqlite3"
)

const (
	CREATE_TABLE_STATEMENT = `
	CREATE TABLE IF NOT EXISTS records (
		flow         TEXT,
		id           TEXT,
		status       INTEGER DEFAULT 1,
		payload      BLOB,
		tags         BLOB,
		created_on   INTEGER,
		completed_on INTEGER,
		expires_on   INTEGER DEFAULT 0,
		PRIMARY KEY (flow, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_expires_on ON records(expires_on);`

	// records never outlive the process
	TRUNCATE_STATEMENT = `
	DELETE FROM records`

	RECORD_SELECT_STATEMENT = `
	SELECT
		id, status, payload, tags, created_on, completed_on, expires_on
	FROM
		records
	WHERE
		flow = ? AND id = ?`

	RECORD_INSERT_STATEMENT = `
	INSERT INTO records
		(flow, id, tags, created_on, expires_on)
	VALUES
		(?, ?, ?, ?, ?)
	ON CONFLICT(flow, id) DO NOTHING`

	RECORD_UPDATE_STATEMENT = `
	UPDATE
		records
	SET
		status = ?, payload = ?, completed_on = ?
	WHERE
		flow = ? AND id = ? AND status = 1`

	RECORD_DELETE_EXPIRED_STATEMENT = `
	DELETE FROM records WHERE flow = ? AND id = ? AND expires_on > 0 AND expires_on <= ?`

	RECORD_EXPIRE_STATEMENT = `
	DELETE FROM records WHERE flow = ? AND expires_on > 0 AND expires_on <= ?`
)

// Config

type Config struct {
	Path      string        `flag:"path" desc:"sqlite database path" default:":memory:"`
	TxTimeout time.Duration `flag:"tx-timeout" desc:"sqlite transaction timeout" default:"10s"`
}

// DB is shared by the stores of every flow, each flow is a partition of the
// records table.
type DB struct {
	config *Config
	db     *sql.DB
}

func Open(config *Config) (*DB, error) {
	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, err
	}

	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(CREATE_TABLE_STATEMENT); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(TRUNCATE_STATEMENT); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{config: config, db: db}, nil
}

func (d *DB) String() string {
	return "store:sqlite"
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Store

type SqliteStore[T any] struct {
	db    *DB
	flow  string
	ttl   time.Duration
	clock store.Clock
}

func New[T any](db *DB, flow string, ttl time.Duration, clock store.Clock) *SqliteStore[T] {
	if clock == nil {
		clock = store.Now
	}

	return &SqliteStore[T]{
		db:    db,
		flow:  flow,
		ttl:   ttl,
		clock: clock,
	}
}

func (s *SqliteStore[T]) String() string {
	return fmt.Sprintf("store:sqlite:%s", s.flow)
}

func (s *SqliteStore[T]) Create(ctx context.Context) (*correlation.Record[T], error) {
	for {
		r, err := s.CreateWithId(ctx, uuid.New().String(), nil)
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		return r, err
	}
}

func (s *SqliteStore[T]) CreateWithId(ctx context.Context, id string, tags map[string]string) (*correlation.Record[T], error) {
	var r *correlation.Record[T]

	err := s.tx(ctx, func(tx *sql.Tx) error {
		now := s.clock()

		var tagsJSON []byte
		if tags != nil {
			var err error
			if tagsJSON, err = json.Marshal(tags); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, RECORD_DELETE_EXPIRED_STATEMENT, s.flow, id, now); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, RECORD_INSERT_STATEMENT, s.flow, id, tagsJSON, now, store.ExpiresOn(now, s.ttl))
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrAlreadyExists
		}

		r = &correlation.Record[T]{
			Id:        id,
			Status:    correlation.Pending,
			Tags:      store.CopyTags(tags),
			CreatedOn: now,
			ExpiresOn: store.ExpiresOn(now, s.ttl),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (s *SqliteStore[T]) Get(ctx context.Context, id string) (*correlation.Record[T], error) {
	var r *correlation.Record[T]

	err := s.tx(ctx, func(tx *sql.Tx) error {
		var err error
		r, err = s.read(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (s *SqliteStore[T]) Complete(ctx context.Context, id string, status correlation.Status, payload T) (*correlation.Record[T], error) {
	if !status.Terminal() {
		return nil, store.ErrInvalidStatus
	}

	var r *correlation.Record[T]

	err := s.tx(ctx, func(tx *sql.Tx) error {
		var err error
		if r, err = s.read(ctx, tx, id); err != nil {
			return err
		}
		if r.Status.Terminal() {
			return store.ErrAlreadyCompleted
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		now := s.clock()
		if _, err := tx.ExecContext(ctx, RECORD_UPDATE_STATEMENT, status, data, now, s.flow, id); err != nil {
			return err
		}

		r.Status = status
		r.Payload = payload
		r.CompletedOn = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (s *SqliteStore[T]) Expire(ctx context.Context, now int64) (int, error) {
	var n int64

	err := s.tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, RECORD_EXPIRE_STATEMENT, s.flow, now)
		if err != nil {
			return err
		}

		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

func (s *SqliteStore[T]) read(ctx context.Context, tx *sql.Tx, id string) (*correlation.Record[T], error) {
	row := &correlation.Row{}
	var completedOn sql.NullInt64

	err := tx.QueryRowContext(ctx, RECORD_SELECT_STATEMENT, s.flow, id).Scan(
		&row.Id,
		&row.Status,
		&row.Payload,
		&row.Tags,
		&row.CreatedOn,
		&completedOn,
		&row.ExpiresOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if completedOn.Valid {
		row.CompletedOn = &completedOn.Int64
	}

	r, err := correlation.ToRecord[T](row)
	if err != nil {
		return nil, err
	}

	if r.Expired(s.clock()) {
		return nil, store.ErrNotFound
	}

	return r, nil
}

func (s *SqliteStore[T]) tx(ctx context.Context, f func(*sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.db.config.TxTimeout)
	defer cancel()

	tx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := f(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = fmt.Errorf("tx failed: %w, unable to rollback: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
