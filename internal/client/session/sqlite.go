package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/paydesk/internal/client/migrations"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/repositories/storage"
	"github.com/dmitrijs2005/paydesk/internal/common"
	"github.com/dmitrijs2005/paydesk/internal/dbx"
	"github.com/dmitrijs2005/paydesk/internal/filex"
	"github.com/dmitrijs2005/paydesk/internal/logging"

	_ "modernc.org/sqlite"
)

// Options tunes Open.
type Options struct {
	Logger logging.Logger
	// Watch enables cross-process change notification for file databases.
	Watch bool
	// Debounce is the watcher's quiet window. Zero means DefaultDebounce.
	Debounce time.Duration
}

// SQLiteStore persists the session as two rows ("token", "user") of the
// storage table. Every Get hits the database.
type SQLiteStore struct {
	db        *sql.DB
	logger    logging.Logger
	listeners listeners

	watcher   *Watcher
	stopWatch context.CancelFunc
	closeOnce sync.Once
}

var _ Store = (*SQLiteStore)(nil)

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the session database at path, migrates
// it and, when opts.Watch is set and path is a real file, starts watching
// it for writes by other processes.
func Open(ctx context.Context, path string, opts Options) (*SQLiteStore, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	if !isMemory(path) {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serialises
	// writers within the process.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	s := NewSQLiteStore(db, opts.Logger)

	if opts.Watch && !isMemory(path) {
		w, err := NewWatcher(path, opts.Debounce, opts.Logger)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("watch session db: %w", err)
		}
		wctx, cancel := context.WithCancel(context.Background())
		s.watcher = w
		s.stopWatch = cancel
		go w.Run(wctx, func() {
			s.listeners.emit(s.Get(wctx))
		})
	}

	return s, nil
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB, logger logging.Logger) *SQLiteStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SQLiteStore{db: db, logger: logger.With("component", "session")}
}

func dsn(path string) string {
	if isMemory(path) {
		return ":memory:"
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

func isMemory(path string) bool {
	return path == "" || path == ":memory:" || strings.Contains(path, "mode=memory")
}

// Get reads both keys with a single statement, so a concurrent Set or
// Clear is seen either fully or not at all.
func (s *SQLiteStore) Get(ctx context.Context) Session {
	rows, err := storage.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "read session", "error", err)
		return Session{}
	}

	token, hasToken := rows[common.TokenKey]
	raw, hasUser := rows[common.UserKey]

	switch {
	case !hasToken && !hasUser:
		return Session{}
	case !hasToken || !hasUser || len(token) == 0:
		s.logger.Warn(ctx, "half-written session in storage, treating as anonymous",
			"has_token", hasToken, "has_user", hasUser)
		return Session{}
	}

	var user models.Profile
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn(ctx, "undecodable user profile in storage, treating as anonymous", "error", err)
		return Session{}
	}

	return Session{Token: string(token), User: &user}
}

func (s *SQLiteStore) Set(ctx context.Context, sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if !sess.Authenticated() {
		return s.Clear(ctx)
	}

	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserKey, user)
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	s.logger.Debug(ctx, "session stored", "username", sess.User.Username)
	s.listeners.emit(s.Get(ctx))
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return storage.NewSQLiteRepository(tx).Delete(ctx, common.TokenKey, common.UserKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Debug(ctx, "session cleared")
	s.listeners.emit(Session{})
	return nil
}

func (s *SQLiteStore) Subscribe(fn func(Session)) func() {
	return s.listeners.add(fn)
}

// Close stops the watcher (if any) and closes the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.stopWatch != nil {
			s.stopWatch()
			if werr := s.watcher.Close(); werr != nil {
				s.logger.Warn(context.Background(), "close watcher", "error", werr)
			}
		}
		err = s.db.Close()
	})
	return err
}
