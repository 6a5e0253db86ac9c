package database

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultPath = "./data/bitfolio.db"

var ErrNotInitialized = errors.New("database not initialized")

// Database holds the GORM database instance
type Database struct {
	conn   *gorm.DB
	path   string
	logger *slog.Logger
}

// Option is the functional options pattern for Database
type Option func(*Database) error

// New opens the SQLite file configured by the options. The parent directory
// is created when missing.
func New(opts ...Option) (*Database, error) {
	db := &Database{
		path:   DefaultPath,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, err
		}
	}

	if err := db.open(); err != nil {
		return nil, err
	}
	return db, nil
}

// WithPath sets the SQLite database path. An empty path keeps the default.
func WithPath(path string) Option {
	return func(db *Database) error {
		if path != "" {
			db.path = path
		}
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(db *Database) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		db.logger = l
		return nil
	}
}

func (d *Database) open() error {
	if !isMemory(d.path) {
		if err := ensureWritableDir(filepath.Dir(d.path)); err != nil {
			return err
		}
	}

	conn, err := gorm.Open(sqlite.Open(d.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to connect to database (path: %s)", d.path)
	}

	// SQLite serializes writers; a single connection also keeps :memory:
	// databases from splitting across pool members.
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	d.conn = conn
	d.logger.Info("database connected", "path", d.path)
	return nil
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to stat data directory %s", dir)
	}
	if !info.IsDir() {
		return errors.Errorf("data path %s is not a directory", dir)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return errors.Wrapf(err, "data directory %s is not writable", dir)
	}
	return os.Remove(testFile)
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory") || strings.HasPrefix(path, "file::memory:")
}

// Get returns the underlying GORM database instance
func (d *Database) Get() (*gorm.DB, error) {
	if d.conn == nil {
		return nil, ErrNotInitialized
	}
	return d.conn, nil
}

func (d *Database) Path() string {
	return d.path
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.conn == nil {
		return nil
	}
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
