package sqlite

import (
	"context"
	"io/fs"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type Config struct {
	Path string `yaml:"path" envconfig:"SESSION_DB_PATH" default:"library-sessions.db"`
}

// NewDB opens the local session database and brings its schema up to
// date from the embedded migrations.
func NewDB(ctx context.Context, cfg *Config, migrations fs.FS) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite connect")
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return nil, errors.Wrap(err, "migrations up")
	}
	return db, nil
}
