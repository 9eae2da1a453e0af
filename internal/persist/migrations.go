package persist

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// schemaFS is the embedded migration directory rooted at its SQL files.
func schemaFS() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate brings the match history schema up to date and logs every
// version it applies.
func (db *DB) Migrate(ctx context.Context) error {
	fsys, err := schemaFS()
	if err != nil {
		return fmt.Errorf("migration files: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(db.Pool), fsys)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	defer provider.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		db.log.Info("schema migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("took", r.Duration))
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	db.log.Debug("match history schema ready", zap.Int64("version", version), zap.Int("applied", len(results)))
	return nil
}
