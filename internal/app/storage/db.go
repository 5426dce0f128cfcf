package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"slugline/internal/app/models"
)

// Postgres storage
type DBStorage struct {
	pool *pgxpool.Pool
}

func NewDBStorage(dsn string) (*DBStorage, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}

	return &DBStorage{
		pool: pool,
	}, nil
}

func (db *DBStorage) FindBySlug(ctx context.Context, slug string) (models.Mapping, error) {
	row := db.pool.QueryRow(
		ctx,
		`SELECT "slug", "target_url", "clicks", "created_at", "last_accessed_at"
		 FROM "short_urls" WHERE "slug" = @slug`,
		pgx.NamedArgs{"slug": slug},
	)
	var m models.Mapping
	err := row.Scan(&m.Slug, &m.TargetURL, &m.Clicks, &m.CreatedAt, &m.LastAccessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Mapping{}, ErrNotFound
		}

		return models.Mapping{}, fmt.Errorf("failed to find mapping: %w", err)
	}

	return m, nil
}

func (db *DBStorage) Save(ctx context.Context, mapping models.Mapping) error {
	_, err := db.pool.Exec(
		ctx,
		`INSERT INTO "short_urls" ("slug", "target_url") VALUES (@slug, @targetURL)`,
		pgx.NamedArgs{"slug": mapping.Slug, "targetURL": mapping.TargetURL},
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return NewErrSlugTaken(mapping.Slug)
		}

		return fmt.Errorf("failed to save mapping: %w", err)
	}

	return nil
}

func (db *DBStorage) TrackAccess(ctx context.Context, slug string, at time.Time) error {
	result, err := db.pool.Exec(
		ctx,
		`UPDATE "short_urls"
		 SET "clicks" = "clicks" + 1, "last_accessed_at" = @at
		 WHERE "slug" = @slug`,
		pgx.NamedArgs{"slug": slug, "at": at},
	)
	if err != nil {
		return fmt.Errorf("failed to track access: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (db *DBStorage) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DBStorage) Close() {
	db.pool.Close()
}

//go:embed db/migrations/*.sql
var migrationsDir embed.FS

func runMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "db/migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return nil
}
