package db

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies goose migrations from dir to the database at url.
func Migrate(ctx context.Context, url, dir string) error {
	config, err := pgx.ParseConnectionString(url)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	return migrate(ctx, config, dir)
}

// MigrateOptions applies goose migrations to the database described by opt.
func MigrateOptions(ctx context.Context, opt *pg.Options, dir string) error {
	config, err := connConfig(opt)
	if err != nil {
		return err
	}

	return migrate(ctx, config, dir)
}

func connConfig(opt *pg.Options) (pgx.ConnConfig, error) {
	config := pgx.ConnConfig{
		Host:      "localhost",
		Port:      5432,
		Database:  opt.Database,
		User:      opt.User,
		Password:  opt.Password,
		TLSConfig: opt.TLSConfig,
	}

	if opt.Addr != "" {
		host, port, err := net.SplitHostPort(opt.Addr)
		if err != nil {
			return config, fmt.Errorf("parse database addr %q: %w", opt.Addr, err)
		}
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return config, fmt.Errorf("parse database port %q: %w", port, err)
		}
		config.Host, config.Port = host, uint16(p)
	}

	return config, nil
}

func migrate(ctx context.Context, config pgx.ConnConfig, dir string) error {
	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}

	if err := goose.UpContext(ctx, sqldb, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
