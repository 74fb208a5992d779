package db

import (
	"context"
	"errors"

	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/repo/postgres"
	"github.com/geocoder89/supportdesk/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser bootstraps one admin account from config so a fresh
// deployment is reachable without registering through the admin-code path.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	users := postgres.NewUsersRepo(pool, nil)

	_, err = users.Create(ctx, cfg.AdminName, cfg.AdminEmail, hash, user.RoleAdmin)

	if errors.Is(err, user.ErrEmailTaken) {
		// raced another instance; the account exists, which is all we need
		return nil
	}

	return err
}
