package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const configurationMissingMsg = "party configuration is missing"

// LockMode selects the row lock taken when reading the configuration
// inside a transaction.
type LockMode int

const (
	LockNone LockMode = iota
	// LockShare is taken by contact writes.
	LockShare
	// LockUpdate is taken by region changes and waits for LockShare holders.
	LockUpdate
)

const selectConfigurationQuery = `SELECT phone_region, updated_at FROM party_configuration WHERE id = 1`

const updatePhoneRegionQuery = `
	UPDATE party_configuration
	SET phone_region = $1, updated_at = now()
	WHERE id = 1
	RETURNING phone_region, updated_at
`

// Configuration is the party configuration singleton.
type Configuration struct {
	PhoneRegion string
	UpdatedAt   time.Time
}

// Repository provides database operations for the configuration singleton.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new configuration repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get reads the singleton, optionally locking it when q is a transaction.
func (r *Repository) Get(ctx context.Context, q db.DBTX, lock LockMode) (Configuration, error) {
	if q == nil {
		q = r.pool
	}

	var cfg Configuration
	if err := q.QueryRow(ctx, selectConfigurationQuery+lockClause(lock)).Scan(&cfg.PhoneRegion, &cfg.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Configuration{}, apperr.Internal(configurationMissingMsg)
		}
		return Configuration{}, fmt.Errorf("get party configuration: %w", err)
	}
	return cfg, nil
}

// SetPhoneRegion stores the default region. Callers hold LockUpdate.
func (r *Repository) SetPhoneRegion(ctx context.Context, q db.DBTX, region string) (Configuration, error) {
	if q == nil {
		q = r.pool
	}

	var cfg Configuration
	if err := q.QueryRow(ctx, updatePhoneRegionQuery, region).Scan(&cfg.PhoneRegion, &cfg.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Configuration{}, apperr.Internal(configurationMissingMsg)
		}
		return Configuration{}, fmt.Errorf("set phone region: %w", err)
	}
	return cfg, nil
}

func lockClause(lock LockMode) string {
	switch lock {
	case LockShare:
		return " FOR SHARE"
	case LockUpdate:
		return " FOR UPDATE"
	default:
		return ""
	}
}
