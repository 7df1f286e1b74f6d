package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// PgxCacheRepository is the durable external-data cache, scoped to one named
// namespace (e.g. "ip2country"). It stores whatever it is given and leaves
// freshness decisions to the caller.
type PgxCacheRepository struct {
	BaseRepository
	namespace string
}

// NewPgxCacheRepository creates a cache repository for the given namespace.
func NewPgxCacheRepository(pool *pgxpool.Pool, namespace string) portsrepo.CacheRepository {
	return &PgxCacheRepository{
		BaseRepository: BaseRepository{Pool: pool},
		namespace:      namespace,
	}
}

var _ portsrepo.CacheRepository = (*PgxCacheRepository)(nil)

// Get returns the stored entry for key within this namespace.
func (r *PgxCacheRepository) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	query := `
		SELECT cache_key, cache_value, fetched_at
		FROM external_cache
		WHERE namespace = $1 AND cache_key = $2;
	`
	var entry models.CacheEntry
	err := r.Pool.QueryRow(ctx, query, r.namespace, key).Scan(
		&entry.Key,
		&entry.Value,
		&entry.FetchedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache entry %s/%s: %w", r.namespace, key, err)
	}

	return &entry, nil
}

// Set stores value under key, overwriting any previous entry for the same key
// and stamping it with the current time.
func (r *PgxCacheRepository) Set(ctx context.Context, key string, value string) error {
	query := `
		INSERT INTO external_cache (namespace, cache_key, cache_value, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, cache_key) DO UPDATE SET
			cache_value = EXCLUDED.cache_value,
			fetched_at = EXCLUDED.fetched_at;
	`
	_, err := r.Pool.Exec(ctx, query, r.namespace, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s/%s: %w", r.namespace, key, err)
	}
	return nil
}
