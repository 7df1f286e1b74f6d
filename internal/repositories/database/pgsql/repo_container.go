package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
)

// ip2countryNamespace is the cache namespace used by the IP→country lookup.
const ip2countryNamespace = "ip2country"

// NewRepositoryProvider wires the pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		IPCountryCacheRepo: NewPgxCacheRepository(dbPool, ip2countryNamespace),
		VATRuleRepo:        NewPgxVATRuleRepository(dbPool),
	}
}
