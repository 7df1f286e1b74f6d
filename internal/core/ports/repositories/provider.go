package repositories

// RepositoryProvider holds the concrete repository instances the services
// are wired against.
type RepositoryProvider struct {
	IPCountryCacheRepo CacheRepository
	VATRuleRepo        VATRuleRepository
}
