package services

import "github.com/Yoast/visitor_currency_app/internal/models"

// RegistryFactory builds the request-scoped currency registry. Handlers call
// it once per request so mutable selection state never leaks across requests.
type RegistryFactory func() *models.CurrencyRegistry

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Resolver    ResolverSvcFacade
	VAT         VATSvcFacade
	NewRegistry RegistryFactory
}
