package models

// Visitor carries the request-scoped inputs the resolution engine may consult.
// All fields are optional; empty means "not available for this request".
type Visitor struct {
	IP             string // remote address, already proxy-corrected by the HTTP layer
	AcceptLanguage string // raw Accept-Language header value
	BillingCountry string // checkout-in-progress billing country, if any
	StoredCurrency string // currency code from the preference cookie, if any
}

// ResolutionSource identifies which step of the detection chain produced a
// resolved currency.
type ResolutionSource string

const (
	SourceOverride    ResolutionSource = "override"
	SourceBilling     ResolutionSource = "billing"
	SourceCookie      ResolutionSource = "cookie"
	SourceGeolocation ResolutionSource = "geolocation"
	SourceLanguage    ResolutionSource = "language"
	SourceDefault     ResolutionSource = "default"
	// SourceSession marks a currency that was already resolved earlier in
	// the same request/session and is being reused.
	SourceSession ResolutionSource = "session"
	// SourceSelection marks an explicit SetCurrency call by the visitor.
	SourceSelection ResolutionSource = "selection"
)

// Resolution is the outcome of running the detection chain for one visitor.
type Resolution struct {
	Currency *Currency
	Source   ResolutionSource
	// Persist signals the HTTP layer to write the preference cookie so the
	// next request short-circuits without repeating network lookups.
	Persist bool
}
