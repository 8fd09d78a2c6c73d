// internal/identity/provider.go
package identity

import "context"

// Provider is the outbound identity collaborator: it exchanges an OAuth
// authorization code for a verified email address. The ledger core only
// depends on this interface.
type Provider interface {
	// AuthURL returns the URL callers are redirected to for consent.
	AuthURL() string
	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// FetchEmail resolves an access token to the holder's email address.
	FetchEmail(ctx context.Context, accessToken string) (string, error)
}
