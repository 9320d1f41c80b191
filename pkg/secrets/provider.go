package secrets

import "context"

// Provider abstracts a secrets backend. AWS Secrets Manager is the only
// implementation today; the storefront reads one secret at boot.
type Provider interface {
	// GetSecret fetches a secret by name and returns its key-value payload.
	GetSecret(ctx context.Context, name string) (map[string]string, error)
}
