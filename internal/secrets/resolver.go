package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgsecrets "github.com/afrobeatles/fanstore/pkg/secrets"
)

// ResolveStripeKey returns the Stripe secret key, preferring AWS Secrets
// Manager when secretName is set and falling back to envKey otherwise.
//
// Secret JSON format: {"secret_key": "sk_..."}
func ResolveStripeKey(ctx context.Context, logger *zap.Logger, provider pkgsecrets.Provider, secretName, envKey string) (string, error) {
	if secretName == "" {
		if envKey == "" {
			return "", fmt.Errorf("no STRIPE_SECRET_KEY configured and no STRIPE_SECRET_NAME to resolve")
		}
		return envKey, nil
	}

	secretMap, err := provider.GetSecret(ctx, secretName)
	if err != nil {
		logger.Warn("aws.secret_fetch_failed",
			zap.String("key", secretName),
			zap.Error(err))
		return "", fmt.Errorf("resolve stripe key from %q: %w", secretName, err)
	}

	key := secretMap["secret_key"]
	if key == "" {
		return "", fmt.Errorf("secret %q missing required field 'secret_key'", secretName)
	}

	logger.Info("aws.stripe_key_resolved", zap.String("secret", secretName))
	return key, nil
}
