package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource selects where the provider reads secrets from.
type SecretSource string

const (
	// SourceEnvironment reads secrets from environment variables.
	SourceEnvironment SecretSource = "environment"
	// SourceVault reads secrets from Azure Key Vault.
	SourceVault SecretSource = "vault"
	// SourceAuto picks vault in staging/production and environment
	// variables everywhere else.
	SourceAuto SecretSource = "auto"
)

// Provider resolves secrets from the configured source. Environment
// variables always win over vault values, so a deployment can override
// a single secret without touching Key Vault.
type Provider struct {
	source      SecretSource
	vault       *VaultClient
	logger      *zap.Logger
	environment string
}

// ProviderConfig holds configuration for the secrets provider.
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewProvider creates a secrets provider for the given source.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := cfg.Source
	if source == SourceAuto {
		switch cfg.Environment {
		case "development", "local", "":
			source = SourceEnvironment
		default:
			source = SourceVault
		}
		logger.Info("resolved secret source",
			zap.String("source", string(source)),
			zap.String("environment", cfg.Environment),
		)
	}

	p := &Provider{
		source:      source,
		logger:      logger,
		environment: cfg.Environment,
	}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required for vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = vault
	}

	logger.Info("secrets provider ready",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// GetSecret retrieves a secret by name from the configured source.
// For the environment source the name is the environment variable name;
// for vault it is the Key Vault secret name.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable %q not set", name)
		}
		return value, nil
	case SourceVault:
		if p.vault == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vault.GetSecret(ctx, name)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretOrEnv returns the environment variable when set, otherwise
// the secret from the configured source.
func (p *Provider) GetSecretOrEnv(ctx context.Context, name, envName string) (string, error) {
	if v := os.Getenv(envName); v != "" {
		p.logger.Debug("secret overridden by environment variable",
			zap.String("env", envName),
		)
		return v, nil
	}
	return p.GetSecret(ctx, name)
}

// IsVaultEnabled reports whether secrets are read from Key Vault.
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
