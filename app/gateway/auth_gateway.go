package gateway

import (
	"context"
	"log/slog"

	"account-service/app/domain"
	"account-service/app/port"
)

// AuthGateway implements port.AuthGateway. It normalizes user-supplied
// emails for the provider's address validator while keeping the original
// input as the user-facing email, and guarantees structured domain errors.
type AuthGateway struct {
	provider      port.IdentityProviderPort
	defaultDomain string
	logger        *slog.Logger
}

// NewAuthGateway creates a new AuthGateway instance.
func NewAuthGateway(provider port.IdentityProviderPort, defaultDomain string, logger *slog.Logger) port.AuthGateway {
	return &AuthGateway{
		provider:      provider,
		defaultDomain: defaultDomain,
		logger:        logger.With("component", "auth_gateway"),
	}
}

// Register provisions an identity and signs it in. The provider sees the
// normalized address; the original input travels in the traits and on the
// returned identity.
func (g *AuthGateway) Register(ctx context.Context, email, password, name string) (*domain.Identity, error) {
	normalized := domain.NormalizeEmail(email, g.defaultDomain)

	g.logger.Info("registering identity",
		"email", email,
		"email_normalized", normalized)

	traits := map[string]interface{}{
		"original_email": email,
	}
	if name != "" {
		traits["name"] = name
	}

	if _, err := g.provider.CreateIdentity(ctx, normalized, password, traits); err != nil {
		g.logger.Error("identity registration failed", "email", email, "error", err)
		return nil, err
	}

	// Sign in right away so registration ends with a live session, the same
	// way the interactive flow behaves.
	identity, err := g.provider.SignIn(ctx, normalized, password)
	if err != nil {
		g.logger.Error("post-registration sign-in failed", "email", email, "error", err)
		return nil, err
	}

	identity.OriginalEmail = email
	g.logger.Info("identity registered", "identity_id", identity.ID)
	return identity, nil
}

// Login authenticates against the provider with the normalized address.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	normalized := domain.NormalizeEmail(email, g.defaultDomain)

	g.logger.Info("logging in",
		"email", email,
		"email_normalized", normalized)

	identity, err := g.provider.SignIn(ctx, normalized, password)
	if err != nil {
		g.logger.Error("login failed", "email", email, "error", err)
		return nil, err
	}

	return identity, nil
}

// Logout revokes the provider session.
func (g *AuthGateway) Logout(ctx context.Context) error {
	if err := g.provider.SignOut(ctx); err != nil {
		g.logger.Error("logout failed", "error", err)
		return err
	}

	g.logger.Info("logged out")
	return nil
}

// CurrentIdentity resolves the identity of a still-valid provider session,
// or (nil, nil) when anonymous.
func (g *AuthGateway) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	identity, err := g.provider.GetSessionIdentity(ctx)
	if err != nil {
		g.logger.Error("failed to resolve current identity", "error", err)
		return nil, err
	}

	return identity, nil
}

// RequestPasswordReset starts a provider recovery flow for the address.
func (g *AuthGateway) RequestPasswordReset(ctx context.Context, email string) error {
	normalized := domain.NormalizeEmail(email, g.defaultDomain)

	if err := g.provider.RequestRecovery(ctx, normalized); err != nil {
		g.logger.Error("password reset request failed", "email", email, "error", err)
		return err
	}

	g.logger.Info("password reset requested", "email", email)
	return nil
}
