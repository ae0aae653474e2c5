package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	kratosclient "github.com/ory/kratos-client-go"

	"account-service/app/domain"
	"account-service/app/port"
)

const identitySchemaID = "default"

// ProviderAdapter implements port.IdentityProviderPort on top of the Kratos
// native self-service APIs. The process serves a single interactive session,
// so the adapter holds the current session token.
type ProviderAdapter struct {
	client *Client
	logger *slog.Logger

	mu           sync.Mutex
	sessionToken string
}

// NewProviderAdapter creates a new adapter.
func NewProviderAdapter(client *Client, logger *slog.Logger) port.IdentityProviderPort {
	return &ProviderAdapter{
		client: client,
		logger: logger.With("component", "kratos_adapter"),
	}
}

// CreateIdentity provisions a pre-verified identity through the admin API.
// The admin path avoids the email-confirmation round trip; the caller signs
// in afterwards to obtain a session.
func (a *ProviderAdapter) CreateIdentity(ctx context.Context, email, password string, traits map[string]interface{}) (*domain.Identity, error) {
	a.logger.Info("creating identity", "email", email)

	body := kratosclient.CreateIdentityBody{
		SchemaId: identitySchemaID,
		Traits:   mergeTraits(email, traits),
		Credentials: &kratosclient.IdentityWithCredentials{
			Password: &kratosclient.IdentityWithCredentialsPassword{
				Config: &kratosclient.IdentityWithCredentialsPasswordConfig{
					Password: kratosclient.PtrString(password),
				},
			},
		},
	}

	resp, httpResp, err := a.client.AdminAPI().IdentityAPI.
		CreateIdentity(ctx).
		CreateIdentityBody(body).
		Execute()
	if err != nil {
		a.logger.Error("identity creation failed",
			"email", email,
			"http_status", getHTTPStatus(httpResp),
			"error", err)
		return nil, classifyError(err, httpResp, "create_identity")
	}

	identity, err := a.toDomainIdentity(resp.Id, resp.Traits, resp.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.logger.Info("identity created", "identity_id", identity.ID)
	return identity, nil
}

// SignIn runs a native login flow with the password method and stores the
// resulting session token.
func (a *ProviderAdapter) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	a.logger.Info("signing in", "email", email)

	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.
		CreateNativeLoginFlow(ctx).
		Execute()
	if err != nil {
		a.logger.Error("login flow creation failed",
			"http_status", getHTTPStatus(httpResp),
			"error", err)
		return nil, classifyError(err, httpResp, "login_flow_create")
	}

	method := kratosclient.UpdateLoginFlowWithPasswordMethod{
		Identifier: email,
		Method:     "password",
		Password:   password,
	}

	success, httpResp, err := a.client.PublicAPI().FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&method)).
		Execute()
	if err != nil {
		a.logger.Error("login flow submission failed",
			"flow_id", flow.Id,
			"http_status", getHTTPStatus(httpResp),
			"error", err)
		return nil, classifyError(err, httpResp, "login_flow_submit")
	}

	if success.SessionToken != nil {
		a.setSessionToken(*success.SessionToken)
	}

	sessionIdentity := success.Session.Identity
	if sessionIdentity == nil {
		return nil, domain.NewAccountError(domain.KindUnknown, "login succeeded without identity", nil)
	}

	identity, err := a.toDomainIdentity(sessionIdentity.Id, sessionIdentity.Traits, sessionIdentity.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.logger.Info("signed in", "identity_id", identity.ID)
	return identity, nil
}

// SignOut revokes the current native session. Clearing the local token even
// on provider failure matches the session teardown contract.
func (a *ProviderAdapter) SignOut(ctx context.Context) error {
	token := a.takeSessionToken()
	if token == "" {
		return nil
	}

	body := *kratosclient.NewPerformNativeLogoutBody(token)
	httpResp, err := a.client.PublicAPI().FrontendAPI.
		PerformNativeLogout(ctx).
		PerformNativeLogoutBody(body).
		Execute()
	if err != nil {
		a.logger.Error("logout failed",
			"http_status", getHTTPStatus(httpResp),
			"error", err)
		return classifyError(err, httpResp, "logout")
	}

	a.logger.Info("signed out")
	return nil
}

// GetSessionIdentity resolves the identity behind the held session token.
// Returns (nil, nil) when no token is held or the session is gone.
func (a *ProviderAdapter) GetSessionIdentity(ctx context.Context) (*domain.Identity, error) {
	a.mu.Lock()
	token := a.sessionToken
	a.mu.Unlock()
	if token == "" {
		return nil, nil
	}

	session, httpResp, err := a.client.PublicAPI().FrontendAPI.
		ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		classified := classifyError(err, httpResp, "whoami")
		if domain.KindOf(classified) == domain.KindInvalidCredentials {
			// Expired or revoked session: anonymous, not an error.
			a.setSessionToken("")
			return nil, nil
		}
		return nil, classified
	}

	if session.Identity == nil {
		return nil, nil
	}

	return a.toDomainIdentity(session.Identity.Id, session.Identity.Traits, session.Identity.CreatedAt)
}

// DeleteIdentity removes an identity record through the admin API.
func (a *ProviderAdapter) DeleteIdentity(ctx context.Context, identityID uuid.UUID) error {
	a.logger.Info("deleting identity", "identity_id", identityID)

	httpResp, err := a.client.AdminAPI().IdentityAPI.
		DeleteIdentity(ctx, identityID.String()).
		Execute()
	if err != nil {
		a.logger.Error("identity deletion failed",
			"identity_id", identityID,
			"http_status", getHTTPStatus(httpResp),
			"error", err)
		return classifyError(err, httpResp, "delete_identity")
	}

	return nil
}

// RequestRecovery starts a native recovery flow for the given address.
func (a *ProviderAdapter) RequestRecovery(ctx context.Context, email string) error {
	flow, httpResp, err := a.client.PublicAPI().FrontendAPI.
		CreateNativeRecoveryFlow(ctx).
		Execute()
	if err != nil {
		return classifyError(err, httpResp, "recovery_flow_create")
	}

	method := kratosclient.UpdateRecoveryFlowWithCodeMethod{
		Email:  kratosclient.PtrString(email),
		Method: "code",
	}

	_, httpResp, err = a.client.PublicAPI().FrontendAPI.
		UpdateRecoveryFlow(ctx).
		Flow(flow.Id).
		UpdateRecoveryFlowBody(kratosclient.UpdateRecoveryFlowWithCodeMethodAsUpdateRecoveryFlowBody(&method)).
		Execute()
	if err != nil {
		return classifyError(err, httpResp, "recovery_flow_submit")
	}

	a.logger.Info("recovery requested", "email", email)
	return nil
}

func (a *ProviderAdapter) setSessionToken(token string) {
	a.mu.Lock()
	a.sessionToken = token
	a.mu.Unlock()
}

func (a *ProviderAdapter) takeSessionToken() string {
	a.mu.Lock()
	token := a.sessionToken
	a.sessionToken = ""
	a.mu.Unlock()
	return token
}

// toDomainIdentity converts raw Kratos identity fields to the domain type.
func (a *ProviderAdapter) toDomainIdentity(id string, rawTraits interface{}, createdAt *time.Time) (*domain.Identity, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid identity ID %q: %w", id, err)
	}

	traits, _ := rawTraits.(map[string]interface{})
	email, _ := traits["email"].(string)
	originalEmail, _ := traits["original_email"].(string)
	name, _ := traits["name"].(string)

	identity, err := domain.NewIdentity(parsedID, email, originalEmail)
	if err != nil {
		return nil, err
	}
	identity.Name = name
	if createdAt != nil {
		identity.CreatedAt = *createdAt
	}

	return identity, nil
}

// mergeTraits builds the trait set sent to Kratos: the normalized email plus
// whatever the caller recorded (original_email, name).
func mergeTraits(email string, extra map[string]interface{}) map[string]interface{} {
	traits := map[string]interface{}{"email": email}
	for k, v := range extra {
		traits[k] = v
	}
	return traits
}
