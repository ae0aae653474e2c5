package deleter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"account-service/app/config"
	"account-service/app/domain"
	"account-service/app/port"
)

// Client invokes the remote privileged deletion procedure, which removes
// both the profile row and the identity record server-side. An empty
// endpoint leaves the client unconfigured; the orchestrator then falls back
// to the client-side sequence.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a deletion procedure client.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.AccountDeleterURL != "" {
		if _, err := url.Parse(cfg.AccountDeleterURL); err != nil {
			return nil, fmt.Errorf("invalid account deleter URL: %w", err)
		}
	}

	return &Client{
		endpoint: cfg.AccountDeleterURL,
		apiKey:   cfg.AccountDeleterAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With("component", "deleter_client"),
	}, nil
}

var _ port.AccountDeleterPort = (*Client)(nil)

// Configured reports whether a deleter endpoint is available.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// DeleteAccount posts the identity ID to the privileged procedure and
// returns its report. Transport and non-2xx failures surface as
// PROVIDER_UNAVAILABLE; the report itself is returned verbatim for the
// orchestrator to interpret.
func (c *Client) DeleteAccount(ctx context.Context, identityID uuid.UUID) (domain.DeletionReport, error) {
	if !c.Configured() {
		return domain.DeletionReport{}, fmt.Errorf("account deleter endpoint not configured")
	}

	payload, err := json.Marshal(domain.DeletionRequest{IdentityID: identityID})
	if err != nil {
		return domain.DeletionReport{}, fmt.Errorf("failed to encode deletion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.DeletionReport{}, fmt.Errorf("failed to build deletion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("deletion procedure unreachable", "identity_id", identityID, "error", err)
		return domain.DeletionReport{}, domain.NewAccountError(domain.KindProviderUnavailable,
			"deletion procedure unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("deletion procedure failed",
			"identity_id", identityID,
			"http_status", resp.StatusCode)
		return domain.DeletionReport{}, domain.NewAccountError(domain.KindProviderUnavailable,
			fmt.Sprintf("deletion procedure returned status %d", resp.StatusCode), nil)
	}

	var report domain.DeletionReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return domain.DeletionReport{}, fmt.Errorf("failed to decode deletion report: %w", err)
	}

	c.logger.Info("deletion procedure completed",
		"identity_id", identityID,
		"profile_deleted", report.ProfileDeleted,
		"identity_deleted", report.IdentityDeleted)

	return report, nil
}
