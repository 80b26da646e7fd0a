package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/luxmikant/ryzl/internal/config"
)

// NewFromConfig builds the hosting-API client from the configured
// credentials. GitHub App installation auth is preferred when an app id,
// installation id, and private key are configured; otherwise a personal
// access token is used.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Client, error) {
	if cfg.GitHubAppID != 0 {
		return NewInstallationClient(cfg, logger)
	}
	if cfg.GitHubToken != "" {
		return NewPATClient(ctx, cfg.GitHubToken, logger), nil
	}
	return nil, fmt.Errorf("no GitHub credentials configured: set GITHUB_TOKEN or GITHUB_APP_ID with GITHUB_INSTALLATION_ID and GITHUB_PRIVATE_KEY_PATH")
}

// NewInstallationClient creates a GitHub client that authenticates as a
// specific app installation, refreshing installation tokens as needed.
func NewInstallationClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client",
		"app_id", cfg.GitHubAppID,
		"installation_id", cfg.GitHubInstallationID,
	)

	if cfg.GitHubInstallationID == 0 {
		return nil, fmt.Errorf("GITHUB_INSTALLATION_ID must be set for GitHub App authentication")
	}

	transport, err := ghinstallation.NewKeyFromFile(
		http.DefaultTransport,
		cfg.GitHubAppID,
		cfg.GitHubInstallationID,
		cfg.GitHubPrivateKeyPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport from %s: %w", cfg.GitHubPrivateKeyPath, err)
	}

	client := github.NewClient(&http.Client{Transport: transport})
	return NewClient(client, logger), nil
}
