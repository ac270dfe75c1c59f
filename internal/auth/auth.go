// Package auth provides the bearer-credential capability used to authorize
// calls to the remote spreadsheet API. Providers are injected, never
// module-level singletons, so tests can substitute fakes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gsheet "google.golang.org/api/sheets/v4"
)

// Provider yields a usable bearer token for the spreadsheet API.
// Invalidate drops any cached credential so the next call re-acquires one.
type Provider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// StaticProvider serves a fixed token, for development and tests.
type StaticProvider struct {
	token string
}

func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

func (p *StaticProvider) Token(context.Context) (string, error) {
	if p.token == "" {
		return "", errors.New("no static access token configured")
	}
	return p.token, nil
}

func (p *StaticProvider) Invalidate() {}

// ServiceAccountProvider acquires tokens from Google service-account
// credentials, caching them until expiry or an explicit Invalidate.
type ServiceAccountProvider struct {
	credentialsJSON []byte

	mu     sync.Mutex
	source oauth2.TokenSource
}

// NewServiceAccountProvider builds a provider from inline credentials JSON
// or a credentials file path; inline JSON wins when both are set.
func NewServiceAccountProvider(credentialsJSON, credentialsFile string) (*ServiceAccountProvider, error) {
	var data []byte
	switch {
	case strings.TrimSpace(credentialsJSON) != "":
		data = []byte(credentialsJSON)
	case strings.TrimSpace(credentialsFile) != "":
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		data = b
	default:
		return nil, errors.New("missing service account credentials")
	}
	return &ServiceAccountProvider{credentialsJSON: data}, nil
}

func (p *ServiceAccountProvider) Token(ctx context.Context) (string, error) {
	src, err := p.tokenSource(ctx)
	if err != nil {
		return "", err
	}
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("acquire token: %w", err)
	}
	return tok.AccessToken, nil
}

func (p *ServiceAccountProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = nil
}

func (p *ServiceAccountProvider) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.source != nil {
		return p.source, nil
	}
	cfg, err := google.JWTConfigFromJSON(p.credentialsJSON, gsheet.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	p.source = oauth2.ReuseTokenSource(nil, cfg.TokenSource(ctx))
	return p.source, nil
}

// TokenSource adapts a Provider to the oauth2.TokenSource the Google API
// client options expect.
func TokenSource(ctx context.Context, p Provider) oauth2.TokenSource {
	return providerSource{ctx: ctx, provider: p}
}

type providerSource struct {
	ctx      context.Context
	provider Provider
}

func (s providerSource) Token() (*oauth2.Token, error) {
	tok, err := s.provider.Token(s.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
