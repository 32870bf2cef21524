package calendar

import (
	"context"
	"fmt"
	"sync"

	"counselconnect/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CredentialProvider hands out calendar credentials per counselor. Token
// refresh is the provider's job; callers never see raw refresh tokens or
// shared global clients.
type CredentialProvider interface {
	TokenSource(ctx context.Context, counselorID string) (oauth2.TokenSource, error)
	CalendarID(counselorID string) (string, error)
}

// OAuthCredentialProvider implements CredentialProvider on top of one OAuth
// client and the configured per-counselor refresh tokens.
type OAuthCredentialProvider struct {
	conf     *oauth2.Config
	registry *config.CounselorRegistry

	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

// NewOAuthCredentialProvider wires the shared OAuth client to the roster.
func NewOAuthCredentialProvider(clientID, clientSecret, redirectURL string, registry *config.CounselorRegistry) *OAuthCredentialProvider {
	return &OAuthCredentialProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
		},
		registry: registry,
		sources:  make(map[string]oauth2.TokenSource),
	}
}

// TokenSource returns a refreshing token source for the counselor, creating
// it on first use. Sources are cached so refreshed access tokens are reused
// across requests.
func (p *OAuthCredentialProvider) TokenSource(ctx context.Context, counselorID string) (oauth2.TokenSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if src, ok := p.sources[counselorID]; ok {
		return src, nil
	}

	counselor, ok := p.registry.Lookup(counselorID)
	if !ok {
		return nil, fmt.Errorf("no credentials configured for counselor %q", counselorID)
	}
	if counselor.RefreshToken == "" {
		return nil, fmt.Errorf("counselor %q has no refresh token; complete the OAuth flow first", counselorID)
	}

	src := p.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: counselor.RefreshToken})
	p.sources[counselorID] = src
	return src, nil
}

// CalendarID resolves the counselor's calendar identity.
func (p *OAuthCredentialProvider) CalendarID(counselorID string) (string, error) {
	counselor, ok := p.registry.Lookup(counselorID)
	if !ok {
		return "", fmt.Errorf("no calendar configured for counselor %q", counselorID)
	}
	return counselor.CalendarID, nil
}

// Exchange trades an authorization code for tokens during counselor
// onboarding. The returned refresh token goes into configuration.
func (p *OAuthCredentialProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.conf.Exchange(ctx, code)
}

// AuthCodeURL builds the consent URL for onboarding a counselor calendar.
func (p *OAuthCredentialProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}
