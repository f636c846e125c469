package oauth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// GoogleService authenticates server-to-server calls to Google APIs with a service account.
type GoogleService interface {
	// Client returns an HTTP client whose requests carry a fresh bearer token.
	Client(ctx context.Context) *http.Client
	// Email is the service account address, the identity spreadsheets must be shared with.
	Email() string
}

type GoogleServiceImpl struct {
	config *jwt.Config
}

func NewGoogleService(credentialsJSON []byte, scopes ...string) (GoogleService, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	return &GoogleServiceImpl{config: config}, nil
}

// NewGoogleServiceFromFile reads service account credentials from disk.
func NewGoogleServiceFromFile(path string, scopes ...string) (GoogleService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account credentials: %w", err)
	}
	return NewGoogleService(data, scopes...)
}

func (g *GoogleServiceImpl) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, g.config.TokenSource(ctx)))
}

func (g *GoogleServiceImpl) Email() string {
	return g.config.Email
}
