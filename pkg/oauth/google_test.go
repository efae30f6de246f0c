package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewGoogleOAuthService(GoogleOAuthConfig{}).IsConfigured())
	assert.False(t, NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id"}).IsConfigured())
	assert.True(t, NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret"}).IsConfigured())
}

func TestGetAuthURLCarriesStateAndRedirect(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/auth/google/callback",
	})

	authURL := svc.GetAuthURL("state-token-123")

	assert.Contains(t, authURL, "state=state-token-123")
	assert.Contains(t, authURL, "client_id=id")
	assert.Contains(t, authURL, "userinfo.email")
}
