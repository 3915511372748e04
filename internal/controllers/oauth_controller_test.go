package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/flowbaker/alloybridge/internal/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientSecret = "monday-secret"

type oauthFixture struct {
	app         *fiber.App
	sessions    *fakeSessionManager
	signer      *auth.OAuthStateSigner
	tokenServer *httptest.Server
	tokenForms  []url.Values
}

func newOAuthFixture(t *testing.T, deps OAuthControllerDependencies, tokenStatus int) *oauthFixture {
	t.Helper()

	fixture := &oauthFixture{sessions: newFakeSessionManager()}

	fixture.tokenServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		fixture.tokenForms = append(fixture.tokenForms, r.PostForm)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(tokenStatus)

		if tokenStatus != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		_, _ = w.Write([]byte(`{"access_token":"tok-1","refresh_token":"ref-1","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(fixture.tokenServer.Close)

	signer, err := auth.NewOAuthStateSigner(testClientSecret, time.Minute)
	require.NoError(t, err)
	fixture.signer = signer

	deps.AppURL = "https://app.example.com"
	deps.AuthURL = "https://monday.example.com/oauth2/authorize"
	deps.TokenURL = fixture.tokenServer.URL
	deps.SessionManager = fixture.sessions
	deps.HTTPClient = fixture.tokenServer.Client()
	if deps.ClientSecret != "" {
		deps.StateSigner = signer
	}

	controller := NewOAuthController(deps)
	sessions := NewSessionController(SessionControllerDependencies{SessionManager: fixture.sessions})

	fixture.app = newTestApp()
	fixture.app.Get("/monday-oauth-init", controller.InitMonday)
	fixture.app.Get("/monday-oauth-callback", controller.CallbackMonday)
	fixture.app.Get("/oauth-session", sessions.GetSession)

	return fixture
}

func TestOAuthController_InitMonday(t *testing.T) {
	fixture := newOAuthFixture(t, OAuthControllerDependencies{
		ClientID:     "client-1",
		ClientSecret: testClientSecret,
	}, http.StatusOK)

	resp, _ := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/monday-oauth-init", ""))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "monday.example.com", location.Host)

	query := location.Query()
	assert.Equal(t, "client-1", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "https://example.com/.netlify/functions/monday-oauth-callback", query.Get("redirect_uri"))
	assert.Equal(t, "boards:read updates:read updates:write boards:write me:read", query.Get("scope"))
	assert.NoError(t, fixture.signer.Verify(query.Get("state"), OAuthProviderMonday))
}

func TestOAuthController_InitMondayConfiguredRedirect(t *testing.T) {
	fixture := newOAuthFixture(t, OAuthControllerDependencies{
		ClientID:    "client-1",
		RedirectURI: "http://localhost:8888/api/monday-oauth-callback",
	}, http.StatusOK)

	resp, _ := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/monday-oauth-init", ""))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8888/api/monday-oauth-callback", location.Query().Get("redirect_uri"))
	assert.False(t, location.Query().Has("state"))
}

func TestOAuthController_InitMondayWithoutClientID(t *testing.T) {
	fixture := newOAuthFixture(t, OAuthControllerDependencies{}, http.StatusOK)

	resp, body := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/monday-oauth-init", ""))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Monday client ID not configured", body["error"])
}

func TestOAuthController_CallbackCreatesSession(t *testing.T) {
	fixture := newOAuthFixture(t, OAuthControllerDependencies{
		ClientID:     "client-1",
		ClientSecret: testClientSecret,
	}, http.StatusOK)

	state, err := fixture.signer.Issue(OAuthProviderMonday)
	require.NoError(t, err)

	resp, _ := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/monday-oauth-callback?code=abc&state="+state, ""))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://app.example.com/auth/callback?provider=monday&session=session-1", resp.Header.Get("Location"))

	require.Len(t, fixture.tokenForms, 1)
	assert.Equal(t, "abc", fixture.tokenForms[0].Get("code"))
	assert.Equal(t, "client-1", fixture.tokenForms[0].Get("client_id"))
	assert.Equal(t, testClientSecret, fixture.tokenForms[0].Get("client_secret"))

	session, err := fixture.sessions.Get(t.Context(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.AccessToken)
	assert.Equal(t, "ref-1", session.RefreshToken)

	resp, body := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/oauth-session?session=session-1", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "monday", data["provider"])
	assert.NotContains(t, data, "access_token")
	assert.NotContains(t, data, "accessToken")
}

func TestOAuthController_CallbackFailures(t *testing.T) {
	tests := []struct {
		name        string
		deps        OAuthControllerDependencies
		tokenStatus int
		query       string
		signState   bool
		wantStatus  int
		wantError   string
	}{
		{
			name:        "provider error",
			deps:        OAuthControllerDependencies{ClientID: "c", ClientSecret: testClientSecret},
			tokenStatus: http.StatusOK,
			query:       "error=access_denied",
			wantStatus:  http.StatusBadRequest,
			wantError:   "OAuth authorization failed",
		},
		{
			name:        "missing code",
			deps:        OAuthControllerDependencies{ClientID: "c", ClientSecret: testClientSecret},
			tokenStatus: http.StatusOK,
			query:       "state=x",
			wantStatus:  http.StatusBadRequest,
			wantError:   "Authorization code is required",
		},
		{
			name:        "missing credentials",
			deps:        OAuthControllerDependencies{ClientID: "c"},
			tokenStatus: http.StatusOK,
			query:       "code=abc",
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Monday OAuth credentials not configured",
		},
		{
			name:        "forged state",
			deps:        OAuthControllerDependencies{ClientID: "c", ClientSecret: testClientSecret},
			tokenStatus: http.StatusOK,
			query:       "code=abc&state=not-a-token",
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid OAuth state",
		},
		{
			name:        "missing state",
			deps:        OAuthControllerDependencies{ClientID: "c", ClientSecret: testClientSecret},
			tokenStatus: http.StatusOK,
			query:       "code=abc",
			wantStatus:  http.StatusBadRequest,
			wantError:   "OAuth state is required",
		},
		{
			name:        "token exchange rejected",
			deps:        OAuthControllerDependencies{ClientID: "c", ClientSecret: testClientSecret},
			tokenStatus: http.StatusBadRequest,
			query:       "code=abc",
			signState:   true,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Token exchange failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newOAuthFixture(t, tt.deps, tt.tokenStatus)

			query := tt.query
			if tt.signState {
				state, err := fixture.signer.Issue(OAuthProviderMonday)
				require.NoError(t, err)
				query += "&state=" + state
			}

			resp, body := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/monday-oauth-callback?"+query, ""))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, body["error"])
			assert.Empty(t, fixture.sessions.sessions)
		})
	}
}

func TestSessionController_GetSessionErrors(t *testing.T) {
	fixture := newOAuthFixture(t, OAuthControllerDependencies{}, http.StatusOK)

	resp, body := doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/oauth-session", ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Session ID is required", body["error"])

	resp, body = doRequest(t, fixture.app, jsonRequest(http.MethodGet, "/oauth-session?session=nope", ""))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Session not found or expired", body["error"])
}
