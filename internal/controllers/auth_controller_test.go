package controllers

import (
	"net/http"
	"testing"

	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(links *fakeLinkManager, resolver *fakeResolver) *fiber.App {
	app := newTestApp()

	controller := NewAuthController(AuthControllerDependencies{
		CredentialLinkManager: links,
		CredentialResolver:    resolver,
		AppURL:                "https://app.example.com",
	})

	app.Get("/runalloy-auth", controller.HandleAuth)

	return app
}

func TestAuthController_CreateLink(t *testing.T) {
	links := &fakeLinkManager{link: domain.CredentialLink{URL: "https://alloy/link", UserID: "u-1"}}
	app := newAuthApp(links, &fakeResolver{})

	resp, body := doRequest(t, app, jsonRequest(http.MethodGet, "/runalloy-auth?action=create-link&email=Ann@Example.com", ""))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://alloy/link", body["linkUrl"])
	assert.Equal(t, "u-1", body["userId"])
	assert.Equal(t, "Ann@Example.com", links.identity)
	assert.Equal(t, []domain.ConnectorID{domain.ConnectorMonday}, links.connectors)
}

func TestAuthController_CreateLinkForConnector(t *testing.T) {
	links := &fakeLinkManager{link: domain.CredentialLink{URL: "https://alloy/link", UserID: "u-1"}}
	app := newAuthApp(links, &fakeResolver{})

	resp, _ := doRequest(t, app, jsonRequest(http.MethodGet, "/runalloy-auth?action=create-link&userId=u-1&connector=zohoCRM", ""))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.ConnectorID{domain.ConnectorZohoCRM}, links.connectors)
}

func TestAuthController_CreateLinkVendorFailure(t *testing.T) {
	links := &fakeLinkManager{err: domain.NewVendorError(http.StatusBadGateway, "Invalid response from RunAlloy - missing oauthUrl", nil)}
	app := newAuthApp(links, &fakeResolver{})

	resp, body := doRequest(t, app, jsonRequest(http.MethodGet, "/runalloy-auth?action=create-link&email=a@b.c", ""))

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Invalid response from RunAlloy - missing oauthUrl", body["error"])
}

func TestAuthController_CredentialStatus(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		resolver *fakeResolver
		want     map[string]any
	}{
		{
			name:     "credential present",
			action:   AuthActionCheckStatus,
			resolver: &fakeResolver{credential: domain.Credential{ID: "cred-1", Status: "active"}},
			want:     map[string]any{"hasCredential": true, "credentialId": "cred-1", "status": "active"},
		},
		{
			name:     "no credential",
			action:   AuthActionGetCredential,
			resolver: &fakeResolver{err: domain.NewNotFoundError("No monday credential found for user u")},
			want:     map[string]any{"hasCredential": false},
		},
		{
			name:     "vendor failure is reported but still 200",
			action:   AuthActionCheckStatus,
			resolver: &fakeResolver{err: domain.NewVendorError(http.StatusUnauthorized, "Unauthorized", nil)},
			want:     map[string]any{"hasCredential": false, "error": "Unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthApp(&fakeLinkManager{}, tt.resolver)

			resp, body := doRequest(t, app, jsonRequest(http.MethodGet, "/runalloy-auth?action="+tt.action+"&userId=u", ""))

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, body)
			assert.Equal(t, 1, tt.resolver.lookups)
		})
	}
}

func TestAuthController_ReturnFromVendor(t *testing.T) {
	app := newAuthApp(&fakeLinkManager{}, &fakeResolver{})

	resp, _ := doRequest(t, app, jsonRequest(http.MethodGet, "/runalloy-auth", ""))

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://app.example.com/?auth=success", resp.Header.Get("Location"))
}

func TestAuthController_InvalidAction(t *testing.T) {
	app := newAuthApp(&fakeLinkManager{}, &fakeResolver{})

	resp, body := doRequest(t, app, jsonRequest(http.MethodGet, "/runalloy-auth?action=explode&userId=u", ""))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid action", body["error"])
}
