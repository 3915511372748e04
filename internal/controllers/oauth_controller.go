package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/flowbaker/alloybridge/internal/auth"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	OAuthProviderMonday = "monday"

	MondayAuthURL  = "https://auth.monday.com/oauth2/authorize"
	MondayTokenURL = "https://auth.monday.com/oauth2/token"

	mondayCallbackPath = "/.netlify/functions/monday-oauth-callback"
)

var MondayScopes = []string{"boards:read", "updates:read", "updates:write", "boards:write", "me:read"}

// OAuthController runs the Monday authorization-code flow. Tokens never leave
// the server; the browser only receives a session id.
type OAuthController struct {
	clientID     string
	clientSecret string
	redirectURI  string
	endpoint     oauth2.Endpoint
	appURL       string
	stateSigner  *auth.OAuthStateSigner
	sessions     domain.OAuthSessionManager
	httpClient   *http.Client
}

type OAuthControllerDependencies struct {
	ClientID     string
	ClientSecret string
	// RedirectURI defaults to the callback route on the requesting host
	RedirectURI string
	AppURL      string
	// AuthURL and TokenURL default to Monday's endpoints
	AuthURL  string
	TokenURL string
	// StateSigner is nil when no client secret is configured
	StateSigner    *auth.OAuthStateSigner
	SessionManager domain.OAuthSessionManager
	HTTPClient     *http.Client
}

func NewOAuthController(deps OAuthControllerDependencies) *OAuthController {
	endpoint := oauth2.Endpoint{
		AuthURL:   MondayAuthURL,
		TokenURL:  MondayTokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}

	if deps.AuthURL != "" {
		endpoint.AuthURL = deps.AuthURL
	}

	if deps.TokenURL != "" {
		endpoint.TokenURL = deps.TokenURL
	}

	return &OAuthController{
		clientID:     deps.ClientID,
		clientSecret: deps.ClientSecret,
		redirectURI:  deps.RedirectURI,
		endpoint:     endpoint,
		appURL:       deps.AppURL,
		stateSigner:  deps.StateSigner,
		sessions:     deps.SessionManager,
		httpClient:   deps.HTTPClient,
	}
}

func (c *OAuthController) InitMonday(ctx fiber.Ctx) error {
	if c.clientID == "" {
		return domain.NewConfigurationError("Monday client ID not configured")
	}

	state := ""
	if c.stateSigner != nil {
		signed, err := c.stateSigner.Issue(OAuthProviderMonday)
		if err != nil {
			return err
		}
		state = signed
	} else {
		log.Warn().Msg("Monday client secret not configured, authorization request carries no state")
	}

	authURL := c.config(ctx).AuthCodeURL(state)

	log.Info().Str("redirect_uri", c.callbackURI(ctx)).Msg("Redirecting to Monday authorization")

	return ctx.Redirect().Status(fiber.StatusFound).To(authURL)
}

func (c *OAuthController) CallbackMonday(ctx fiber.Ctx) error {
	if oauthErr := ctx.Query("error"); oauthErr != "" {
		return &domain.Error{
			Kind:       domain.ErrorKindValidation,
			StatusCode: fiber.StatusBadRequest,
			Message:    "OAuth authorization failed",
			Details:    oauthErr,
		}
	}

	code := ctx.Query("code")
	if code == "" {
		return domain.NewValidationError("Authorization code is required")
	}

	if c.clientID == "" || c.clientSecret == "" {
		return domain.NewConfigurationError("Monday OAuth credentials not configured")
	}

	if err := c.verifyState(ctx.Query("state")); err != nil {
		return err
	}

	exchangeCtx := context.Context(ctx.RequestCtx())
	if c.httpClient != nil {
		exchangeCtx = context.WithValue(exchangeCtx, oauth2.HTTPClient, c.httpClient)
	}

	token, err := c.config(ctx).Exchange(exchangeCtx, code)
	if err != nil {
		log.Error().Err(err).Msg("Monday token exchange failed")

		return &domain.Error{
			Kind:       domain.ErrorKindValidation,
			StatusCode: fiber.StatusBadRequest,
			Message:    "Token exchange failed",
			Details:    err.Error(),
			Cause:      err,
		}
	}

	session, err := c.sessions.Create(ctx.RequestCtx(), domain.OAuthSession{
		Provider:     OAuthProviderMonday,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	})
	if err != nil {
		return err
	}

	log.Info().Str("session_id", session.ID).Msg("Monday authorization completed")

	query := url.Values{
		"provider": {OAuthProviderMonday},
		"session":  {session.ID},
	}

	return ctx.Redirect().Status(fiber.StatusFound).To(c.appURL + "/auth/callback?" + query.Encode())
}

// verifyState rejects missing, forged or expired states once a signer is configured.
func (c *OAuthController) verifyState(state string) error {
	if c.stateSigner == nil {
		return nil
	}

	if state == "" {
		log.Warn().Msg("Rejected Monday callback without state")
		return domain.NewValidationError("OAuth state is required")
	}

	if err := c.stateSigner.Verify(state, OAuthProviderMonday); err != nil {
		log.Warn().Err(err).Msg("Rejected Monday callback state")

		validationErr := domain.NewValidationError("Invalid OAuth state")
		validationErr.Cause = err

		return validationErr
	}

	return nil
}

func (c *OAuthController) config(ctx fiber.Ctx) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Endpoint:     c.endpoint,
		RedirectURL:  c.callbackURI(ctx),
		Scopes:       MondayScopes,
	}
}

func (c *OAuthController) callbackURI(ctx fiber.Ctx) string {
	if c.redirectURI != "" {
		return c.redirectURI
	}

	host := ctx.Host()

	scheme := "https"
	if strings.Contains(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
		scheme = "http"
	}

	return scheme + "://" + host + mondayCallbackPath
}
