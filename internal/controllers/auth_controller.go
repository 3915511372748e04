package controllers

import (
	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const (
	AuthActionCreateLink    = "create-link"
	AuthActionGetCredential = "get-credential"
	AuthActionCheckStatus   = "check-status"
)

// AuthController serves credential linking and status checks against RunAlloy.
type AuthController struct {
	links    domain.CredentialLinkManager
	resolver domain.CredentialResolver
	appURL   string
}

type AuthControllerDependencies struct {
	CredentialLinkManager domain.CredentialLinkManager
	CredentialResolver    domain.CredentialResolver
	AppURL                string
}

func NewAuthController(deps AuthControllerDependencies) *AuthController {
	return &AuthController{
		links:    deps.CredentialLinkManager,
		resolver: deps.CredentialResolver,
		appURL:   deps.AppURL,
	}
}

func (c *AuthController) HandleAuth(ctx fiber.Ctx) error {
	action := ctx.Query("action")
	identity := userIdentity(ctx)

	// RunAlloy sends the browser back here without parameters once linking completes.
	if action == "" && identity == "" {
		log.Info().Msg("Credential link completed, returning to app")
		return ctx.Redirect().Status(fiber.StatusFound).To(c.appURL + "/?auth=success")
	}

	connector := domain.ConnectorID(ctx.Query("connector", string(domain.ConnectorMonday)))

	switch action {
	case AuthActionCreateLink:
		return c.createLink(ctx, identity, connector)
	case AuthActionGetCredential, AuthActionCheckStatus:
		return c.credentialStatus(ctx, identity, connector)
	default:
		log.Warn().Str("action", action).Msg("Invalid auth action")
		return domain.NewValidationError("Invalid action")
	}
}

func (c *AuthController) createLink(ctx fiber.Ctx, identity string, connector domain.ConnectorID) error {
	link, err := c.links.CreateLink(ctx.RequestCtx(), identity, connector)
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.CreateLinkResponse{
		LinkURL: link.URL,
		UserID:  link.UserID,
	})
}

// credentialStatus always answers 200; a failed lookup just means no credential.
func (c *AuthController) credentialStatus(ctx fiber.Ctx, identity string, connector domain.ConnectorID) error {
	credential, err := c.resolver.Lookup(ctx.RequestCtx(), identity, connector)
	if err != nil {
		response := bridge.CredentialStatusResponse{HasCredential: false}

		if !domain.IsNotFound(err) {
			log.Warn().Err(err).Str("connector", string(connector)).Msg("Credential lookup failed")

			response.Error = err.Error()
			if domainErr, ok := domain.AsError(err); ok {
				response.Error = domainErr.Message
			}
		}

		return ctx.JSON(response)
	}

	return ctx.JSON(bridge.CredentialStatusResponse{
		HasCredential: true,
		CredentialID:  credential.ID,
		Status:        credential.Status,
	})
}
