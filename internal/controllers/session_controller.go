package controllers

import (
	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
)

type SessionController struct {
	sessions domain.OAuthSessionManager
}

type SessionControllerDependencies struct {
	SessionManager domain.OAuthSessionManager
}

func NewSessionController(deps SessionControllerDependencies) *SessionController {
	return &SessionController{
		sessions: deps.SessionManager,
	}
}

// GetSession describes an OAuth session without exposing its tokens.
func (c *SessionController) GetSession(ctx fiber.Ctx) error {
	session, err := c.sessions.Get(ctx.RequestCtx(), ctx.Query("session"))
	if err != nil {
		return err
	}

	return ctx.JSON(bridge.DataResponse[domain.OAuthSessionView]{Data: session.View()})
}
