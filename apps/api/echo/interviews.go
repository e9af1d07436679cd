package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/interviews"
)

type interviewsApi struct {
	svc *interviews.Service
}

func registerInterviewsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *interviews.Service) {
	api := interviewsApi{svc: svc}

	ig := g.Group("/interviews", jwt)
	ig.GET("/command-center", api.commandCenter)
}

// commandCenter returns the viewer's unified interview task queue across
// the hiring and instructor readiness pipelines.
func (api *interviewsApi) commandCenter(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	viewer := interviews.NewViewer(claims.Subject, claims.ChapterID, claims.Roles)

	data, err := api.svc.CommandCenter(
		ctx.Request().Context(),
		viewer,
		ctx.QueryParam("scope"),
		ctx.QueryParam("view"),
		ctx.QueryParam("state"),
	)
	if err != nil {
		return errors.Wrap(err, "building command center")
	}
	return ctx.JSON(http.StatusOK, data)
}
