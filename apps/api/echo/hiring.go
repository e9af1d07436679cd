package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
)

type hiringApi struct {
	svc *hiring.Service
}

func registerHiringAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *hiring.Service) {
	api := hiringApi{svc: svc}

	hg := g.Group("/hiring", jwt)
	hg.POST("/applications/:id/slots", api.proposeSlots)
	hg.POST("/applications/:id/complete", api.completeInterview)
	hg.POST("/applications/:id/note", api.addNote)
	hg.POST("/slots/:id/confirm", api.confirmSlot)
}

// Handlers

func (api *hiringApi) proposeSlots(ctx echo.Context) error {
	var data hiring.NewSlots
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSlots")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	slots, err := api.svc.ProposeSlots(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return hiringError(err, "proposing slots")
	}
	return ctx.JSON(http.StatusCreated, slots)
}

func (api *hiringApi) confirmSlot(ctx echo.Context) error {
	slot, err := api.svc.ConfirmSlot(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return hiringError(err, "confirming slot")
	}
	return ctx.JSON(http.StatusOK, slot)
}

func (api *hiringApi) completeInterview(ctx echo.Context) error {
	var data hiring.InterviewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InterviewReport")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	app, err := api.svc.CompleteInterview(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return hiringError(err, "completing interview")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *hiringApi) addNote(ctx echo.Context) error {
	var data hiring.RecommendationNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RecommendationNote")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	app, err := api.svc.AddRecommendationNote(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return hiringError(err, "adding recommendation note")
	}
	return ctx.JSON(http.StatusOK, app)
}

// hiringError translates domain errors into HTTP errors.
func hiringError(err error, msg string) error {
	switch errors.Cause(err) {
	case hiring.ErrNotFound, hiring.ErrSlotNotFound:
		return errHttpNotFound
	case hiring.ErrSlotConfirmed, hiring.ErrNotInterviewable:
		return echo.NewHTTPError(http.StatusConflict, errors.Cause(err).Error())
	}
	return errors.Wrap(err, msg)
}
