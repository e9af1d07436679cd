package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
)

type readinessApi struct {
	svc *readiness.Service
}

func registerReadinessAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *readiness.Service) {
	api := readinessApi{svc: svc}

	rg := g.Group("/readiness", jwt, leadMiddleware())
	rg.POST("/gates/:id/request-availability", api.requestAvailability)
	rg.POST("/gates/:id/slots", api.proposeSlots)
	rg.POST("/gates/:id/outcome", api.recordOutcome)
	rg.POST("/requests/:id/accept", api.acceptRequest)
	rg.POST("/slots/:id/confirm", api.confirmSlot)
}

// Handlers

func (api *readinessApi) requestAvailability(ctx echo.Context) error {
	gate, err := api.svc.RequestAvailability(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return readinessError(err, "requesting availability")
	}
	return ctx.JSON(http.StatusOK, gate)
}

func (api *readinessApi) acceptRequest(ctx echo.Context) error {
	slot, err := api.svc.AcceptRequest(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return readinessError(err, "accepting availability request")
	}
	return ctx.JSON(http.StatusOK, slot)
}

func (api *readinessApi) proposeSlots(ctx echo.Context) error {
	var data readiness.NewSlots
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSlots")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	slots, err := api.svc.ProposeSlots(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return readinessError(err, "proposing slots")
	}
	return ctx.JSON(http.StatusCreated, slots)
}

func (api *readinessApi) confirmSlot(ctx echo.Context) error {
	slot, err := api.svc.ConfirmSlot(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return readinessError(err, "confirming slot")
	}
	return ctx.JSON(http.StatusOK, slot)
}

func (api *readinessApi) recordOutcome(ctx echo.Context) error {
	var data readiness.OutcomeReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to OutcomeReport")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	gate, err := api.svc.RecordOutcome(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return readinessError(err, "recording outcome")
	}
	return ctx.JSON(http.StatusOK, gate)
}

// readinessError translates domain errors into HTTP errors.
func readinessError(err error, msg string) error {
	switch errors.Cause(err) {
	case readiness.ErrNotFound, readiness.ErrSlotNotFound, readiness.ErrRequestNotFound:
		return errHttpNotFound
	case readiness.ErrSlotConfirmed, readiness.ErrOutcomeRecorded, readiness.ErrRequestNotPending, readiness.ErrNoInstructor:
		return echo.NewHTTPError(http.StatusConflict, errors.Cause(err).Error())
	}
	return errors.Wrap(err, msg)
}
