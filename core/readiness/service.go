package readiness

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core"
)

var (
	// errors
	ErrNotFound          = errors.New("readiness gate not found")
	ErrSlotNotFound      = errors.New("interview slot not found")
	ErrRequestNotFound   = errors.New("availability request not found")
	ErrNoInstructor      = errors.New("no instructor assigned to this gate")
	ErrSlotConfirmed     = errors.New("an interview slot is already confirmed for this gate")
	ErrOutcomeRecorded   = errors.New("an outcome has already been recorded for this gate")
	ErrRequestNotPending = errors.New("availability request is not pending")
)

type (
	Repository interface {
		QueryGatesForReview(ctx context.Context, q ReviewQuery) ([]Gate, error)
		GetGate(ctx context.Context, id string) (Gate, error)
		GetSlot(ctx context.Context, id string) (Slot, error)
		GetRequest(ctx context.Context, id string) (AvailabilityRequest, error)
		CreateSlots(ctx context.Context, slots []Slot) ([]Slot, error)
		UpdateSlot(ctx context.Context, slot Slot) (Slot, error)
		UpdateRequest(ctx context.Context, req AvailabilityRequest) (AvailabilityRequest, error)
		UpdateGate(ctx context.Context, gate Gate) (Gate, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// QueryForReview returns gates (with their slots and availability requests)
// in scope for the interview command center.
func (svc *Service) QueryForReview(ctx context.Context, q ReviewQuery) ([]Gate, error) {
	return svc.repo.QueryGatesForReview(ctx, q)
}

func (svc *Service) GetGate(ctx context.Context, id string) (Gate, error) {
	return svc.repo.GetGate(ctx, id)
}

// RequestAvailability asks the gate's instructor for interview availability.
func (svc *Service) RequestAvailability(ctx context.Context, gateID string) (Gate, error) {
	gate, err := svc.repo.GetGate(ctx, gateID)
	if err != nil {
		return Gate{}, errors.Wrap(err, "finding gate")
	}
	if gate.InstructorID == "" {
		return Gate{}, ErrNoInstructor
	}
	if gate.Outcome != "" {
		return Gate{}, ErrOutcomeRecorded
	}

	gate.AvailabilityRequestedAt = time.Now().UTC()
	gate, err = svc.repo.UpdateGate(ctx, gate)
	if err != nil {
		return Gate{}, errors.Wrap(err, "updating gate")
	}

	svc.sendAvailabilityRequestMail(gate)
	return gate, nil
}

// AcceptRequest accepts an instructor-proposed time window, turning it into
// the gate's confirmed slot.
func (svc *Service) AcceptRequest(ctx context.Context, requestID string) (Slot, error) {
	req, err := svc.repo.GetRequest(ctx, requestID)
	if err != nil {
		return Slot{}, errors.Wrap(err, "finding request")
	}
	if req.Status != RequestPending {
		return Slot{}, ErrRequestNotPending
	}
	gate, err := svc.repo.GetGate(ctx, req.GateID)
	if err != nil {
		return Slot{}, errors.Wrap(err, "finding gate")
	}
	if _, ok := gate.ConfirmedSlot(); ok {
		return Slot{}, ErrSlotConfirmed
	}

	req.Status = RequestAccepted
	if _, err = svc.repo.UpdateRequest(ctx, req); err != nil {
		return Slot{}, errors.Wrap(err, "accepting request")
	}

	slots, err := svc.repo.CreateSlots(ctx, []Slot{{
		ID:        uuid.NewString(),
		GateID:    gate.ID,
		StartsAt:  req.ProposedStart.UTC(),
		EndsAt:    req.ProposedEnd.UTC(),
		Confirmed: true,
		CreatedAt: time.Now().UTC(),
	}})
	if err != nil {
		return Slot{}, errors.Wrap(err, "creating confirmed slot")
	}

	svc.sendSlotConfirmedMail(gate, slots[0])
	return slots[0], nil
}

// ProposeSlots creates a batch of unconfirmed interview slots for a gate.
func (svc *Service) ProposeSlots(ctx context.Context, gateID string, ns NewSlots) ([]Slot, error) {
	gate, err := svc.repo.GetGate(ctx, gateID)
	if err != nil {
		return nil, errors.Wrap(err, "finding gate")
	}
	if gate.InstructorID == "" {
		return nil, ErrNoInstructor
	}
	if gate.Outcome != "" {
		return nil, ErrOutcomeRecorded
	}

	now := time.Now().UTC()
	slots := make([]Slot, 0, len(ns.Slots))
	for _, in := range ns.Slots {
		slots = append(slots, Slot{
			ID:        uuid.NewString(),
			GateID:    gate.ID,
			StartsAt:  in.StartsAt.UTC(),
			EndsAt:    in.EndsAt.UTC(),
			CreatedAt: now,
		})
	}
	return svc.repo.CreateSlots(ctx, slots)
}

// ConfirmSlot marks a proposed slot as the confirmed interview time and
// notifies the instructor.
func (svc *Service) ConfirmSlot(ctx context.Context, slotID string) (Slot, error) {
	slot, err := svc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return Slot{}, errors.Wrap(err, "finding slot")
	}
	gate, err := svc.repo.GetGate(ctx, slot.GateID)
	if err != nil {
		return Slot{}, errors.Wrap(err, "finding gate")
	}
	if _, ok := gate.ConfirmedSlot(); ok {
		return Slot{}, ErrSlotConfirmed
	}

	slot.Confirmed = true
	slot, err = svc.repo.UpdateSlot(ctx, slot)
	if err != nil {
		return Slot{}, errors.Wrap(err, "confirming slot")
	}

	svc.sendSlotConfirmedMail(gate, slot)
	return slot, nil
}

// RecordOutcome finalizes a held readiness interview.
func (svc *Service) RecordOutcome(ctx context.Context, gateID string, report OutcomeReport) (Gate, error) {
	gate, err := svc.repo.GetGate(ctx, gateID)
	if err != nil {
		return Gate{}, errors.Wrap(err, "finding gate")
	}
	if gate.Outcome != "" {
		return Gate{}, ErrOutcomeRecorded
	}

	gate.Outcome = report.Outcome
	gate.OutcomeNote = report.Note
	gate.CompletedAt = time.Now().UTC()
	return svc.repo.UpdateGate(ctx, gate)
}

func (svc *Service) sendAvailabilityRequestMail(gate Gate) {
	if gate.InstructorEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: gate.InstructorName, Address: gate.InstructorEmail}},
		Subject: "Interview availability needed",
		Body: fmt.Sprintf(
			"Hi %s,\n\nPlease share your availability for your %q readiness interview.",
			gate.InstructorName, gate.Name,
		),
	})
}

func (svc *Service) sendSlotConfirmedMail(gate Gate, slot Slot) {
	if gate.InstructorEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: gate.InstructorName, Address: gate.InstructorEmail}},
		Subject: "Your readiness interview is confirmed",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour %q readiness interview is confirmed for %s.",
			gate.InstructorName, gate.Name, slot.StartsAt.Format(time.RFC1123),
		),
	})
}
