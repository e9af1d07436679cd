package readiness

import (
	"time"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core"
)

type Outcome string

// Gate outcomes
const (
	OutcomePassed    Outcome = "passed"
	OutcomeNeedsWork Outcome = "needs_work"
)

type RequestStatus string

// Availability request statuses
const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

type (
	// Gate is one instructor's pending certification interview requirement,
	// owned by the chapter lead who must get it scheduled and assessed.
	Gate struct {
		ID                      string    `json:"id"`
		Name                    string    `json:"name"`
		InstructorID            string    `json:"instructor_id"`
		InstructorName          string    `json:"instructor_name"`
		InstructorEmail         string    `json:"instructor_email"`
		ChapterID               string    `json:"chapter_id"`
		LeadID                  string    `json:"lead_id"`
		Outcome                 Outcome   `json:"outcome"`
		OutcomeNote             string    `json:"outcome_note"`
		AvailabilityRequestedAt time.Time `json:"availability_requested_at"`
		CreatedAt               time.Time `json:"created_at"` // UTC
		CompletedAt             time.Time `json:"completed_at"`

		Requests []AvailabilityRequest `json:"requests"`
		Slots    []Slot                `json:"slots"`
	}

	// AvailabilityRequest is a time window the instructor proposed themselves.
	AvailabilityRequest struct {
		ID            string        `json:"id"`
		GateID        string        `json:"gate_id"`
		ProposedStart time.Time     `json:"proposed_start"` // UTC
		ProposedEnd   time.Time     `json:"proposed_end"`   // UTC
		Status        RequestStatus `json:"status"`
		CreatedAt     time.Time     `json:"created_at"`
	}

	// Slot is a proposed or confirmed readiness interview date/time.
	Slot struct {
		ID        string    `json:"id"`
		GateID    string    `json:"gate_id"`
		StartsAt  time.Time `json:"starts_at"` // UTC
		EndsAt    time.Time `json:"ends_at"`   // UTC
		Confirmed bool      `json:"confirmed"`
		CreatedAt time.Time `json:"created_at"`
	}
)

// ConfirmedSlot returns the gate's confirmed slot, if any.
func (g *Gate) ConfirmedSlot() (Slot, bool) {
	for _, slot := range g.Slots {
		if slot.Confirmed {
			return slot, true
		}
	}
	return Slot{}, false
}

// EarliestProposedSlot returns the earliest unconfirmed slot, if any.
func (g *Gate) EarliestProposedSlot() (Slot, bool) {
	var found bool
	var earliest Slot
	for _, slot := range g.Slots {
		if slot.Confirmed {
			continue
		}
		if !found || slot.StartsAt.Before(earliest.StartsAt) {
			earliest = slot
			found = true
		}
	}
	return earliest, found
}

// PendingRequest returns the oldest pending availability request, if any.
func (g *Gate) PendingRequest() (AvailabilityRequest, bool) {
	var found bool
	var oldest AvailabilityRequest
	for _, req := range g.Requests {
		if req.Status != RequestPending {
			continue
		}
		if !found || req.CreatedAt.Before(oldest.CreatedAt) {
			oldest = req
			found = true
		}
	}
	return oldest, found
}

// AvailabilityKnown reports whether the instructor's availability has been
// requested or volunteered at some point.
func (g *Gate) AvailabilityKnown() bool {
	return !g.AvailabilityRequestedAt.IsZero() || len(g.Requests) > 0
}

// ReviewQuery scopes the gates returned for interview review.
// Team queries return the whole chapter; otherwise only the lead's own.
type ReviewQuery struct {
	LeadID    string
	ChapterID string
	Team      bool
}

// NewSlots is a bulk slot proposal for a Gate.
type NewSlots struct {
	Slots []SlotInput `json:"slots" validate:"required,min=1,dive"`
}

type SlotInput struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

func (ns *NewSlots) Validate() error { return core.Validate.Struct(ns) }

// OutcomeReport records the result of a held readiness interview.
type OutcomeReport struct {
	Outcome Outcome `json:"outcome" validate:"required,oneof=passed needs_work"`
	Note    string  `json:"note"`
}

func (or *OutcomeReport) Validate() error {
	or.Note = core.CleanString(or.Note)
	return core.Validate.Struct(or)
}
