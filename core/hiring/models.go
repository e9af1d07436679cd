package hiring

import (
	"time"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core"
)

type Status string

// Application statuses
const (
	StatusSubmitted   Status = "submitted"
	StatusInterviewed Status = "interviewed"
	StatusDecided     Status = "decided"
	StatusWithdrawn   Status = "withdrawn"
)

type Decision string

const (
	DecisionHired    Decision = "hired"
	DecisionRejected Decision = "rejected"
)

type (
	// Application is a candidate's application against an open Position,
	// assigned to a reviewer who shepherds it through the interview pipeline.
	Application struct {
		ID                 string    `json:"id"`
		PositionID         string    `json:"position_id"`
		PositionTitle      string    `json:"position_title"`
		PositionOpen       bool      `json:"position_open"`
		CandidateName      string    `json:"candidate_name"`
		CandidateEmail     string    `json:"candidate_email"`
		ChapterID          string    `json:"chapter_id"`
		ReviewerID         string    `json:"reviewer_id"`
		Status             Status    `json:"status"`
		RecommendationNote string    `json:"recommendation_note"`
		Decision           Decision  `json:"decision"`
		SubmittedAt        time.Time `json:"submitted_at"` // UTC
		InterviewedAt      time.Time `json:"interviewed_at"`
		DecidedAt          time.Time `json:"decided_at"`

		Slots []Slot `json:"slots"`
	}

	// Slot is a proposed or confirmed interview date/time for an Application.
	Slot struct {
		ID            string    `json:"id"`
		ApplicationID string    `json:"application_id"`
		StartsAt      time.Time `json:"starts_at"` // UTC
		EndsAt        time.Time `json:"ends_at"`   // UTC
		Confirmed     bool      `json:"confirmed"`
		CreatedAt     time.Time `json:"created_at"`
	}
)

// ConfirmedSlot returns the application's confirmed slot, if any.
func (app *Application) ConfirmedSlot() (Slot, bool) {
	for _, slot := range app.Slots {
		if slot.Confirmed {
			return slot, true
		}
	}
	return Slot{}, false
}

// EarliestProposedSlot returns the earliest unconfirmed slot, if any.
func (app *Application) EarliestProposedSlot() (Slot, bool) {
	var found bool
	var earliest Slot
	for _, slot := range app.Slots {
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

// ReviewQuery scopes the applications returned for interview review.
// Team queries return the whole chapter; otherwise only the reviewer's own.
type ReviewQuery struct {
	ReviewerID string
	ChapterID  string
	Team       bool
}

// NewSlots is a bulk slot proposal for an Application.
type NewSlots struct {
	Slots []SlotInput `json:"slots" validate:"required,min=1,dive"`
}

type SlotInput struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

func (ns *NewSlots) Validate() error { return core.Validate.Struct(ns) }

// InterviewReport records the held interview and the reviewer's note.
type InterviewReport struct {
	Note string `json:"note"`
}

func (ir *InterviewReport) Validate() error {
	ir.Note = core.CleanString(ir.Note)
	return nil
}

// RecommendationNote is the reviewer's hiring recommendation.
type RecommendationNote struct {
	Note string `json:"note" validate:"required"`
}

func (rn *RecommendationNote) Validate() error {
	rn.Note = core.CleanString(rn.Note)
	return core.Validate.Struct(rn)
}
