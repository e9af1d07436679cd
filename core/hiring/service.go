package hiring

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
	ErrNotFound         = errors.New("application not found")
	ErrSlotNotFound     = errors.New("interview slot not found")
	ErrSlotConfirmed    = errors.New("an interview slot is already confirmed for this application")
	ErrNotInterviewable = errors.New("application is not awaiting an interview")
)

type (
	Repository interface {
		QueryApplicationsForReview(ctx context.Context, q ReviewQuery) ([]Application, error)
		GetApplication(ctx context.Context, id string) (Application, error)
		GetSlot(ctx context.Context, id string) (Slot, error)
		CreateSlots(ctx context.Context, slots []Slot) ([]Slot, error)
		UpdateSlot(ctx context.Context, slot Slot) (Slot, error)
		UpdateApplication(ctx context.Context, app Application) (Application, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// QueryForReview returns applications (with their slots) in scope for the
// interview command center.
func (svc *Service) QueryForReview(ctx context.Context, q ReviewQuery) ([]Application, error) {
	return svc.repo.QueryApplicationsForReview(ctx, q)
}

func (svc *Service) GetApplication(ctx context.Context, id string) (Application, error) {
	return svc.repo.GetApplication(ctx, id)
}

// ProposeSlots creates a batch of unconfirmed interview slots for an application.
func (svc *Service) ProposeSlots(ctx context.Context, appID string, ns NewSlots) ([]Slot, error) {
	app, err := svc.repo.GetApplication(ctx, appID)
	if err != nil {
		return nil, errors.Wrap(err, "finding application")
	}
	if app.Status != StatusSubmitted {
		return nil, ErrNotInterviewable
	}

	now := time.Now().UTC()
	slots := make([]Slot, 0, len(ns.Slots))
	for _, in := range ns.Slots {
		slots = append(slots, Slot{
			ID:            uuid.NewString(),
			ApplicationID: app.ID,
			StartsAt:      in.StartsAt.UTC(),
			EndsAt:        in.EndsAt.UTC(),
			CreatedAt:     now,
		})
	}
	return svc.repo.CreateSlots(ctx, slots)
}

// ConfirmSlot marks a proposed slot as the confirmed interview time and
// notifies the candidate.
func (svc *Service) ConfirmSlot(ctx context.Context, slotID string) (Slot, error) {
	slot, err := svc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return Slot{}, errors.Wrap(err, "finding slot")
	}
	app, err := svc.repo.GetApplication(ctx, slot.ApplicationID)
	if err != nil {
		return Slot{}, errors.Wrap(err, "finding application")
	}
	if _, ok := app.ConfirmedSlot(); ok {
		return Slot{}, ErrSlotConfirmed
	}

	slot.Confirmed = true
	slot, err = svc.repo.UpdateSlot(ctx, slot)
	if err != nil {
		return Slot{}, errors.Wrap(err, "confirming slot")
	}

	svc.sendSlotConfirmedMail(app, slot)
	return slot, nil
}

// CompleteInterview records that the confirmed interview was held.
func (svc *Service) CompleteInterview(ctx context.Context, appID string, report InterviewReport) (Application, error) {
	app, err := svc.repo.GetApplication(ctx, appID)
	if err != nil {
		return Application{}, errors.Wrap(err, "finding application")
	}
	if app.Status != StatusSubmitted {
		return Application{}, ErrNotInterviewable
	}

	app.Status = StatusInterviewed
	app.InterviewedAt = time.Now().UTC()
	if report.Note != "" {
		app.RecommendationNote = report.Note
	}
	return svc.repo.UpdateApplication(ctx, app)
}

// AddRecommendationNote attaches the reviewer's recommendation to a
// completed interview.
func (svc *Service) AddRecommendationNote(ctx context.Context, appID string, rn RecommendationNote) (Application, error) {
	app, err := svc.repo.GetApplication(ctx, appID)
	if err != nil {
		return Application{}, errors.Wrap(err, "finding application")
	}

	app.RecommendationNote = rn.Note
	return svc.repo.UpdateApplication(ctx, app)
}

func (svc *Service) sendSlotConfirmedMail(app Application, slot Slot) {
	if app.CandidateEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: app.CandidateName, Address: app.CandidateEmail}},
		Subject: "Your interview is confirmed",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour interview for %q is confirmed for %s.\n\nGood luck!",
			app.CandidateName, app.PositionTitle, slot.StartsAt.Format(time.RFC1123),
		),
	})
}
