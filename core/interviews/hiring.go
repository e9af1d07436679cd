package interviews

import (
	"time"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
)

// mapHiringApplication classifies one hiring application into a Task.
// Stage and primary action are pure functions of the application's own
// fields and `now`; nothing is cached, so an overdue scheduled interview is
// re-classified as needs-action on every read.
func mapHiringApplication(app hiring.Application, viewerID string, now time.Time) Task {
	t := Task{
		ID:        taskID(DomainHiring, app.ID),
		Domain:    DomainHiring,
		Audience:  audienceFor(app.ReviewerID, viewerID),
		Title:     app.CandidateName,
		Subtitle:  app.PositionTitle,
		OwnerName: app.CandidateName,
		Href:      "/hiring/applications/" + app.ID,
		Timestamps: Timestamps{
			SubmittedAt: app.SubmittedAt,
		},
		SecondaryLinks: []SecondaryLink{
			{Label: "Position", Href: "/hiring/positions/" + app.PositionID},
		},
	}
	openDetails := PrimaryAction{Kind: ActionOpenDetails, Href: t.Href, ApplicationID: app.ID}

	switch {
	case app.Status == hiring.StatusWithdrawn:
		t.Stage = StageBlocked
		t.Detail = "Application withdrawn"
		t.Blockers = append(t.Blockers, "application was withdrawn by the candidate")
		t.PrimaryAction = openDetails

	case !app.PositionOpen:
		t.Stage = StageBlocked
		t.Detail = "Position closed"
		t.Blockers = append(t.Blockers, "position is no longer open")
		t.PrimaryAction = openDetails

	case app.Status == hiring.StatusInterviewed || app.Status == hiring.StatusDecided:
		t.Stage = StageCompleted
		t.Timestamps.CompletedAt = app.InterviewedAt
		if t.Timestamps.CompletedAt.IsZero() {
			t.Timestamps.CompletedAt = app.DecidedAt
		}
		if app.RecommendationNote == "" {
			t.Detail = "Interview held, recommendation note missing"
			t.PrimaryAction = PrimaryAction{
				Kind:          ActionAddHiringRecommendationNote,
				Href:          t.Href + "/note",
				ApplicationID: app.ID,
			}
		} else {
			t.Detail = "Recommendation recorded"
			t.PrimaryAction = openDetails
		}

	case app.Status == hiring.StatusSubmitted:
		if slot, ok := app.ConfirmedSlot(); ok {
			if slot.EndsAt.IsZero() {
				// unmappable: a confirmed slot must carry a schedule
				t.Stage = StageBlocked
				t.Detail = "Interview record needs attention"
				t.Blockers = append(t.Blockers, "confirmed interview slot has no scheduled time")
				t.PrimaryAction = openDetails
				break
			}
			t.Timestamps.ScheduledAt = slot.StartsAt
			if slot.EndsAt.After(now) {
				t.Stage = StageScheduled
				t.Detail = "Interview scheduled"
				t.PrimaryAction = openDetails
			} else {
				// interview time passed with no outcome recorded
				t.Stage = StageNeedsAction
				t.Detail = "Interview time passed, outcome missing"
				t.PrimaryAction = PrimaryAction{
					Kind:          ActionCompleteHiringInterviewAndNote,
					Href:          t.Href + "/complete",
					ApplicationID: app.ID,
					SlotID:        slot.ID,
				}
			}
		} else if slot, ok := app.EarliestProposedSlot(); ok {
			t.Stage = StageNeedsAction
			t.Detail = "Proposed interview slot awaiting confirmation"
			t.PrimaryAction = PrimaryAction{
				Kind:          ActionConfirmHiringSlot,
				Href:          "/hiring/slots/" + slot.ID + "/confirm",
				ApplicationID: app.ID,
				SlotID:        slot.ID,
			}
		} else {
			t.Stage = StageNeedsAction
			t.Detail = "No interview slots proposed yet"
			t.PrimaryAction = PrimaryAction{
				Kind:          ActionPostHiringSlotsBulk,
				Href:          t.Href + "/slots",
				ApplicationID: app.ID,
			}
		}

	default:
		// unmappable status; surface rather than drop
		t.Stage = StageBlocked
		t.Detail = "Application record needs attention"
		t.Blockers = append(t.Blockers, "unrecognized application status "+string(app.Status))
		t.PrimaryAction = openDetails
	}
	return t
}

func audienceFor(ownerID, viewerID string) Audience {
	if ownerID == viewerID {
		return AudienceMine
	}
	return AudienceTeam
}
