package interviews

import (
	"time"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
)

// mapReadinessGate classifies one readiness gate into a Task. Same contract
// as mapHiringApplication: stage is derived fresh on every read.
func mapReadinessGate(gate readiness.Gate, viewerID string, now time.Time) Task {
	t := Task{
		ID:        taskID(DomainReadiness, gate.ID),
		Domain:    DomainReadiness,
		Audience:  audienceFor(gate.LeadID, viewerID),
		Title:     gate.InstructorName,
		Subtitle:  gate.Name,
		OwnerName: gate.InstructorName,
		Href:      "/readiness/gates/" + gate.ID,
		Timestamps: Timestamps{
			SubmittedAt: gate.CreatedAt,
		},
	}
	if gate.InstructorID != "" {
		t.SecondaryLinks = []SecondaryLink{
			{Label: "Instructor", Href: "/users/" + gate.InstructorID},
		}
	}
	openDetails := PrimaryAction{Kind: ActionOpenDetails, Href: t.Href, GateID: gate.ID}

	switch {
	case gate.Outcome != "":
		t.Stage = StageCompleted
		t.Timestamps.CompletedAt = gate.CompletedAt
		t.Detail = "Outcome recorded: " + string(gate.Outcome)
		t.PrimaryAction = openDetails

	case gate.InstructorID == "":
		t.Stage = StageBlocked
		t.Title = gate.Name
		t.Detail = "Gate cannot be scheduled"
		t.Blockers = append(t.Blockers, "no instructor assigned to this gate")
		t.PrimaryAction = openDetails

	default:
		if slot, ok := gate.ConfirmedSlot(); ok {
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
					Kind:   ActionCompleteReadinessInterviewAndOutcome,
					Href:   t.Href + "/outcome",
					GateID: gate.ID,
					SlotID: slot.ID,
				}
			}
		} else if slot, ok := gate.EarliestProposedSlot(); ok {
			t.Stage = StageNeedsAction
			t.Detail = "Proposed interview slot awaiting confirmation"
			t.PrimaryAction = PrimaryAction{
				Kind:   ActionConfirmReadinessSlot,
				Href:   "/readiness/slots/" + slot.ID + "/confirm",
				GateID: gate.ID,
				SlotID: slot.ID,
			}
		} else if req, ok := gate.PendingRequest(); ok {
			t.Stage = StageNeedsAction
			t.Detail = "Instructor proposed a time"
			t.PrimaryAction = PrimaryAction{
				Kind:      ActionAcceptReadinessRequest,
				Href:      "/readiness/requests/" + req.ID + "/accept",
				GateID:    gate.ID,
				RequestID: req.ID,
			}
		} else if !gate.AvailabilityKnown() {
			t.Stage = StageNeedsAction
			t.Detail = "Instructor availability not requested yet"
			t.PrimaryAction = PrimaryAction{
				Kind:   ActionRequestReadinessAvailability,
				Href:   t.Href + "/request-availability",
				GateID: gate.ID,
			}
		} else {
			t.Stage = StageNeedsAction
			t.Detail = "No interview slots proposed yet"
			t.PrimaryAction = PrimaryAction{
				Kind:   ActionPostReadinessSlotsBulk,
				Href:   t.Href + "/slots",
				GateID: gate.ID,
			}
		}
	}
	return t
}
