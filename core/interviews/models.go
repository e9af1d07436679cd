// Package interviews powers the interview command center: it projects raw
// hiring-pipeline and instructor-readiness records into a unified task queue
// and recommends the next best action for the viewer.
package interviews

import "time"

type Domain string

const (
	DomainHiring    Domain = "hiring"
	DomainReadiness Domain = "readiness"
)

type Stage string

// A task is always in exactly one stage, derived fresh from the source
// record's status fields on every read.
const (
	StageNeedsAction Stage = "needs_action"
	StageScheduled   Stage = "scheduled"
	StageCompleted   Stage = "completed"
	StageBlocked     Stage = "blocked"
)

type Audience string

const (
	AudienceMine Audience = "mine"
	AudienceTeam Audience = "team"
)

type ActionKind string

// Primary action kinds. Each task resolves to exactly one of these.
const (
	ActionConfirmHiringSlot                    ActionKind = "confirm_hiring_slot"
	ActionPostHiringSlotsBulk                  ActionKind = "post_hiring_slots_bulk"
	ActionCompleteHiringInterviewAndNote       ActionKind = "complete_hiring_interview_and_note"
	ActionAddHiringRecommendationNote          ActionKind = "add_hiring_recommendation_note"
	ActionConfirmReadinessSlot                 ActionKind = "confirm_readiness_slot"
	ActionRequestReadinessAvailability         ActionKind = "request_readiness_availability"
	ActionPostReadinessSlotsBulk               ActionKind = "post_readiness_slots_bulk"
	ActionAcceptReadinessRequest               ActionKind = "accept_readiness_request"
	ActionCompleteReadinessInterviewAndOutcome ActionKind = "complete_readiness_interview_and_outcome"
	ActionOpenDetails                          ActionKind = "open_details"
)

type (
	// PrimaryAction is the one action the viewer should take next for a task,
	// discriminated by Kind; only the id fields that kind needs are set.
	PrimaryAction struct {
		Kind          ActionKind `json:"kind"`
		Href          string     `json:"href"`
		ApplicationID string     `json:"application_id,omitempty"`
		GateID        string     `json:"gate_id,omitempty"`
		SlotID        string     `json:"slot_id,omitempty"`
		RequestID     string     `json:"request_id,omitempty"`
	}

	SecondaryLink struct {
		Label string `json:"label"`
		Href  string `json:"href"`
	}

	// Timestamps are used for sorting and display only; a zero value means
	// the instant does not apply to the task.
	Timestamps struct {
		SubmittedAt time.Time `json:"submitted_at"`
		ScheduledAt time.Time `json:"scheduled_at"`
		CompletedAt time.Time `json:"completed_at"`
	}

	// Task is a normalized projection of a hiring application or a readiness
	// gate. Tasks are recomputed on every read and never persisted.
	Task struct {
		ID             string          `json:"id"`
		Domain         Domain          `json:"domain"`
		Audience       Audience        `json:"audience"`
		Stage          Stage           `json:"stage"`
		Title          string          `json:"title"`
		Subtitle       string          `json:"subtitle"`
		Detail         string          `json:"detail"`
		OwnerName      string          `json:"owner_name"`
		Href           string          `json:"href"`
		PrimaryAction  PrimaryAction   `json:"primary_action"`
		SecondaryLinks []SecondaryLink `json:"secondary_links,omitempty"`
		Blockers       []string        `json:"blockers,omitempty"`
		Timestamps     Timestamps      `json:"timestamps"`
	}

	// CommandCenterData is the complete view model for the interview command
	// center: the filtered task list plus its four stage sections.
	CommandCenterData struct {
		Viewer      Viewer  `json:"viewer"`
		Filters     Filters `json:"filters"`
		Tasks       []Task  `json:"tasks"`
		NeedsAction []Task  `json:"needs_action"`
		Scheduled   []Task  `json:"scheduled"`
		Completed   []Task  `json:"completed"`
		Blocked     []Task  `json:"blocked"`
	}
)

func taskID(domain Domain, sourceID string) string {
	return string(domain) + ":" + sourceID
}

// NextBestAction picks the single highest-priority task: the first
// needs-action task, else the first blocked task, else nil.
func (d CommandCenterData) NextBestAction() *Task {
	if len(d.NeedsAction) > 0 {
		return &d.NeedsAction[0]
	}
	if len(d.Blocked) > 0 {
		return &d.Blocked[0]
	}
	return nil
}
