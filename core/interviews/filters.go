package interviews

import "github.com/braydenwhite-blip/YPP-Portal-sub006/core"

type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeHiring    Scope = "hiring"
	ScopeReadiness Scope = "readiness"
)

type View string

const (
	ViewMine View = "mine"
	ViewTeam View = "team"
)

type StateFilter string

const (
	StateAll         StateFilter = "all"
	StateNeedsAction StateFilter = StateFilter(StageNeedsAction)
	StateScheduled   StateFilter = StateFilter(StageScheduled)
	StateCompleted   StateFilter = StateFilter(StageCompleted)
	StateBlocked     StateFilter = StateFilter(StageBlocked)
)

// Filters shape the command center request. They are display filters only:
// unrecognized values fall back to safe defaults, never error.
type Filters struct {
	Scope Scope       `json:"scope"`
	View  View        `json:"view"`
	State StateFilter `json:"state"`
}

// ParseFilters normalizes raw query values into known filter values.
// view=team is ignored unless the viewer is allowed to see team tasks.
func ParseFilters(scope, view, state string, canTeamView bool) Filters {
	f := Filters{Scope: ScopeAll, View: ViewMine, State: StateAll}

	switch Scope(core.CleanString(scope, true /* lower */)) {
	case ScopeHiring:
		f.Scope = ScopeHiring
	case ScopeReadiness:
		f.Scope = ScopeReadiness
	}

	if View(core.CleanString(view, true /* lower */)) == ViewTeam && canTeamView {
		f.View = ViewTeam
	}

	switch StateFilter(core.CleanString(state, true /* lower */)) {
	case StateNeedsAction:
		f.State = StateNeedsAction
	case StateScheduled:
		f.State = StateScheduled
	case StateCompleted:
		f.State = StateCompleted
	case StateBlocked:
		f.State = StateBlocked
	}
	return f
}

// Match reports whether a task survives all three filters.
func (f Filters) Match(t Task) bool {
	if f.Scope != ScopeAll && Domain(f.Scope) != t.Domain {
		return false
	}
	if Audience(f.View) != t.Audience {
		return false
	}
	if f.State != StateAll && Stage(f.State) != t.Stage {
		return false
	}
	return true
}
