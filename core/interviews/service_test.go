package interviews

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/user"
)

type (
	hiringSourceMock struct {
		apps []hiring.Application
		err  error
	}

	readinessSourceMock struct {
		gates []readiness.Gate
		err   error
	}
)

func (m hiringSourceMock) QueryForReview(_ context.Context, q hiring.ReviewQuery) ([]hiring.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	apps := make([]hiring.Application, 0, len(m.apps))
	for _, app := range m.apps {
		if q.Team && app.ChapterID != q.ChapterID {
			continue
		}
		if !q.Team && app.ReviewerID != q.ReviewerID {
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (m readinessSourceMock) QueryForReview(_ context.Context, q readiness.ReviewQuery) ([]readiness.Gate, error) {
	if m.err != nil {
		return nil, m.err
	}
	gates := make([]readiness.Gate, 0, len(m.gates))
	for _, gate := range m.gates {
		if q.Team && gate.ChapterID != q.ChapterID {
			continue
		}
		if !q.Team && gate.LeadID != q.LeadID {
			continue
		}
		gates = append(gates, gate)
	}
	return gates, nil
}

var ccNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, Viewer) {
	t.Helper()

	awaitingConfirm := makeApp(hiring.StatusSubmitted, hirSlot("slot-1", 48*time.Hour, false))
	awaitingConfirm.ID = "app-confirm"
	awaitingConfirm.SubmittedAt = ccNow.Add(-10 * 24 * time.Hour) // oldest

	scheduled := makeApp(hiring.StatusSubmitted, hirSlot("slot-2", 24*time.Hour, true))
	scheduled.ID = "app-scheduled"

	withdrawn := makeApp(hiring.StatusWithdrawn)
	withdrawn.ID = "app-withdrawn"

	teamApp := makeApp(hiring.StatusSubmitted)
	teamApp.ID = "app-team"
	teamApp.ReviewerID = "other-lead"

	done := makeGate(func(g *readiness.Gate) {
		g.ID = "gate-done"
		g.Outcome = readiness.OutcomePassed
		g.CompletedAt = ccNow.Add(-24 * time.Hour)
	})
	overdue := makeGate(func(g *readiness.Gate) {
		g.ID = "gate-overdue"
		g.Slots = []readiness.Slot{{
			ID: "slot-3", GateID: "gate-overdue", Confirmed: true,
			StartsAt: ccNow.Add(-3 * time.Hour), EndsAt: ccNow.Add(-2 * time.Hour),
		}}
	})
	unassigned := makeGate(func(g *readiness.Gate) {
		g.ID = "gate-unassigned"
		g.InstructorID = ""
		g.InstructorName = ""
	})

	svc := NewService(
		hiringSourceMock{apps: []hiring.Application{awaitingConfirm, scheduled, withdrawn, teamApp}},
		readinessSourceMock{gates: []readiness.Gate{done, overdue, unassigned}},
	)
	svc.nowFunc = func() time.Time { return ccNow }

	viewer := NewViewer("lead-1", "chap-1", []string{user.RoleChapterLead})
	return svc, viewer
}

func TestService_CommandCenter_partition(t *testing.T) {
	svc, viewer := setupService(t)

	data, err := svc.CommandCenter(context.Background(), viewer, "", "", "")
	assert.NoError(t, err)

	// the four sections partition the task list exactly
	assert.Len(t, data.Tasks, len(data.NeedsAction)+len(data.Scheduled)+len(data.Completed)+len(data.Blocked))
	seen := make(map[string]bool, len(data.Tasks))
	for _, task := range data.Tasks {
		assert.False(t, seen[task.ID], "duplicate task %s", task.ID)
		seen[task.ID] = true
	}
	for _, task := range data.NeedsAction {
		assert.Equal(t, StageNeedsAction, task.Stage)
	}
	for _, task := range data.Scheduled {
		assert.Equal(t, StageScheduled, task.Stage)
	}
	for _, task := range data.Completed {
		assert.Equal(t, StageCompleted, task.Stage)
	}
	for _, task := range data.Blocked {
		assert.Equal(t, StageBlocked, task.Stage)
	}

	// mine view: the other reviewer's application is out of scope
	assert.False(t, seen[taskID(DomainHiring, "app-team")])

	// oldest submission first in the needs-action queue
	assert.Equal(t, taskID(DomainHiring, "app-confirm"), data.NeedsAction[0].ID)
}

func TestService_CommandCenter_scopeIsSubset(t *testing.T) {
	svc, viewer := setupService(t)
	ctx := context.Background()

	all, err := svc.CommandCenter(ctx, viewer, "", "", "")
	assert.NoError(t, err)
	allIDs := make(map[string]bool, len(all.Tasks))
	for _, task := range all.Tasks {
		allIDs[task.ID] = true
	}

	for _, scope := range []string{"hiring", "readiness"} {
		scoped, err := svc.CommandCenter(ctx, viewer, scope, "", "")
		assert.NoError(t, err)
		assert.NotEmpty(t, scoped.Tasks)
		for _, task := range scoped.Tasks {
			assert.Equal(t, Domain(scope), task.Domain)
			assert.True(t, allIDs[task.ID], "%s not in unfiltered result", task.ID)
		}
	}
}

func TestService_CommandCenter_stateFilter(t *testing.T) {
	svc, viewer := setupService(t)

	data, err := svc.CommandCenter(context.Background(), viewer, "hiring", "", "needs_action")
	assert.NoError(t, err)
	assert.NotEmpty(t, data.Tasks)
	for _, task := range data.Tasks {
		assert.Equal(t, DomainHiring, task.Domain)
		assert.Equal(t, StageNeedsAction, task.Stage)
	}
	assert.Empty(t, data.Scheduled)
	assert.Empty(t, data.Completed)
	assert.Empty(t, data.Blocked)
}

func TestService_CommandCenter_teamView(t *testing.T) {
	svc, viewer := setupService(t)
	ctx := context.Background()

	data, err := svc.CommandCenter(ctx, viewer, "hiring", "team", "")
	assert.NoError(t, err)
	assert.Equal(t, ViewTeam, data.Filters.View)
	for _, task := range data.Tasks {
		assert.Equal(t, AudienceTeam, task.Audience)
	}

	// a viewer without the capability silently falls back to mine
	student := NewViewer("lead-1", "chap-1", []string{user.RoleStudent})
	data, err = svc.CommandCenter(ctx, student, "hiring", "team", "")
	assert.NoError(t, err)
	assert.Equal(t, ViewMine, data.Filters.View)
	for _, task := range data.Tasks {
		assert.Equal(t, AudienceMine, task.Audience)
	}
}

func TestService_CommandCenter_nextBestAction(t *testing.T) {
	svc, viewer := setupService(t)
	ctx := context.Background()

	data, err := svc.CommandCenter(ctx, viewer, "", "", "")
	assert.NoError(t, err)
	next := data.NextBestAction()
	if assert.NotNil(t, next) {
		assert.Equal(t, data.NeedsAction[0].ID, next.ID)
	}

	// needs-action empty: first blocked task wins
	data, err = svc.CommandCenter(ctx, viewer, "", "", "blocked")
	assert.NoError(t, err)
	assert.Empty(t, data.NeedsAction)
	next = data.NextBestAction()
	if assert.NotNil(t, next) {
		assert.Equal(t, data.Blocked[0].ID, next.ID)
	}

	// both empty: no action
	data, err = svc.CommandCenter(ctx, viewer, "", "", "scheduled")
	assert.NoError(t, err)
	assert.Nil(t, data.NextBestAction())
}

func TestService_CommandCenter_idempotent(t *testing.T) {
	svc, viewer := setupService(t)
	ctx := context.Background()

	first, err := svc.CommandCenter(ctx, viewer, "", "", "")
	assert.NoError(t, err)
	second, err := svc.CommandCenter(ctx, viewer, "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestService_CommandCenter_fetchFailureFailsWhole(t *testing.T) {
	boom := errors.New("db gone")
	svc := NewService(
		hiringSourceMock{err: boom},
		readinessSourceMock{gates: []readiness.Gate{makeGate()}},
	)
	viewer := NewViewer("lead-1", "chap-1", []string{user.RoleChapterLead})

	_, err := svc.CommandCenter(context.Background(), viewer, "", "", "")
	assert.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))

	// a failing domain that is filtered out of scope does not fail the call
	data, err := svc.CommandCenter(context.Background(), viewer, "readiness", "", "")
	assert.NoError(t, err)
	assert.NotEmpty(t, data.Tasks)
}
