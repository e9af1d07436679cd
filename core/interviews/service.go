package interviews

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
)

type (
	// HiringSource provides the raw hiring records in scope for review.
	HiringSource interface {
		QueryForReview(ctx context.Context, q hiring.ReviewQuery) ([]hiring.Application, error)
	}

	// ReadinessSource provides the raw readiness records in scope for review.
	ReadinessSource interface {
		QueryForReview(ctx context.Context, q readiness.ReviewQuery) ([]readiness.Gate, error)
	}

	Service struct {
		hiringSvc    HiringSource
		readinessSvc ReadinessSource
		nowFunc      func() time.Time // mockable
	}
)

func NewService(hiringSvc HiringSource, readinessSvc ReadinessSource) *Service {
	return &Service{
		hiringSvc:    hiringSvc,
		readinessSvc: readinessSvc,
		nowFunc:      time.Now,
	}
}

// CommandCenter aggregates both interview domains into a filtered,
// sectioned task queue for the viewer. Raw filter values are normalized
// defensively; a failed fetch fails the whole call, since a partial action
// queue is worse than an error.
func (svc *Service) CommandCenter(ctx context.Context, viewer Viewer, scope, view, state string) (CommandCenterData, error) {
	filters := ParseFilters(scope, view, state, viewer.CanTeamView)
	now := svc.nowFunc().UTC()

	// the two record sets are independent; fetch them concurrently
	var apps []hiring.Application
	var gates []readiness.Gate
	g, gctx := errgroup.WithContext(ctx)
	if filters.Scope != ScopeReadiness {
		g.Go(func() error {
			var err error
			apps, err = svc.hiringSvc.QueryForReview(gctx, hiring.ReviewQuery{
				ReviewerID: viewer.UserID,
				ChapterID:  viewer.ChapterID,
				Team:       filters.View == ViewTeam,
			})
			return errors.Wrap(err, "loading hiring records")
		})
	}
	if filters.Scope != ScopeHiring {
		g.Go(func() error {
			var err error
			gates, err = svc.readinessSvc.QueryForReview(gctx, readiness.ReviewQuery{
				LeadID:    viewer.UserID,
				ChapterID: viewer.ChapterID,
				Team:      filters.View == ViewTeam,
			})
			return errors.Wrap(err, "loading readiness records")
		})
	}
	if err := g.Wait(); err != nil {
		return CommandCenterData{}, err
	}

	tasks := make([]Task, 0, len(apps)+len(gates))
	for _, app := range apps {
		if t := mapHiringApplication(app, viewer.UserID, now); filters.Match(t) {
			tasks = append(tasks, t)
		}
	}
	for _, gate := range gates {
		if t := mapReadinessGate(gate, viewer.UserID, now); filters.Match(t) {
			tasks = append(tasks, t)
		}
	}

	data := CommandCenterData{Viewer: viewer, Filters: filters}
	for _, t := range tasks {
		switch t.Stage {
		case StageNeedsAction:
			data.NeedsAction = append(data.NeedsAction, t)
		case StageScheduled:
			data.Scheduled = append(data.Scheduled, t)
		case StageCompleted:
			data.Completed = append(data.Completed, t)
		case StageBlocked:
			data.Blocked = append(data.Blocked, t)
		}
	}

	// oldest submission first while action is pending, soonest interview
	// first once scheduled, most recently finished first when done
	sortBySubmitted(data.NeedsAction)
	sortByScheduled(data.Scheduled)
	sortByCompletedDesc(data.Completed)
	sortBySubmitted(data.Blocked)

	data.Tasks = make([]Task, 0, len(tasks))
	data.Tasks = append(data.Tasks, data.NeedsAction...)
	data.Tasks = append(data.Tasks, data.Scheduled...)
	data.Tasks = append(data.Tasks, data.Completed...)
	data.Tasks = append(data.Tasks, data.Blocked...)
	return data, nil
}

func sortBySubmitted(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Timestamps.SubmittedAt.Before(tasks[j].Timestamps.SubmittedAt)
	})
}

func sortByScheduled(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Timestamps.ScheduledAt.Before(tasks[j].Timestamps.ScheduledAt)
	})
}

func sortByCompletedDesc(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Timestamps.CompletedAt.After(tasks[j].Timestamps.CompletedAt)
	})
}
