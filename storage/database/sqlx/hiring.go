package sqlxrepos

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
)

type applicationRow struct {
	ID                 string    `db:"id"`
	PositionID         string    `db:"position_id"`
	PositionTitle      string    `db:"position_title"`
	PositionOpen       bool      `db:"position_open"`
	CandidateName      string    `db:"candidate_name"`
	CandidateEmail     string    `db:"candidate_email"`
	ChapterID          string    `db:"chapter_id"`
	ReviewerID         string    `db:"reviewer_id"`
	Status             string    `db:"status"`
	RecommendationNote string    `db:"recommendation_note"`
	Decision           string    `db:"decision"`
	SubmittedAt        time.Time `db:"submitted_at"`
	InterviewedAt      null.Time `db:"interviewed_at"`
	DecidedAt          null.Time `db:"decided_at"`
}

func (row applicationRow) toApplication() hiring.Application {
	return hiring.Application{
		ID:                 row.ID,
		PositionID:         row.PositionID,
		PositionTitle:      row.PositionTitle,
		PositionOpen:       row.PositionOpen,
		CandidateName:      row.CandidateName,
		CandidateEmail:     row.CandidateEmail,
		ChapterID:          row.ChapterID,
		ReviewerID:         row.ReviewerID,
		Status:             hiring.Status(row.Status),
		RecommendationNote: row.RecommendationNote,
		Decision:           hiring.Decision(row.Decision),
		SubmittedAt:        row.SubmittedAt,
		InterviewedAt:      row.InterviewedAt.Time,
		DecidedAt:          row.DecidedAt.Time,
	}
}

type hiringSlotRow struct {
	ID            string    `db:"id"`
	ApplicationID string    `db:"application_id"`
	StartsAt      time.Time `db:"starts_at"`
	EndsAt        time.Time `db:"ends_at"`
	Confirmed     bool      `db:"confirmed"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row hiringSlotRow) toSlot() hiring.Slot {
	return hiring.Slot(row)
}

const applicationQuery = `
	SELECT a.id, a.position_id, p.title AS position_title, p.open AS position_open,
	       a.candidate_name, a.candidate_email, a.chapter_id, a.reviewer_id,
	       a.status, a.recommendation_note, a.decision,
	       a.submitted_at, a.interviewed_at, a.decided_at
	FROM application a
	JOIN position p ON p.id = a.position_id`

type hiringRepository struct {
	db *sqlx.DB
}

var _ hiring.Repository = (*hiringRepository)(nil)

func NewHiringRepository(db *sqlx.DB) hiring.Repository {
	return &hiringRepository{db: db}
}

func (repo *hiringRepository) QueryApplicationsForReview(ctx context.Context, q hiring.ReviewQuery) ([]hiring.Application, error) {
	query := applicationQuery + ` WHERE a.reviewer_id = $1 ORDER BY a.submitted_at`
	args := []interface{}{q.ReviewerID}
	if q.Team {
		query = applicationQuery + ` WHERE a.chapter_id = $1 ORDER BY a.submitted_at`
		args = []interface{}{q.ChapterID}
	}

	var rows []applicationRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting applications")
	}
	apps := make([]hiring.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, row.toApplication())
	}
	if err := repo.attachSlots(ctx, apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (repo *hiringRepository) attachSlots(ctx context.Context, apps []hiring.Application) error {
	if len(apps) == 0 {
		return nil
	}
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.ID)
	}
	query, args, err := sqlx.In(`SELECT * FROM hiring_slot WHERE application_id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building slot query")
	}
	var rows []hiringSlotRow
	if err = repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "selecting slots")
	}

	byApp := make(map[string][]hiring.Slot, len(apps))
	for _, row := range rows {
		byApp[row.ApplicationID] = append(byApp[row.ApplicationID], row.toSlot())
	}
	for i := range apps {
		slots := byApp[apps[i].ID]
		sort.Slice(slots, func(a, b int) bool { return slots[a].StartsAt.Before(slots[b].StartsAt) })
		apps[i].Slots = slots
	}
	return nil
}

func (repo *hiringRepository) GetApplication(ctx context.Context, id string) (hiring.Application, error) {
	var row applicationRow
	err := repo.db.GetContext(ctx, &row, applicationQuery+` WHERE a.id = $1`, id)
	if err == sql.ErrNoRows {
		return hiring.Application{}, hiring.ErrNotFound
	}
	if err != nil {
		return hiring.Application{}, errors.Wrap(err, "selecting application")
	}
	apps := []hiring.Application{row.toApplication()}
	if err = repo.attachSlots(ctx, apps); err != nil {
		return hiring.Application{}, err
	}
	return apps[0], nil
}

func (repo *hiringRepository) GetSlot(ctx context.Context, id string) (hiring.Slot, error) {
	var row hiringSlotRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM hiring_slot WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return hiring.Slot{}, hiring.ErrSlotNotFound
	}
	if err != nil {
		return hiring.Slot{}, errors.Wrap(err, "selecting slot")
	}
	return row.toSlot(), nil
}

func (repo *hiringRepository) CreateSlots(ctx context.Context, slots []hiring.Slot) ([]hiring.Slot, error) {
	query := `
		INSERT INTO hiring_slot (id, application_id, starts_at, ends_at, confirmed, created_at)
		VALUES (:id, :application_id, :starts_at, :ends_at, :confirmed, :created_at)`
	rows := make([]hiringSlotRow, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, hiringSlotRow(slot))
	}
	if _, err := repo.db.NamedExecContext(ctx, query, rows); err != nil {
		return nil, errors.Wrap(err, "inserting slots")
	}
	return slots, nil
}

func (repo *hiringRepository) UpdateSlot(ctx context.Context, slot hiring.Slot) (hiring.Slot, error) {
	query := `
		UPDATE hiring_slot
		SET starts_at = :starts_at, ends_at = :ends_at, confirmed = :confirmed
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, hiringSlotRow(slot))
	if err != nil {
		return hiring.Slot{}, errors.Wrap(err, "updating slot")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return hiring.Slot{}, hiring.ErrSlotNotFound
	}
	return slot, nil
}

func (repo *hiringRepository) UpdateApplication(ctx context.Context, app hiring.Application) (hiring.Application, error) {
	query := `
		UPDATE application
		SET status = $2, recommendation_note = $3, decision = $4, interviewed_at = $5, decided_at = $6
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		app.ID, string(app.Status), app.RecommendationNote, string(app.Decision),
		null.NewTime(app.InterviewedAt, !app.InterviewedAt.IsZero()),
		null.NewTime(app.DecidedAt, !app.DecidedAt.IsZero()),
	)
	if err != nil {
		return hiring.Application{}, errors.Wrap(err, "updating application")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return hiring.Application{}, hiring.ErrNotFound
	}
	return repo.GetApplication(ctx, app.ID)
}
