package sqlxrepos

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
)

type gateRow struct {
	ID                      string    `db:"id"`
	Name                    string    `db:"name"`
	InstructorID            string    `db:"instructor_id"`
	InstructorName          string    `db:"instructor_name"`
	InstructorEmail         string    `db:"instructor_email"`
	ChapterID               string    `db:"chapter_id"`
	LeadID                  string    `db:"lead_id"`
	Outcome                 string    `db:"outcome"`
	OutcomeNote             string    `db:"outcome_note"`
	AvailabilityRequestedAt null.Time `db:"availability_requested_at"`
	CreatedAt               time.Time `db:"created_at"`
	CompletedAt             null.Time `db:"completed_at"`
}

func (row gateRow) toGate() readiness.Gate {
	return readiness.Gate{
		ID:                      row.ID,
		Name:                    row.Name,
		InstructorID:            row.InstructorID,
		InstructorName:          row.InstructorName,
		InstructorEmail:         row.InstructorEmail,
		ChapterID:               row.ChapterID,
		LeadID:                  row.LeadID,
		Outcome:                 readiness.Outcome(row.Outcome),
		OutcomeNote:             row.OutcomeNote,
		AvailabilityRequestedAt: row.AvailabilityRequestedAt.Time,
		CreatedAt:               row.CreatedAt,
		CompletedAt:             row.CompletedAt.Time,
	}
}

type readinessRequestRow struct {
	ID            string    `db:"id"`
	GateID        string    `db:"gate_id"`
	ProposedStart time.Time `db:"proposed_start"`
	ProposedEnd   time.Time `db:"proposed_end"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row readinessRequestRow) toRequest() readiness.AvailabilityRequest {
	return readiness.AvailabilityRequest{
		ID:            row.ID,
		GateID:        row.GateID,
		ProposedStart: row.ProposedStart,
		ProposedEnd:   row.ProposedEnd,
		Status:        readiness.RequestStatus(row.Status),
		CreatedAt:     row.CreatedAt,
	}
}

type readinessSlotRow struct {
	ID        string    `db:"id"`
	GateID    string    `db:"gate_id"`
	StartsAt  time.Time `db:"starts_at"`
	EndsAt    time.Time `db:"ends_at"`
	Confirmed bool      `db:"confirmed"`
	CreatedAt time.Time `db:"created_at"`
}

func (row readinessSlotRow) toSlot() readiness.Slot {
	return readiness.Slot(row)
}

type readinessRepository struct {
	db *sqlx.DB
}

var _ readiness.Repository = (*readinessRepository)(nil)

func NewReadinessRepository(db *sqlx.DB) readiness.Repository {
	return &readinessRepository{db: db}
}

func (repo *readinessRepository) QueryGatesForReview(ctx context.Context, q readiness.ReviewQuery) ([]readiness.Gate, error) {
	query := `SELECT * FROM readiness_gate WHERE lead_id = $1 ORDER BY created_at`
	args := []interface{}{q.LeadID}
	if q.Team {
		query = `SELECT * FROM readiness_gate WHERE chapter_id = $1 ORDER BY created_at`
		args = []interface{}{q.ChapterID}
	}

	var rows []gateRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting gates")
	}
	gates := make([]readiness.Gate, 0, len(rows))
	for _, row := range rows {
		gates = append(gates, row.toGate())
	}
	if err := repo.attachChildren(ctx, gates); err != nil {
		return nil, err
	}
	return gates, nil
}

func (repo *readinessRepository) attachChildren(ctx context.Context, gates []readiness.Gate) error {
	if len(gates) == 0 {
		return nil
	}
	ids := make([]string, 0, len(gates))
	for _, gate := range gates {
		ids = append(ids, gate.ID)
	}

	query, args, err := sqlx.In(`SELECT * FROM readiness_request WHERE gate_id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building request query")
	}
	var reqRows []readinessRequestRow
	if err = repo.db.SelectContext(ctx, &reqRows, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "selecting requests")
	}
	reqsByGate := make(map[string][]readiness.AvailabilityRequest, len(gates))
	for _, row := range reqRows {
		reqsByGate[row.GateID] = append(reqsByGate[row.GateID], row.toRequest())
	}

	query, args, err = sqlx.In(`SELECT * FROM readiness_slot WHERE gate_id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building slot query")
	}
	var slotRows []readinessSlotRow
	if err = repo.db.SelectContext(ctx, &slotRows, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "selecting slots")
	}
	slotsByGate := make(map[string][]readiness.Slot, len(gates))
	for _, row := range slotRows {
		slotsByGate[row.GateID] = append(slotsByGate[row.GateID], row.toSlot())
	}

	for i := range gates {
		reqs := reqsByGate[gates[i].ID]
		sort.Slice(reqs, func(a, b int) bool { return reqs[a].CreatedAt.Before(reqs[b].CreatedAt) })
		gates[i].Requests = reqs

		slots := slotsByGate[gates[i].ID]
		sort.Slice(slots, func(a, b int) bool { return slots[a].StartsAt.Before(slots[b].StartsAt) })
		gates[i].Slots = slots
	}
	return nil
}

func (repo *readinessRepository) GetGate(ctx context.Context, id string) (readiness.Gate, error) {
	var row gateRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM readiness_gate WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return readiness.Gate{}, readiness.ErrNotFound
	}
	if err != nil {
		return readiness.Gate{}, errors.Wrap(err, "selecting gate")
	}
	gates := []readiness.Gate{row.toGate()}
	if err = repo.attachChildren(ctx, gates); err != nil {
		return readiness.Gate{}, err
	}
	return gates[0], nil
}

func (repo *readinessRepository) GetSlot(ctx context.Context, id string) (readiness.Slot, error) {
	var row readinessSlotRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM readiness_slot WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return readiness.Slot{}, readiness.ErrSlotNotFound
	}
	if err != nil {
		return readiness.Slot{}, errors.Wrap(err, "selecting slot")
	}
	return row.toSlot(), nil
}

func (repo *readinessRepository) GetRequest(ctx context.Context, id string) (readiness.AvailabilityRequest, error) {
	var row readinessRequestRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM readiness_request WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return readiness.AvailabilityRequest{}, readiness.ErrRequestNotFound
	}
	if err != nil {
		return readiness.AvailabilityRequest{}, errors.Wrap(err, "selecting request")
	}
	return row.toRequest(), nil
}

func (repo *readinessRepository) CreateSlots(ctx context.Context, slots []readiness.Slot) ([]readiness.Slot, error) {
	query := `
		INSERT INTO readiness_slot (id, gate_id, starts_at, ends_at, confirmed, created_at)
		VALUES (:id, :gate_id, :starts_at, :ends_at, :confirmed, :created_at)`
	rows := make([]readinessSlotRow, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, readinessSlotRow(slot))
	}
	if _, err := repo.db.NamedExecContext(ctx, query, rows); err != nil {
		return nil, errors.Wrap(err, "inserting slots")
	}
	return slots, nil
}

func (repo *readinessRepository) UpdateSlot(ctx context.Context, slot readiness.Slot) (readiness.Slot, error) {
	query := `
		UPDATE readiness_slot
		SET starts_at = :starts_at, ends_at = :ends_at, confirmed = :confirmed
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, readinessSlotRow(slot))
	if err != nil {
		return readiness.Slot{}, errors.Wrap(err, "updating slot")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return readiness.Slot{}, readiness.ErrSlotNotFound
	}
	return slot, nil
}

func (repo *readinessRepository) UpdateRequest(ctx context.Context, req readiness.AvailabilityRequest) (readiness.AvailabilityRequest, error) {
	query := `
		UPDATE readiness_request
		SET proposed_start = :proposed_start, proposed_end = :proposed_end, status = :status
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, readinessRequestRow{
		ID:            req.ID,
		GateID:        req.GateID,
		ProposedStart: req.ProposedStart,
		ProposedEnd:   req.ProposedEnd,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
	})
	if err != nil {
		return readiness.AvailabilityRequest{}, errors.Wrap(err, "updating request")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return readiness.AvailabilityRequest{}, readiness.ErrRequestNotFound
	}
	return req, nil
}

func (repo *readinessRepository) UpdateGate(ctx context.Context, gate readiness.Gate) (readiness.Gate, error) {
	query := `
		UPDATE readiness_gate
		SET instructor_id = $2, instructor_name = $3, instructor_email = $4,
		    outcome = $5, outcome_note = $6, availability_requested_at = $7, completed_at = $8
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		gate.ID, gate.InstructorID, gate.InstructorName, gate.InstructorEmail,
		string(gate.Outcome), gate.OutcomeNote,
		null.NewTime(gate.AvailabilityRequestedAt, !gate.AvailabilityRequestedAt.IsZero()),
		null.NewTime(gate.CompletedAt, !gate.CompletedAt.IsZero()),
	)
	if err != nil {
		return readiness.Gate{}, errors.Wrap(err, "updating gate")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return readiness.Gate{}, readiness.ErrNotFound
	}
	return repo.GetGate(ctx, gate.ID)
}
