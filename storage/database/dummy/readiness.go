package dummydb

import (
	"context"
	"sort"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
)

type readinessRepository struct {
	db *readinessTables
}

var _ readiness.Repository = (*readinessRepository)(nil)

func NewReadinessRepository(db *DB) readiness.Repository {
	return &readinessRepository{db: db.readiness}
}

// SeedGate inserts a gate with its slots and requests directly; test fixture helper.
func SeedGate(db *DB, gate readiness.Gate) {
	db.readiness.Lock()
	defer db.readiness.Unlock()

	for _, slot := range gate.Slots {
		slot := slot
		db.readiness.slots[slot.ID] = &slot
	}
	for _, req := range gate.Requests {
		req := req
		db.readiness.requests[req.ID] = &req
	}
	gate.Slots = nil
	gate.Requests = nil
	db.readiness.gates[gate.ID] = &gate
}

func (repo *readinessRepository) gateSlots(gateID string) []readiness.Slot {
	var slots []readiness.Slot
	for _, slot := range repo.db.slots {
		if slot.GateID == gateID {
			slots = append(slots, *slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartsAt.Before(slots[j].StartsAt) })
	return slots
}

func (repo *readinessRepository) gateRequests(gateID string) []readiness.AvailabilityRequest {
	var reqs []readiness.AvailabilityRequest
	for _, req := range repo.db.requests {
		if req.GateID == gateID {
			reqs = append(reqs, *req)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.Before(reqs[j].CreatedAt) })
	return reqs
}

func (repo *readinessRepository) get(id string) (readiness.Gate, error) {
	gate, ok := repo.db.gates[id]
	if !ok {
		return readiness.Gate{}, readiness.ErrNotFound
	}
	out := *gate
	out.Slots = repo.gateSlots(id)
	out.Requests = repo.gateRequests(id)
	return out, nil
}

func (repo *readinessRepository) QueryGatesForReview(_ context.Context, q readiness.ReviewQuery) ([]readiness.Gate, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var gates []readiness.Gate
	for _, gate := range repo.db.gates {
		if q.Team && gate.ChapterID != q.ChapterID {
			continue
		}
		if !q.Team && gate.LeadID != q.LeadID {
			continue
		}
		out := *gate
		out.Slots = repo.gateSlots(gate.ID)
		out.Requests = repo.gateRequests(gate.ID)
		gates = append(gates, out)
	}
	sort.Slice(gates, func(i, j int) bool { return gates[i].CreatedAt.Before(gates[j].CreatedAt) })
	return gates, nil
}

func (repo *readinessRepository) GetGate(_ context.Context, id string) (readiness.Gate, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.get(id)
}

func (repo *readinessRepository) GetSlot(_ context.Context, id string) (readiness.Slot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if slot, ok := repo.db.slots[id]; ok {
		return *slot, nil
	}
	return readiness.Slot{}, readiness.ErrSlotNotFound
}

func (repo *readinessRepository) GetRequest(_ context.Context, id string) (readiness.AvailabilityRequest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if req, ok := repo.db.requests[id]; ok {
		return *req, nil
	}
	return readiness.AvailabilityRequest{}, readiness.ErrRequestNotFound
}

func (repo *readinessRepository) CreateSlots(_ context.Context, slots []readiness.Slot) ([]readiness.Slot, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, slot := range slots {
		slot := slot
		repo.db.slots[slot.ID] = &slot
	}
	return slots, nil
}

func (repo *readinessRepository) UpdateSlot(_ context.Context, slot readiness.Slot) (readiness.Slot, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.slots[slot.ID]; !ok {
		return readiness.Slot{}, readiness.ErrSlotNotFound
	}
	repo.db.slots[slot.ID] = &slot
	return slot, nil
}

func (repo *readinessRepository) UpdateRequest(_ context.Context, req readiness.AvailabilityRequest) (readiness.AvailabilityRequest, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.requests[req.ID]; !ok {
		return readiness.AvailabilityRequest{}, readiness.ErrRequestNotFound
	}
	repo.db.requests[req.ID] = &req
	return req, nil
}

func (repo *readinessRepository) UpdateGate(_ context.Context, gate readiness.Gate) (readiness.Gate, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.gates[gate.ID]; !ok {
		return readiness.Gate{}, readiness.ErrNotFound
	}
	stored := gate
	stored.Slots = nil
	stored.Requests = nil
	repo.db.gates[gate.ID] = &stored
	return repo.get(gate.ID)
}
