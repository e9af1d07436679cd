package dummydb

import (
	"context"
	"sort"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
)

type hiringRepository struct {
	db *hiringTables
}

var _ hiring.Repository = (*hiringRepository)(nil)

func NewHiringRepository(db *DB) hiring.Repository {
	return &hiringRepository{db: db.hiring}
}

// SeedApplication inserts an application and its slots directly; test fixture helper.
func SeedApplication(db *DB, app hiring.Application) {
	db.hiring.Lock()
	defer db.hiring.Unlock()

	for _, slot := range app.Slots {
		slot := slot
		db.hiring.slots[slot.ID] = &slot
	}
	app.Slots = nil
	db.hiring.apps[app.ID] = &app
}

func (repo *hiringRepository) appSlots(appID string) []hiring.Slot {
	var slots []hiring.Slot
	for _, slot := range repo.db.slots {
		if slot.ApplicationID == appID {
			slots = append(slots, *slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartsAt.Before(slots[j].StartsAt) })
	return slots
}

func (repo *hiringRepository) get(id string) (hiring.Application, error) {
	app, ok := repo.db.apps[id]
	if !ok {
		return hiring.Application{}, hiring.ErrNotFound
	}
	out := *app
	out.Slots = repo.appSlots(id)
	return out, nil
}

func (repo *hiringRepository) QueryApplicationsForReview(_ context.Context, q hiring.ReviewQuery) ([]hiring.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var apps []hiring.Application
	for _, app := range repo.db.apps {
		if q.Team && app.ChapterID != q.ChapterID {
			continue
		}
		if !q.Team && app.ReviewerID != q.ReviewerID {
			continue
		}
		out := *app
		out.Slots = repo.appSlots(app.ID)
		apps = append(apps, out)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].SubmittedAt.Before(apps[j].SubmittedAt) })
	return apps, nil
}

func (repo *hiringRepository) GetApplication(_ context.Context, id string) (hiring.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.get(id)
}

func (repo *hiringRepository) GetSlot(_ context.Context, id string) (hiring.Slot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if slot, ok := repo.db.slots[id]; ok {
		return *slot, nil
	}
	return hiring.Slot{}, hiring.ErrSlotNotFound
}

func (repo *hiringRepository) CreateSlots(_ context.Context, slots []hiring.Slot) ([]hiring.Slot, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, slot := range slots {
		slot := slot
		repo.db.slots[slot.ID] = &slot
	}
	return slots, nil
}

func (repo *hiringRepository) UpdateSlot(_ context.Context, slot hiring.Slot) (hiring.Slot, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.slots[slot.ID]; !ok {
		return hiring.Slot{}, hiring.ErrSlotNotFound
	}
	repo.db.slots[slot.ID] = &slot
	return slot, nil
}

func (repo *hiringRepository) UpdateApplication(_ context.Context, app hiring.Application) (hiring.Application, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.apps[app.ID]; !ok {
		return hiring.Application{}, hiring.ErrNotFound
	}
	stored := app
	stored.Slots = nil
	repo.db.apps[app.ID] = &stored
	return repo.get(app.ID)
}
