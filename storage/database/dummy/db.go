// Package dummydb is an in-memory database used in tests and local dev.
package dummydb

import (
	"sync"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/user"
)

type (
	DB struct {
		user      *userTable
		hiring    *hiringTables
		readiness *readinessTables
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	hiringTables struct {
		sync.RWMutex
		apps  map[string]*hiring.Application
		slots map[string]*hiring.Slot
	}

	readinessTables struct {
		sync.RWMutex
		gates    map[string]*readiness.Gate
		slots    map[string]*readiness.Slot
		requests map[string]*readiness.AvailabilityRequest
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{table: make(map[string]*user.User)},
		hiring: &hiringTables{
			apps:  make(map[string]*hiring.Application),
			slots: make(map[string]*hiring.Slot),
		},
		readiness: &readinessTables{
			gates:    make(map[string]*readiness.Gate),
			slots:    make(map[string]*readiness.Slot),
			requests: make(map[string]*readiness.AvailabilityRequest),
		},
	}
	return db, nil
}

// Reset empties all tables. Used between tests.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()

	db.hiring.Lock()
	db.hiring.apps = make(map[string]*hiring.Application)
	db.hiring.slots = make(map[string]*hiring.Slot)
	db.hiring.Unlock()

	db.readiness.Lock()
	db.readiness.gates = make(map[string]*readiness.Gate)
	db.readiness.slots = make(map[string]*readiness.Slot)
	db.readiness.requests = make(map[string]*readiness.AvailabilityRequest)
	db.readiness.Unlock()
}
