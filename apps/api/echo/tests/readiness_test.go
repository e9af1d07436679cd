package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/readiness"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/user"
	dummydb "github.com/braydenwhite-blip/YPP-Portal-sub006/storage/database/dummy"
)

func seedGate(id, leadID string, mutate ...func(*readiness.Gate)) readiness.Gate {
	gate := readiness.Gate{
		ID:              id,
		Name:            "Curriculum Readiness",
		InstructorID:    "inst-1",
		InstructorName:  "Ines Tructor",
		InstructorEmail: "ines@portal.org",
		ChapterID:       "chap-1",
		LeadID:          leadID,
		CreatedAt:       time.Now().UTC().Add(-72 * time.Hour),
	}
	for _, fn := range mutate {
		fn(&gate)
	}
	dummydb.SeedGate(db, gate)
	return gate
}

func Test_readinessApi_permissions(t *testing.T) {
	db.Reset()

	lead := createUser(t, "Jane Lead", "janelead", "jane@portal.org", "chap-1", []string{user.RoleChapterLead}, true)
	mentor := createUser(t, "Mo Mentor", "momentor", "mo@portal.org", "chap-1", []string{user.RoleMentor}, true)
	seedGate("gate-1", lead.ID)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/readiness/gates/gate-1/request-availability")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("lead required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-1/request-availability", getToken(t, mentor))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func Test_readinessApi_requestAvailability(t *testing.T) {
	db.Reset()

	lead := createUser(t, "Jane Lead", "janelead", "jane@portal.org", "chap-1", []string{user.RoleChapterLead}, true)
	seedGate("gate-1", lead.ID)
	seedGate("gate-unassigned", lead.ID, func(g *readiness.Gate) {
		g.InstructorID = ""
		g.InstructorEmail = ""
	})

	token := getToken(t, lead)

	t.Run("unknown gate", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/nope/request-availability", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no instructor", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-unassigned/request-availability", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-1/request-availability", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var gate readiness.Gate
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gate))
		assert.False(t, gate.AvailabilityRequestedAt.IsZero())
	})
}

func Test_readinessApi_acceptRequest(t *testing.T) {
	db.Reset()

	lead := createUser(t, "Jane Lead", "janelead", "jane@portal.org", "chap-1", []string{user.RoleChapterLead}, true)
	start := time.Now().UTC().Add(24 * time.Hour)
	seedGate("gate-1", lead.ID, func(g *readiness.Gate) {
		g.Requests = []readiness.AvailabilityRequest{
			{ID: "req-1", GateID: "gate-1", ProposedStart: start, ProposedEnd: start.Add(time.Hour), Status: readiness.RequestPending},
			{ID: "req-done", GateID: "gate-1", ProposedStart: start, ProposedEnd: start.Add(time.Hour), Status: readiness.RequestDeclined},
		}
	})

	token := getToken(t, lead)

	t.Run("unknown request", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/requests/nope/accept", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("not pending", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/requests/req-done/accept", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/requests/req-1/accept", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var slot readiness.Slot
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
		assert.Equal(t, "gate-1", slot.GateID)
		assert.True(t, slot.Confirmed)
		assert.True(t, slot.StartsAt.Equal(start))
	})

	t.Run("accept twice", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/requests/req-1/accept", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func Test_readinessApi_slotsAndOutcome(t *testing.T) {
	db.Reset()

	lead := createUser(t, "Jane Lead", "janelead", "jane@portal.org", "chap-1", []string{user.RoleChapterLead}, true)
	seedGate("gate-1", lead.ID)

	token := getToken(t, lead)
	start := time.Now().UTC().Add(24 * time.Hour)

	var slotID string

	t.Run("propose slots", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-1/slots", token,
			marshalObj(t, map[string]interface{}{
				"slots": []map[string]interface{}{{"starts_at": start, "ends_at": start.Add(time.Hour)}},
			}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var slots []readiness.Slot
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
		if assert.Len(t, slots, 1) {
			slotID = slots[0].ID
		}
	})

	t.Run("confirm slot", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/slots/"+slotID+"/confirm", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var slot readiness.Slot
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
		assert.True(t, slot.Confirmed)
	})

	t.Run("record outcome: bad value", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-1/outcome", token,
			marshalObj(t, map[string]string{"outcome": "meh"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("record outcome", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-1/outcome", token,
			marshalObj(t, map[string]string{"outcome": "passed", "note": "ready to teach"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var gate readiness.Gate
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gate))
		assert.Equal(t, readiness.OutcomePassed, gate.Outcome)
		assert.Equal(t, "ready to teach", gate.OutcomeNote)
		assert.False(t, gate.CompletedAt.IsZero())
	})

	t.Run("record outcome twice", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/readiness/gates/gate-1/outcome", token,
			marshalObj(t, map[string]string{"outcome": "needs_work"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
