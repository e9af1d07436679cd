package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/hiring"
	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/user"
	dummydb "github.com/braydenwhite-blip/YPP-Portal-sub006/storage/database/dummy"
)

func seedApplication(id, reviewerID string, status hiring.Status, slots ...hiring.Slot) hiring.Application {
	app := hiring.Application{
		ID:             id,
		PositionID:     "pos-1",
		PositionTitle:  "Chapter Mentor",
		PositionOpen:   true,
		CandidateName:  "Candi Date",
		CandidateEmail: "candi@mail.org",
		ChapterID:      "chap-1",
		ReviewerID:     reviewerID,
		Status:         status,
		SubmittedAt:    time.Now().UTC().Add(-48 * time.Hour),
		Slots:          slots,
	}
	dummydb.SeedApplication(db, app)
	return app
}

func Test_hiringApi_proposeSlots(t *testing.T) {
	db.Reset()

	mentor := createUser(t, "Mo Mentor", "momentor", "mo@portal.org", "chap-1", []string{user.RoleMentor}, true)
	seedApplication("app-1", mentor.ID, hiring.StatusSubmitted)
	seedApplication("app-done", mentor.ID, hiring.StatusDecided)

	start := time.Now().UTC().Add(24 * time.Hour)
	body := marshalObj(t, map[string]interface{}{
		"slots": []map[string]interface{}{
			{"starts_at": start, "ends_at": start.Add(time.Hour)},
			{"starts_at": start.Add(2 * time.Hour), "ends_at": start.Add(3 * time.Hour)},
		},
	})

	tests := []httpTest{
		{
			name: "auth required", path: "/v1/hiring/applications/app-1/slots", body: body,
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "no slots", path: "/v1/hiring/applications/app-1/slots", token: getToken(t, mentor),
			body: marshalObj(t, map[string]interface{}{"slots": []interface{}{}}), wantCode: http.StatusBadRequest,
		},
		{
			name: "ends before start", path: "/v1/hiring/applications/app-1/slots", token: getToken(t, mentor),
			body: marshalObj(t, map[string]interface{}{
				"slots": []map[string]interface{}{{"starts_at": start, "ends_at": start.Add(-time.Hour)}},
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown application", path: "/v1/hiring/applications/nope/slots", token: getToken(t, mentor),
			body: body, wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "not awaiting interview", path: "/v1/hiring/applications/app-done/slots", token: getToken(t, mentor),
			body: body, wantCode: http.StatusConflict,
		},
		{
			name: "ok", path: "/v1/hiring/applications/app-1/slots", token: getToken(t, mentor),
			body: body, wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var slots []hiring.Slot
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
				assert.Len(t, slots, 2)
				for _, slot := range slots {
					assert.Equal(t, "app-1", slot.ApplicationID)
					assert.False(t, slot.Confirmed)
				}
			}
		})
	}
}

func Test_hiringApi_confirmSlot(t *testing.T) {
	db.Reset()

	mentor := createUser(t, "Mo Mentor", "momentor", "mo@portal.org", "chap-1", []string{user.RoleMentor}, true)
	start := time.Now().UTC().Add(24 * time.Hour)
	seedApplication("app-1", mentor.ID, hiring.StatusSubmitted,
		hiring.Slot{ID: "slot-1", ApplicationID: "app-1", StartsAt: start, EndsAt: start.Add(time.Hour)},
	)

	token := getToken(t, mentor)

	t.Run("unknown slot", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/slots/nope/confirm", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/slots/slot-1/confirm", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var slot hiring.Slot
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
		assert.True(t, slot.Confirmed)
	})

	t.Run("already confirmed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/slots/slot-1/confirm", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func Test_hiringApi_completeAndNote(t *testing.T) {
	db.Reset()

	mentor := createUser(t, "Mo Mentor", "momentor", "mo@portal.org", "chap-1", []string{user.RoleMentor}, true)
	start := time.Now().UTC().Add(-2 * time.Hour)
	seedApplication("app-1", mentor.ID, hiring.StatusSubmitted,
		hiring.Slot{ID: "slot-1", ApplicationID: "app-1", StartsAt: start, EndsAt: start.Add(time.Hour), Confirmed: true},
	)

	token := getToken(t, mentor)

	t.Run("complete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/applications/app-1/complete", token,
			marshalObj(t, map[string]string{"note": "strong candidate"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res hiring.Application
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, hiring.StatusInterviewed, res.Status)
		assert.False(t, res.InterviewedAt.IsZero())
		assert.Equal(t, "strong candidate", res.RecommendationNote)
	})

	t.Run("complete twice", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/applications/app-1/complete", token,
			marshalObj(t, map[string]string{}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("note requires content", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/applications/app-1/note", token,
			marshalObj(t, map[string]string{}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("note", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/hiring/applications/app-1/note", token,
			marshalObj(t, map[string]string{"note": "hire them"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res hiring.Application
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "hire them", res.RecommendationNote)
	})
}
