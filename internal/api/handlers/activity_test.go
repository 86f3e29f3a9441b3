package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mgarrido/chatforge/internal/domain/activity"
)

func TestActivityHandler_List(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	recorder := activity.NewRecorder(db)
	h := NewActivityHandler(recorder)
	userID := registerUser(t, db, "a1@example.com")
	other := registerUser(t, db, "a1b@example.com")

	entries := []activity.Entry{
		{UserID: userID, Action: "login"},
		{UserID: userID, Action: "chat.turn", EntityType: "project", EntityID: "p1"},
		{UserID: other, Action: "login"},
	}
	for _, e := range entries {
		if err := recorder.Record(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}

	rr := httptest.NewRecorder()
	h.ListActivity(rr, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/activity", nil), userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListActivity status = %d; want %d", rr.Code, http.StatusOK)
	}
	var resp ActivityListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Events) != 2 {
		t.Fatalf("list = %d events, total %d; want 2 and 2 (scoped to caller)", len(resp.Events), resp.Total)
	}
	for _, e := range resp.Events {
		if e.UserID != userID {
			t.Errorf("listing leaked event for user %q", e.UserID)
		}
	}
}

func TestActivityHandler_List_Empty(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	h := NewActivityHandler(activity.NewRecorder(db))
	userID := registerUser(t, db, "a2@example.com")

	rr := httptest.NewRecorder()
	h.ListActivity(rr, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/activity", nil), userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListActivity status = %d; want %d", rr.Code, http.StatusOK)
	}
	var resp ActivityListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Events == nil || len(resp.Events) != 0 {
		t.Errorf("events = %v; want empty non-nil slice", resp.Events)
	}
}
