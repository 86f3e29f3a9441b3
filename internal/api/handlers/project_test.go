package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mgarrido/chatforge/internal/domain/project"
)

// mustCreateProject creates a project through the service, bypassing HTTP.
func mustCreateProject(t *testing.T, svc *project.Service, userID, name string) *project.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), project.CreateInput{UserID: userID, Name: name})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestProjectHandler_Create(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	h := NewProjectHandler(project.NewService(db))
	userID := registerUser(t, db, "p1@example.com")

	rr := httptest.NewRecorder()
	h.CreateProject(rr, asUser(postRequest(t, "/api/v1/projects", CreateProjectRequest{
		Name:        "Support Bot",
		Description: "answers tickets",
	}), userID))

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateProject status = %d; want %d. body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var p project.Project
	if err := json.NewDecoder(rr.Body).Decode(&p); err != nil {
		t.Fatalf("decode response error = %v", err)
	}
	if p.ID == "" || p.Name != "Support Bot" || p.UserID != userID {
		t.Errorf("created project = %+v", p)
	}
}

func TestProjectHandler_Create_MissingName(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	h := NewProjectHandler(project.NewService(db))
	userID := registerUser(t, db, "p2@example.com")

	rr := httptest.NewRecorder()
	h.CreateProject(rr, asUser(postRequest(t, "/api/v1/projects", CreateProjectRequest{}), userID))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreateProject missing name status = %d; want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestProjectHandler_List_ScopedToOwner(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	h := NewProjectHandler(project.NewService(db))
	alice := registerUser(t, db, "p3a@example.com")
	bob := registerUser(t, db, "p3b@example.com")

	for _, name := range []string{"One", "Two"} {
		h.CreateProject(httptest.NewRecorder(),
			asUser(postRequest(t, "/api/v1/projects", CreateProjectRequest{Name: name}), alice))
	}
	h.CreateProject(httptest.NewRecorder(),
		asUser(postRequest(t, "/api/v1/projects", CreateProjectRequest{Name: "Bobs"}), bob))

	rr := httptest.NewRecorder()
	h.ListProjects(rr, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil), alice))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListProjects status = %d; want %d", rr.Code, http.StatusOK)
	}
	var resp ProjectListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response error = %v", err)
	}
	if resp.Total != 2 || len(resp.Projects) != 2 {
		t.Fatalf("list = %d projects, total %d; want 2 and 2", len(resp.Projects), resp.Total)
	}
	for _, p := range resp.Projects {
		if p.UserID != alice {
			t.Errorf("listing leaked project owned by %q", p.UserID)
		}
	}
}

func TestProjectHandler_Get_OtherUsersProjectIs404(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := project.NewService(db)
	h := NewProjectHandler(svc)
	owner := registerUser(t, db, "p4a@example.com")
	intruder := registerUser(t, db, "p4b@example.com")

	p := mustCreateProject(t, svc, owner, "Private")

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+p.ID, nil), "id", p.ID)
	rr := httptest.NewRecorder()
	h.GetProject(rr, asUser(req, intruder))

	// Existence must not leak: not-owned reads as not-found.
	if rr.Code != http.StatusNotFound {
		t.Errorf("GetProject as non-owner status = %d; want %d", rr.Code, http.StatusNotFound)
	}
}

func TestProjectHandler_Update(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := project.NewService(db)
	h := NewProjectHandler(svc)
	userID := registerUser(t, db, "p5@example.com")
	p := mustCreateProject(t, svc, userID, "Before")

	req := withURLParam(postRequest(t, "/api/v1/projects/"+p.ID, UpdateProjectRequest{
		Name:        "After",
		Description: "renamed",
	}), "id", p.ID)
	rr := httptest.NewRecorder()
	h.UpdateProject(rr, asUser(req, userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("UpdateProject status = %d; want %d. body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var updated project.Project
	if err := json.NewDecoder(rr.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Name != "After" {
		t.Errorf("updated name = %q; want After", updated.Name)
	}
}

func TestProjectHandler_Delete(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := project.NewService(db)
	h := NewProjectHandler(svc)
	userID := registerUser(t, db, "p6@example.com")
	p := mustCreateProject(t, svc, userID, "Doomed")

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/projects/"+p.ID, nil), "id", p.ID)
	rr := httptest.NewRecorder()
	h.DeleteProject(rr, asUser(req, userID))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("DeleteProject status = %d; want %d", rr.Code, http.StatusNoContent)
	}

	// Second delete is a 404 — the project is gone.
	rr = httptest.NewRecorder()
	h.DeleteProject(rr, asUser(withURLParam(
		httptest.NewRequest(http.MethodDelete, "/api/v1/projects/"+p.ID, nil), "id", p.ID), userID))
	if rr.Code != http.StatusNotFound {
		t.Errorf("repeat DeleteProject status = %d; want %d", rr.Code, http.StatusNotFound)
	}
}
