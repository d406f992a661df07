package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project_space/internal/models"
	"project_space/internal/service"

	"github.com/google/uuid"
)

const validProjectBody = `{"name":"Launch","description":"v1","dueDate":"2026-12-01","status":"in-progress"}`

func sampleProject() models.Project {
	return models.Project{
		ID:      uuid.MustParse("0b6c8c5e-6f7d-4a57-9a39-5d3e3a9d0c11"),
		Name:    "Launch",
		DueDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Status:  models.StatusInProgress,
		Owner:   models.Owner{ID: uuid.MustParse(testCaller.ID), Name: testCaller.Name},
	}
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return out.Message
}

func TestProjects_ListPassesFilterAndNeverReturnsNull(t *testing.T) {
	projects := &mockProjects{}
	r := newTestRouter(&service.Service{Projects: projects})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?search=laun&status=completed", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
	if projects.lastFilter.Search != "laun" || projects.lastFilter.Status != "completed" {
		t.Fatalf("filter not forwarded: %+v", projects.lastFilter)
	}

	projects.list = []models.Project{sampleProject()}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	var got []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 1 || got[0]["_id"] != sampleProject().ID.String() || got[0]["dueDate"] != "2026-12-01T00:00:00Z" {
		t.Fatalf("unexpected list body: %s", w.Body.String())
	}

	projects.listErr = errors.New("db gone")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if w.Code != http.StatusInternalServerError || decodeMessage(t, w) != msgLoadFailed {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestProjects_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		path     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"get missing id", http.MethodGet, "/projects/undefined", service.ErrMissingID, http.StatusBadRequest, msgMissingID},
		{"get not found", http.MethodGet, "/projects/abc", service.ErrNotFound, http.StatusNotFound, msgNotFound},
		{"get store failure", http.MethodGet, "/projects/abc", errors.New("boom"), http.StatusInternalServerError, msgLoadFailed},
		{"create validation", http.MethodPost, "/projects", &service.ValidationError{Messages: []string{"Name is required"}}, http.StatusBadRequest, "Name is required"},
		{"create store failure", http.MethodPost, "/projects", errors.New("boom"), http.StatusInternalServerError, msgSaveFailed},
		{"update not found", http.MethodPut, "/projects/abc", service.ErrNotFound, http.StatusNotFound, msgNotFound},
		{"update forbidden", http.MethodPut, "/projects/abc", service.ErrForbidden, http.StatusForbidden, msgForbidden},
		{"update store failure", http.MethodPut, "/projects/abc", errors.New("boom"), http.StatusInternalServerError, msgSaveFailed},
		{"delete missing id", http.MethodDelete, "/projects/undefined", service.ErrMissingID, http.StatusBadRequest, msgMissingID},
		{"delete forbidden", http.MethodDelete, "/projects/abc", service.ErrForbidden, http.StatusForbidden, msgForbidden},
		{"delete store failure", http.MethodDelete, "/projects/abc", errors.New("boom"), http.StatusInternalServerError, msgDeleteFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			projects := &mockProjects{err: tc.err}
			r := newTestRouter(&service.Service{Authorization: authedAuth(), Projects: projects})

			var body *bytes.Buffer
			if tc.method == http.MethodPost || tc.method == http.MethodPut {
				body = bytes.NewBufferString(validProjectBody)
			} else {
				body = &bytes.Buffer{}
			}
			req := withCookie(httptest.NewRequest(tc.method, tc.path, body), "good")
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if msg := decodeMessage(t, w); msg != tc.wantMsg {
				t.Fatalf("message: got %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestProjects_MutationsRequireCookie(t *testing.T) {
	projects := &mockProjects{project: sampleProject()}
	auth := &mockAuth{parseErr: service.ErrUnauthenticated}
	r := newTestRouter(&service.Service{Authorization: auth, Projects: projects})

	for _, rt := range []struct{ method, path string }{
		{http.MethodPost, "/projects"},
		{http.MethodPut, "/projects/abc"},
		{http.MethodDelete, "/projects/abc"},
		{http.MethodPost, "/files/upload"},
		{http.MethodGet, "/users/auth"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, bytes.NewBufferString(validProjectBody)))
		if w.Code != http.StatusUnauthorized || decodeMessage(t, w) != msgAuthenticate {
			t.Fatalf("%s %s without cookie: got %d %s", rt.method, rt.path, w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		r.ServeHTTP(w, withCookie(httptest.NewRequest(rt.method, rt.path, bytes.NewBufferString(validProjectBody)), "forged"))
		if w.Code != http.StatusUnauthorized || decodeMessage(t, w) != msgAuthenticate {
			t.Fatalf("%s %s with bad cookie: got %d %s", rt.method, rt.path, w.Code, w.Body.String())
		}
	}
	if projects.lastCaller != (models.Identity{}) {
		t.Fatalf("service reached without authentication: %+v", projects.lastCaller)
	}
}

func TestProjects_CreateUpdateDeleteForwardCaller(t *testing.T) {
	projects := &mockProjects{project: sampleProject(), deleted: 1}
	r := newTestRouter(&service.Service{Authorization: authedAuth(), Projects: projects})

	req := withCookie(httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(validProjectBody)), "good")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if projects.lastCaller != testCaller || projects.lastInput.Name != "Launch" || projects.lastInput.DueDate != "2026-12-01" {
		t.Fatalf("create not forwarded: caller=%+v input=%+v", projects.lastCaller, projects.lastInput)
	}

	id := sampleProject().ID.String()
	req = withCookie(httptest.NewRequest(http.MethodPut, "/projects/"+id, bytes.NewBufferString(validProjectBody)), "good")
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || projects.lastID != id {
		t.Fatalf("update: status=%d id=%q", w.Code, projects.lastID)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, withCookie(httptest.NewRequest(http.MethodDelete, "/projects/"+id, nil), "good"))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Acknowledged bool  `json:"acknowledged"`
		DeletedCount int64 `json:"deletedCount"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Acknowledged || out.DeletedCount != 1 {
		t.Fatalf("unexpected delete body: %s", w.Body.String())
	}
}

func TestProjects_MalformedBody(t *testing.T) {
	projects := &mockProjects{}
	r := newTestRouter(&service.Service{Authorization: authedAuth(), Projects: projects})

	req := withCookie(httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(`{"name":`)), "good")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest || decodeMessage(t, w) != msgInvalidBody {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if projects.lastInput != (service.ProjectInput{}) {
		t.Fatalf("service reached with malformed body")
	}
}
