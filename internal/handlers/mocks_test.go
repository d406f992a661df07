package handlers

import (
	"context"
	"io"
	"net/http"
	"sync"

	"project_space/internal/models"
	"project_space/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginToken   string
	loginID      models.Identity
	loginErr     error
	parseID      models.Identity
	parseErr     error

	lastRegister   service.RegisterInput
	lastLogin      service.LoginInput
	lastParseToken string
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, in service.LoginInput) (string, models.Identity, error) {
	m.lastLogin = in
	return m.loginToken, m.loginID, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (models.Identity, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockProjects struct {
	mu      sync.Mutex
	list    []models.Project
	listErr error
	project models.Project
	err     error
	deleted int64

	lastFilter service.ProjectFilter
	lastCaller models.Identity
	lastID     string
	lastInput  service.ProjectInput
}

func (m *mockProjects) Create(ctx context.Context, owner models.Identity, in service.ProjectInput) (models.Project, error) {
	m.lastCaller = owner
	m.lastInput = in
	return m.project, m.err
}
func (m *mockProjects) List(ctx context.Context, f service.ProjectFilter) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	return m.list, m.listErr
}

// filter returns the last list filter; the feed calls List from the server goroutine.
func (m *mockProjects) filter() service.ProjectFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFilter
}

func (m *mockProjects) Get(ctx context.Context, id string) (models.Project, error) {
	m.lastID = id
	return m.project, m.err
}
func (m *mockProjects) Update(ctx context.Context, caller models.Identity, id string, in service.ProjectInput) (models.Project, error) {
	m.lastCaller = caller
	m.lastID = id
	m.lastInput = in
	return m.project, m.err
}
func (m *mockProjects) Delete(ctx context.Context, caller models.Identity, id string) (int64, error) {
	m.lastCaller = caller
	m.lastID = id
	return m.deleted, m.err
}

type mockFiles struct {
	image models.Image
	err   error

	lastUpload service.FileUpload
	lastBody   []byte
}

func (m *mockFiles) UploadImage(ctx context.Context, f service.FileUpload) (models.Image, error) {
	m.lastUpload = f
	if f.Body != nil {
		m.lastBody, _ = io.ReadAll(f.Body)
	}
	return m.image, m.err
}

// ---- Helpers ----

var testCaller = models.Identity{
	ID:    "6f1c1e9a-3f39-4d0b-9a4c-0d7c1f0b5e21",
	Name:  "Ada Lovelace",
	Email: "ada@example.com",
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Config{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// authedAuth resolves every token to testCaller.
func authedAuth() *mockAuth {
	return &mockAuth{parseID: testCaller}
}

func withCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: defaultCookieName, Value: token})
	return req
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
