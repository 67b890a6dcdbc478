package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edupanel/examboard/internal/config"
	"github.com/edupanel/examboard/internal/handler"
	"github.com/edupanel/examboard/internal/model"
	"github.com/edupanel/examboard/internal/response"
	"github.com/edupanel/examboard/internal/service"
	"github.com/edupanel/examboard/internal/session"
	"github.com/edupanel/examboard/internal/upstream"
	"github.com/edupanel/examboard/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// newTestRouter wires the full stack against a fake upstream API and an
// in-memory session store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user": map[string]any{
				"id": 1, "username": "ana", "firstName": "Ana",
				"lastName": "Ruiz", "email": "ana@example.edu", "role": "admin",
			},
		})
	})
	mux.HandleFunc("POST /api/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/mainview/", func(w http.ResponseWriter, r *http.Request) {
		exams := make([]model.ExamRecord, 12)
		for i := range exams {
			exams[i] = model.ExamRecord{
				ID:    i + 1,
				Title: fmt.Sprintf("Examen %d", i+1),
				Grade: "7.5",
			}
		}
		json.NewEncoder(w).Encode(model.MainView{Exams: exams, Count: 12, Average: 7.5})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		GinMode:     gin.TestMode,
		PageSize:    5,
		PagerDelta:  2,
		SnapshotTTL: time.Minute,
	}

	api := upstream.New(srv.URL, 5*time.Second, zerolog.Nop())
	sessions := session.NewManager(api, session.NewMemoryStore(), zerolog.Nop())
	sessions.Restore(context.Background())

	handlers := &Handlers{
		Auth:      handler.NewAuthHandler(sessions),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(sessions, nil, cfg, zerolog.Nop())),
	}
	return SetupRouter(sessions, handlers, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %s %s: %v (body %q)", method, path, err, w.Body.String())
	}
	return w, env
}

func login(t *testing.T, r *gin.Engine) {
	t.Helper()
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"ana@example.edu","password":"secret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if env.Metadata.RequestID == "" {
		t.Error("missing request id in metadata")
	}
}

func TestLoginValidation(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrValidation {
		t.Fatalf("error = %+v", env.Error)
	}
	if _, ok := env.Error.Fields["email"]; !ok {
		t.Errorf("fields = %v, want email entry", env.Error.Fields)
	}
	if _, ok := env.Error.Fields["password"]; !ok {
		t.Errorf("fields = %v, want password entry", env.Error.Fields)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"ana@example.edu","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrInvalidCredentials {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrSessionRequired {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestLoginAndDashboard(t *testing.T) {
	r := newTestRouter(t)
	login(t, r)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/dashboard?page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if env.Pagination == nil {
		t.Fatal("missing pagination block")
	}
	if env.Pagination.Page != 2 || env.Pagination.TotalItems != 12 || env.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v", env.Pagination)
	}

	var page struct {
		Rows []json.RawMessage `json:"filas"`
	}
	raw, _ := json.Marshal(env.Data)
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Rows) != 5 {
		t.Errorf("rows = %d, want 5", len(page.Rows))
	}
}

func TestDashboardBadPageFallsBackToFirst(t *testing.T) {
	r := newTestRouter(t)
	login(t, r)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/dashboard?page=zzz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if env.Pagination.Page != 1 {
		t.Errorf("page = %d, want 1", env.Pagination.Page)
	}
}

func TestExamDetailRoutes(t *testing.T) {
	r := newTestRouter(t)
	login(t, r)

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/dashboard/exams/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/dashboard/exams/abc", "")
	if w.Code != http.StatusBadRequest || env.Error.Code != response.ErrInvalidID {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/dashboard/exams/999", "")
	if w.Code != http.StatusNotFound || env.Error.Code != response.ErrNotFound {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}
}

func TestMeLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "")
	if w.Code != http.StatusUnauthorized || env.Error.Code != response.ErrSessionRequired {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}

	login(t, r)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		IsAuthenticated bool             `json:"is_authenticated"`
		IsAdmin         bool             `json:"is_admin"`
		User            model.UserRecord `json:"user"`
	}
	raw, _ := json.Marshal(env.Data)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.IsAuthenticated || !body.IsAdmin || body.User.Username != "ana" {
		t.Errorf("body = %+v", body)
	}

	// Logout is public and always succeeds.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d", w.Code)
	}
}
