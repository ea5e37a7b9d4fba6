package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"opsconsole-backend/internal/auth"
	"opsconsole-backend/internal/database"
	"opsconsole-backend/internal/models"
)

type memoryStore struct {
	entries map[string]string
}

func (s *memoryStore) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	s.entries[key] = token
	return nil
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	return s.entries[key], nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

type memoryFlags map[string]string

func (f memoryFlags) GetFlag(ctx context.Context, key string) (string, error) {
	return f[key], nil
}

type memoryCaptcha map[string]string

func (f memoryCaptcha) GetAndConsume(ctx context.Context, correlationID string) (string, error) {
	code := f[correlationID]
	delete(f, correlationID)
	return code, nil
}

func setupTestServer(t *testing.T, flags memoryFlags) *echo.Echo {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.Open(database.Config{Path: dbPath}); err != nil {
		t.Fatal("Failed to open database:", err)
	}
	t.Cleanup(func() { database.Close() })

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatal("Failed to hash password:", err)
	}
	admin := &models.User{
		UserName:     "admin",
		NickName:     "Administrator",
		PasswordHash: hash,
		Status:       models.StatusNormal,
	}
	if err := database.NewUserRepo().Create(admin); err != nil {
		t.Fatal("Failed to seed admin:", err)
	}

	svc := auth.NewService(auth.ServiceConfig{
		Users:    database.NewUserRepo(),
		Depts:    database.NewDeptRepo(),
		Store:    &memoryStore{entries: make(map[string]string)},
		Flags:    flags,
		Captcha:  memoryCaptcha{},
		Secret:   []byte("test-secret"),
		TokenTTL: time.Minute,
		StoreTTL: time.Minute,
		Policy:   auth.SessionPolicy{MultiLogin: true},
	})

	e := echo.New()
	e.Validator = NewRequestValidator()
	RegisterRoutes(e, svc)

	return e
}

func doJSON(e *echo.Echo, method, path, body, token, referer string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginLogoutFlow(t *testing.T) {
	e := setupTestServer(t, memoryFlags{})

	rec := doJSON(e, http.MethodPost, "/login",
		`{"userName":"admin","password":"admin123"}`, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var loginResp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatal("Failed to parse login response:", err)
	}
	token := loginResp["token"]
	if token == "" {
		t.Fatal("login response should carry a token")
	}

	rec = doJSON(e, http.MethodGet, "/getInfo", "", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("getInfo status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var info models.CurrentUser
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal("Failed to parse getInfo response:", err)
	}
	if info.User == nil || info.User.UserName != "admin" {
		t.Errorf("getInfo user = %+v, want admin", info.User)
	}

	rec = doJSON(e, http.MethodGet, "/getRouters", "", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("getRouters status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/logout", "", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// The session is gone after logout.
	rec = doJSON(e, http.MethodGet, "/getInfo", "", token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("getInfo after logout status = %d, want 401", rec.Code)
	}

	// Logout is idempotent at the HTTP boundary.
	rec = doJSON(e, http.MethodPost, "/logout", "", token, "")
	if rec.Code != http.StatusOK {
		t.Errorf("second logout status = %d, want 200", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := setupTestServer(t, memoryFlags{})

	rec := doJSON(e, http.MethodPost, "/login",
		`{"userName":"admin","password":"wrong"}`, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", rec.Code)
	}

	// Unknown users get the identical response.
	rec2 := doJSON(e, http.MethodPost, "/login",
		`{"userName":"nobody","password":"wrong"}`, "", "")
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", rec2.Code)
	}
	if rec.Body.String() != rec2.Body.String() {
		t.Error("credential failures should be indistinguishable")
	}
}

func TestLoginDocsReferer(t *testing.T) {
	e := setupTestServer(t, memoryFlags{})

	rec := doJSON(e, http.MethodPost, "/login",
		`{"userName":"admin","password":"admin123"}`, "", "http://localhost:8080/docs")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal("Failed to parse response:", err)
	}
	if resp["access_token"] == "" {
		t.Error("docs referer should get an access_token field")
	}
	if resp["token_type"] != "Bearer" {
		t.Errorf("token_type = %q, want Bearer", resp["token_type"])
	}
}

func TestLogoutGarbageToken(t *testing.T) {
	e := setupTestServer(t, memoryFlags{})

	rec := doJSON(e, http.MethodPost, "/logout", "", "not-a-token", "")
	if rec.Code != http.StatusOK {
		t.Errorf("logout with garbage token status = %d, want 200", rec.Code)
	}
}

func TestRegister(t *testing.T) {
	e := setupTestServer(t, memoryFlags{auth.ConfigKeyRegisterEnabled: "true"})

	body := `{"userName":"newuser","password":"secret123","confirmPassword":"secret123"}`
	rec := doJSON(e, http.MethodPost, "/register", body, "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/register", body, "", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	// Validator rejects a mismatched confirmation.
	rec = doJSON(e, http.MethodPost, "/register",
		`{"userName":"other","password":"secret123","confirmPassword":"different"}`, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("mismatched confirm status = %d, want 400", rec.Code)
	}
}

func TestRegisterDisabled(t *testing.T) {
	e := setupTestServer(t, memoryFlags{})

	rec := doJSON(e, http.MethodPost, "/register",
		`{"userName":"newuser","password":"secret123","confirmPassword":"secret123"}`, "", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("register with flag unset status = %d, want 403", rec.Code)
	}
}
