package bootstrap_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/educonnect/internal/app/bootstrap"
	"github.com/dalemusser/educonnect/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func buildTestHandler(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appCfg := bootstrap.AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: db.Name(),
		JWTSecret:     "test-secret",
		TokenExpiry:   time.Hour,
		UploadPath:    t.TempDir(),
		UploadURL:     "/files/uploads",
	}
	deps := bootstrap.DBDeps{MongoClient: db.Client(), MongoDatabase: db}

	handler, err := bootstrap.BuildHandler(&config.CoreConfig{}, appCfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	return handler
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers a user and returns their token and id.
func signupAndLogin(t *testing.T, h http.Handler, name, email, role string) (token, id string) {
	t.Helper()
	rec := do(t, h, "POST", "/api/auth/signup", "",
		`{"name":"`+name+`","email":"`+email+`","password":"secret123","role":"`+role+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", email, rec.Code, rec.Body.String())
	}

	rec = do(t, h, "POST", "/api/auth/login", "",
		`{"email":"`+email+`","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing login response: %v", err)
	}
	return resp.Token, resp.User.ID
}

func TestMembershipFlow(t *testing.T) {
	h := buildTestHandler(t)

	teacherToken, _ := signupAndLogin(t, h, "Dana Fields", "dana@example.com", "teacher")
	studentToken, studentID := signupAndLogin(t, h, "Pat Kim", "pat@example.com", "student")

	// Classroom routes refuse anonymous requests.
	rec := do(t, h, "GET", "/api/classrooms/mine", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request: status %d", rec.Code)
	}

	// Teacher creates a classroom.
	rec = do(t, h, "POST", "/api/classrooms", teacherToken,
		`{"semester":"Fall 2026","batch":"B1","subject":"Algebra"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create classroom: status %d body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parsing classroom: %v", err)
	}

	// Student browses and requests to join.
	rec = do(t, h, "GET", "/api/classrooms/joinable", studentToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Algebra") {
		t.Fatalf("joinable list: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, "POST", "/api/classrooms/join/"+created.ID, studentToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("join request: status %d body %s", rec.Code, rec.Body.String())
	}

	// Teacher sees the pending request and approves it.
	rec = do(t, h, "GET", "/api/classrooms/pending/"+created.ID, teacherToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "pat@example.com") {
		t.Fatalf("pending roster: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, "POST", "/api/classrooms/approve/"+created.ID+"/"+studentID, teacherToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d body %s", rec.Code, rec.Body.String())
	}

	// Student now sees the classroom in their approved list.
	rec = do(t, h, "GET", "/api/classrooms/student/"+studentID, studentToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Algebra") {
		t.Fatalf("student classes: status %d body %s", rec.Code, rec.Body.String())
	}

	// The audit trail recorded both transitions.
	rec = do(t, h, "GET", "/api/classrooms/"+created.ID+"/events", teacherToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("events: status %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "requested") || !strings.Contains(rec.Body.String(), "approved") {
		t.Errorf("audit trail incomplete: %s", rec.Body.String())
	}

	// Students cannot hit teacher-only endpoints.
	rec = do(t, h, "GET", "/api/classrooms/pending/"+created.ID, studentToken, "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("student reading pending roster: status %d", rec.Code)
	}
}

func TestContentFlow(t *testing.T) {
	h := buildTestHandler(t)

	teacherToken, _ := signupAndLogin(t, h, "Dana Fields", "dana@example.com", "teacher")
	studentToken, studentID := signupAndLogin(t, h, "Pat Kim", "pat@example.com", "student")

	rec := do(t, h, "POST", "/api/classrooms", teacherToken,
		`{"semester":"Fall 2026","batch":"B1","subject":"Algebra"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create classroom: status %d", rec.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parsing classroom: %v", err)
	}

	rec = do(t, h, "POST", "/api/classrooms/join/"+created.ID, studentToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("join: status %d", rec.Code)
	}
	rec = do(t, h, "POST", "/api/classrooms/approve/"+created.ID+"/"+studentID, teacherToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d", rec.Code)
	}

	// Teacher posts an announcement and a note; student sees both in feeds.
	rec = do(t, h, "POST", "/api/announcements", teacherToken,
		`{"classroom_id":"`+created.ID+`","heading":"Exam moved","text":"New date"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create announcement: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, "POST", "/api/notes", teacherToken,
		`{"classroom_id":"`+created.ID+`","heading":"Chapter 3","file_url":"https://example.com/ch3.pdf"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create note: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, "GET", "/api/announcements/student", studentToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Exam moved") {
		t.Fatalf("announcement feed: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, "GET", "/api/notes/student", studentToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Chapter 3") {
		t.Fatalf("notes feed: status %d body %s", rec.Code, rec.Body.String())
	}
}
