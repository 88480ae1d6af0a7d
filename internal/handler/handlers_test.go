package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo-notes-server/internal/domain"
	"todo-notes-server/internal/middleware"
	"todo-notes-server/internal/repository"
	"todo-notes-server/internal/service"

	"github.com/gorilla/mux"
)

const testSecret = "handler-test-secret"

type mockUserRepo struct {
	users map[string]*domain.User
}

func (m *mockUserRepo) Create(user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) EmailExists(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	return err == nil, nil
}

type mockNoteRepo struct {
	notes []*domain.Note
}

func (m *mockNoteRepo) Create(note *domain.Note) error {
	m.notes = append(m.notes, note)
	return nil
}

func (m *mockNoteRepo) FindOne(noteID, ownerID string) (*domain.Note, error) {
	for _, n := range m.notes {
		if n.ID == noteID && n.UserID == ownerID {
			return n, nil
		}
	}
	return nil, repository.ErrNoteNotFound
}

func (m *mockNoteRepo) ListByOwner(ownerID string) ([]*domain.Note, error) {
	var notes []*domain.Note
	for _, n := range m.notes {
		if n.UserID == ownerID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *mockNoteRepo) Update(note *domain.Note) error {
	for i, n := range m.notes {
		if n.ID == note.ID {
			m.notes[i] = note
			return nil
		}
	}
	return repository.ErrNoteNotFound
}

func (m *mockNoteRepo) Delete(noteID, ownerID string) error {
	for i, n := range m.notes {
		if n.ID == noteID && n.UserID == ownerID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNoteNotFound
}

// newTestRouter mirrors the route wiring in cmd/server.
func newTestRouter() (*mux.Router, *mockUserRepo, *mockNoteRepo) {
	userRepo := &mockUserRepo{users: make(map[string]*domain.User)}
	noteRepo := &mockNoteRepo{}

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, testSecret, 600*time.Hour))
	userHandler := NewUserHandler(service.NewUserService(userRepo))
	noteHandler := NewNoteHandler(service.NewNoteService(noteRepo, nil))

	r := mux.NewRouter()
	r.HandleFunc("/create-account", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(testSecret))
	protected.HandleFunc("/get-user", userHandler.GetMe).Methods("GET")
	protected.HandleFunc("/get-all-to-do", noteHandler.GetAll).Methods("GET")
	protected.HandleFunc("/add-a-to-do", noteHandler.Add).Methods("POST")
	protected.HandleFunc("/edit-a-to-do/{noteId}", noteHandler.Edit).Methods("PUT")
	protected.HandleFunc("/pin-a-to-do/{noteId}", noteHandler.Pin).Methods("PUT")
	protected.HandleFunc("/delete-a-to-do/{noteId}", noteHandler.Delete).Methods("DELETE")

	return r, userRepo, noteRepo
}

func doRequest(t *testing.T, r *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func registerAndLogin(t *testing.T, r *mux.Router, fullname, email, password string) string {
	t.Helper()

	rec := doRequest(t, r, http.MethodPost, "/create-account", "", map[string]string{
		"fullname": fullname,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create-account status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	token, _ := decodeBody(t, rec)["accesstoken"].(string)
	if token == "" {
		t.Fatal("login returned no access token")
	}
	return token
}

func TestRegisterValidation(t *testing.T) {
	r, _, _ := newTestRouter()

	tests := []struct {
		name    string
		body    map[string]string
		wantMsg string
	}{
		{
			name:    "missing fullname",
			body:    map[string]string{"email": "a@x.com", "password": "p"},
			wantMsg: "Full Name is required",
		},
		{
			name:    "missing email",
			body:    map[string]string{"fullname": "A", "password": "p"},
			wantMsg: "Email is required",
		},
		{
			name:    "missing password",
			body:    map[string]string{"fullname": "A", "email": "a@x.com"},
			wantMsg: "Password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/create-account", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %v", body["message"], tt.wantMsg)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r, userRepo, _ := newTestRouter()

	payload := map[string]string{"fullname": "A", "email": "a@x.com", "password": "p"}

	rec := doRequest(t, r, http.MethodPost, "/create-account", "", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("first register status = %d", rec.Code)
	}

	// The duplicate comes back as 200 with the error flag set, not a
	// 4xx; clients branch on the message.
	rec = doRequest(t, r, http.MethodPost, "/create-account", "", payload)
	if rec.Code != http.StatusOK {
		t.Errorf("duplicate register status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != true {
		t.Error("expected error flag on duplicate registration")
	}
	if body["message"] != "User already exist" {
		t.Errorf("message = %v, want %q", body["message"], "User already exist")
	}

	if len(userRepo.users) != 1 {
		t.Errorf("expected a single stored user, got %d", len(userRepo.users))
	}
}

func TestLoginFailures(t *testing.T) {
	r, _, _ := newTestRouter()
	registerAndLogin(t, r, "A", "a@x.com", "p")

	tests := []struct {
		name    string
		body    map[string]string
		wantMsg string
	}{
		{
			name:    "missing email",
			body:    map[string]string{"password": "p"},
			wantMsg: "Email is required",
		},
		{
			name:    "missing password",
			body:    map[string]string{"email": "a@x.com"},
			wantMsg: "Password is required",
		},
		{
			name:    "unknown user",
			body:    map[string]string{"email": "nobody@x.com", "password": "p"},
			wantMsg: "User not found",
		},
		{
			name:    "wrong password",
			body:    map[string]string{"email": "a@x.com", "password": "nope"},
			wantMsg: "Invalid Email or Password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/login", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if body := decodeBody(t, rec); body["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %v", body["message"], tt.wantMsg)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _, _ := newTestRouter()

	rec := doRequest(t, r, http.MethodGet, "/get-all-to-do", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/get-all-to-do", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestGetUser(t *testing.T) {
	r, _, _ := newTestRouter()
	token := registerAndLogin(t, r, "Ada Lovelace", "ada@x.com", "secret")

	rec := doRequest(t, r, http.MethodGet, "/get-user", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing user object in %v", body)
	}
	if user["fullname"] != "Ada Lovelace" {
		t.Errorf("fullname = %v", user["fullname"])
	}
	if user["email"] != "ada@x.com" {
		t.Errorf("email = %v", user["email"])
	}
	if _, exists := user["password"]; exists {
		t.Error("password must never appear in responses")
	}
}

func TestAddNoteValidation(t *testing.T) {
	r, _, _ := newTestRouter()
	token := registerAndLogin(t, r, "A", "a@x.com", "p")

	rec := doRequest(t, r, http.MethodPost, "/add-a-to-do", token, map[string]string{"content": "C"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Title is required" {
		t.Errorf("message = %v", body["message"])
	}

	rec = doRequest(t, r, http.MethodPost, "/add-a-to-do", token, map[string]string{"title": "T"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Content is required" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestEditNoChanges(t *testing.T) {
	r, _, noteRepo := newTestRouter()
	token := registerAndLogin(t, r, "A", "a@x.com", "p")

	rec := doRequest(t, r, http.MethodPost, "/add-a-to-do", token, map[string]string{"title": "T", "content": "C"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d", rec.Code)
	}
	noteID := noteRepo.notes[0].ID

	rec = doRequest(t, r, http.MethodPut, "/edit-a-to-do/"+noteID, token, map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "No changes provided" {
		t.Errorf("message = %v", body["message"])
	}

	if noteRepo.notes[0].Title != "T" || noteRepo.notes[0].Content != "C" {
		t.Error("empty edit must leave the stored note unchanged")
	}
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	r, _, noteRepo := newTestRouter()
	tokenA := registerAndLogin(t, r, "A", "a@x.com", "p")
	tokenB := registerAndLogin(t, r, "B", "b@x.com", "p")

	rec := doRequest(t, r, http.MethodPost, "/add-a-to-do", tokenA, map[string]string{"title": "T", "content": "C"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d", rec.Code)
	}
	noteID := noteRepo.notes[0].ID

	// Another user's note must look exactly like a missing one.
	rec = doRequest(t, r, http.MethodPut, "/edit-a-to-do/"+noteID, tokenB, map[string]string{"title": "X"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("edit: status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, r, http.MethodDelete, "/delete-a-to-do/"+noteID, tokenB, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete: status = %d, want 404", rec.Code)
	}

	if len(noteRepo.notes) != 1 {
		t.Errorf("note must survive cross-user delete, got %d notes", len(noteRepo.notes))
	}
}

func TestDeleteNonExistent(t *testing.T) {
	r, _, _ := newTestRouter()
	token := registerAndLogin(t, r, "A", "a@x.com", "p")

	rec := doRequest(t, r, http.MethodDelete, "/delete-a-to-do/does-not-exist", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestNoteLifecycle(t *testing.T) {
	r, _, _ := newTestRouter()
	token := registerAndLogin(t, r, "A", "a@x.com", "p")

	rec := doRequest(t, r, http.MethodPost, "/add-a-to-do", token, map[string]interface{}{
		"title":   "T",
		"content": "C",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, r, http.MethodGet, "/get-all-to-do", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get-all status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	notes, _ := body["notes"].([]interface{})
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	note := notes[0].(map[string]interface{})
	if note["title"] != "T" {
		t.Errorf("title = %v, want T", note["title"])
	}
	if note["isPinned"] != false {
		t.Errorf("isPinned = %v, want false", note["isPinned"])
	}
	noteID := note["_id"].(string)

	rec = doRequest(t, r, http.MethodPut, "/pin-a-to-do/"+noteID, token, map[string]interface{}{"isPinned": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("pin status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, r, http.MethodGet, "/get-all-to-do", token, nil)
	body = decodeBody(t, rec)
	notes, _ = body["notes"].([]interface{})
	if len(notes) != 1 {
		t.Fatalf("expected 1 note after pin, got %d", len(notes))
	}
	if notes[0].(map[string]interface{})["isPinned"] != true {
		t.Error("expected note to be pinned")
	}

	rec = doRequest(t, r, http.MethodDelete, "/delete-a-to-do/"+noteID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodGet, "/get-all-to-do", token, nil)
	body = decodeBody(t, rec)
	notes, _ = body["notes"].([]interface{})
	if len(notes) != 0 {
		t.Errorf("expected empty notes after delete, got %d", len(notes))
	}
}

func TestUnpinViaEdit(t *testing.T) {
	r, _, noteRepo := newTestRouter()
	token := registerAndLogin(t, r, "A", "a@x.com", "p")

	doRequest(t, r, http.MethodPost, "/add-a-to-do", token, map[string]string{"title": "T", "content": "C"})
	noteID := noteRepo.notes[0].ID

	doRequest(t, r, http.MethodPut, "/pin-a-to-do/"+noteID, token, map[string]interface{}{"isPinned": true})

	rec := doRequest(t, r, http.MethodPut, "/edit-a-to-do/"+noteID, token, map[string]interface{}{"isPinned": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if noteRepo.notes[0].IsPinned {
		t.Error("isPinned:false in an edit must unpin the note")
	}
}
