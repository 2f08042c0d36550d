package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillswap/skillswap/api"
	"github.com/skillswap/skillswap/internal/models"
	"github.com/skillswap/skillswap/internal/session"
	"github.com/skillswap/skillswap/pkg/repository"
	"github.com/skillswap/skillswap/pkg/repository/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthHandlers(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		wantCookie bool
		checkBody  func(t *testing.T, b []byte)
	}{
		{
			name:       "Signup_InvalidRequest",
			method:     http.MethodPost,
			path:       "/signup",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingName",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"email": "alice@example.com", "password": "longenough"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_ShortPassword",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_Success",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "hunter2hunter2"},
			wantStatus: http.StatusOK,
			wantCookie: true,
			checkBody: func(t *testing.T, b []byte) {
				var resp struct {
					User struct {
						ID    int64  `json:"id"`
						Email string `json:"email"`
						Name  string `json:"name"`
					} `json:"user"`
				}
				if err := json.Unmarshal(b, &resp); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if resp.User.ID == 0 || resp.User.Email != "alice@example.com" {
					t.Fatalf("unexpected user: %+v", resp.User)
				}
			},
		},
		{
			name:   "Signup_DuplicateEmail",
			method: http.MethodPost,
			path:   "/signup",
			body:   map[string]string{"name": "Dup", "email": "dup@example.com", "password": "hunter2hunter2"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.Users = append(m.UserRepo.Users, &models.User{ID: 1, Email: "dup@example.com"})
			},
			wantStatus: http.StatusConflict,
		},
		{
			// a concurrent signup that wins between the lookup and the
			// insert still yields a conflict, not a server error
			name:   "Signup_DuplicateEmailRace",
			method: http.MethodPost,
			path:   "/signup",
			body:   map[string]string{"name": "Dup", "email": "race@example.com", "password": "hunter2hunter2"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.CreateErr = repository.ErrDuplicate
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Login_InvalidRequest",
			method:     http.MethodPost,
			path:       "/login",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Login_UnknownEmail",
			method:     http.MethodPost,
			path:       "/login",
			body:       map[string]string{"email": "missing@example.com", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Login_WrongPassword",
			method: http.MethodPost,
			path:   "/login",
			body:   map[string]string{"email": "bob@example.com", "password": "wrongpw"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("rightpw"), bcrypt.MinCost)
				m.UserRepo.Users = append(m.UserRepo.Users, &models.User{ID: 2, Email: "bob@example.com", PasswordHash: string(hash)})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Login_Success",
			method: http.MethodPost,
			path:   "/login",
			body:   map[string]string{"email": "bob@example.com", "password": "hunter2"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
				m.UserRepo.Users = append(m.UserRepo.Users, &models.User{ID: 2, Email: "bob@example.com", Name: "Bob", PasswordHash: string(hash)})
			},
			wantStatus: http.StatusOK,
			wantCookie: true,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte(`"bob@example.com"`)) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
		{
			name:       "Logout_OK",
			method:     http.MethodPost,
			path:       "/logout",
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				if !bytes.Contains(b, []byte("Logged out")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := api.NewAuthHandler(mocks.UserRepo, testSessions())

			var bodyReader io.Reader
			if tt.body != nil {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(tt.method, tt.path, bodyReader)
			w := httptest.NewRecorder()

			switch tt.path {
			case "/signup":
				handler.Signup(w, req)
			case "/login":
				handler.Login(w, req)
			case "/logout":
				handler.Logout(w, req)
			default:
				t.Fatalf("unknown path %s", tt.path)
			}

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, data)
			}

			if tt.wantCookie {
				var found *http.Cookie
				for _, c := range res.Cookies() {
					if c.Name == session.CookieName {
						found = c
					}
				}
				if found == nil || found.Value == "" {
					t.Fatalf("expected session cookie to be set")
				}
				if !found.HttpOnly {
					t.Fatalf("session cookie must be http-only")
				}
				if testSessions().Verify(found.Value) == nil {
					t.Fatalf("session cookie does not verify")
				}
			}
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	handler := api.NewAuthHandler(mock.NewMocks().UserRepo, testSessions())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	res := w.Result()
	defer res.Body.Close()

	var cleared bool
	for _, c := range res.Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected expired session cookie, got %+v", res.Cookies())
	}
}

func TestMe(t *testing.T) {
	mgr := testSessions()
	mocks := mock.NewMocks()
	mocks.UserRepo.Users = append(mocks.UserRepo.Users, &models.User{ID: 7, Email: "carol@example.com", Name: "Carol"})
	handler := api.NewAuthHandler(mocks.UserRepo, mgr)

	// no cookie: null user, still 200
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	handler.Me(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var anon struct {
		User *models.User `json:"user"`
	}
	decodeBody(t, res, &anon)
	if anon.User != nil {
		t.Fatalf("expected null user, got %+v", anon.User)
	}

	// valid cookie: full user
	req = authedRequest(t, mgr, http.MethodGet, "/me", nil, session.User{ID: 7, Email: "carol@example.com", Name: "Carol"})
	w = httptest.NewRecorder()
	handler.Me(w, req)

	res = w.Result()
	defer res.Body.Close()
	var got struct {
		User *models.User `json:"user"`
	}
	decodeBody(t, res, &got)
	if got.User == nil || got.User.ID != 7 {
		t.Fatalf("expected user 7, got %+v", got.User)
	}
}
