package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/skillswap/skillswap/api"
	"github.com/skillswap/skillswap/internal/session"
)

const testSecret = "testsecret"

func testSessions() *session.Manager {
	return session.NewManager(testSecret, time.Hour, false)
}

// authedRequest builds a request carrying a valid session cookie for the user.
func authedRequest(t *testing.T, mgr *session.Manager, method, path string, body any, u session.User) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	token, err := mgr.Create(u)
	if err != nil {
		t.Fatalf("create session token: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

// protectedRouter wires a handler behind the session middleware the way the
// real route table does, so mux.Vars and the context principal both work.
func protectedRouter(mgr *session.Manager, method, pattern string, h http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(api.RequireSession(mgr))
	r.HandleFunc(pattern, h).Methods(method)
	return r
}

func decodeBody(t *testing.T, res *http.Response, dst any) {
	t.Helper()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("unmarshal body %q: %v", string(data), err)
	}
}
