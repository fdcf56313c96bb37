package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgchat/orgchat-server/internal/core"
)

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()

	data, _ := json.Marshal(body)
	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func getAuthed(t *testing.T, ts *httptest.Server, path, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	ts := startTestServer(t, defaultTestConfig())

	resp := postJSON(t, ts, "/api/register", RegisterRequest{Username: "alice", Password: "password123"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %d", resp.StatusCode)
	}

	// Duplicate registration conflicts.
	dup := postJSON(t, ts, "/api/register", RegisterRequest{Username: "alice", Password: "password123"})
	defer dup.Body.Close()
	if dup.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status: %d", dup.StatusCode)
	}

	login := postJSON(t, ts, "/api/login", LoginRequest{Username: "alice", Password: "password123"})
	defer login.Body.Close()
	if login.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", login.StatusCode)
	}
	var authResp AuthResponse
	if err := json.NewDecoder(login.Body).Decode(&authResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if authResp.Token == "" {
		t.Fatalf("expected token in login response")
	}

	bad := postJSON(t, ts, "/api/login", LoginRequest{Username: "alice", Password: "wrong-password"})
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status: %d", bad.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := startTestServer(t, defaultTestConfig())

	for _, req := range []RegisterRequest{
		{Username: "ab", Password: "password123"},
		{Username: "alice", Password: "short"},
		{Username: "", Password: ""},
	} {
		resp := postJSON(t, ts, "/api/register", req)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %+v, got %d", req, resp.StatusCode)
		}
	}
}

func TestUserDirectoryExcludesCaller(t *testing.T) {
	ts := startTestServer(t, defaultTestConfig())

	aliceToken := registerUser(t, ts, "alice")
	registerUser(t, ts, "bob")
	registerUser(t, ts, "charlie")

	resp := getAuthed(t, ts, "/api/users", aliceToken)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list users status: %d", resp.StatusCode)
	}

	var users []UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %v", users)
	}
	for _, u := range users {
		if u.Username == "alice" {
			t.Fatalf("directory must exclude the caller")
		}
	}

	// Unauthenticated requests are rejected.
	anon, err := ts.Client().Get(ts.URL + "/api/users")
	if err != nil {
		t.Fatalf("anon request: %v", err)
	}
	defer anon.Body.Close()
	if anon.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anon status: %d", anon.StatusCode)
	}
}

func TestCurrentUser(t *testing.T) {
	ts := startTestServer(t, defaultTestConfig())

	token := registerUser(t, ts, "alice")

	resp := getAuthed(t, ts, "/api/users/current", token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("current user status: %d", resp.StatusCode)
	}

	var user UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode current user: %v", err)
	}
	if user.Username != "alice" || user.ID == 0 {
		t.Fatalf("unexpected current user: %+v", user)
	}
}

func TestConversationHistory(t *testing.T) {
	cfg := defaultTestConfig()

	st := createTestStore(t)
	authService := createTestAuthService(t, st, "test-secret")
	hub := core.NewHub(st)

	hubCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(hubCtx)

	disabledLogger := zerolog.New(nil)
	server := NewServer(hub, authService, st, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	aliceToken := registerUser(t, ts, "alice")
	registerUser(t, ts, "bob")

	ctx := context.Background()
	alice, _ := st.GetUserByUsername(ctx, "alice")
	bob, _ := st.GetUserByUsername(ctx, "bob")

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if _, err := st.AppendMessage(ctx, alice.ID, bob.ID, "hello", base); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := st.AppendMessage(ctx, bob.ID, alice.ID, "hey", base.Add(time.Minute)); err != nil {
		t.Fatalf("append: %v", err)
	}

	resp := getAuthed(t, ts, "/api/messages/"+strconv.FormatInt(bob.ID, 10), aliceToken)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status: %d", resp.StatusCode)
	}

	var msgs []MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgs); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Body != "hello" || msgs[1].Body != "hey" {
		t.Fatalf("unexpected history: %+v", msgs)
	}

	// Garbage user id is a bad request.
	bad := getAuthed(t, ts, "/api/messages/nope", aliceToken)
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id status: %d", bad.StatusCode)
	}
}

func TestAuthEndpointsRateLimited(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.AuthRateLimit = 1
	cfg.AuthRateBurst = 2

	ts := startTestServer(t, cfg)

	var saw429 bool
	for i := 0; i < 5; i++ {
		resp := postJSON(t, ts, "/api/login", LoginRequest{Username: "nobody", Password: "password123"})
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			saw429 = true
			break
		}
	}
	if !saw429 {
		t.Fatalf("expected a 429 from the auth rate limiter")
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t, defaultTestConfig())

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
