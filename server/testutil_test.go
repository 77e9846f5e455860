package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"

	"github.com/termle/admin-console/api"
	"github.com/termle/admin-console/logger"
	"github.com/termle/admin-console/session"
	"github.com/termle/admin-console/store"
)

// fakeBackend plays the game backend. Counters let tests assert exactly
// which endpoints a flow touched.
type fakeBackend struct {
	mu sync.Mutex

	meStatus   int // 0 means 200
	meBody     string
	meCalls    int
	statsBody  string
	dailyCalls int
	dailyDates []string

	exchangeCalls  int
	exchangeStatus int
	exchangeBody   string
	lastExchange   map[string]string

	putWordCalls int
	putStatus    int // 0 means 200
	putBody      string
	lastPutPath  string
	lastPutWord  string
	lastPutRank  string
	putCreated   bool

	wordsBody string
	usersBody string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		meBody:       `{"id":1,"username":"admin","email":"admin@termle.example","avatar_url":""}`,
		statsBody:    `{"total_users":10,"total_games":50,"total_solved":40,"solve_rate":80.0,"avg_attempts":3.4,"active_users_7d":5,"today":{"date":"2024-06-01","word":"HELLO","games":7,"solved":6}}`,
		exchangeBody: `{"id":1,"username":"admin","token":"tok-issued"}`,
		wordsBody:    `{"words":[{"date":"2024-06-01","word":"HELLO","difficulty_rank":5}],"total":1,"limit":20,"offset":0}`,
		usersBody:    `{"users":[],"total":0,"limit":20,"offset":0}`,
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}

	mux.HandleFunc("GET /auth/google/auth-url", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"auth_url":"https://accounts.example/o/oauth2/auth?x=1","state":"state-1"}`)
	})
	mux.HandleFunc("POST /auth/google/callback", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.exchangeCalls++
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		f.lastExchange = payload
		status, body := f.exchangeStatus, f.exchangeBody
		f.mu.Unlock()
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, body)
	})
	mux.HandleFunc("GET /admin/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.meCalls++
		status, body := f.meStatus, f.meBody
		f.mu.Unlock()
		if status == 0 {
			status = http.StatusOK
		}
		if status != http.StatusOK {
			body = `{"detail":"Not an admin"}`
		}
		writeJSON(w, status, body)
	})
	mux.HandleFunc("GET /admin/stats", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		body := f.statsBody
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("GET /admin/daily/{date}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.dailyCalls++
		f.dailyDates = append(f.dailyDates, r.PathValue("date"))
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, `{"date":"`+r.PathValue("date")+`","word":"HELLO","total_games":7,"total_solved":6,"solve_rate":85.7,"avg_attempts":3.2,"distribution":{"1":0,"2":1,"3":2,"4":2,"5":1,"6":0}}`)
	})
	mux.HandleFunc("GET /admin/words", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		body := f.wordsBody
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("PUT /admin/words/{date}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.putWordCalls++
		f.lastPutPath = r.URL.Path
		f.lastPutWord = r.URL.Query().Get("word")
		f.lastPutRank = r.URL.Query().Get("difficulty_rank")
		created := f.putCreated
		status, errBody := f.putStatus, f.putBody
		f.mu.Unlock()
		if status != 0 && status != http.StatusOK {
			writeJSON(w, status, errBody)
			return
		}
		body := `{"date":"` + r.PathValue("date") + `","word":"` + r.URL.Query().Get("word") + `","created":false}`
		if created {
			body = `{"date":"` + r.PathValue("date") + `","word":"` + r.URL.Query().Get("word") + `","created":true}`
		}
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("GET /admin/users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		body := f.usersBody
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("GET /admin/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"leaderboard":[{"rank":1,"username":"ada","current_streak":4,"longest_streak":9,"total_games":20,"total_wins":18,"win_rate":90.0}]}`)
	})
	mux.HandleFunc("GET /admin/leaderboard/today", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"leaderboard":[{"rank":1,"username":"ada","attempts":3,"time_seconds":61}]}`)
	})
	return mux
}

type testEnv struct {
	backend *fakeBackend
	store   *store.BuntStore
	expect  *httpexpect.Expect
}

// newTestEnv stands up the fake backend, an in-memory store, and the full
// console router behind an httptest server. The returned expect client
// keeps cookies and does not follow redirects.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend()
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	st, err := store.NewBuntStore(":memory:", time.Hour, time.Minute)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	client, err := api.NewClient(backendSrv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cfg := defaultConfig()
	cfg.Backend.BaseURL = backendSrv.URL
	log := logger.New("error")
	sessions := session.NewController(client, st, st, cfg.OAuth.RedirectURL, log)
	router := NewGinEngine(New(cfg, client, sessions, log))

	consoleSrv := httptest.NewServer(router)
	t.Cleanup(consoleSrv.Close)

	e := httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  consoleSrv.URL,
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			Jar: httpexpect.NewCookieJar(),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})

	return &testEnv{backend: backend, store: st, expect: e}
}

// signIn walks the OAuth flow against the fake backend: login redirect,
// then callback with a code, leaving the cookie session authenticated.
func (env *testEnv) signIn(t *testing.T) {
	t.Helper()
	env.expect.GET("/login").Expect().Status(http.StatusFound)
	env.expect.GET("/auth/callback").WithQuery("code", "code-1").
		Expect().Status(http.StatusFound).Header("Location").IsEqual("/")
}
