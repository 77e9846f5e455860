package server

import (
	"net/http"
	"testing"
)

func TestUsersListingRenders(t *testing.T) {
	env := newTestEnv(t)
	env.backend.mu.Lock()
	env.backend.usersBody = `{"users":[{"id":1,"username":"ada","email":"ada@termle.example","total_games":20,"total_wins":18,"current_streak":4,"created_at":"2024-01-02T03:04:05Z"}],"total":1,"limit":20,"offset":0}`
	env.backend.mu.Unlock()
	env.signIn(t)

	env.expect.GET("/users").Expect().
		Status(http.StatusOK).
		Body().Contains("ada").Contains("ada@termle.example")
}

func TestUsersTotalFallbackOnFullPage(t *testing.T) {
	env := newTestEnv(t)
	// A full page with no total means more rows may follow, so the next
	// link must stay live.
	env.backend.mu.Lock()
	env.backend.usersBody = `{"users":[{"id":1,"username":"u1"},{"id":2,"username":"u2"}],"limit":2,"offset":0}`
	env.backend.mu.Unlock()
	env.signIn(t)

	env.expect.GET("/users").WithQuery("limit", 2).
		Expect().Status(http.StatusOK).
		Body().Contains("Next")
}

func TestUsersLoadFailureShowsNotice(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)

	env.backend.mu.Lock()
	env.backend.usersBody = `{"users": not json`
	env.backend.mu.Unlock()

	env.expect.GET("/users").Expect().
		Status(http.StatusOK).
		Body().Contains("could not load users")
}
