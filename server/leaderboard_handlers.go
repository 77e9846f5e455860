package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/termle/admin-console/dto"
)

const leaderboardLimit = 100

type leaderboardView struct {
	Identity  *dto.Identity
	View      string
	AllTime   []dto.LeaderboardRow
	TodayRows []dto.TodayLeaderboardRow
	Error     string
}

// handleLeaderboard renders the all-time or today ranking, picked by the
// "view" query parameter.
func (s *Server) handleLeaderboard(c *gin.Context) {
	sess, ok := s.guard(c)
	if !ok {
		return
	}
	view := c.DefaultQuery("view", "alltime")
	vm := leaderboardView{Identity: sess.Identity, View: view}
	ctx := c.Request.Context()

	if view == "today" {
		today, err := s.api.LeaderboardToday(ctx, sess.Credential, leaderboardLimit)
		if err != nil {
			s.log.Error("today leaderboard load failed", "error", err)
			vm.Error = "could not load leaderboard"
		} else {
			vm.TodayRows = today.Entries
		}
	} else {
		vm.View = "alltime"
		all, err := s.api.Leaderboard(ctx, sess.Credential, leaderboardLimit)
		if err != nil {
			s.log.Error("leaderboard load failed", "error", err)
			vm.Error = "could not load leaderboard"
		} else {
			vm.AllTime = all.Entries
		}
	}

	c.HTML(http.StatusOK, "leaderboard.html", vm)
}
