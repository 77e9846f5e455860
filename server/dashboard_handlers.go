package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/termle/admin-console/dto"
)

type distRow struct {
	Attempts string
	Count    int
}

type dashboardView struct {
	Identity     *dto.Identity
	Stats        *dto.Stats
	TodayRows    []dto.TodayLeaderboardRow
	Daily        *dto.DailyStats
	Distribution []distRow
	Error        string
}

// handleDashboard loads the aggregate stats and today's leaderboard
// concurrently; the per-attempt distribution is fetched strictly after the
// stats resolve, and only when the stats named a word date for today.
// Failures degrade the page instead of failing it.
func (s *Server) handleDashboard(c *gin.Context) {
	sess, ok := s.guard(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	vm := dashboardView{Identity: sess.Identity}

	var g errgroup.Group
	g.Go(func() error {
		stats, err := s.api.Stats(ctx, sess.Credential)
		if err != nil {
			s.log.Error("stats load failed", "error", err)
			return err
		}
		vm.Stats = stats
		return nil
	})
	g.Go(func() error {
		today, err := s.api.LeaderboardToday(ctx, sess.Credential, 10)
		if err != nil {
			s.log.Error("today leaderboard load failed", "error", err)
			return err
		}
		vm.TodayRows = today.Entries
		return nil
	})
	if err := g.Wait(); err != nil {
		vm.Error = "some dashboard data failed to load"
	}

	if date := vm.Stats.TodayDate(); date != "" {
		daily, err := s.api.Daily(ctx, sess.Credential, date)
		if err != nil {
			s.log.Error("daily distribution load failed", "date", date, "error", err)
		} else {
			vm.Daily = daily
			vm.Distribution = orderedDistribution(daily.Distribution)
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", vm)
}

// orderedDistribution flattens the "1".."6" keyed map into display order.
func orderedDistribution(dist map[string]int) []distRow {
	rows := make([]distRow, 0, 6)
	for i := 1; i <= 6; i++ {
		k := strconv.Itoa(i)
		rows = append(rows, distRow{Attempts: k, Count: dist[k]})
	}
	return rows
}
