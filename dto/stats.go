package dto

// TodaySummary is the nested "today" object inside the stats payload.
// Word is empty when no word is configured for the day.
type TodaySummary struct {
	Date   string `json:"date"`
	Word   string `json:"word"`
	Games  int    `json:"games"`
	Solved int    `json:"solved"`
}

// Stats is the aggregate payload from GET /admin/stats.
type Stats struct {
	TotalUsers    int          `json:"total_users"`
	TotalGames    int          `json:"total_games"`
	TotalSolved   int          `json:"total_solved"`
	SolveRate     float64      `json:"solve_rate"`
	AvgAttempts   float64      `json:"avg_attempts"`
	ActiveUsers7d int          `json:"active_users_7d"`
	Today         *TodaySummary `json:"today"`
}

// TodayDate returns the date of today's word, or "" when the backend
// reported no word for today.
func (s *Stats) TodayDate() string {
	if s == nil || s.Today == nil {
		return ""
	}
	return s.Today.Date
}

// DailyStats is the per-date payload from GET /admin/daily/{date}.
// Distribution maps attempt count ("1".."6") to the number of solves.
type DailyStats struct {
	Date        string         `json:"date"`
	Word        string         `json:"word"`
	TotalGames  int            `json:"total_games"`
	TotalSolved int            `json:"total_solved"`
	SolveRate   float64        `json:"solve_rate"`
	AvgAttempts float64        `json:"avg_attempts"`
	Distribution map[string]int `json:"distribution"`
}
