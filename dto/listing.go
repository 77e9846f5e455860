package dto

import "strconv"

// WordEntry is one row of the word schedule.
type WordEntry struct {
	Date           string `json:"date"`
	Word           string `json:"word"`
	DifficultyRank int    `json:"difficulty_rank"`
}

// WordsPage is the payload from GET /admin/words.
type WordsPage struct {
	Words  []WordEntry `json:"words"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// SaveWordResponse is the payload from PUT /admin/words/{date}. Created
// reports whether the entry was inserted rather than overwritten; the
// backend decides.
type SaveWordResponse struct {
	Date    string `json:"date"`
	Word    string `json:"word"`
	Created bool   `json:"created"`
}

// UserRow is one row of GET /admin/users, joined with streak stats.
type UserRow struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	GoogleID      string `json:"google_id"`
	CreatedAt     string `json:"created_at"`
	TotalGames    int    `json:"total_games"`
	TotalWins     int    `json:"total_wins"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// UsersPage is the payload from GET /admin/users. Total is optional; older
// backends omit it, in which case paging falls back to full-page detection.
type UsersPage struct {
	Users  []UserRow `json:"users"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// LeaderboardRow is one all-time ranking entry.
type LeaderboardRow struct {
	Rank          int     `json:"rank"`
	Username      string  `json:"username"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	TotalGames    int     `json:"total_games"`
	TotalWins     int     `json:"total_wins"`
	WinRate       float64 `json:"win_rate"`
}

// Leaderboard is the payload from GET /admin/leaderboard.
type Leaderboard struct {
	Entries []LeaderboardRow `json:"leaderboard"`
}

// TodayLeaderboardRow is one entry of today's per-attempt ranking.
// TimeSeconds is nil for clients that did not report solve time.
type TodayLeaderboardRow struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	Attempts    int    `json:"attempts"`
	TimeSeconds *int   `json:"time_seconds"`
}

// Time renders the solve time for display, "-" when unreported.
func (r TodayLeaderboardRow) Time() string {
	if r.TimeSeconds == nil {
		return "-"
	}
	return strconv.Itoa(*r.TimeSeconds) + "s"
}

// TodayLeaderboard is the payload from GET /admin/leaderboard/today.
type TodayLeaderboard struct {
	Entries []TodayLeaderboardRow `json:"leaderboard"`
}
