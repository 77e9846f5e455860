package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/termle/admin-console/dto"
	"github.com/termle/admin-console/session"
)

type wordForm struct {
	Date       string
	Word       string
	Difficulty int
	Error      string
}

type wordsView struct {
	Identity *dto.Identity
	Year     int
	Month    int
	Words    []dto.WordEntry
	Page     Pagination
	Form     wordForm
	FormOpen bool
	Flash    string
	Error    string
}

// handleWords renders the word schedule. The filter form submits only year
// and month, so changing the filter lands on offset zero.
func (s *Server) handleWords(c *gin.Context) {
	sess, ok := s.guard(c)
	if !ok {
		return
	}
	year := intQuery(c, "year", 0)
	month := intQuery(c, "month", 0)
	limit, offset := pageParams(c)

	form := wordForm{Date: c.Query("edit"), Difficulty: defaultDifficulty}
	s.renderWords(c, sess, year, month, limit, offset, form, c.Query("edit") != "", takeFlash(c))
}

const (
	defaultDifficulty = 5
	minDifficulty     = 1
	maxDifficulty     = 10
)

// handleSaveWord creates or updates a day's word. The word is normalized to
// upper case and validated before any network call; invalid input never
// reaches the backend. Success redirects back to the current page with a
// notice; failure re-renders with the editing form open for correction.
func (s *Server) handleSaveWord(c *gin.Context) {
	sess, ok := s.guard(c)
	if !ok {
		return
	}
	year := intQuery(c, "year", 0)
	month := intQuery(c, "month", 0)
	limit, offset := pageParams(c)

	form := wordForm{
		Date:       strings.TrimSpace(c.PostForm("date")),
		Word:       strings.ToUpper(strings.TrimSpace(c.PostForm("word"))),
		Difficulty: intPostForm(c, "difficulty", defaultDifficulty),
	}

	if msg := validateWordInput(form); msg != "" {
		form.Error = msg
		s.renderWords(c, sess, year, month, limit, offset, form, true, "")
		return
	}

	res, err := s.api.PutWord(c.Request.Context(), sess.Credential, form.Date, form.Word, form.Difficulty)
	if err != nil {
		s.log.Error("word save failed", "date", form.Date, "error", err)
		form.Error = err.Error()
		s.renderWords(c, sess, year, month, limit, offset, form, true, "")
		return
	}

	verb := "Updated"
	if res.Created {
		verb = "Created"
	}
	if err := setFlash(c, fmt.Sprintf("%s word for %s", verb, form.Date)); err != nil {
		s.log.Error("flash save failed", "error", err)
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/words?year=%d&month=%d&limit=%d&offset=%d", year, month, limit, offset))
}

func (s *Server) renderWords(c *gin.Context, sess session.Session, year, month, limit, offset int, form wordForm, formOpen bool, flash string) {
	vm := wordsView{
		Identity: sess.Identity,
		Year:     year,
		Month:    month,
		Form:     form,
		FormOpen: formOpen,
		Flash:    flash,
	}
	page, err := s.api.Words(c.Request.Context(), sess.Credential, year, month, limit, offset)
	if err != nil {
		s.log.Error("words load failed", "error", err)
		vm.Error = "could not load words"
		vm.Page = Pagination{Limit: limit, Offset: offset}
	} else {
		vm.Words = page.Words
		vm.Page = Pagination{Limit: limit, Offset: offset, Total: page.Total}
	}
	status := http.StatusOK
	if form.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "words.html", vm)
}

// validateWordInput enforces the client-side rules: a parseable date and a
// word of exactly five ASCII letters (already uppercased by the caller).
func validateWordInput(f wordForm) string {
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	if !isFiveLetterWord(f.Word) {
		return "word must be exactly five letters"
	}
	if f.Difficulty < minDifficulty || f.Difficulty > maxDifficulty {
		return fmt.Sprintf("difficulty must be between %d and %d", minDifficulty, maxDifficulty)
	}
	return ""
}

func isFiveLetterWord(w string) bool {
	if len(w) != 5 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}

func intPostForm(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
