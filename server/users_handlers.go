package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/termle/admin-console/dto"
)

type usersView struct {
	Identity *dto.Identity
	Users    []dto.UserRow
	Page     Pagination
	Error    string
}

// handleUsers renders the paginated user listing.
func (s *Server) handleUsers(c *gin.Context) {
	sess, ok := s.guard(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)
	vm := usersView{Identity: sess.Identity}

	page, err := s.api.Users(c.Request.Context(), sess.Credential, limit, offset)
	if err != nil {
		s.log.Error("users load failed", "error", err)
		vm.Error = "could not load users"
		vm.Page = Pagination{Limit: limit, Offset: offset}
		c.HTML(http.StatusOK, "users.html", vm)
		return
	}

	// Older backends omit total; fall back to full-page detection so next
	// stays usable.
	total := page.Total
	if total == 0 && len(page.Users) > 0 {
		total = offset + len(page.Users)
		if len(page.Users) == limit {
			total++
		}
	}

	vm.Users = page.Users
	vm.Page = Pagination{Limit: limit, Offset: offset, Total: total}
	c.HTML(http.StatusOK, "users.html", vm)
}
