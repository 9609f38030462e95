package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/server/weberror"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

// maxListingPage caps one page of the account container listing.
const maxListingPage = 1000

type accountHandler struct {
	logger logger.Logger
	db     database.Client
}

// Containers serves one page of the container listing of an account. Rows
// are positional arrays: [name, objects, bytes]. Grouped entries produced
// by a delimiter carry zero counters.
func (h *accountHandler) Containers(c echo.Context) error {
	c.Set("handler_method", "account.Containers")

	account := c.QueryParam("id")
	if account == "" {
		return weberror.BadRequest("missing id parameter")
	}

	limit := int64(maxListingPage)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return weberror.BadRequest("malformed limit parameter")
		}
		if parsed < limit {
			limit = parsed
		}
	}

	var (
		prefix    = c.QueryParam("prefix")
		delimiter = c.QueryParam("delimiter")
		marker    = c.QueryParam("marker")
		endMarker = c.QueryParam("end_marker")
	)

	containers, err := h.db.ListContainers(account)
	if err != nil {
		return weberror.Internal(err.Error())
	}

	listing := make([][]interface{}, 0, len(containers))
	grouped := map[string]bool{}
	for _, container := range containers {
		name := container.Name

		if marker != "" && name <= marker {
			continue
		}
		if endMarker != "" && name >= endMarker {
			break
		}
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}

		if delimiter != "" {
			rest := name[len(prefix):]
			if i := strings.Index(rest, delimiter); i >= 0 {
				group := prefix + rest[:i+len(delimiter)]
				// A grouped row already served on an earlier page comes back
				// as the marker; re-emitting it would never let a marker
				// chain reach the empty page.
				if grouped[group] || (marker != "" && group <= marker) {
					continue
				}
				grouped[group] = true
				listing = append(listing, []interface{}{group, int64(0), int64(0)})
			} else {
				listing = append(listing, []interface{}{name, container.Objects, container.Bytes})
			}
		} else {
			listing = append(listing, []interface{}{name, container.Objects, container.Bytes})
		}

		if int64(len(listing)) >= limit {
			break
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"listing": listing})
}
