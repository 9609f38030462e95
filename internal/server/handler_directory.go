package server

import (
	"net/http"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/server/weberror"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

type directoryHandler struct {
	logger logger.Logger
	db     database.Client

	meta0 []string
	meta1 []string
	meta2 []string
}

// Show serves the directory records of a reference. This single-process
// rendition has a static tier assignment: every reference lands on the
// configured meta0/meta1/meta2 hosts.
func (h *directoryHandler) Show(c echo.Context) error {
	c.Set("handler_method", "directory.Show")

	account, reference, err := refParams(c)
	if err != nil {
		return err
	}

	if _, err := h.db.FindContainerByRef(account, reference); err != nil {
		if h.db.IsNotFound(err) {
			return weberror.NotFound("no such reference")
		}
		return weberror.Internal(err.Error())
	}

	doc := attrs.DirectoryListing{
		Dir: records("meta0", h.meta0),
		Srv: records("meta2", h.meta2),
	}
	doc.Dir = append(doc.Dir, records("meta1", h.meta1)...)

	return c.JSON(http.StatusOK, doc)
}

func records(tier string, hosts []string) []attrs.ServiceRecord {
	sl := make([]attrs.ServiceRecord, 0, len(hosts))
	for i, host := range hosts {
		sl = append(sl, attrs.ServiceRecord{
			Seq:  i + 1,
			Type: tier,
			Host: host,
		})
	}
	return sl
}
