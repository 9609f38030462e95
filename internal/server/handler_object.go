package server

import (
	"crypto/md5"
	"fmt"
	"io"
	"net/http"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/model"
	"github.com/brandontheis/oio-sds/internal/server/weberror"
	"github.com/brandontheis/oio-sds/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

type objectHandler struct {
	logger logger.Logger
	db     database.Client
	blobs  storage.Backend
}

func (h *objectHandler) find(c echo.Context) (*model.Container, error) {
	handler := containerHandler{logger: h.logger, db: h.db, blobs: h.blobs}
	return handler.find(c)
}

func (h *objectHandler) List(c echo.Context) error {
	c.Set("handler_method", "object.List")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	objects, err := h.db.FindObjectsByContainerID(container.ID)
	if err != nil {
		return weberror.Internal(err.Error())
	}

	listing := make([]echo.Map, 0, len(objects))
	for _, object := range objects {
		listing = append(listing, echo.Map{
			"name":  object.Name,
			"size":  object.Size,
			"hash":  object.Hash,
			"mtime": object.Mtime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"objects": listing})
}

func (h *objectHandler) Fetch(c echo.Context) error {
	c.Set("handler_method", "object.Fetch")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	path := c.QueryParam("path")
	object, err := h.db.FindObjectByName(container.ID, path)
	if err != nil {
		if h.db.IsNotFound(err) {
			return weberror.NotFound("no such object")
		}
		return weberror.Internal(err.Error())
	}

	rc, err := h.blobs.Reader(container.ID, object.Name)
	if err != nil {
		return weberror.Internal(err.Error())
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", rc)
}

func (h *objectHandler) Upload(c echo.Context) error {
	c.Set("handler_method", "object.Upload")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	path := c.QueryParam("path")
	if path == "" {
		return weberror.BadRequest("missing path parameter")
	}

	object, err := h.db.FindObjectByName(container.ID, path)
	if err != nil && !h.db.IsNotFound(err) {
		return weberror.Internal(err.Error())
	}
	exists := err == nil

	// Versioning disabled means an existing object cannot be overwritten;
	// suspended (or absent) means overwrite in place.
	if exists {
		versioning, err := h.db.FindProperty(container.ID, attrs.SysMaxVersions)
		if err == nil && versioning.Value == formatInt(attrs.VersioningDisabled) {
			return weberror.Conflict("versioning disabled, cannot overwrite object")
		}
		if err != nil && !h.db.IsNotFound(err) {
			return weberror.Internal(err.Error())
		}
	}
	if !exists {
		object = &model.Object{
			ContainerID: container.ID,
			Name:        path,
		}
	}

	wc, err := h.blobs.Writer(container.ID, path)
	if err != nil {
		return weberror.Internal(err.Error())
	}

	hash := md5.New()
	size, err := io.Copy(io.MultiWriter(wc, hash), c.Request().Body)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return weberror.Internal(err.Error())
	}

	object.Size = size
	object.Hash = fmt.Sprintf("%x", hash.Sum(nil))
	object.Mtime = attrs.Now().Normal()
	if err := h.db.Save(object); err != nil {
		return weberror.Internal(err.Error())
	}

	if err := refreshCounters(h.db, container); err != nil {
		return weberror.Internal(err.Error())
	}
	return c.NoContent(http.StatusCreated)
}
