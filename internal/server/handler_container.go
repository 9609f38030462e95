package server

import (
	"net/http"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/model"
	"github.com/brandontheis/oio-sds/internal/server/weberror"
	"github.com/brandontheis/oio-sds/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

type containerHandler struct {
	logger logger.Logger
	db     database.Client
	blobs  storage.Backend
}

// attributesPayload is the body of create and set_properties requests.
type attributesPayload struct {
	System     map[string]string `json:"system"`
	Properties map[string]string `json:"properties"`
	Flush      bool              `json:"flush"`
}

// writableSystemKeys are the only system properties a client may set.
var writableSystemKeys = map[string]bool{
	attrs.SysQuota:       true,
	attrs.SysPolicy:      true,
	attrs.SysMaxVersions: true,
}

func refParams(c echo.Context) (account, reference string, err error) {
	account = c.QueryParam("acct")
	reference = c.QueryParam("ref")
	if account == "" || reference == "" {
		return "", "", weberror.BadRequest("missing acct or ref parameter")
	}
	return account, reference, nil
}

// find resolves the acct/ref query parameters into a container record.
func (h *containerHandler) find(c echo.Context) (*model.Container, error) {
	account, reference, err := refParams(c)
	if err != nil {
		return nil, err
	}

	container, err := h.db.FindContainerByRef(account, reference)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, weberror.NotFound("no such container")
		}
		return nil, weberror.Internal(err.Error())
	}
	return container, nil
}

func (h *containerHandler) Create(c echo.Context) error {
	c.Set("handler_method", "container.Create")

	account, reference, err := refParams(c)
	if err != nil {
		return err
	}

	var payload attributesPayload
	if err := c.Bind(&payload); err != nil {
		return weberror.BadRequest(err.Error())
	}

	created, err := h.create(account, reference, payload)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"name": reference, "created": created})
}

func (h *containerHandler) CreateMany(c echo.Context) error {
	c.Set("handler_method", "container.CreateMany")

	account := c.QueryParam("acct")
	if account == "" {
		return weberror.BadRequest("missing acct parameter")
	}

	var payload struct {
		Containers []string          `json:"containers"`
		System     map[string]string `json:"system"`
		Properties map[string]string `json:"properties"`
	}
	if err := c.Bind(&payload); err != nil {
		return weberror.BadRequest(err.Error())
	}
	if len(payload.Containers) == 0 {
		return weberror.BadRequest("no container name given")
	}

	results := make([]echo.Map, 0, len(payload.Containers))
	for _, reference := range payload.Containers {
		created, err := h.create(account, reference, attributesPayload{
			System:     payload.System,
			Properties: payload.Properties,
		})
		if err != nil {
			return err
		}
		results = append(results, echo.Map{"name": reference, "created": created})
	}
	return c.JSON(http.StatusOK, echo.Map{"containers": results})
}

// create makes one container with its initial attributes. It reports false
// without touching anything when the container already exists.
func (h *containerHandler) create(account, reference string, payload attributesPayload) (bool, error) {
	container, err := h.db.FindContainerByRef(account, reference)
	if err == nil {
		return false, nil
	}
	if !h.db.IsNotFound(err) {
		return false, weberror.Internal(err.Error())
	}

	container = &model.Container{
		Ref:     model.ContainerRef(account, reference),
		Account: account,
		Name:    reference,
		Ctime:   attrs.Now().Normal(),
	}
	if err := h.db.Save(container); err != nil {
		return false, weberror.Internal(err.Error())
	}

	if err := h.applyAttributes(container.ID, payload); err != nil {
		return false, err
	}
	return true, nil
}

func (h *containerHandler) SetProperties(c echo.Context) error {
	c.Set("handler_method", "container.SetProperties")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	var payload attributesPayload
	if err := c.Bind(&payload); err != nil {
		return weberror.BadRequest(err.Error())
	}

	if payload.Flush {
		if err := h.flushUserProperties(container.ID); err != nil {
			return err
		}
	}
	if err := h.applyAttributes(container.ID, payload); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// applyAttributes reconciles one attributes document with the stored
// properties. An empty system value clears the container-level override; an
// empty user value is stored as-is, values are opaque.
func (h *containerHandler) applyAttributes(containerID string, payload attributesPayload) error {
	for key, value := range payload.System {
		if !writableSystemKeys[key] {
			return weberror.BadRequest("read-only or unknown system property " + key)
		}

		if value == "" {
			if err := h.deleteProperty(containerID, key); err != nil {
				return err
			}
			continue
		}
		if err := h.upsertProperty(containerID, key, value, true); err != nil {
			return err
		}
	}

	for key, value := range payload.Properties {
		if err := h.upsertProperty(containerID, key, value, false); err != nil {
			return err
		}
	}
	return nil
}

func (h *containerHandler) upsertProperty(containerID, key, value string, system bool) error {
	property, err := h.db.FindProperty(containerID, key)
	if err != nil {
		if !h.db.IsNotFound(err) {
			return weberror.Internal(err.Error())
		}
		property = &model.Property{
			ContainerID: containerID,
			Key:         key,
			System:      system,
		}
	}

	property.Value = value
	if err := h.db.Save(property); err != nil {
		return weberror.Internal(err.Error())
	}
	return nil
}

func (h *containerHandler) deleteProperty(containerID, key string) error {
	property, err := h.db.FindProperty(containerID, key)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil
		}
		return weberror.Internal(err.Error())
	}

	if err := h.db.Delete(property); err != nil {
		return weberror.Internal(err.Error())
	}
	return nil
}

func (h *containerHandler) flushUserProperties(containerID string) error {
	properties, err := h.db.FindProperties(containerID)
	if err != nil {
		return weberror.Internal(err.Error())
	}

	for _, property := range properties {
		if property.System {
			continue
		}
		if err := h.db.Delete(property); err != nil {
			return weberror.Internal(err.Error())
		}
	}
	return nil
}

func (h *containerHandler) DelProperties(c echo.Context) error {
	c.Set("handler_method", "container.DelProperties")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	var keys []string
	if err := c.Bind(&keys); err != nil {
		return weberror.BadRequest(err.Error())
	}
	if len(keys) == 0 {
		return weberror.BadRequest("no property key given")
	}

	for _, key := range keys {
		property, err := h.db.FindProperty(container.ID, key)
		if err != nil {
			if h.db.IsNotFound(err) {
				continue
			}
			return weberror.Internal(err.Error())
		}
		if property.System {
			// System properties are reset through set_properties only.
			continue
		}
		if err := h.db.Delete(property); err != nil {
			return weberror.Internal(err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *containerHandler) GetProperties(c echo.Context) error {
	c.Set("handler_method", "container.GetProperties")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	doc, err := h.describe(container)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// describe builds the {system, properties} document of a container.
func (h *containerHandler) describe(container *model.Container) (attrs.Properties, error) {
	doc := attrs.Properties{
		System: map[string]string{
			attrs.SysAccount:  container.Account,
			attrs.SysBaseName: container.ID,
			attrs.SysUserName: container.Name,
			attrs.SysCtime:    container.Ctime,
		},
		Properties: map[string]string{},
	}
	if container.Bytes > 0 {
		doc.System[attrs.SysUsage] = formatInt(container.Bytes)
	}
	if container.Objects > 0 {
		doc.System[attrs.SysObjects] = formatInt(container.Objects)
	}

	properties, err := h.db.FindProperties(container.ID)
	if err != nil {
		return doc, weberror.Internal(err.Error())
	}
	for _, property := range properties {
		if property.System {
			doc.System[property.Key] = property.Value
			continue
		}
		doc.Properties[property.Key] = property.Value
	}
	return doc, nil
}

func (h *containerHandler) Touch(c echo.Context) error {
	c.Set("handler_method", "container.Touch")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	if err := refreshCounters(h.db, container); err != nil {
		return weberror.Internal(err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *containerHandler) Destroy(c echo.Context) error {
	c.Set("handler_method", "container.Destroy")

	container, err := h.find(c)
	if err != nil {
		return err
	}

	objects, err := h.db.FindObjectsByContainerID(container.ID)
	if err != nil {
		return weberror.Internal(err.Error())
	}
	if len(objects) > 0 {
		return weberror.Conflict("container not empty")
	}

	if err := h.db.DeleteProperties(container.ID); err != nil {
		return weberror.Internal(err.Error())
	}
	if err := h.blobs.RemoveAll(container.ID); err != nil {
		return weberror.Internal(err.Error())
	}
	if err := h.db.DeleteContainer(container.ID); err != nil {
		return weberror.Internal(err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
