package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/q"
	"github.com/brandontheis/oio-sds/internal/model"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(json.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.Container{}); err != nil {
		return errors.Wrap(err, "could not init container index")
	}

	if err := db.Init(&model.Property{}); err != nil {
		return errors.Wrap(err, "could not init property index")
	}

	err = db.Init(&model.Object{})
	return errors.Wrap(err, "could not init object index")
}

// StormReIndex rebuilds the indexes of all the record types.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.Container{}); err != nil {
		return errors.Wrap(err, "could not reindex containers")
	}

	if err := db.ReIndex(&model.Property{}); err != nil {
		return errors.Wrap(err, "could not reindex properties")
	}

	err = db.ReIndex(&model.Object{})
	return errors.Wrap(err, "could not reindex objects")
}

// StormOpen opens the Storm database.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

func (c *strm) Close() error {
	return c.db.Close()
}

func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

//
// Container
//

func (c *strm) AllContainers() ([]*model.Container, error) {
	containers := make([]*model.Container, 0)
	err := c.db.All(&containers)
	return containers, errors.Wrap(err, "could not get all containers")
}

func (c *strm) ListContainers(account string) ([]*model.Container, error) {
	containers := make([]*model.Container, 0)
	err := c.db.Select(q.Eq("Account", account)).OrderBy("Name").Find(&containers)
	if c.IsNotFound(err) {
		return containers, nil
	}
	return containers, errors.Wrap(err, "could not list containers")
}

func (c *strm) FindContainer(id string) (*model.Container, error) {
	var container model.Container
	err := c.db.One("ID", id, &container)
	return &container, errors.Wrap(err, "could not find container")
}

func (c *strm) FindContainerByRef(account, name string) (*model.Container, error) {
	var container model.Container
	err := c.db.One("Ref", model.ContainerRef(account, name), &container)
	return &container, errors.Wrap(err, "could not find container")
}

func (c *strm) DeleteContainer(id string) error {
	err := c.db.Select(q.Eq("ID", id)).Delete(&model.Container{})
	return errors.Wrap(err, "could not delete container")
}

//
// Property
//

func (c *strm) FindProperties(containerID string) ([]*model.Property, error) {
	properties := make([]*model.Property, 0)
	err := c.db.Select(q.Eq("ContainerID", containerID)).OrderBy("Key").Find(&properties)
	if c.IsNotFound(err) {
		return properties, nil
	}
	return properties, errors.Wrap(err, "could not get properties by container_id")
}

func (c *strm) FindProperty(containerID, key string) (*model.Property, error) {
	var property model.Property
	err := c.db.Select(q.Eq("ContainerID", containerID), q.Eq("Key", key)).First(&property)
	return &property, errors.Wrap(err, "could not find property")
}

func (c *strm) DeleteProperties(containerID string) error {
	err := c.db.Select(q.Eq("ContainerID", containerID)).Delete(&model.Property{})
	if errors.Cause(err) == storm.ErrNotFound {
		return nil
	}
	return errors.Wrap(err, "could not delete properties")
}

//
// Object
//

func (c *strm) FindObjectsByContainerID(id string) ([]*model.Object, error) {
	objects := make([]*model.Object, 0)
	err := c.db.Select(q.Eq("ContainerID", id)).OrderBy("Name").Find(&objects)
	if c.IsNotFound(err) {
		return objects, nil
	}
	return objects, errors.Wrap(err, "could not get objects by container_id")
}

func (c *strm) FindObjectByName(containerID, name string) (*model.Object, error) {
	var object model.Object
	err := c.db.Select(q.Eq("ContainerID", containerID), q.Eq("Name", name)).First(&object)
	return &object, errors.Wrap(err, "could not find object")
}

func (c *strm) DeleteObject(id string) error {
	err := c.db.Select(q.Eq("ID", id)).Delete(&model.Object{})
	return errors.Wrap(err, "could not delete object")
}
