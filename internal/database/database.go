package database

import (
	"github.com/brandontheis/oio-sds/internal/model"
)

type (
	// A Client can interact with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		ContainerInteraction
		PropertyInteraction
		ObjectInteraction
	}

	// A ContainerInteraction defines all the methods used to interact with a container record.
	ContainerInteraction interface {
		AllContainers() ([]*model.Container, error)
		ListContainers(account string) ([]*model.Container, error)
		FindContainer(id string) (*model.Container, error)
		FindContainerByRef(account, name string) (*model.Container, error)
		DeleteContainer(id string) error
	}

	// A PropertyInteraction defines all the methods used to interact with a property record.
	PropertyInteraction interface {
		FindProperties(containerID string) ([]*model.Property, error)
		FindProperty(containerID, key string) (*model.Property, error)
		DeleteProperties(containerID string) error
	}

	// An ObjectInteraction defines all the methods used to interact with an object record.
	ObjectInteraction interface {
		FindObjectsByContainerID(id string) ([]*model.Object, error)
		FindObjectByName(containerID, name string) (*model.Object, error)
		DeleteObject(id string) error
	}
)
