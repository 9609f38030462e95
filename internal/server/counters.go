package server

import (
	"strconv"

	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/model"
)

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// refreshCounters recomputes the usage counters of a container from its
// object records and persists them when they drifted.
func refreshCounters(db database.Client, container *model.Container) error {
	objects, err := db.FindObjectsByContainerID(container.ID)
	if err != nil {
		return err
	}

	var bytes int64
	for _, object := range objects {
		bytes += object.Size
	}

	if container.Objects == int64(len(objects)) && container.Bytes == bytes {
		return nil
	}
	container.Objects = int64(len(objects))
	container.Bytes = bytes
	return db.Save(container)
}
