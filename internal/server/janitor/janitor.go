// Package janitor runs the periodic maintenance of the dev proxy: usage
// counter reconciliation and blob workspace cleanup.
package janitor

import (
	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/robfig/cron/v3"
)

// A Controller is an Inversion Of Control pattern used to init the janitor package.
type Controller struct {
	Logger        logger.Logger
	Database      database.Client
	Storage       storage.Backend
	Specification string
}

// Start launches the janitor asynchronously.
func Start(c Controller) {
	cron := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	log := c.Logger.WithPrefix("[janitor]")

	_, err := cron.AddFunc(c.Specification, func() {
		containers, err := c.Database.AllContainers()
		if err != nil {
			log.Error(err)
			return
		}

		for _, container := range containers {
			objects, err := c.Database.FindObjectsByContainerID(container.ID)
			if err != nil {
				log.Error(err)
				return
			}

			var bytes int64
			for _, object := range objects {
				bytes += object.Size
			}
			if container.Objects == int64(len(objects)) && container.Bytes == bytes {
				continue
			}

			container.Objects = int64(len(objects))
			container.Bytes = bytes
			if err := c.Database.Save(container); err != nil {
				log.Error(err)
				return
			}
			log.Infof("Reconciled counters of %s", container.Ref)
		}

		if err := c.Storage.Cleanup(); err != nil {
			log.Error(err)
		}
	})
	if err != nil {
		panic(err)
	}
	log.Info("Counter reconciliation task registered")

	cron.Start()
	log.Info("Janitor is running")
}
