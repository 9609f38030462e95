package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/server"
	"github.com/brandontheis/oio-sds/internal/server/janitor"
	"github.com/brandontheis/oio-sds/internal/storage"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const dbname = "oio-dev.db"

func newServerCommand() *cobra.Command {
	var (
		binding   string
		port      string
		namespace string
		meta0     []string
		meta1     []string
		meta2     []string
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run a single-process development rendition of the namespace",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			log := newLogger()

			db, err := database.StormOpen(nameWithEnv("OIO_DATA", dbname))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			blobs := storage.NewFileSystem(nameWithEnv("OIO_DATA", "blobs"))

			janitor.Start(janitor.Controller{
				Logger:        log,
				Database:      db,
				Storage:       blobs,
				Specification: "@every 30s",
			})

			ctrl := server.Controller{
				Version:   c.Root().Version,
				Logger:    log,
				Database:  db,
				Storage:   blobs,
				Namespace: namespace,
				Meta0:     meta0,
				Meta1:     meta1,
				Meta2:     meta2,
			}
			engine := server.EchoEngine(ctrl)
			server.PrintRoutes(engine)

			listen := fmt.Sprintf("%s:%s", binding, port)
			log.Infof("Server listening on %s", listen)
			return errors.Wrap(
				engine.Start(listen),
				"could not run server",
			)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&binding, "binding", "b", "0.0.0.0", "Server's binding")
	flags.StringVarP(&port, "port", "p", "6006", "Server's port")
	flags.StringVar(&namespace, "namespace", "OPENIO", "Namespace name served by this process")
	flags.StringSliceVar(&meta0, "meta0", []string{"127.0.0.1:6001"}, "meta0 hosts advertised by reference/show")
	flags.StringSliceVar(&meta1, "meta1", []string{"127.0.0.1:6010"}, "meta1 hosts advertised by reference/show")
	flags.StringSliceVar(&meta2, "meta2", []string{"127.0.0.1:6020"}, "meta2 hosts advertised by reference/show")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Init the database",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return database.StormInit(nameWithEnv("OIO_DATA", dbname))
			},
		},
		&cobra.Command{
			Use:   "reindex",
			Short: "Reindex the database",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return database.StormReIndex(nameWithEnv("OIO_DATA", dbname))
			},
		},
	)
	return cmd
}

func nameWithEnv(env, name string) string {
	p := os.Getenv(env)
	if len(p) == 0 {
		return name
	}
	return filepath.Join(p, name)
}
