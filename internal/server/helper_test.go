package server_test

import (
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/brandontheis/oio-sds/internal/client"
	"github.com/brandontheis/oio-sds/internal/database"
	"github.com/brandontheis/oio-sds/internal/server"
	"github.com/brandontheis/oio-sds/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/sirupsen/logrus"
)

const (
	testNamespace = "TEST"
	testAccount   = "AUTH_demo"
)

var (
	testMeta0 = []string{"127.0.0.1:6001"}
	testMeta1 = []string{"127.0.0.1:6010", "127.0.0.1:6011"}
	testMeta2 = []string{"127.0.0.1:6020"}
)

// setup starts a full dev proxy on a temp database and workspace, and
// returns a client pointed at it.
func setup(t *testing.T) *client.Client {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	dbname, err := os.CreateTemp(t.TempDir(), "oio.db.")
	if err != nil {
		t.Fatal(err)
	}
	dbname.Close()

	db, err := database.StormOpen(dbname.Name())
	if err != nil {
		t.Fatal(err)
	}

	ctrl := server.Controller{
		Version:   "test",
		Logger:    logger.WrapLogrus(log),
		Database:  db,
		Storage:   storage.NewFileSystem(t.TempDir()),
		Namespace: testNamespace,
		Meta0:     testMeta0,
		Meta1:     testMeta1,
		Meta2:     testMeta2,
	}
	engine := server.EchoEngine(ctrl)

	ts := httptest.NewServer(engine)
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})

	return client.New(client.Config{
		Namespace: testNamespace,
		Proxy:     ts.URL,
		Timeout:   20 * time.Second,
	})
}
