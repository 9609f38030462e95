package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/client"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return client.New(client.Config{
		Namespace: "OPENIO",
		Proxy:     server.URL,
		Timeout:   5 * time.Second,
	})
}

func TestContainerEntryUnmarshalJSON(t *testing.T) {
	var entry client.ContainerEntry
	err := json.Unmarshal([]byte(`["movies", 12, 2048]`), &entry)
	require.NoError(t, err)
	assert.Equal(t, client.ContainerEntry{Name: "movies", Objects: 12, Bytes: 2048}, entry)

	err = json.Unmarshal([]byte(`["movies", 12]`), &entry)
	assert.Error(t, err)
}

func TestContainerEntryMarshalJSON(t *testing.T) {
	payload, err := json.Marshal(client.ContainerEntry{Name: "movies", Objects: 12, Bytes: 2048})
	require.NoError(t, err)
	assert.JSONEq(t, `["movies", 12, 2048]`, string(payload))
}

func TestClientRequestID(t *testing.T) {
	var reqid string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reqid = r.Header.Get(client.HeaderRequestID)
		w.Write([]byte(`{"system":{},"properties":{}}`))
	})

	_, err := c.ContainerGetProperties(context.Background(), "AUTH_demo", "movies")
	require.NoError(t, err)
	assert.NotEmpty(t, reqid)
}

func TestClientRemoteError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such container"}`))
	})

	_, err := c.ContainerGetProperties(context.Background(), "AUTH_demo", "missing")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))

	re, ok := errors.Cause(err).(*client.RemoteError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "no such container", re.Message)
	assert.Contains(t, err.Error(), "no such container")
}

func TestClientRemoteErrorRawBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "proxy overloaded", http.StatusServiceUnavailable)
	})

	err := c.ContainerTouch(context.Background(), "AUTH_demo", "movies")
	require.Error(t, err)

	re, ok := errors.Cause(err).(*client.RemoteError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, re.Status)
	assert.Equal(t, "proxy overloaded", re.Message)
}

func TestContainerCreatePayload(t *testing.T) {
	var (
		path string
		body map[string]interface{}
	)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path + "?" + r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"movies","created":true}`))
	})

	created, err := c.ContainerCreate(context.Background(), "AUTH_demo", "movies", attrs.Update{
		Quota: attrs.Int(100),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "/v3.0/OPENIO/container/create?acct=AUTH_demo&ref=movies", path)
	assert.Equal(t, map[string]interface{}{
		"system": map[string]interface{}{"sys.m2.quota": "100"},
	}, body)
}

func TestContainerListQuery(t *testing.T) {
	var query string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"listing":[["a",1,10],["b",2,20]]}`))
	})

	listing, err := c.ContainerList(context.Background(), "AUTH_demo", client.ListOptions{
		Prefix: "mov",
		Marker: "a",
		Limit:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, []client.ContainerEntry{
		{Name: "a", Objects: 1, Bytes: 10},
		{Name: "b", Objects: 2, Bytes: 20},
	}, listing)
	assert.Equal(t, "id=AUTH_demo&limit=2&marker=a&prefix=mov", query)
}
