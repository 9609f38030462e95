package server_test

import (
	"context"
	"testing"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createContainers(t *testing.T, c *client.Client, names ...string) {
	t.Helper()

	results, err := c.ContainerCreateMany(context.Background(), testAccount, names, attrs.Update{})
	require.NoError(t, err)
	require.Len(t, results, len(names))
}

func TestContainerListSinglePage(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "movies", "docs", "archive")

	listing, err := c.ContainerList(context.Background(), testAccount, client.ListOptions{})
	require.NoError(t, err)

	names := make([]string, 0, len(listing))
	for _, entry := range listing {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"archive", "docs", "movies"}, names)
}

func TestContainerListFilters(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "a", "b", "c", "d")

	listing, err := c.ContainerList(context.Background(), testAccount, client.ListOptions{
		Marker:    "a",
		EndMarker: "d",
	})
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, "b", listing[0].Name)
	assert.Equal(t, "c", listing[1].Name)

	listing, err = c.ContainerList(context.Background(), testAccount, client.ListOptions{
		Prefix: "b",
	})
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "b", listing[0].Name)
}

func TestContainerListDelimiter(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "photos.2024", "photos.2025", "docs")

	listing, err := c.ContainerList(context.Background(), testAccount, client.ListOptions{
		Delimiter: ".",
	})
	require.NoError(t, err)

	names := make([]string, 0, len(listing))
	for _, entry := range listing {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"docs", "photos."}, names)
}

func TestContainerPagerAgainstServer(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "a", "b", "c", "d", "e")

	pager := client.NewContainerPager(context.Background(), c, testAccount, client.ListOptions{Limit: 2}, true)

	var names []string
	for pager.Next() {
		names = append(names, pager.Entry().Name)
	}
	require.NoError(t, pager.Err())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
}

func TestContainerPagerDelimiterTerminates(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "photos.2024", "photos.2025", "docs")

	pager := client.NewContainerPager(context.Background(), c, testAccount, client.ListOptions{Delimiter: "."}, true)

	// A grouped row becomes the next marker; the follow-up page must not
	// serve the same group again or the marker chain never ends.
	var names []string
	for pager.Next() {
		names = append(names, pager.Entry().Name)
		require.Less(t, len(names), 10, "listing does not terminate")
	}
	require.NoError(t, pager.Err())
	assert.Equal(t, []string{"docs", "photos."}, names)
}

func TestContainerListDelimiterAfterMarker(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "photos.2024", "photos.2025")

	listing, err := c.ContainerList(context.Background(), testAccount, client.ListOptions{
		Delimiter: ".",
		Marker:    "photos.",
	})
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestLocate(t *testing.T) {
	c := setup(t)
	createContainers(t, c, "movies")
	ctx := context.Background()

	doc, err := c.ContainerGetProperties(ctx, testAccount, "movies")
	require.NoError(t, err)
	directory, err := c.List(ctx, testAccount, "movies")
	require.NoError(t, err)

	info := pairMap(attrs.Locate(doc, directory))
	assert.Equal(t, testAccount, info["account"])
	assert.Equal(t, "movies", info["name"])
	assert.Equal(t, "127.0.0.1:6001", info["meta0"])
	assert.Equal(t, "127.0.0.1:6010, 127.0.0.1:6011", info["meta1"])
	assert.Equal(t, "127.0.0.1:6020", info["meta2"])
}

func TestLocateUnknownReference(t *testing.T) {
	c := setup(t)

	_, err := c.List(context.Background(), testAccount, "missing")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}
