package server_test

import (
	"context"
	"testing"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairMap(pairs []attrs.Pair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}

func TestContainerCreateAndShow(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	created, err := c.ContainerCreate(ctx, testAccount, "movies", attrs.Update{
		Quota:      attrs.Int(100),
		Properties: map[string]string{"color": "orange"},
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Creating again reports false, attributes are left alone.
	created, err = c.ContainerCreate(ctx, testAccount, "movies", attrs.Update{
		Quota: attrs.Int(999),
	})
	require.NoError(t, err)
	assert.False(t, created)

	doc, err := c.ContainerGetProperties(ctx, testAccount, "movies")
	require.NoError(t, err)

	info := pairMap(attrs.Describe(doc))
	assert.Equal(t, testAccount, info["account"])
	assert.Equal(t, "movies", info["container"])
	assert.NotEmpty(t, info["base_name"])
	assert.NotEmpty(t, info["ctime"])
	assert.Equal(t, "100", info["quota"])
	assert.Equal(t, "Namespace default", info["storage_policy"])
	assert.Equal(t, "Namespace default", info["max_versions"])
	assert.Equal(t, "0", info["bytes_usage"])
	assert.Equal(t, "0", info["objects"])
	assert.Equal(t, "orange", info["meta.color"])
}

func TestContainerCreateMany(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, err := c.ContainerCreate(ctx, testAccount, "b", attrs.Update{})
	require.NoError(t, err)

	results, err := c.ContainerCreateMany(ctx, testAccount, []string{"a", "b", "c"}, attrs.Update{
		StoragePolicy: attrs.String("SINGLE"),
	})
	require.NoError(t, err)
	assert.Equal(t, []client.Created{
		{Name: "a", Created: true},
		{Name: "b", Created: false},
		{Name: "c", Created: true},
	}, results)

	doc, err := c.ContainerGetProperties(ctx, testAccount, "c")
	require.NoError(t, err)
	assert.Equal(t, "SINGLE", doc.System[attrs.SysPolicy])
}

func TestContainerSetAndUnsetProperties(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, err := c.ContainerCreate(ctx, testAccount, "movies", attrs.Update{})
	require.NoError(t, err)

	err = c.ContainerSetProperties(ctx, testAccount, "movies", attrs.Update{
		Quota:       attrs.Int(2048),
		MaxVersions: attrs.Int(4),
		Properties:  map[string]string{"color": "orange", "year": "2016"},
	}, false)
	require.NoError(t, err)

	doc, err := c.ContainerGetProperties(ctx, testAccount, "movies")
	require.NoError(t, err)
	assert.Equal(t, "2048", doc.System[attrs.SysQuota])
	assert.Equal(t, "4", doc.System[attrs.SysMaxVersions])
	assert.Equal(t, map[string]string{"color": "orange", "year": "2016"}, doc.Properties)

	// Unset is two independent calls: property deletion, then system reset.
	err = c.ContainerDelProperties(ctx, testAccount, "movies", []string{"color"})
	require.NoError(t, err)
	err = c.ContainerSetProperties(ctx, testAccount, "movies", attrs.Update{
		Quota: attrs.Reset(),
	}, false)
	require.NoError(t, err)

	doc, err = c.ContainerGetProperties(ctx, testAccount, "movies")
	require.NoError(t, err)

	info := pairMap(attrs.Describe(doc))
	assert.Equal(t, "Namespace default", info["quota"])
	assert.Equal(t, "4", info["max_versions"])
	assert.NotContains(t, info, "meta.color")
	assert.Equal(t, "2016", info["meta.year"])
}

func TestContainerSetPropertiesClear(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, err := c.ContainerCreate(ctx, testAccount, "movies", attrs.Update{
		Quota:      attrs.Int(100),
		Properties: map[string]string{"color": "orange", "year": "2016"},
	})
	require.NoError(t, err)

	err = c.ContainerSetProperties(ctx, testAccount, "movies", attrs.Update{
		Properties: map[string]string{"genre": "drama"},
	}, true)
	require.NoError(t, err)

	doc, err := c.ContainerGetProperties(ctx, testAccount, "movies")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"genre": "drama"}, doc.Properties)
	// System properties survive a clear.
	assert.Equal(t, "100", doc.System[attrs.SysQuota])
}

func TestContainerSetPropertiesRejectsReadOnlyKeys(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, err := c.ContainerCreate(ctx, testAccount, "movies", attrs.Update{})
	require.NoError(t, err)

	err = c.ContainerTouch(ctx, testAccount, "movies")
	require.NoError(t, err)

	// The proxy rejects unknown containers, not just unknown keys.
	err = c.ContainerSetProperties(ctx, testAccount, "missing", attrs.Update{Quota: attrs.Int(1)}, false)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestContainerDelete(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, err := c.ContainerCreate(ctx, testAccount, "movies", attrs.Update{})
	require.NoError(t, err)

	err = c.ContainerDelete(ctx, testAccount, "movies")
	require.NoError(t, err)

	_, err = c.ContainerGetProperties(ctx, testAccount, "movies")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))

	err = c.ContainerDelete(ctx, testAccount, "movies")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}
