package render_test

import (
	"bytes"
	"testing"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer

	table := render.NewTable(&buf, "Name", "Created")
	table.Row("movies", "true")
	table.Row("a-much-longer-name", "false")
	require.NoError(t, table.Flush())

	assert.Equal(t, ""+
		"Name                Created\n"+
		"movies              true\n"+
		"a-much-longer-name  false\n",
		buf.String())
}

func TestPairs(t *testing.T) {
	var buf bytes.Buffer

	err := render.Pairs(&buf, []attrs.Pair{
		{Key: "account", Value: "AUTH_demo"},
		{Key: "quota", Value: "100"},
	})
	require.NoError(t, err)

	assert.Equal(t, ""+
		"Field    Value\n"+
		"account  AUTH_demo\n"+
		"quota    100\n",
		buf.String())
}
