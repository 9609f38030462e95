package attrs_test

import (
	"sort"
	"testing"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	doc := attrs.Properties{
		System: map[string]string{
			"sys.account":   "AUTH_demo",
			"sys.name":      "B6A905",
			"sys.user.name": "movies",
			"sys.m2.ctime":  "0000001337.00000",
			"sys.m2.quota":  "100",
		},
		Properties: map[string]string{
			"zzz":   "last",
			"color": "orange",
		},
	}

	assert.Equal(t, []attrs.Pair{
		{Key: "account", Value: "AUTH_demo"},
		{Key: "base_name", Value: "B6A905"},
		{Key: "bytes_usage", Value: "0"},
		{Key: "container", Value: "movies"},
		{Key: "ctime", Value: "0000001337.00000"},
		{Key: "max_versions", Value: "Namespace default"},
		{Key: "meta.color", Value: "orange"},
		{Key: "meta.zzz", Value: "last"},
		{Key: "objects", Value: "0"},
		{Key: "quota", Value: "100"},
		{Key: "storage_policy", Value: "Namespace default"},
	}, attrs.Describe(doc))
}

func TestDescribeIdempotent(t *testing.T) {
	doc := attrs.Properties{
		System: map[string]string{
			"sys.account":           "AUTH_demo",
			"sys.name":              "B6A905",
			"sys.user.name":         "movies",
			"sys.m2.ctime":          "0000001337.00000",
			"sys.m2.usage":          "2048",
			"sys.m2.objects":        "2",
			"sys.m2.policy.storage": "SINGLE",
		},
		Properties: map[string]string{"a": "1"},
	}

	assert.Equal(t, attrs.Describe(doc), attrs.Describe(doc))
}

func TestDescribeSortsBytewise(t *testing.T) {
	doc := attrs.Properties{
		System:     map[string]string{},
		Properties: map[string]string{"zzz": "v", "Zeta": "v"},
	}

	pairs := attrs.Describe(doc)
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}

	assert.True(t, sort.StringsAreSorted(keys))
	// Byte order is case sensitive: "meta.Zeta" < "meta.zzz" < "quota".
	assert.Less(t, indexOf(keys, "meta.Zeta"), indexOf(keys, "meta.zzz"))
	assert.Less(t, indexOf(keys, "meta.zzz"), indexOf(keys, "quota"))
}

func indexOf(sl []string, s string) int {
	for i, v := range sl {
		if v == s {
			return i
		}
	}
	return -1
}
