package attrs

import "sort"

// NamespaceDefault is displayed for a system property with no container
// level override.
const NamespaceDefault = "Namespace default"

// Properties is the get_properties document returned by the proxy.
type Properties struct {
	System     map[string]string `json:"system"`
	Properties map[string]string `json:"properties"`
}

// A Pair is one (field, value) line of a show-like output.
type Pair struct {
	Key   string
	Value string
}

// Describe flattens a get_properties document into the sorted field/value
// pairs of the show command. Quota, storage policy and versioning fall back
// to NamespaceDefault when unset; usage and object count fall back to "0".
// User properties are displayed under a meta. prefix.
func Describe(doc Properties) []Pair {
	info := map[string]string{
		"account":        doc.System[SysAccount],
		"base_name":      doc.System[SysBaseName],
		"container":      doc.System[SysUserName],
		"ctime":          doc.System[SysCtime],
		"bytes_usage":    orDefault(doc.System, SysUsage, "0"),
		"objects":        orDefault(doc.System, SysObjects, "0"),
		"quota":          orDefault(doc.System, SysQuota, NamespaceDefault),
		"storage_policy": orDefault(doc.System, SysPolicy, NamespaceDefault),
		"max_versions":   orDefault(doc.System, SysMaxVersions, NamespaceDefault),
	}
	for k, v := range doc.Properties {
		info["meta."+k] = v
	}
	return sortedPairs(info)
}

func orDefault(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// sortedPairs emits the map as pairs in byte-wise ascending key order.
func sortedPairs(info map[string]string) []Pair {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: info[k]})
	}
	return pairs
}
