package attrs

import "strings"

// A ServiceRecord is one service assignment of a directory listing.
type ServiceRecord struct {
	Seq  int    `json:"seq"`
	Type string `json:"type"`
	Host string `json:"host"`
}

// A DirectoryListing is the reference/show document of the directory
// service. Dir holds the directory tiers themselves (meta0, meta1), Srv the
// services linked to the reference (meta2).
type DirectoryListing struct {
	Dir []ServiceRecord `json:"dir"`
	Srv []ServiceRecord `json:"srv"`
}

// Locate merges the container identity with the hosts of the metadata tiers
// in charge of it. meta0 and meta1 are taken from the directory records only
// and meta2 from the service records only; any other type/source combination
// is ignored. Host order within a tier follows the directory answer.
func Locate(doc Properties, dir DirectoryListing) []Pair {
	var meta0, meta1, meta2 []string

	for _, r := range dir.Srv {
		if r.Type == "meta2" {
			meta2 = append(meta2, r.Host)
		}
	}
	for _, r := range dir.Dir {
		switch r.Type {
		case "meta0":
			meta0 = append(meta0, r.Host)
		case "meta1":
			meta1 = append(meta1, r.Host)
		}
	}

	return sortedPairs(map[string]string{
		"account":   doc.System[SysAccount],
		"base_name": doc.System[SysBaseName],
		"name":      doc.System[SysUserName],
		"meta0":     strings.Join(meta0, ", "),
		"meta1":     strings.Join(meta1, ", "),
		"meta2":     strings.Join(meta2, ", "),
	})
}
