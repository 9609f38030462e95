package model

import "path"

// A Container is one container of an account, with the usage counters
// maintained by the services.
type Container struct {
	Base `json:",inline" storm:"inline"`

	// Ref uniquely identifies the container within the namespace.
	Ref     string `json:"ref"     storm:"unique"`
	Account string `json:"account" storm:"index"`
	Name    string `json:"name"    storm:"index"`
	// Ctime is the canonical creation timestamp, e.g. "0000001337.00000".
	Ctime   string `json:"ctime"`
	Objects int64  `json:"objects"`
	Bytes   int64  `json:"bytes"`
}

// ContainerRef builds the unique reference of a container.
func ContainerRef(account, name string) string {
	return path.Join(account, name)
}
