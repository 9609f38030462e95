package model

// A Property is one property attached to a container. System properties
// live in the reserved sys.* namespace and are interpreted by the services;
// user properties are opaque.
type Property struct {
	Base `json:",inline" storm:"inline"`

	ContainerID string `json:"container_id" storm:"index"`
	Key         string `json:"key"          storm:"index"`
	Value       string `json:"value"`
	System      bool   `json:"system"`
}
