package model

// An Object represents the metadata of a blob stored in a container.
type Object struct {
	Base `json:",inline" storm:"inline"`

	ContainerID string `json:"container_id" storm:"index"`
	Name        string `json:"name"         storm:"index"`
	Size        int64  `json:"size"`
	Hash        string `json:"hash"`
	// Mtime is the canonical modification timestamp.
	Mtime string `json:"mtime"`
}
