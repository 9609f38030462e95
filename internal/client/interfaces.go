package client

import (
	"context"
	"io"

	"github.com/brandontheis/oio-sds/internal/attrs"
)

type (
	// Storage is the container and object surface consumed by the
	// commands, backed by the meta2 services through the proxy.
	Storage interface {
		// ContainerCreate creates a container with its initial attributes
		// and reports whether it was actually created.
		ContainerCreate(ctx context.Context, account, reference string, update attrs.Update) (bool, error)
		// ContainerCreateMany creates several containers in one request.
		ContainerCreateMany(ctx context.Context, account string, references []string, update attrs.Update) ([]Created, error)
		// ContainerSetProperties applies the update to an existing
		// container. With clear, previous user properties are dropped first.
		ContainerSetProperties(ctx context.Context, account, reference string, update attrs.Update, clear bool) error
		// ContainerDelProperties deletes the listed user properties.
		ContainerDelProperties(ctx context.Context, account, reference string, keys []string) error
		// ContainerGetProperties returns the system and user properties.
		ContainerGetProperties(ctx context.Context, account, reference string) (attrs.Properties, error)
		// ContainerTouch triggers the asynchronous treatments of a container.
		ContainerTouch(ctx context.Context, account, reference string) error
		// ContainerDelete destroys an empty container.
		ContainerDelete(ctx context.Context, account, reference string) error
		// ContainerList fetches one page of the account container listing.
		ContainerList(ctx context.Context, account string, opts ListOptions) ([]ContainerEntry, error)
		// ObjectList lists the objects of a container.
		ObjectList(ctx context.Context, account, reference string) ([]ObjectEntry, error)
		// ObjectFetch streams the body of an object. The caller closes it.
		ObjectFetch(ctx context.Context, account, reference, path string) (io.ReadCloser, error)
	}

	// Directory is the service-resolution surface, backed by the meta0 and
	// meta1 tiers through the proxy.
	Directory interface {
		// List returns the directory and service records of a reference.
		List(ctx context.Context, account, reference string) (attrs.DirectoryListing, error)
	}
)
