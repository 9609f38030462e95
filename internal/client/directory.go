package client

import (
	"context"
	"net/http"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/pkg/errors"
)

// List returns the directory records (meta0, meta1) and the linked service
// records (meta2) of a reference.
func (c *Client) List(ctx context.Context, account, reference string) (attrs.DirectoryListing, error) {
	var doc attrs.DirectoryListing
	err := c.do(ctx, http.MethodGet, c.nspath("/reference/show"), refQuery(account, reference), nil, &doc)
	return doc, errors.Wrapf(err, "could not resolve reference %q", reference)
}
