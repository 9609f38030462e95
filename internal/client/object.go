package client

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// An ObjectEntry is one object of a container listing.
type ObjectEntry struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Hash  string `json:"hash"`
	Mtime string `json:"mtime"`
}

// ObjectList lists the objects of a container, in ascending name order.
func (c *Client) ObjectList(ctx context.Context, account, reference string) ([]ObjectEntry, error) {
	var out struct {
		Objects []ObjectEntry `json:"objects"`
	}
	err := c.do(ctx, http.MethodGet, c.nspath("/container/list"), refQuery(account, reference), nil, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list objects of container %q", reference)
	}
	return out.Objects, nil
}

// ObjectFetch streams the body of an object. The caller must close the
// returned reader.
func (c *Client) ObjectFetch(ctx context.Context, account, reference, path string) (io.ReadCloser, error) {
	q := refQuery(account, reference)
	q.Set("path", path)

	resp, err := c.request(ctx, http.MethodGet, c.nspath("/content/fetch"), q, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch object %q", path)
	}
	return resp.Body, nil
}

// ObjectCreate uploads an object body. The versioning policy of the
// container decides whether an existing object may be overwritten.
func (c *Client) ObjectCreate(ctx context.Context, account, reference, path string, body io.Reader) error {
	q := refQuery(account, reference)
	q.Set("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(c.nspath("/content/create"), q), body)
	if err != nil {
		return errors.Wrap(err, "could not create request")
	}
	req.Header.Set(HeaderRequestID, requestID())
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "could not upload object %q", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Wrapf(decodeRemoteError(resp), "could not upload object %q", path)
	}
	_, err = io.Copy(io.Discard, resp.Body)
	return errors.Wrap(err, "could not drain response")
}
