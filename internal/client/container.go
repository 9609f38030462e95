package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/pkg/errors"
)

// Created is the per-container outcome of a create request.
type Created struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

// attributesPayload is the document attached to create and set_properties.
type attributesPayload struct {
	System     map[string]string `json:"system,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Flush      bool              `json:"flush,omitempty"`
}

func refQuery(account, reference string) url.Values {
	q := make(url.Values, 2)
	q.Set("acct", account)
	q.Set("ref", reference)
	return q
}

// ContainerCreate creates a container carrying the attributes of update.
func (c *Client) ContainerCreate(ctx context.Context, account, reference string, update attrs.Update) (bool, error) {
	payload := attributesPayload{
		System:     update.System(),
		Properties: update.Properties,
	}

	var out Created
	err := c.do(ctx, http.MethodPost, c.nspath("/container/create"), refQuery(account, reference), payload, &out)
	if err != nil {
		return false, errors.Wrapf(err, "could not create container %q", reference)
	}
	return out.Created, nil
}

// ContainerCreateMany creates several containers of one account in a single
// request. The outcome is reported per container.
func (c *Client) ContainerCreateMany(ctx context.Context, account string, references []string, update attrs.Update) ([]Created, error) {
	q := make(url.Values, 1)
	q.Set("acct", account)

	payload := struct {
		Containers []string          `json:"containers"`
		System     map[string]string `json:"system,omitempty"`
		Properties map[string]string `json:"properties,omitempty"`
	}{
		Containers: references,
		System:     update.System(),
		Properties: update.Properties,
	}

	var out struct {
		Containers []Created `json:"containers"`
	}
	err := c.do(ctx, http.MethodPost, c.nspath("/container/create_many"), q, payload, &out)
	if err != nil {
		return nil, errors.Wrap(err, "could not create containers")
	}
	return out.Containers, nil
}

// ContainerSetProperties applies update to an existing container. System
// fields marked reset travel as empty strings and clear the container-level
// override. With clear, all previous user properties are dropped first.
func (c *Client) ContainerSetProperties(ctx context.Context, account, reference string, update attrs.Update, clear bool) error {
	payload := attributesPayload{
		System:     update.System(),
		Properties: update.Properties,
		Flush:      clear,
	}

	err := c.do(ctx, http.MethodPost, c.nspath("/container/set_properties"), refQuery(account, reference), payload, nil)
	return errors.Wrapf(err, "could not set properties of container %q", reference)
}

// ContainerDelProperties deletes the listed user properties of a container.
func (c *Client) ContainerDelProperties(ctx context.Context, account, reference string, keys []string) error {
	err := c.do(ctx, http.MethodPost, c.nspath("/container/del_properties"), refQuery(account, reference), keys, nil)
	return errors.Wrapf(err, "could not delete properties of container %q", reference)
}

// ContainerGetProperties returns the system and user properties of a
// container.
func (c *Client) ContainerGetProperties(ctx context.Context, account, reference string) (attrs.Properties, error) {
	var doc attrs.Properties
	err := c.do(ctx, http.MethodGet, c.nspath("/container/get_properties"), refQuery(account, reference), nil, &doc)
	return doc, errors.Wrapf(err, "could not get properties of container %q", reference)
}

// ContainerTouch triggers the asynchronous treatments of a container.
func (c *Client) ContainerTouch(ctx context.Context, account, reference string) error {
	err := c.do(ctx, http.MethodPost, c.nspath("/container/touch"), refQuery(account, reference), nil, nil)
	return errors.Wrapf(err, "could not touch container %q", reference)
}

// ContainerDelete destroys a container. The proxy refuses to destroy a
// container still holding objects.
func (c *Client) ContainerDelete(ctx context.Context, account, reference string) error {
	err := c.do(ctx, http.MethodPost, c.nspath("/container/destroy"), refQuery(account, reference), nil, nil)
	return errors.Wrapf(err, "could not delete container %q", reference)
}
