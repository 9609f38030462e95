package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// ListOptions filters one page of the account container listing. Zero
// values are simply not sent.
type ListOptions struct {
	Prefix    string
	Delimiter string
	Marker    string
	EndMarker string
	Limit     int64
}

func (o ListOptions) query(account string) url.Values {
	q := make(url.Values, 6)
	q.Set("id", account)
	if o.Prefix != "" {
		q.Set("prefix", o.Prefix)
	}
	if o.Delimiter != "" {
		q.Set("delimiter", o.Delimiter)
	}
	if o.Marker != "" {
		q.Set("marker", o.Marker)
	}
	if o.EndMarker != "" {
		q.Set("end_marker", o.EndMarker)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.FormatInt(o.Limit, 10))
	}
	return q
}

// A ContainerEntry is one row of the account container listing. The account
// service encodes it as a mixed-type JSON array: [name, objects, bytes].
type ContainerEntry struct {
	Name    string
	Objects int64
	Bytes   int64
}

// UnmarshalJSON decodes the positional array form.
func (e *ContainerEntry) UnmarshalJSON(data []byte) error {
	fields := []interface{}{&e.Name, &e.Objects, &e.Bytes}
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(err, "could not decode listing entry")
	}
	if len(fields) < 3 {
		return errors.Errorf("truncated listing entry, %d of 3 fields", len(fields))
	}
	return nil
}

// MarshalJSON encodes the positional array form.
func (e ContainerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Name, e.Objects, e.Bytes})
}

// ContainerList fetches one page of the containers of an account, in
// ascending name order.
func (c *Client) ContainerList(ctx context.Context, account string, opts ListOptions) ([]ContainerEntry, error) {
	var out struct {
		Listing []ContainerEntry `json:"listing"`
	}
	err := c.do(ctx, http.MethodGet, "/v1.0/account/containers", opts.query(account), nil, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list containers of account %q", account)
	}
	return out.Listing, nil
}
