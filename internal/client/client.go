// Package client implements the HTTP clients consuming the proxy of an
// OpenIO-SDS-like namespace: the storage surface (meta2) and the directory
// surface (meta0/meta1).
package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gofrs/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HeaderRequestID carries the request identifier, generated client-side and
// echoed back by the proxy.
const HeaderRequestID = "X-oio-req-id"

// A Config parametrizes a Client.
type Config struct {
	// Namespace is the name of the served namespace, e.g. "OPENIO".
	Namespace string
	// Proxy is the base URL of the proxy, e.g. "http://127.0.0.1:6006".
	Proxy string
	// Timeout bounds every request. Zero means no timeout.
	Timeout time.Duration
	// Logger is optional.
	Logger logger.Logger
}

// A Client talks to the proxy on behalf of one namespace. It implements
// both Storage and Directory.
type Client struct {
	http      *http.Client
	proxy     string
	namespace string
	log       logger.Logger
}

// New returns a Client for the given namespace.
func New(cfg Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		proxy:     cfg.Proxy,
		namespace: cfg.Namespace,
		log:       cfg.Logger,
	}
}

// url assembles a proxy URL from a versioned path and its query values.
func (c *Client) url(path string, query url.Values) string {
	u := c.proxy + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// nspath prefixes a route with the namespace API root.
func (c *Client) nspath(route string) string {
	return "/v3.0/" + c.namespace + route
}

// do performs one request against the proxy. A non-nil in is marshaled as
// the JSON body, a non-nil out receives the decoded JSON response. Non-2xx
// answers are returned as *RemoteError, untranslated.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	resp, err := c.request(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return errors.Wrap(err, "could not drain response")
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "could not decode response")
}

// request performs one request and checks the status. The caller owns the
// returned body.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, in interface{}) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrap(err, "could not encode request body")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not create request")
	}
	req.Header.Set(HeaderRequestID, requestID())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.log != nil {
		c.log.Debugf("%s %s", method, req.URL.Path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		return nil, decodeRemoteError(resp)
	}
	return resp, nil
}

func requestID() string {
	return uuid.Must(uuid.NewV4()).String()
}
