package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/wepoYJ/wepo-server/internal/middleware/gatewayauth"
)

// HTTPHelper provides a robust way to make HTTP requests in tests.
// It enforces error checking and provides a fluent API for building requests.
type HTTPHelper struct {
	t   *testing.T
	app *fiber.App
}

// NewHTTPHelper creates a new test helper for a given Fiber app.
func NewHTTPHelper(t *testing.T, app *fiber.App) *HTTPHelper {
	require.NotNil(t, app, "Fiber app provided to HTTPHelper cannot be nil")
	return &HTTPHelper{
		t:   t,
		app: app,
	}
}

// Request represents a test request under construction.
type Request struct {
	helper  *HTTPHelper
	method  string
	path    string
	body    []byte
	headers http.Header
}

// Get starts building a GET request.
func (h *HTTPHelper) Get(path string) *Request {
	return h.newRequest(http.MethodGet, path)
}

// Post starts building a POST request.
func (h *HTTPHelper) Post(path string) *Request {
	return h.newRequest(http.MethodPost, path)
}

// Delete starts building a DELETE request.
func (h *HTTPHelper) Delete(path string) *Request {
	return h.newRequest(http.MethodDelete, path)
}

func (h *HTTPHelper) newRequest(method, path string) *Request {
	return &Request{
		helper:  h,
		method:  method,
		path:    path,
		headers: http.Header{},
	}
}

// WithJSON sets the request body to the JSON encoding of v.
func (r *Request) WithJSON(v interface{}) *Request {
	r.helper.t.Helper()
	data, err := json.Marshal(v)
	require.NoError(r.helper.t, err, "failed to marshal request body")
	r.body = data
	r.headers.Set("Content-Type", "application/json")
	return r
}

// WithUser attaches the gateway identity headers the service trusts in
// production. Requests without it behave as anonymous traffic.
func (r *Request) WithUser(userID int64, username string) *Request {
	r.headers.Set(gatewayauth.HeaderUserID, strconv.FormatInt(userID, 10))
	r.headers.Set(gatewayauth.HeaderUsername, username)
	return r
}

// WithHeader sets an arbitrary request header.
func (r *Request) WithHeader(key, value string) *Request {
	r.headers.Set(key, value)
	return r
}

// Send executes the request against the app and returns the response.
// It fails the test if the request itself cannot be performed.
func (r *Request) Send() *Response {
	r.helper.t.Helper()

	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}
	req := httptest.NewRequest(r.method, r.path, bodyReader)
	for key, values := range r.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := r.helper.app.Test(req, -1)
	require.NoError(r.helper.t, err, "request %s %s failed", r.method, r.path)

	data, err := io.ReadAll(resp.Body)
	require.NoError(r.helper.t, err, "failed to read response body")
	resp.Body.Close()

	return &Response{
		t:      r.helper.t,
		Status: resp.StatusCode,
		Body:   data,
	}
}

// Response is a fully-read test response.
type Response struct {
	t      *testing.T
	Status int
	Body   []byte
}

// RequireStatus asserts the response status code.
func (r *Response) RequireStatus(expected int) *Response {
	r.t.Helper()
	require.Equal(r.t, expected, r.Status, "unexpected status, body: %s", r.Body)
	return r
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v interface{}) *Response {
	r.t.Helper()
	require.NoError(r.t, json.Unmarshal(r.Body, v), "failed to decode response body: %s", r.Body)
	return r
}
