package welstory

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the production Welstory service origin.
const DefaultBaseURL = "https://welplus.welstory.com"

// userAgent is the fixed product identifier the service expects on every
// request.
const userAgent = "Welplus"

// tokenRefreshMargin is subtracted from the token expiry when computing the
// refresh deadline returned by RefreshSession.
const tokenRefreshMargin = 30 * time.Second

// Client holds one session against the Welstory service: an immutable base
// URL and device id, plus the current bearer token. It is safe for
// concurrent use; if two concurrent calls both refresh the token, the last
// write wins.
type Client struct {
	baseURL   string
	deviceID  string
	transport Transport
	logger    Logger
	debug     *DebugConfig
	metrics   *MetricsCollector

	mu          sync.RWMutex
	accessToken string
}

// New constructs a Client using the provided functional options. Without
// options it targets the production service with a freshly generated device
// id and the process-wide default transport.
func New(options ...Option) *Client {
	client := &Client{
		baseURL: DefaultBaseURL,
		debug:   DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	if client.deviceID == "" {
		client.deviceID = GenerateDeviceID()
	}
	if client.transport == nil {
		client.transport = DefaultTransport()
	}

	return client
}

// BaseURL returns the configured service origin.
func (c *Client) BaseURL() string { return c.baseURL }

// DeviceID returns the per-instance device identifier.
func (c *Client) DeviceID() string { return c.deviceID }

// AccessToken returns the currently held bearer token, or "" before login.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) setAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// Request resolves endpoint against the base URL, decorates it with the
// fixed header set (product identifier, device id, Authorization once a
// token is held; caller headers win on conflict) and delegates to the
// transport.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (*Response, error) {
	if c.transport == nil {
		return nil, &ClientError{
			Type:    ErrorTypeUnavailable,
			Op:      "request",
			Message: "no transport strategy available",
			Cause:   ErrTransportUnavailable,
		}
	}

	headers := map[string]string{
		"User-Agent":  userAgent,
		"X-Device-Id": c.deviceID,
	}
	if token := c.AccessToken(); token != "" {
		headers["Authorization"] = token
	}
	for name, value := range opts.Headers {
		headers[name] = value
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	label := endpointLabel(endpoint)

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("sending request", "method", method, "endpoint", endpoint)
	}
	if c.metrics != nil {
		c.metrics.RecordRequestStart(method, label)
		defer c.metrics.RecordRequestEnd(method, label)
	}

	start := time.Now()
	resp, err := c.transport.Send(ctx, c.baseURL+endpoint, RequestOptions{
		Method:  method,
		Headers: headers,
		Body:    opts.Body,
	})
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeTransport, method, label)
		}
		if c.debug != nil && c.debug.Enabled && c.logger != nil {
			c.logger.Warn("request failed", "method", method, "endpoint", endpoint, "error", err.Error())
		}
		return nil, err
	}

	if c.metrics != nil {
		c.metrics.RecordRequest(method, label, resp.StatusCode, time.Since(start))
	}
	if c.debug != nil && c.debug.Enabled && c.debug.LogResponses && c.logger != nil {
		c.logger.Debug("received response", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
	}
	return resp, nil
}

// Login authenticates with a username and password. The server echoes the
// new bearer token in the response's Authorization header; the token is
// stored on the client and the parsed user-info body returned. Autologin is
// disabled and "remember me" is always false.
func (c *Client) Login(ctx context.Context, username, password string) (map[string]interface{}, error) {
	form := url.Values{
		"username":    {username},
		"password":    {password},
		"remember-me": {"false"},
	}

	resp, err := c.Request(ctx, EndpointLogin, RequestOptions{
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"X-Autologin":  "N",
		},
		Body: []byte(form.Encode()),
	})
	if err != nil {
		return nil, err
	}

	// The token header decides success, not the HTTP status.
	token := resp.Header("Authorization")
	if token == "" {
		return nil, &ClientError{
			Type:       ErrorTypeAuth,
			Op:         "login",
			Message:    "no Authorization header in login response",
			StatusCode: resp.StatusCode,
			Payload:    resp.Text(),
		}
	}
	c.setAccessToken(token)

	var userInfo map[string]interface{}
	if err := resp.JSON(&userInfo); err != nil {
		return nil, opError(err, "login")
	}
	if c.metrics != nil {
		c.metrics.RecordLogin()
	}
	return userInfo, nil
}

// RefreshSession obtains a fresh bearer token from the session endpoint,
// stores it, and returns how long the caller may wait before the next
// refresh: the time until 30 seconds before the token's expiry claim.
func (c *Client) RefreshSession(ctx context.Context) (time.Duration, error) {
	resp, err := c.Request(ctx, EndpointSession, RequestOptions{Method: http.MethodGet})
	if err != nil {
		return 0, err
	}
	if !resp.OK() {
		return 0, httpError("refresh-session", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return 0, opError(err, "refresh-session")
	}
	token, ok := payload["token"].(string)
	if !ok {
		return 0, &ClientError{
			Type:    ErrorTypeShape,
			Op:      "refresh-session",
			Message: "token field missing or not a string",
			Payload: resp.Text(),
		}
	}
	c.setAccessToken(token)
	if c.metrics != nil {
		c.metrics.RecordSessionRefresh()
	}

	expiry, err := decodeTokenExpiry(token)
	if err != nil {
		return 0, err
	}
	return time.Until(expiry.Add(-tokenRefreshMargin)), nil
}

// SearchRestaurant looks up restaurants by name and returns them in the
// service-defined result order. One invalid element fails the whole call;
// no partial list is returned.
func (c *Client) SearchRestaurant(ctx context.Context, query string) ([]*Restaurant, error) {
	resp, err := c.Request(ctx, EndpointSearchRestaurant(query), RequestOptions{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError("search-restaurant", resp)
	}

	var payload map[string]interface{}
	if err := resp.JSON(&payload); err != nil {
		return nil, opError(err, "search-restaurant")
	}
	data, ok := payload["data"].([]interface{})
	if !ok {
		return nil, &ClientError{
			Type:    ErrorTypeShape,
			Op:      "search-restaurant",
			Message: "data field missing or not an array",
			Payload: resp.Text(),
		}
	}

	restaurants := make([]*Restaurant, 0, len(data))
	for _, element := range data {
		restaurant, err := decodeRestaurant(c, element)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

// endpointLabel strips the query string so metrics labels stay low
// cardinality.
func endpointLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func httpError(op string, resp *Response) *ClientError {
	return &ClientError{
		Type:       ErrorTypeHTTP,
		Op:         op,
		Message:    "unexpected status " + resp.StatusText,
		StatusCode: resp.StatusCode,
		Payload:    resp.Text(),
	}
}

// opError stamps the logical operation onto a ClientError produced by a
// lower layer.
func opError(err error, op string) error {
	if clientErr, ok := err.(*ClientError); ok && clientErr.Op == "" {
		clientErr.Op = op
	}
	return err
}
