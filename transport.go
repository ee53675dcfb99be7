package welstory

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RequestOptions carries the per-request parameters handed to a Transport.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// Transport issues a single HTTP exchange and normalizes the result into a
// *Response regardless of the underlying primitive.
type Transport interface {
	Send(ctx context.Context, rawURL string, opts RequestOptions) (*Response, error)
}

// Response is the uniform response shape produced by every Transport. The
// body is buffered; JSON and Text parse it on access.
type Response struct {
	StatusCode int
	StatusText string

	headers map[string]string
	body    []byte
}

func newResponse(statusCode int, statusText string, header http.Header, body []byte) *Response {
	headers := make(map[string]string, len(header))
	for name, values := range header {
		if len(values) == 0 {
			continue
		}
		headers[strings.ToLower(name)] = values[0]
	}
	return &Response{
		StatusCode: statusCode,
		StatusText: statusText,
		headers:    headers,
		body:       body,
	}
}

// OK reports whether the status code is in [200, 300).
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Header returns the first value of the named header, matched
// case-insensitively, or "" when absent.
func (r *Response) Header(name string) string {
	return r.headers[strings.ToLower(name)]
}

// Text returns the raw response body.
func (r *Response) Text() string {
	return string(r.body)
}

// JSON unmarshals the body into v, failing with a Parse error when the body
// is not valid JSON.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return &ClientError{
			Type:    ErrorTypeParse,
			Message: "response body is not valid JSON",
			Payload: r.Text(),
			Cause:   err,
		}
	}
	return nil
}

// transportFactory probes one networking primitive and returns a Transport
// over it when the primitive is usable in this process.
type transportFactory func() (Transport, bool)

// transportChain is the prioritized fallback chain; the first usable
// primitive wins for the lifetime of the process.
var transportChain = []transportFactory{
	func() (Transport, bool) {
		if http.DefaultTransport == nil {
			return nil, false
		}
		return NewHTTPTransport(nil), true
	},
	func() (Transport, bool) { return NewSocketTransport(), true },
}

var (
	defaultTransportOnce sync.Once
	defaultTransport     Transport
)

// DefaultTransport resolves the fallback chain once per process and returns
// the selected Transport, or nil when no primitive is usable. Inject a
// Transport via WithTransport to bypass the chain entirely.
func DefaultTransport() Transport {
	defaultTransportOnce.Do(func() {
		for _, factory := range transportChain {
			if transport, ok := factory(); ok {
				defaultTransport = transport
				return
			}
		}
	})
	return defaultTransport
}

// HTTPTransport serves requests through a *http.Client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates an HTTPTransport. A nil client selects a default
// one with no client-side timeout; timeouts are the caller's responsibility
// via the request context.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{client: client}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, rawURL string, opts RequestOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if len(opts.Body) > 0 {
		bodyReader = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "building request failed",
			Cause:   err,
		}
	}
	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "request failed",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "reading response body failed",
			Cause:   err,
		}
	}

	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	return newResponse(resp.StatusCode, statusText, resp.Header, body), nil
}

// SocketTransport is the last-resort strategy: it speaks HTTP/1.1 directly
// over a TCP (or TLS) connection and accumulates the streamed body until the
// peer closes the stream.
type SocketTransport struct {
	dialer    *net.Dialer
	tlsDialer *tls.Dialer
}

// NewSocketTransport creates a SocketTransport.
func NewSocketTransport() *SocketTransport {
	dialer := &net.Dialer{Timeout: 30 * time.Second}
	return &SocketTransport{
		dialer:    dialer,
		tlsDialer: &tls.Dialer{NetDialer: dialer},
	}
}

// Send implements Transport.
func (t *SocketTransport) Send(ctx context.Context, rawURL string, opts RequestOptions) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	conn, err := t.dial(ctx, u)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "connection failed",
			Cause:   err,
		}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := writeRequest(conn, u, opts); err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "writing request failed",
			Cause:   err,
		}
	}

	resp, err := readResponse(conn)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeTransport,
			Message: "reading response failed",
			Cause:   err,
		}
	}
	return resp, nil
}

func (t *SocketTransport) dial(ctx context.Context, u *url.URL) (net.Conn, error) {
	switch u.Scheme {
	case "http":
		return t.dialer.DialContext(ctx, "tcp", hostPort(u, "80"))
	case "https":
		return t.tlsDialer.DialContext(ctx, "tcp", hostPort(u, "443"))
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func hostPort(u *url.URL, defaultPort string) string {
	if u.Port() != "" {
		return u.Host
	}
	return net.JoinHostPort(u.Hostname(), defaultPort)
}

func writeRequest(conn net.Conn, u *url.URL, opts RequestOptions) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	path := u.RequestURI()
	if path == "" {
		path = "/"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", method, path)
	fmt.Fprintf(&b, "Host: %s\r\n", u.Host)
	b.WriteString("Connection: close\r\n")
	for name, value := range opts.Headers {
		fmt.Fprintf(&b, "%s: %s\r\n", name, value)
	}
	if len(opts.Body) > 0 {
		fmt.Fprintf(&b, "Content-Length: %d\r\n", len(opts.Body))
	}
	b.WriteString("\r\n")

	if _, err := io.WriteString(conn, b.String()); err != nil {
		return err
	}
	if len(opts.Body) > 0 {
		if _, err := conn.Write(opts.Body); err != nil {
			return err
		}
	}
	return nil
}

func readResponse(conn net.Conn) (*Response, error) {
	reader := bufio.NewReader(conn)

	statusLine, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	statusCode, statusText, err := parseStatusLine(statusLine)
	if err != nil {
		return nil, err
	}

	mimeHeader, err := textproto.NewReader(reader).ReadMIMEHeader()
	if err != nil {
		return nil, err
	}
	header := http.Header(mimeHeader)

	// Chunks are accumulated until the stream ends; we always send
	// Connection: close so EOF delimits the body unless the server
	// announced a length or chunked encoding.
	var bodyReader io.Reader = reader
	if strings.EqualFold(header.Get("Transfer-Encoding"), "chunked") {
		bodyReader = httputil.NewChunkedReader(reader)
	} else if cl := header.Get("Content-Length"); cl != "" {
		n, err := strconv.ParseInt(cl, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Content-Length %q", cl)
		}
		bodyReader = io.LimitReader(reader, n)
	}
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, err
	}

	return newResponse(statusCode, statusText, header, body), nil
}

func parseStatusLine(line string) (int, string, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return 0, "", fmt.Errorf("malformed status line %q", line)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", fmt.Errorf("malformed status code in %q", line)
	}
	statusText := http.StatusText(code)
	if len(parts) == 3 {
		statusText = parts[2]
	}
	return code, statusText, nil
}
