package levelstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
)

// DefaultBaseURL is where the store listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:3000"

var (
	// ErrNotFound is returned when the server has no level with the given id.
	ErrNotFound = errors.New("levelstore: level not found")
	// ErrNoLevels is returned by LoadAll when the store is empty.
	ErrNoLevels = errors.New("levelstore: no levels available")
)

// Client talks to a level store server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned for unexpected responses.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("levelstore: server returned %d: %s", e.Status, e.Message)
}

func (c *Client) levelsURL(id string) string {
	u := c.BaseURL + BasePath + "/levels"
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// do sends the request and decodes a 2xx JSON body into out.
// It returns the response status.
func (c *Client) do(ctx context.Context, method, u string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("levelstore: cannot encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, fmt.Errorf("levelstore: cannot build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, fmt.Errorf("levelstore: %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		msg := http.StatusText(resp.StatusCode)
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			msg = e.Error
		}
		return resp.StatusCode, &StatusError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("levelstore: cannot decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// ListIDs returns every level id in creation order.
func (c *Client) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := c.do(ctx, http.MethodGet, c.levelsURL(""), nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Get fetches a single level.
func (c *Client) Get(ctx context.Context, id string) (level.Descriptor, error) {
	var d level.Descriptor
	if _, err := c.do(ctx, http.MethodGet, c.levelsURL(id), nil, &d); err != nil {
		return level.Descriptor{}, err
	}
	if d.ID == "" {
		d.ID = id
	}
	return d, nil
}

// Create stores d under a server-assigned id.
func (c *Client) Create(ctx context.Context, d level.Descriptor) (string, error) {
	var resp MessageResponse
	if _, err := c.do(ctx, http.MethodPost, c.levelsURL(""), payload(d), &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Update stores d under id and reports whether the level was created.
func (c *Client) Update(ctx context.Context, id string, d level.Descriptor) (bool, error) {
	status, err := c.do(ctx, http.MethodPut, c.levelsURL(id), payload(d), nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

// Delete removes a level.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.levelsURL(id), nil, nil)
	return err
}

// LoadAll fetches the id list and then every level in that order.
// Any failure aborts the whole load.
func (c *Client) LoadAll(ctx context.Context) ([]level.Descriptor, error) {
	ids, err := c.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoLevels
	}

	levels := make([]level.Descriptor, 0, len(ids))
	for _, id := range ids {
		d, err := c.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("levelstore: loading level %s: %w", id, err)
		}
		levels = append(levels, d)
	}
	return levels, nil
}

// Watch streams change events to fn until ctx is cancelled or the connection
// drops. It returns nil on cancellation.
func (c *Client) Watch(ctx context.Context, fn func(Event)) error {
	u, err := url.Parse(c.BaseURL + BasePath + "/events")
	if err != nil {
		return fmt.Errorf("levelstore: bad base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("levelstore: cannot open event feed: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var e Event
		if err := conn.ReadJSON(&e); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("levelstore: event feed: %w", err)
		}
		fn(e)
	}
}

// payload strips the id; the route carries it.
func payload(d level.Descriptor) level.Descriptor {
	d.ID = ""
	return d
}
