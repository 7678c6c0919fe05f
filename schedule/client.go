// Package schedule fetches a marathon schedule from the remote API and turns it
// into the speedrun list the widget displays.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gdqwidget/logger"
	"gdqwidget/model"

	"github.com/dustin/go-humanize"
)

// ErrInvalidDocument is returned when the response body is not a schedule document.
var ErrInvalidDocument = errors.New("invalid schedule document")

// StatusError reports a non-2xx response from the schedule API.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("schedule request to %s failed with status code %d", e.URL, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient returns a client for the API rooted at baseURL. A nil httpClient
// means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

func (c *Client) ScheduleURL(eventID string) string {
	return c.baseURL + "/api/schedule/" + url.PathEscape(eventID)
}

// Load performs a single GET for the event's schedule. There is no retry; any
// transport, status or parse failure is returned to the caller.
func (c *Client) Load(ctx context.Context, eventID string) (*Document, error) {
	scheduleURL := c.ScheduleURL(eventID)
	c.log.Info("Fetching schedule for event %s...", eventID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheduleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: scheduleURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule response body: %w", err)
	}

	doc, err := NewDocument(body)
	if err != nil {
		return nil, err
	}
	c.log.Info("Fetched schedule for event %s (%s)", eventID, humanize.Bytes(uint64(len(body))))
	return doc, nil
}

// LoadMarathon loads the event and filters it down to its speedruns.
func (c *Client) LoadMarathon(ctx context.Context, eventID string) (model.Marathon, error) {
	doc, err := c.Load(ctx, eventID)
	if err != nil {
		return model.Marathon{}, err
	}
	return Filter(doc)
}
