package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DefaultMarker is the literal delimiter the remote model emits in its own
// generation transcript before the final answer segment.
const DefaultMarker = "### Respuesta:"

//go:generate mockgen -source=client.go -destination=mock_transport.go -package=inference Transport

// Transport performs the single HTTP exchange with the inference service.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// State is the single-slot view state published by the client. Exactly one
// state holds at a time; the presentation layer reads it via Snapshot.
type State int

const (
	StateIdle State = iota
	StatePending
	StateHasResult
	StateHasError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateHasResult:
		return "result"
	case StateHasError:
		return "error"
	}
	return "unknown"
}

// QueryResult holds the service's reply for one submission.
type QueryResult struct {
	// RawText is the full text payload returned by the service, including the
	// model's own transcript up to and around the marker.
	RawText string
	// ExtractedAnswer is the segment after the last marker occurrence, trimmed.
	// When the marker is absent it equals RawText exactly.
	ExtractedAnswer string
}

// Snapshot is a point-in-time copy of the client's view state.
type Snapshot struct {
	State  State
	Result *QueryResult
	Err    error
}

// Client mediates one request/response cycle at a time between an operator and
// the remote inference service. All failures come back as typed values; nothing
// is retried and nothing is fatal to the process.
type Client struct {
	endpoint  string
	marker    string
	transport Transport

	mu     sync.Mutex
	seq    uint64
	state  State
	result *QueryResult
	err    error
}

// NewClient creates a client for the given endpoint. An empty marker selects
// DefaultMarker; a nil transport selects http.DefaultClient.
func NewClient(endpoint, marker string, transport Transport) *Client {
	if marker == "" {
		marker = DefaultMarker
	}
	if transport == nil {
		transport = http.DefaultClient
	}
	return &Client{
		endpoint:  endpoint,
		marker:    marker,
		transport: transport,
	}
}

type queryBody struct {
	Question string `json:"question"`
	Profile  string `json:"profile"`
}

// Submit validates the inputs, performs exactly one POST to the inference
// service, and returns the parsed result. On a missing input it returns a
// ValidationError without touching the network; on a failed exchange it
// returns a TransportError. The outcome is also published to the view state,
// unless a newer Submit or Reset happened while the call was in flight.
func (c *Client) Submit(ctx context.Context, question string, profile Profile) (*QueryResult, error) {
	if err := validate(question, profile); err != nil {
		c.mu.Lock()
		c.seq++
		c.state = StateHasError
		c.result = nil
		c.err = err
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = StatePending
	c.result = nil
	c.err = nil
	c.mu.Unlock()

	result, err := c.exchange(ctx, question, profile)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		// Superseded while in flight: the outcome targets a query that no
		// longer exists, so it must not overwrite the newer state.
		return result, err
	}
	if err != nil {
		c.state = StateHasError
		c.err = err
		return nil, err
	}
	c.state = StateHasResult
	c.result = result
	return result, nil
}

// Reset clears any held query state, returning the client to Idle. It is
// idempotent and never fails. An in-flight exchange is not aborted, but its
// outcome is discarded when it completes.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = StateIdle
	c.result = nil
	c.err = nil
}

// Snapshot returns the current view state for the presentation layer.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Result: c.result, Err: c.err}
}

func validate(question string, profile Profile) error {
	if strings.TrimSpace(question) == "" {
		return &ValidationError{Field: "question"}
	}
	if !profile.Valid() {
		return &ValidationError{Field: "profile"}
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, question string, profile Profile) (*QueryResult, error) {
	body, err := json.Marshal(queryBody{Question: question, Profile: string(profile)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, &TransportError{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &QueryResult{
		RawText:         payload.Response,
		ExtractedAnswer: ExtractAnswer(payload.Response, c.marker),
	}, nil
}

// ExtractAnswer returns the text after the last occurrence of marker in raw,
// trimmed of surrounding whitespace. When the marker is absent, raw passes
// through unmodified with no trim applied.
func ExtractAnswer(raw, marker string) string {
	i := strings.LastIndex(raw, marker)
	if i < 0 {
		return raw
	}
	return strings.TrimSpace(raw[i+len(marker):])
}
