package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restmapper/component"
)

// Reply is a scripted response.
type Reply struct {
	Status int
	Body   string
	// ContentType defaults to application/json.
	ContentType string
	// Delay holds the response back, for timeout tests.
	Delay time.Duration
}

// Recorded is a request received by a Backend.
type Recorded struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Backend is a scripted REST server. Routes are keyed "METHOD /path" on the
// unescaped path; unknown routes answer 404 with a JSON message.
type Backend struct {
	name string

	mu       sync.Mutex
	routes   map[string]Reply
	requests []Recorded
	server   *httptest.Server
}

var (
	_ TestComponent         = (*Backend)(nil)
	_ component.Describable = (*Backend)(nil)
)

// NewBackend creates a backend serving routes. It listens once started.
func NewBackend(name string, routes map[string]Reply) *Backend {
	b := &Backend{name: name, routes: make(map[string]Reply, len(routes))}
	for k, v := range routes {
		b.routes[k] = v
	}
	return b
}

// Handle sets the reply of method and path.
func (b *Backend) Handle(method, path string, r Reply) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = r
}

// Name returns the component name.
func (b *Backend) Name() string { return b.name }

// Start starts the HTTP server.
func (b *Backend) Start(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.server != nil {
		return nil
	}
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Any("/*path", b.serve)
	b.server = httptest.NewServer(engine)
	return nil
}

// Stop closes the HTTP server.
func (b *Backend) Stop(_ context.Context) error {
	b.mu.Lock()
	srv := b.server
	b.server = nil
	b.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Health reports healthy while the server listens.
func (b *Backend) Health(_ context.Context) component.Health {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.server == nil {
		return component.Health{Name: b.name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: b.name, Status: component.StatusHealthy}
}

// Describe returns the listen address.
func (b *Backend) Describe() component.Description {
	return component.Description{Name: b.name, Type: "rest-backend", Details: b.URL()}
}

// URL returns the server root URL, or "" before Start.
func (b *Backend) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.server == nil {
		return ""
	}
	return b.server.URL
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Recorded(nil), b.requests...)
}

// Count returns the number of requests received.
func (b *Backend) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// Last returns the most recent request.
func (b *Backend) Last() (Recorded, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Recorded{}, false
	}
	return b.requests[len(b.requests)-1], true
}

// Reset forgets the received requests. Routes are kept.
func (b *Backend) Reset(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
	return nil
}

// Snapshot captures the received requests.
func (b *Backend) Snapshot(_ context.Context) (any, error) {
	return b.Requests(), nil
}

// Restore replaces the received requests with a snapshot.
func (b *Backend) Restore(_ context.Context, snapshot any) error {
	reqs, ok := snapshot.([]Recorded)
	if !ok {
		return fmt.Errorf("backend %s: unexpected snapshot %T", b.name, snapshot)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append([]Recorded(nil), reqs...)
	return nil
}

func (b *Backend) serve(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	rec := Recorded{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
		Body:     body,
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	reply, ok := b.routes[rec.Method+" "+rec.Path]
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "no route " + rec.Method + " " + rec.Path})
		return
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}
	contentType := reply.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(reply.Status, contentType, []byte(reply.Body))
}
