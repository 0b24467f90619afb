// Package store is the data-access layer: one Store interface over a remote
// HTTP backend and a local key/value backend, chosen once at construction.
package store

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Mode names the active backend.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// Store is the four-operation interface both backends implement.
type Store interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, title string) (model.Todo, error)
	Toggle(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Options configure New. BaseURL decides the backend: non-empty means remote.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	KV         KV
	Logger     *log.Logger
	Now        func() time.Time
}

// Adapter dispatches to the backend picked in New.
type Adapter struct {
	Store

	backend Mode
	base    string
	client  *http.Client
	kv      KV
	logger  *log.Logger
}

// New builds an Adapter. The backend choice is fixed for the Adapter's lifetime.
func New(opts Options) *Adapter {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	a := &Adapter{
		base:   strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		client: client,
		kv:     opts.KV,
		logger: logger,
	}
	if a.base != "" {
		a.backend = ModeRemote
		a.Store = &Remote{base: a.base, client: client, logger: logger}
	} else {
		a.backend = ModeLocal
		a.Store = NewLocal(opts.KV, opts.Now, logger)
	}
	logger.Debug("storage ready", "backend", a.backend, "base", a.base)
	return a
}

// Backend reports the configured backend, independent of reachability.
func (a *Adapter) Backend() Mode { return a.backend }

// BaseURL is the configured remote base, empty in local mode.
func (a *Adapter) BaseURL() string { return a.base }

// DetectMode probes the remote health endpoint. It never fails: any problem
// reaching the service is reported as ModeLocal.
func (a *Adapter) DetectMode(ctx context.Context) Mode {
	if a.base == "" {
		return ModeLocal
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+"/api/health", nil)
	if err != nil {
		a.logger.Debug("health probe", "err", err)
		return ModeLocal
	}
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Debug("health probe", "err", err)
		return ModeLocal
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if !ok(resp.StatusCode) {
		a.logger.Debug("health probe", "status", resp.StatusCode)
		return ModeLocal
	}
	return ModeRemote
}

// Close releases the local key/value store, if it holds resources.
func (a *Adapter) Close() error {
	if c, isCloser := a.kv.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}

func ok(status int) bool { return status >= 200 && status < 300 }
