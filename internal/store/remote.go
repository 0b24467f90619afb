package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Remote talks to the todo HTTP API under base. No retries.
type Remote struct {
	base   string
	client *http.Client
	logger *log.Logger
}

type updateBody struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func (r *Remote) List(ctx context.Context) ([]model.Todo, error) {
	var items []model.Todo
	if err := r.do(ctx, ErrRetrieval, http.MethodGet, "/api/todos", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Todo{}
	}
	return items, nil
}

func (r *Remote) Create(ctx context.Context, title string) (model.Todo, error) {
	var created model.Todo
	in := model.Todo{Title: title, Done: false}
	if err := r.do(ctx, ErrCreation, http.MethodPost, "/api/todos", in, &created); err != nil {
		return model.Todo{}, err
	}
	return created, nil
}

func (r *Remote) Toggle(ctx context.Context, t model.Todo) (model.Todo, error) {
	updated := t.Toggled()
	var out model.Todo
	path := fmt.Sprintf("/api/todos/%d", t.ID)
	if err := r.do(ctx, ErrUpdate, http.MethodPut, path, updateBody{Title: updated.Title, Done: updated.Done}, &out); err != nil {
		return model.Todo{}, err
	}
	return out, nil
}

func (r *Remote) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, ErrDeletion, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, nil)
}

// do sends one request. Any failure comes back as a *RemoteError of kind.
// out, when non-nil, receives the decoded 2xx body.
func (r *Remote) do(ctx context.Context, kind error, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Kind: kind, Err: fmt.Errorf("json marshal: %w", err)}
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.base+path, body)
	if err != nil {
		return &RemoteError{Kind: kind, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return &RemoteError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()
	r.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	if !ok(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RemoteError{Kind: kind, StatusCode: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Kind: kind, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
