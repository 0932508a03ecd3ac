// Package client implements the hub client: a schema-driven request
// dispatcher and the domain operations built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/b-it-bots/datahub/internal/catalog"
	"github.com/b-it-bots/datahub/internal/config"
)

// DefaultTimeout bounds every dispatch round trip. The legacy client had
// no timeout and could block forever on a dead hub.
const DefaultTimeout = 10 * time.Second

// Dispatcher turns a declared request-type name plus arguments into a
// validated HTTP call. It is stateless between calls and safe for
// concurrent use.
type Dispatcher struct {
	catalog    *catalog.Catalog
	baseURL    string
	auth       *config.AuthInfo
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDispatcher builds a dispatcher from a loaded catalog and connection
// profile. Credentials are attached only when the profile requires auth.
func NewDispatcher(cat *catalog.Catalog, profile *config.Profile, logger *zap.Logger) *Dispatcher {
	var auth *config.AuthInfo
	if profile.AuthRequired {
		auth = profile.AuthInfo
	}
	return &Dispatcher{
		catalog:    cat,
		baseURL:    profile.BaseURL,
		auth:       auth,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
}

// Catalog returns the catalog the dispatcher resolves request names
// against.
func (d *Dispatcher) Catalog() *catalog.Catalog {
	return d.catalog
}

// Dispatch resolves a request type, validates the arguments against its
// schema, performs the HTTP call and classifies the outcome. id may be
// empty for request types that do not require one. The returned payload is
// the decoded body for a 200 response and nil for the 201-210
// informational range.
func (d *Dispatcher) Dispatch(ctx context.Context, name, team string, args map[string]any, id string) (json.RawMessage, error) {
	rt, ok := d.catalog.Describe(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequestType, name)
	}

	url := d.baseURL + team + "/" + rt.URLPath
	if rt.IDRequired {
		if id == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingResourceID, name)
		}
		url += "/" + id
	}

	var body io.Reader
	if rt.Mutating() {
		// Required-subset check: every schema key must be present, extra
		// keys pass through unchanged.
		for _, key := range rt.SchemaKeys {
			if _, present := args[key]; !present {
				return nil, &SchemaViolationError{RequestName: name, Field: key}
			}
		}
		payload, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encoding arguments for %s: %w", name, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rt.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", name, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if d.auth != nil {
		req.SetBasicAuth(d.auth.User, d.auth.Pass)
	}

	d.logger.Debug("dispatching request",
		zap.String("request", name),
		zap.String("method", rt.Method),
		zap.String("url", url),
	)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if !json.Valid(respBody) {
			return nil, &TransportError{Err: fmt.Errorf("malformed response body for %s", name)}
		}
		return json.RawMessage(respBody), nil
	case resp.StatusCode > 210:
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: string(respBody)}
	default:
		// 201-210: the hub acknowledged without a success payload.
		d.logger.Debug("request acknowledged",
			zap.String("request", name),
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil
	}
}
