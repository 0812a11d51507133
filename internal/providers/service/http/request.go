package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/newmesstuff/go-polarion/debugctx"
	"github.com/newmesstuff/go-polarion/snapshot"
)

const (
	maxJSONResponseBytes   = 1 << 20
	maxBinaryResponseBytes = 1 << 26
)

type requestSpec struct {
	method string
	path   string
	rawURL string
	query  map[string]string
	body   any
	limit  int64
}

func (g *PolarionGateway) execute(ctx context.Context, spec requestSpec) ([]byte, error) {
	request, err := g.newRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	request.Header.Set("X-Request-Id", requestID)
	debugctx.Printf(ctx, "polarion request id=%s %s %s", requestID, request.Method, request.URL)

	response, err := g.client.Do(request)
	if err != nil {
		return nil, transportError("remote request failed", err)
	}
	defer response.Body.Close()

	limit := spec.limit
	if limit == 0 {
		limit = maxJSONResponseBytes
	}
	body, err := io.ReadAll(io.LimitReader(response.Body, limit))
	if err != nil {
		return nil, transportError("failed to read remote response body", err)
	}

	debugctx.Printf(ctx, "polarion response id=%s status=%d bytes=%d", requestID, response.StatusCode, len(body))
	if response.StatusCode >= http.StatusBadRequest {
		return nil, classifyStatusError(response.StatusCode, body)
	}
	return body, nil
}

func (g *PolarionGateway) newRequest(ctx context.Context, spec requestSpec) (*http.Request, error) {
	targetURL, err := g.resolveRequestURL(spec)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	hasBody := spec.body != nil
	if hasBody {
		encoded, err := json.Marshal(spec.body)
		if err != nil {
			return nil, validationError("failed to encode JSON request body", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, spec.method, targetURL, bodyReader)
	if err != nil {
		return nil, internalError("failed to create remote request", err)
	}

	request.Header.Set("Accept", defaultMediaType)
	if hasBody {
		request.Header.Set("Content-Type", defaultMediaType)
	}

	if len(g.defaultHeaders) > 0 {
		keys := make([]string, 0, len(g.defaultHeaders))
		for key := range g.defaultHeaders {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			request.Header.Set(key, g.defaultHeaders[key])
		}
	}

	g.applyAuth(request)
	return request, nil
}

func (g *PolarionGateway) resolveRequestURL(spec requestSpec) (string, error) {
	if spec.rawURL != "" {
		if parsed, err := url.Parse(spec.rawURL); err == nil && parsed.Scheme != "" {
			return spec.rawURL, nil
		}
		target := *g.baseURL
		target.Path = joinBaseAndRequestPath(g.baseURL.Path, spec.rawURL)
		return target.String(), nil
	}

	if parsed, err := url.Parse(spec.path); err == nil && parsed.Scheme != "" {
		return "", validationError("operation path must be relative to server.base-url", nil)
	}

	target := *g.baseURL
	target.Path = joinBaseAndRequestPath(g.baseURL.Path, spec.path)

	values := target.Query()
	if len(spec.query) > 0 {
		keys := make([]string, 0, len(spec.query))
		for key := range spec.query {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			values.Set(key, spec.query[key])
		}
	}
	target.RawQuery = values.Encode()

	return target.String(), nil
}

func joinBaseAndRequestPath(basePath, requestPath string) string {
	base := strings.TrimSuffix(basePath, "/")
	request := strings.TrimPrefix(requestPath, "/")
	if request == "" {
		return base + "/"
	}
	return base + "/" + request
}

func decodeSnapshotResponse(body []byte) (snapshot.Snapshot, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return snapshot.Snapshot{}, nil
	}
	snap, err := snapshot.FromJSON(body)
	if err != nil {
		return snapshot.Snapshot{}, validationError("response body is not valid JSON", err)
	}
	return snap, nil
}

func decodeValueResponse(body []byte) (snapshot.Value, error) {
	snap, err := decodeSnapshotResponse(body)
	if err != nil {
		return nil, err
	}
	return snap.V, nil
}

func classifyStatusError(statusCode int, body []byte) error {
	message := fmt.Sprintf("remote request failed with status %d: %s", statusCode, summarizeBody(body))

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return authError(message, nil)
	case http.StatusNotFound:
		return notFoundError(message, nil)
	}

	if statusCode >= 400 && statusCode < 500 {
		return validationError(message, nil)
	}
	return transportError(message, nil)
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty body>"
	}
	const maxSummary = 240
	if len(trimmed) > maxSummary {
		return trimmed[:maxSummary] + "..."
	}
	return trimmed
}
