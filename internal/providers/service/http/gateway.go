package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/newmesstuff/go-polarion/config"
	"github.com/newmesstuff/go-polarion/internal/providers/shared/tlsconfig"
	"github.com/newmesstuff/go-polarion/service"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMediaType   = "application/json"

	// Polarion-style servers wrap the parameter name list in an envelope;
	// the expression is configurable for servers that answer differently.
	defaultParameterNamesJQ = ".parameterNames"
)

var _ service.TestManagement = (*PolarionGateway)(nil)

// PolarionGateway implements the test-management collaborator against an
// HTTP test-management API.
type PolarionGateway struct {
	baseURL          *url.URL
	defaultHeaders   map[string]string
	auth             authConfig
	client           *http.Client
	parameterNamesJQ string
}

type GatewayOption func(*PolarionGateway)

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *PolarionGateway) {
		if g == nil || client == nil {
			return
		}
		g.client = client
	}
}

func WithParameterNamesJQ(expression string) GatewayOption {
	return func(g *PolarionGateway) {
		if g == nil {
			return
		}
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			g.parameterNamesJQ = trimmed
		}
	}
}

func NewPolarionGateway(cfg config.Server, opts ...GatewayOption) (*PolarionGateway, error) {
	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	auth, err := buildAuthConfig(cfg.Auth)
	if err != nil {
		return nil, err
	}

	tlsConfig, err := tlsconfig.Build(cfg.TLS)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	gateway := &PolarionGateway{
		baseURL:        baseURL,
		defaultHeaders: cloneStringMap(cfg.DefaultHeaders),
		auth:           auth,
		client: &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		},
		parameterNamesJQ: defaultParameterNamesJQ,
	}
	if expr := strings.TrimSpace(cfg.ParameterNamesJQ); expr != "" {
		gateway.parameterNamesJQ = expr
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(gateway)
	}
	return gateway, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, validationError("server.base-url is required", nil)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, validationError("server.base-url is invalid", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, validationError("server.base-url must use http or https", nil)
	}
	if parsed.Host == "" {
		return nil, validationError("server.base-url must carry a host", nil)
	}
	return parsed, nil
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
