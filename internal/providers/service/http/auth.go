package http

import (
	"net/http"
	"strings"

	"github.com/newmesstuff/go-polarion/config"
)

type authMode int

const (
	authModeNone authMode = iota
	authModeBasic
	authModeBearer
	authModeCustomHeader
)

type authConfig struct {
	mode         authMode
	basicAuth    config.BasicAuth
	bearerToken  config.BearerTokenAuth
	customHeader config.HeaderTokenAuth
}

func buildAuthConfig(cfg *config.Auth) (authConfig, error) {
	if cfg == nil {
		return authConfig{mode: authModeNone}, nil
	}

	setCount := 0
	if cfg.BasicAuth != nil {
		setCount++
	}
	if cfg.BearerToken != nil {
		setCount++
	}
	if cfg.CustomHeader != nil {
		setCount++
	}
	if setCount != 1 {
		return authConfig{}, validationError("server.auth must define exactly one auth mode", nil)
	}

	switch {
	case cfg.BasicAuth != nil:
		basic := *cfg.BasicAuth
		if strings.TrimSpace(basic.Username) == "" {
			return authConfig{}, validationError("server.auth.basic-auth.username is required", nil)
		}
		return authConfig{mode: authModeBasic, basicAuth: basic}, nil
	case cfg.BearerToken != nil:
		bearer := *cfg.BearerToken
		if strings.TrimSpace(bearer.Token) == "" {
			return authConfig{}, validationError("server.auth.bearer-token.token is required", nil)
		}
		return authConfig{mode: authModeBearer, bearerToken: bearer}, nil
	default:
		header := *cfg.CustomHeader
		if strings.TrimSpace(header.Header) == "" || strings.TrimSpace(header.Token) == "" {
			return authConfig{}, validationError("server.auth.custom-header requires header and token", nil)
		}
		return authConfig{mode: authModeCustomHeader, customHeader: header}, nil
	}
}

func (g *PolarionGateway) applyAuth(request *http.Request) {
	switch g.auth.mode {
	case authModeBasic:
		request.SetBasicAuth(g.auth.basicAuth.Username, g.auth.basicAuth.Password)
	case authModeBearer:
		request.Header.Set("Authorization", "Bearer "+g.auth.bearerToken.Token)
	case authModeCustomHeader:
		request.Header.Set(g.auth.customHeader.Header, g.auth.customHeader.Token)
	}
}
