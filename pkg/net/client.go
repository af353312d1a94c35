package net

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 60
	clientAgent      = "gradepoint"
	tokenType        = "Bearer"
)

var (
	reqTransport = &http.Transport{
		MaxIdleConns:          maxIdleConns,
		IdleConnTimeout:       timeoutInSeconds * time.Second,
		DisableCompression:    true,
		DisableKeepAlives:     false,
		ResponseHeaderTimeout: time.Duration(timeoutInSeconds) * time.Second,
	}
)

// GetHTTPClient returns a client on the shared transport. When token is set,
// every request carries it as a bearer token.
func GetHTTPClient(ctx context.Context, token string) *http.Client {
	base := &http.Client{
		Timeout:   time.Duration(timeoutInSeconds) * time.Second,
		Transport: reqTransport,
	}
	if token == "" {
		return base
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{
			TokenType:   tokenType,
			AccessToken: token,
		},
	)
	tc := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	tc.Timeout = base.Timeout

	return tc
}
