// cmd/ping/main.go
//
// Intended for Docker HEALTHCHECK:
//   HEALTHCHECK CMD ["/ping"]

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"pastel-notes/internal/config"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------
const (
	healthEndpoint       = "/healthz"
	expectedHealthStatus = "ok"
	requestTimeout       = 1 * time.Second

	// exit codes
	codeConfig            = 1
	codeRequestFailed     = 2
	codeBadHTTPStatus     = 3
	codeDecodeError       = 4
	codeReportedUnhealthy = 5

	msgConfig            = "config: %v"
	msgRequestFailed     = "request failed: %v"
	msgBadHTTPStatus     = "unexpected HTTP status %d: %s"
	msgDecodeError       = "decode error: %v"
	msgReportedUnhealthy = "service reported unhealthy: %q"
	msgHealthy           = "service healthy on port %d"
)

// healthResp mirrors the JSON body {"status": "...", "error": "..."}.
type healthResp struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func main() {
	// Same loader as the server, so APP_PORT and .env resolve identically.
	cfg, err := config.Load()
	if err != nil {
		fail(codeConfig, msgConfig, err)
	}
	url := fmt.Sprintf("http://localhost:%d%s", cfg.AppPort, healthEndpoint)

	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Get(url)
	if err != nil {
		fail(codeRequestFailed, msgRequestFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	var h healthResp
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		fail(codeDecodeError, msgDecodeError, err)
	}

	if resp.StatusCode != http.StatusOK {
		fail(codeBadHTTPStatus, msgBadHTTPStatus, resp.StatusCode, h.Error)
	}
	if h.Status != "" && h.Status != expectedHealthStatus {
		fail(codeReportedUnhealthy, msgReportedUnhealthy, h.Status)
	}

	log.Printf(msgHealthy, cfg.AppPort)
}

// fail logs a message and exits with the given code.
func fail(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}
