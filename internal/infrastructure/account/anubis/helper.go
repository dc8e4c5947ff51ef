package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
	"github.com/riskibarqy/golf-tournament/internal/platform/resilience"
)

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAnubisTransient)
}

func logCircuitChange(logger *logging.Logger) func(name string, from, to resilience.CircuitState) {
	return func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "circuit", name, "from", from, "to", to)
	}
}

// hashToken keys the principal cache so raw bearer tokens are never stored.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// buildURL joins path onto baseURL. An absolute http(s) path replaces the base.
func buildURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if u, err := url.Parse(path); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return path
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if path == "" {
		return baseURL
	}
	return baseURL + "/" + strings.TrimLeft(path, "/")
}
