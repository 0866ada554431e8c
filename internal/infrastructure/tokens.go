package infrastructure

import (
	"strings"

	"golang.org/x/net/http/httpguts"

	"websocket-handshake/internal/domain"
	"websocket-handshake/pkg/protocol"
)

// headerTokens splits every occurrence of a comma-separated list header and
// flattens the elements into one slice, in encounter order.
// Empty elements are skipped and optional whitespace around elements is trimmed.
func headerTokens(h domain.Headers, name string, valid func(string) bool) ([]string, error) {
	var tokens []string
	for _, value := range h.Values(name) {
		for _, elem := range strings.Split(value, ",") {
			elem = strings.Trim(elem, " \t")
			if elem == "" {
				continue
			}
			if !valid(elem) {
				return nil, domain.NewHeaderFormatError(name, value, "expected token")
			}
			tokens = append(tokens, elem)
		}
	}
	return tokens, nil
}

// isToken reports whether s is an RFC 7230 token
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

// isProtocol reports whether s is an Upgrade protocol: token ["/" token]
func isProtocol(s string) bool {
	name, version, found := strings.Cut(s, "/")
	if !found {
		return isToken(name)
	}
	return isToken(name) && isToken(version)
}

// containsFold reports whether tokens holds token, ignoring case
func containsFold(tokens []string, token string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// checkUpgradeHeaders validates the Connection and Upgrade headers shared by
// both sides of the handshake
func checkUpgradeHeaders(h domain.Headers) error {
	connection, err := headerTokens(h, protocol.HeaderConnection, isToken)
	if err != nil {
		return err
	}
	if !containsFold(connection, protocol.HeaderValueUpgrade) {
		return domain.NewUpgradeError(protocol.HeaderConnection, strings.Join(connection, ", "))
	}

	upgrade, err := headerTokens(h, protocol.HeaderUpgrade, isProtocol)
	if err != nil {
		return err
	}
	// RFC 6455 uses "websocket" everywhere except the IANA registration in
	// section 11.2, which says "WebSocket"
	if len(upgrade) != 1 || !strings.EqualFold(upgrade[0], protocol.HeaderValueWebSocket) {
		return domain.NewUpgradeError(protocol.HeaderUpgrade, strings.Join(upgrade, ", "))
	}
	return nil
}
