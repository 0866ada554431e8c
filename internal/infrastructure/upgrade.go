package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"websocket-handshake/internal/domain"
)

// PerformUpgrade performs the server side of the WebSocket handshake over net/http.
// On success it writes 101 Switching Protocols and returns the client's key.
func (h *Handshake) PerformUpgrade(w http.ResponseWriter, req *http.Request) (string, error) {
	if req.Method != http.MethodGet {
		err := fmt.Errorf("%w: method %s not allowed", domain.ErrInvalidHandshake, req.Method)
		h.reject(w, req, http.StatusMethodNotAllowed, err)
		return "", err
	}
	if !req.ProtoAtLeast(1, 1) {
		err := fmt.Errorf("%w: unsupported protocol %s", domain.ErrInvalidHandshake, req.Proto)
		h.reject(w, req, http.StatusBadRequest, err)
		return "", err
	}

	key, err := h.CheckRequest(req.Header)
	if err != nil {
		h.reject(w, req, http.StatusBadRequest, err)
		return "", err
	}

	h.BuildResponse(w.Header(), key)
	w.WriteHeader(http.StatusSwitchingProtocols)

	h.logger.Debug("websocket handshake accepted", "remote_addr", req.RemoteAddr)

	return key, nil
}

func (h *Handshake) reject(w http.ResponseWriter, req *http.Request, status int, err error) {
	h.logger.Warn("websocket handshake rejected",
		"error", err,
		"status", status,
		"remote_addr", req.RemoteAddr,
	)
	http.Error(w, http.StatusText(status)+": "+err.Error(), status)
}

// NewUpgradeRequest builds a client handshake request for a ws:// or wss:// URL.
// The returned key must be passed to VerifyResponse.
func (h *Handshake) NewUpgradeRequest(ctx context.Context, rawURL string) (*http.Request, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("parse url: %w", err)
	}

	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return nil, "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}

	key, err := h.BuildRequest(req.Header)
	if err != nil {
		return nil, "", err
	}

	return req, key, nil
}

// VerifyResponse checks the server's answer to a request built by NewUpgradeRequest
func (h *Handshake) VerifyResponse(resp *http.Response, key string) error {
	if resp.StatusCode != http.StatusSwitchingProtocols {
		return fmt.Errorf("%w: %w: %d", domain.ErrInvalidHandshake, domain.ErrInvalidStatus, resp.StatusCode)
	}

	if err := h.CheckResponse(resp.Header, key); err != nil {
		var herr *domain.HandshakeError
		if errors.As(err, &herr) {
			h.logger.Warn("websocket handshake response rejected", "error", err, "header", herr.Header)
		}
		return err
	}

	return nil
}
