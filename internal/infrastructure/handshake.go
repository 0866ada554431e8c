package infrastructure

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"websocket-handshake/internal/domain"
	"websocket-handshake/pkg/protocol"
)

// HandshakeConfig configures a Handshake
type HandshakeConfig struct {
	// Rand is the source of Sec-WebSocket-Key nonces. It must be safe for
	// concurrent use when the Handshake is shared between goroutines.
	Rand   io.Reader
	Logger *slog.Logger
}

// DefaultHandshakeConfig returns a config backed by crypto/rand and the default logger
func DefaultHandshakeConfig() HandshakeConfig {
	return HandshakeConfig{
		Rand:   rand.Reader,
		Logger: slog.Default(),
	}
}

// Handshake builds and checks the headers of the WebSocket opening handshake.
// It keeps no per-handshake state: the key returned by BuildRequest or
// CheckRequest is the only thing carried from one step to the next.
type Handshake struct {
	rand   io.Reader
	logger *slog.Logger
}

// NewHandshake creates a new Handshake
func NewHandshake(cfg HandshakeConfig) *Handshake {
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Handshake{
		rand:   cfg.Rand,
		logger: cfg.Logger,
	}
}

// GenerateKey returns a fresh base64-encoded 16-byte nonce
func (h *Handshake) GenerateKey() (string, error) {
	var nonce [protocol.NonceSize]byte
	if _, err := io.ReadFull(h.rand, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(nonce[:]), nil
}

// BuildRequest sets the client handshake headers on headers and returns the
// key that must later be passed to CheckResponse
func (h *Handshake) BuildRequest(headers domain.Headers) (string, error) {
	key, err := h.GenerateKey()
	if err != nil {
		return "", err
	}

	headers.Set(protocol.HeaderUpgrade, protocol.HeaderValueWebSocket)
	headers.Set(protocol.HeaderConnection, protocol.HeaderValueUpgrade)
	headers.Set(protocol.HeaderSecWebSocketKey, key)
	headers.Set(protocol.HeaderSecWebSocketVersion, protocol.WebSocketVersion)

	return key, nil
}

// CheckRequest validates the headers of a handshake request received from a
// client and returns the key that must be passed to BuildResponse.
//
// The request line, HTTP version, Host and Origin are not inspected; that is
// the caller's job. Any error returned matches domain.ErrInvalidHandshake and
// must be answered with 400 Bad Request.
func (h *Handshake) CheckRequest(headers domain.Headers) (string, error) {
	if err := checkUpgradeHeaders(headers); err != nil {
		return "", err
	}

	key, err := domain.Require(headers, protocol.HeaderSecWebSocketKey)
	if err != nil {
		return "", err
	}
	if !validKey(key) {
		return "", domain.NewHeaderValueError(protocol.HeaderSecWebSocketKey, key)
	}

	version, err := domain.Require(headers, protocol.HeaderSecWebSocketVersion)
	if err != nil {
		return "", err
	}
	if version != protocol.WebSocketVersion {
		return "", domain.NewHeaderValueError(protocol.HeaderSecWebSocketVersion, version)
	}

	return key, nil
}

// BuildResponse sets the server handshake headers on headers for a key
// returned by CheckRequest
func (h *Handshake) BuildResponse(headers domain.Headers, key string) {
	headers.Set(protocol.HeaderUpgrade, protocol.HeaderValueWebSocket)
	headers.Set(protocol.HeaderConnection, protocol.HeaderValueUpgrade)
	headers.Set(protocol.HeaderSecWebSocketAccept, AcceptKey(key))
}

// CheckResponse validates the headers of a handshake response received from
// the server against the key returned by BuildRequest.
//
// The status line is not inspected; that is the caller's job.
func (h *Handshake) CheckResponse(headers domain.Headers, key string) error {
	if err := checkUpgradeHeaders(headers); err != nil {
		return err
	}

	accept, err := domain.Require(headers, protocol.HeaderSecWebSocketAccept)
	if err != nil {
		return err
	}
	if accept != AcceptKey(key) {
		return domain.NewHeaderValueError(protocol.HeaderSecWebSocketAccept, accept)
	}

	return nil
}

// AcceptKey generates the Sec-WebSocket-Accept value from the client's key
// According to RFC 6455: base64(SHA1(key + "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"))
func AcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + protocol.WebSocketGUID))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// validKey reports whether key is padded base64 of exactly NonceSize bytes.
// encoding/base64 silently drops CR and LF, so those are rejected up front.
func validKey(key string) bool {
	if strings.ContainsAny(key, "\r\n") {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(key)
	return err == nil && len(raw) == protocol.NonceSize
}
