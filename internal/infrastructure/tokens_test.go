package infrastructure

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"websocket-handshake/internal/domain"
)

func TestHeaderTokens(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		valid    func(string) bool
		expected []string
		err      error
	}{
		{"absent", nil, isToken, nil, nil},
		{"single", []string{"Upgrade"}, isToken, []string{"Upgrade"}, nil},
		{"list", []string{"keep-alive, Upgrade"}, isToken, []string{"keep-alive", "Upgrade"}, nil},
		{"flattened in order", []string{"a, b", "c"}, isToken, []string{"a", "b", "c"}, nil},
		{"whitespace trimmed", []string{" a ,\tb\t"}, isToken, []string{"a", "b"}, nil},
		{"empty elements skipped", []string{",, a ,,", ""}, isToken, []string{"a"}, nil},
		{"inner space", []string{"a b"}, isToken, nil, domain.ErrInvalidHeaderFormat},
		{"separator character", []string{"a;b"}, isToken, nil, domain.ErrInvalidHeaderFormat},
		{"protocol with version", []string{"websocket/13, h2c"}, isProtocol, []string{"websocket/13", "h2c"}, nil},
		{"slash is not a token", []string{"websocket/13"}, isToken, nil, domain.ErrInvalidHeaderFormat},
		{"dangling slash", []string{"websocket/"}, isProtocol, nil, domain.ErrInvalidHeaderFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tt.values {
				h.Add("Connection", v)
			}

			got, err := headerTokens(h, "Connection", tt.valid)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("headerTokens() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("headerTokens() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("headerTokens() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestContainsFold(t *testing.T) {
	tokens := []string{"keep-alive", "UPGRADE"}
	if !containsFold(tokens, "upgrade") {
		t.Error("expected case-insensitive match")
	}
	if containsFold(tokens, "close") {
		t.Error("unexpected match")
	}
	if containsFold(nil, "upgrade") {
		t.Error("unexpected match in empty list")
	}
}
