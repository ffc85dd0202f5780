package grpcweb_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"event-polling-api/internal/grpcweb"
	"event-polling-api/internal/handler"
	"event-polling-api/internal/rpc"
	"event-polling-api/internal/server"
	"event-polling-api/internal/service"
	"event-polling-api/internal/storage/memory"
)

const secret = "test-secret"

func setup(t *testing.T, origins []string) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	st := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(handler.New(st, secret, service.Options{Logger: logger}), server.Options{
		Secret: secret,
		Logger: logger,
	})
	lis := bufconn.Listen(1 << 20)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	bridge, err := grpcweb.New("passthrough:///bufnet", origins,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("bridge: %v", err)
	}
	hs := httptest.NewServer(bridge.Handler())
	t.Cleanup(func() {
		hs.Close()
		bridge.Close()
		cancel()
		<-done
		st.Close()
	})
	return hs
}

func post(t *testing.T, hs *httptest.Server, method string, msg rpc.Message, token string) (data []byte, trailer string) {
	t.Helper()
	payload := msg.MarshalWire(nil)
	body := make([]byte, 5+len(payload))
	binary.BigEndian.PutUint32(body[1:5], uint32(len(payload)))
	copy(body[5:], payload)

	req, err := http.NewRequest(http.MethodPost, hs.URL+rpc.FullMethod(method), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/grpc-web+proto")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := hs.Client().Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	for len(raw) >= 5 {
		n := binary.BigEndian.Uint32(raw[1:5])
		chunk := raw[5 : 5+n]
		if raw[0]&0x80 != 0 {
			trailer = string(chunk)
		} else {
			data = chunk
		}
		raw = raw[5+n:]
	}
	return data, trailer
}

func TestBridgeForwardsCalls(t *testing.T) {
	hs := setup(t, nil)

	data, trailer := post(t, hs, "Register", &rpc.RegisterRequest{
		Email: "web@test.com", Password: "testpass123", Name: "Web",
	}, "")
	if !strings.Contains(trailer, "grpc-status:0") {
		t.Fatalf("register trailer %q", trailer)
	}
	var auth rpc.AuthResponse
	if err := auth.UnmarshalWire(data); err != nil {
		t.Fatalf("decode auth: %v", err)
	}
	if auth.AccessToken == "" || auth.UserId == "" {
		t.Fatalf("unexpected auth response %+v", auth)
	}

	data, trailer = post(t, hs, "Me", &rpc.Empty{}, auth.AccessToken)
	if !strings.Contains(trailer, "grpc-status:0") {
		t.Fatalf("me trailer %q", trailer)
	}
	var me rpc.Profile
	if err := me.UnmarshalWire(data); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if me.Id != auth.UserId || me.Email != "web@test.com" {
		t.Fatalf("unexpected profile %+v", me)
	}
}

func TestBridgeErrorTrailer(t *testing.T) {
	hs := setup(t, nil)

	_, trailer := post(t, hs, "Me", &rpc.Empty{}, "")
	if !strings.Contains(trailer, "grpc-status:16") {
		t.Fatalf("expected Unauthenticated trailer, got %q", trailer)
	}

	data, _ := post(t, hs, "Register", &rpc.RegisterRequest{Email: "e@test.com", Password: "testpass123", Name: "E"}, "")
	var auth rpc.AuthResponse
	if err := auth.UnmarshalWire(data); err != nil {
		t.Fatalf("decode auth: %v", err)
	}
	_, trailer = post(t, hs, "GetEvent", &rpc.IDRequest{Id: "missing"}, auth.AccessToken)
	if !strings.Contains(trailer, "grpc-status:5") || !strings.Contains(trailer, "grpc-status-details-bin:") {
		t.Fatalf("expected NotFound with details, got %q", trailer)
	}
}

func TestBridgeCORS(t *testing.T) {
	hs := setup(t, []string{"https://app.example.com"})

	tests := []struct {
		name   string
		origin string
		status int
		allow  string
	}{
		{"allowed", "https://app.example.com", http.StatusOK, "https://app.example.com"},
		{"foreign", "https://evil.example.com", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodOptions, hs.URL+rpc.FullMethod("Login"), nil)
			req.Header.Set("Origin", tt.origin)
			resp, err := hs.Client().Do(req)
			if err != nil {
				t.Fatalf("preflight: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.allow {
				t.Fatalf("allow origin = %q, want %q", got, tt.allow)
			}
		})
	}
}

func TestBridgeRejectsNonGRPCWeb(t *testing.T) {
	hs := setup(t, nil)

	resp, err := hs.Client().Post(hs.URL+rpc.FullMethod("Login"), "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", resp.StatusCode)
	}
}
