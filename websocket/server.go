package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/domain"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/identity"
)

// Server upgrades HTTP requests to websocket connections. The caller's
// identity comes from the signed identity cookie when present and valid;
// anyone else gets a fresh guest name for the lifetime of the connection.
type Server struct {
	upgrader   websocket.Upgrader
	dispatcher *Dispatcher
	handler    domain.EventHandler
	signer     *identity.Signer
}

func NewServer(d *Dispatcher, h domain.EventHandler, signer *identity.Signer, origins []string) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		dispatcher: d,
		handler:    h,
		signer:     signer,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ident := s.identify(r)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade error", "error", err)
		return
	}

	conn := newConn(uuid.New().String(), ident, ws, s.dispatcher, s.handler)
	conn.Start()
}

func (s *Server) identify(r *http.Request) string {
	existing := ""
	if cookie, err := r.Cookie(identity.CookieName); err == nil {
		ident, err := s.signer.Verify(cookie.Value)
		if err != nil {
			slog.Warn("invalid identity cookie, assigning guest name")
		} else {
			existing = ident
		}
	}
	return identity.Assign(existing)
}

// originChecker builds the upgrader's origin policy. A "*" entry allows
// every origin; an empty Origin header (non-browser client) always passes.
func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := false
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
			continue
		}
		if normalized, ok := normalizeOrigin(trimmed); ok {
			allowed[normalized] = struct{}{}
		} else {
			slog.Warn("ignoring invalid origin in configuration", "origin", origin)
		}
	}

	return func(r *http.Request) bool {
		header := r.Header.Get("Origin")
		if header == "" || allowAll {
			return true
		}
		normalized, ok := normalizeOrigin(header)
		if !ok {
			return false
		}
		if _, ok := allowed[normalized]; ok {
			return true
		}
		slog.Warn("blocked websocket connection from disallowed origin", "origin", header)
		return false
	}
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}
