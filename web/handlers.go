package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/identity"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/registry"
)

type Handlers struct {
	reg    *registry.Registry
	signer *identity.Signer
	rooms  []string
}

// Index renders the chat page. A visitor with a valid identity cookie keeps
// their name; everyone else gets a fresh guest name and the cookie to go
// with it, so the websocket upgrade later resolves the same identity.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	name := ""
	if cookie, err := r.Cookie(identity.CookieName); err == nil {
		if ident, err := h.signer.Verify(cookie.Value); err == nil {
			name = ident
		}
	}

	if name == "" {
		name = identity.NewGuestName()
		token, err := h.signer.Issue(name)
		if err != nil {
			slog.Error("issue identity token", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     identity.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(identity.TokenTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		slog.Info("new user assigned username", "identity", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{Username: name, Rooms: h.rooms}); err != nil {
		slog.Error("render index", "error", err)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	rooms, clients := h.reg.Stats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"rooms": rooms, "clients": clients})
}
