package app

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/frudas24/deskswipe/internal/settings"
	"github.com/frudas24/deskswipe/internal/web"
)

// RegisterRoutes wires API, websocket, and static handlers onto the mux.
// A non-empty staticDir overrides the embedded browser client.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/preferences", a.handlePreferences)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)
	mux.Handle("/", a.staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Page          int               `json:"page"`
	Pages         int               `json:"pages"`
	Position      float64           `json:"position"`
	Progress      float64           `json:"progress"`
	Gesture       string            `json:"gesture"`
	Animating     bool              `json:"animating"`
	InputEnabled  bool              `json:"inputEnabled"`
	Authenticated bool              `json:"authenticated"`
	Preferences   settings.Settings `json:"preferences"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns the pager, tracker and session state.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	st, err := a.State(r.Context())
	if err != nil {
		http.Error(w, "gesture loop unavailable", http.StatusServiceUnavailable)
		return
	}
	snap := a.session.Snapshot()
	resp := stateResponse{
		Page:          st.Page,
		Pages:         st.Pages,
		Position:      st.Position,
		Progress:      st.Progress,
		Gesture:       st.Gesture,
		Animating:     st.Animating,
		InputEnabled:  snap.InputEnabled,
		Authenticated: snap.Authenticated,
		Preferences:   a.Settings(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handlePreferences returns or replaces the stored preferences.
func (a *App) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(a.Settings())
	case http.MethodPost, http.MethodPut:
		s := a.Settings()
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := a.SaveSettings(s); err != nil {
			a.logger.Error("save preferences", "err", err)
			http.Error(w, "failed to save preferences", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func (a *App) staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
		a.logger.Warn("static dir unavailable, using embedded client", "dir", staticDir)
	}

	embedded, err := web.StaticFS()
	if err != nil {
		a.logger.Error("static assets unavailable", "err", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
