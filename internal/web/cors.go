package web

import "net/http"

// DefaultAllowedOrigins lists the known deployment origins: the production
// site plus local dev servers.
var DefaultAllowedOrigins = []string{
	"https://banana-bread.pages.dev",
	"http://localhost:4321",
	"http://127.0.0.1:4321",
	"http://localhost:8788",
	"http://localhost:8080",
}

// cors sets CORS headers for allow-listed origins only. Other origins get no
// CORS headers, so browsers block the response.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Add("Vary", "Origin")
		if origin := r.Header.Get("Origin"); origin != "" && s.origins[origin] {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
