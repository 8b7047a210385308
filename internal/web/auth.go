package web

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"
)

const sessionName = "nitimon_session"

// authenticated reports whether the request carries a valid session.
func (s *Server) authenticated(r *http.Request) bool {
	sess, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		return false
	}
	ok, _ := sess.Values["authenticated"].(bool)
	return ok
}

// checkAccessKey compares a submitted key against the configured one,
// both reduced to SHA-256 hex.
func (s *Server) checkAccessKey(submitted string) bool {
	sum := sha256.Sum256([]byte(submitted))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.keyHash)) == 1
}

// requireAuth gates every protected route. API paths get a JSON 401,
// page requests are redirected to the login form.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authenticated(r) {
			next.ServeHTTP(w, r)
			return
		}
		if isAPIPath(r.URL.Path) {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
	})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, r.URL.Query().Get("next"), "", http.StatusOK)
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, "", "Malformed form submission.", http.StatusBadRequest)
		return
	}
	next := sanitizeNext(r.FormValue("next"))

	if !s.checkAccessKey(r.FormValue("access_key")) {
		s.logger.Warn("rejected login attempt", "remote", r.RemoteAddr)
		s.renderLogin(w, next, "Invalid access key.", http.StatusUnauthorized)
		return
	}

	sess, _ := s.sessionStore.Get(r, sessionName)
	sess.Values["authenticated"] = true
	if err := sess.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessionStore.Get(r, sessionName)
	sess.Options.MaxAge = -1
	delete(sess.Values, "authenticated")
	if err := sess.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// sanitizeNext keeps redirects on this host.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
