package http

import (
	stdhttp "net/http"

	"github.com/google/uuid"

	"recordbook-web/internal/log"
	"recordbook-web/internal/wizard"
)

const sessionCookie = "rb_session"

// sessionWizard returns the caller's sales-entry wizard, creating the
// session cookie and a fresh wizard when none exists. The store's TTL is
// what eventually discards abandoned drafts.
func (s *Server) sessionWizard(w stdhttp.ResponseWriter, r *stdhttp.Request) *wizard.Wizard {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = uuid.NewString()
		stdhttp.SetCookie(w, &stdhttp.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: stdhttp.SameSiteLaxMode,
		})
	}

	if wz, ok := s.wizards.Get(id); ok {
		return wz
	}
	wz := wizard.New(s.api, s.log.WithComponent(log.ComponentWizard))
	s.wizards.Put(id, wz)
	return wz
}
