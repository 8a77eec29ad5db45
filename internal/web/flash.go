package web

import "net/http"

// Flash message levels, matching the notification styles in the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

const (
	flashMessageKey = "flash_message"
	flashLevelKey   = "flash_level"
)

// Flash is a one-shot notification carried across a redirect.
type Flash struct {
	Message string
	Level   string
}

// PutFlash stores a notification in the session; the next page render pops it.
func (sm *SessionManager) PutFlash(r *http.Request, level, message string) {
	sm.Put(r.Context(), flashMessageKey, message)
	sm.Put(r.Context(), flashLevelKey, level)
}

// PopFlash removes and returns the pending notification, if any.
func (sm *SessionManager) PopFlash(r *http.Request) (Flash, bool) {
	message := sm.PopString(r.Context(), flashMessageKey)
	if message == "" {
		return Flash{}, false
	}
	level := sm.PopString(r.Context(), flashLevelKey)
	if level == "" {
		level = FlashSuccess
	}
	return Flash{Message: message, Level: level}, true
}
