package store

import (
	"annoscope/utils"
)

// Backend Everything the stores call on the annotation backend
type Backend interface {
	ProjectAPI
	ImageAPI
}

// Session State containers of one client session. Create with NewSession
// and release with Close.
type Session struct {
	Projects *ProjectStore
	Images   *ImageStore
}

// NewSession Bind fresh stores to the backend
func NewSession(backend Backend, config utils.StoreConfig) *Session {
	return &Session{
		Projects: NewProjectStore(backend),
		Images:   NewImageStore(backend, WithExpiry(config.ImageTTL, config.CleanupInterval)),
	}
}

// Close Stop background work owned by the session
func (s *Session) Close() {
	s.Images.Close()
}
