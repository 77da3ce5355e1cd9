// Package store keeps client-side mirrors of server-owned state. Every
// action calls the backend and then overwrites local state with the answer;
// nothing is patched incrementally.
package store

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"annoscope/models"
)

// ProjectAPI Backend calls the project directory needs
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectStore Last fetched project list
type ProjectStore struct {
	api ProjectAPI

	mu       sync.RWMutex
	projects []models.Project
	inFlight int
}

// NewProjectStore Create an empty project store
func NewProjectStore(api ProjectAPI) *ProjectStore {
	return &ProjectStore{api: api}
}

// Projects Copy of the current snapshot, in backend order
func (s *ProjectStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.projects...)
}

// Loading Whether a list request is in flight
func (s *ProjectStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// beginLoad Raise the loading flag; the returned func lowers it
func (s *ProjectStore) beginLoad() func() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}
}

// Load Replace the list with the backend's current one
func (s *ProjectStore) Load(ctx context.Context) error {
	done := s.beginLoad()
	defer done()

	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	log.Debug(fmt.Sprintf("Loaded %d projects", len(projects)))
	return nil
}

// Add Create a project then reload the list
func (s *ProjectStore) Add(ctx context.Context, name string) error {
	if _, err := s.api.CreateProject(ctx, name); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Remove Delete a project then reload the list
func (s *ProjectStore) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	return s.Load(ctx)
}
