package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"annoscope/api"
	"annoscope/models"
)

// ImageAPI Backend calls the image collection needs
type ImageAPI interface {
	ListImages(ctx context.Context, projectID string) ([]models.Image, error)
	UploadImages(ctx context.Context, projectID string, files []api.File) ([]models.Image, error)
	DeleteImage(ctx context.Context, id string) error
}

type imageEntry struct {
	images   []models.Image
	loadedAt time.Time
}

// ImageStore Image collections keyed by project id. Loading one project
// replaces that project's entry only.
type ImageStore struct {
	api ImageAPI
	ttl time.Duration
	now func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu        sync.RWMutex
	byProject map[string]imageEntry
	inFlight  map[string]int
}

// ImageStoreOption Configure an ImageStore
type ImageStoreOption func(*ImageStore)

// WithExpiry Drop entries not reloaded within ttl, checking every interval
func WithExpiry(ttl time.Duration, interval time.Duration) ImageStoreOption {
	return func(s *ImageStore) {
		s.ttl = ttl
		if ttl <= 0 || interval <= 0 {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.cleanupLoop(interval)
		}()
	}
}

// NewImageStore Create an empty image store. Call Close to stop the
// cleanup loop started by WithExpiry.
func NewImageStore(api ImageAPI, opts ...ImageStoreOption) *ImageStore {
	s := &ImageStore{
		api:       api,
		now:       time.Now,
		stop:      make(chan struct{}),
		byProject: make(map[string]imageEntry),
		inFlight:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cleanupLoop Evict expired entries until Close
func (s *ImageStore) cleanupLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.evictExpired()
		}
	}
}

// evictExpired Drop entries older than the ttl, except ones being reloaded
func (s *ImageStore) evictExpired() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for projectID, entry := range s.byProject {
		if s.inFlight[projectID] > 0 {
			continue
		}
		if !entry.loadedAt.Add(s.ttl).After(now) {
			log.Debug("Image collection expired: ", projectID)
			delete(s.byProject, projectID)
		}
	}
}

// Close Stop the cleanup loop. Safe to call more than once.
func (s *ImageStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

// Images Copy of the collection loaded for a project
func (s *ImageStore) Images(projectID string) []models.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Image(nil), s.byProject[projectID].images...)
}

// Loaded Whether the project has an entry
func (s *ImageStore) Loaded(projectID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byProject[projectID]
	return ok
}

// Projects Ids of every project with an entry
func (s *ImageStore) Projects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.byProject))
	for id := range s.byProject {
		ids = append(ids, id)
	}
	return ids
}

// Forget Drop a project's entry
func (s *ImageStore) Forget(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byProject, projectID)
}

// Loading Whether any image list request is in flight
func (s *ImageStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inFlight) > 0
}

// LoadingFor Whether a list request for the project is in flight
func (s *ImageStore) LoadingFor(projectID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight[projectID] > 0
}

func (s *ImageStore) beginLoad(projectID string) func() {
	s.mu.Lock()
	s.inFlight[projectID]++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		if s.inFlight[projectID]--; s.inFlight[projectID] <= 0 {
			delete(s.inFlight, projectID)
		}
		s.mu.Unlock()
	}
}

// Load Replace the project's entry with the backend's image list. An empty
// project id is ignored: no request, no state change.
func (s *ImageStore) Load(ctx context.Context, projectID string) error {
	if projectID == "" {
		return nil
	}
	done := s.beginLoad(projectID)
	defer done()

	images, err := s.api.ListImages(ctx, projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.byProject[projectID] = imageEntry{images: images, loadedAt: s.now()}
	s.mu.Unlock()
	log.Debug(fmt.Sprintf("Loaded %d images for project %s", len(images), projectID))
	return nil
}

// Upload Send files to the project then reload its collection
func (s *ImageStore) Upload(ctx context.Context, projectID string, files []api.File) error {
	if _, err := s.api.UploadImages(ctx, projectID, files); err != nil {
		return err
	}
	return s.Load(ctx, projectID)
}

// Remove Delete an image then reload the collection of its project
func (s *ImageStore) Remove(ctx context.Context, imageID string, projectID string) error {
	if err := s.api.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	return s.Load(ctx, projectID)
}
