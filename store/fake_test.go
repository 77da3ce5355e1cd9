package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"annoscope/api"
	"annoscope/models"
)

var errBackendDown = errors.New("backend down")

// fakeBackend In-memory stand-in for the REST API. gate, when set, is
// received from before every list call answers so tests can observe
// in-flight state.
type fakeBackend struct {
	mu       sync.Mutex
	projects []models.Project
	images   map[string][]models.Image
	nextID   int
	calls    []string
	fail     map[string]error
	gate     chan struct{}
	started  chan string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		images: make(map[string][]models.Image),
		fail:   make(map[string]error),
	}
}

func (f *fakeBackend) record(call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	err := f.fail[call]
	f.mu.Unlock()
	return err
}

func (f *fakeBackend) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

// wait Block a list call when the test asked for it
func (f *fakeBackend) wait(ctx context.Context, what string) error {
	if f.started != nil {
		f.started <- what
	}
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeBackend) ListProjects(ctx context.Context) ([]models.Project, error) {
	if err := f.record("list projects"); err != nil {
		return nil, err
	}
	if err := f.wait(ctx, "projects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeBackend) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	if err := f.record("create project"); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &api.Error{StatusCode: 422, Method: "POST", Path: "/projects"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	project := models.Project{ID: f.id("p"), Name: name}
	f.projects = append(f.projects, project)
	return &project, nil
}

func (f *fakeBackend) DeleteProject(ctx context.Context, id string) error {
	if err := f.record("delete project"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			delete(f.images, id)
			return nil
		}
	}
	return &api.Error{StatusCode: 404, Method: "DELETE", Path: "/projects/" + id}
}

func (f *fakeBackend) ListImages(ctx context.Context, projectID string) ([]models.Image, error) {
	if err := f.record("list images " + projectID); err != nil {
		return nil, err
	}
	if err := f.wait(ctx, projectID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Image(nil), f.images[projectID]...), nil
}

func (f *fakeBackend) UploadImages(ctx context.Context, projectID string, files []api.File) ([]models.Image, error) {
	if err := f.record("upload " + projectID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var created []models.Image
	for _, file := range files {
		if _, err := io.ReadAll(file.Content); err != nil {
			return nil, err
		}
		image := models.Image{ID: f.id("i"), ProjectID: projectID, Filename: file.Name}
		f.images[projectID] = append(f.images[projectID], image)
		created = append(created, image)
	}
	return created, nil
}

func (f *fakeBackend) DeleteImage(ctx context.Context, id string) error {
	if err := f.record("delete image " + id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for projectID, images := range f.images {
		for i, image := range images {
			if image.ID == id {
				f.images[projectID] = append(images[:i:i], images[i+1:]...)
				return nil
			}
		}
	}
	return &api.Error{StatusCode: 404, Method: "DELETE", Path: "/images/" + id}
}
