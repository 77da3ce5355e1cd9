package store

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uuid "github.com/twinj/uuid"

	"annoscope/api"
	"annoscope/controllers"
	"annoscope/models"
	"annoscope/utils"
)

// newSession Session against a real API server on an in-memory database
func newSession(t *testing.T) (*Session, *api.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewV4().String())
	db, err := models.ConnectDataBase(models.DriverSqlite, dsn, false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	storage, err := controllers.NewStorage(t.TempDir())
	require.NoError(t, err)

	config := utils.DefaultConfig()
	srv := httptest.NewServer(controllers.NewRouter(controllers.NewController(db, storage, config.Backend)))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	session := NewSession(client, config.Store)
	t.Cleanup(session.Close)
	return session, client
}

func pngFile(t *testing.T, name string) api.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return api.File{Name: name, Content: buf}
}

func TestSessionProjectScenario(t *testing.T) {
	ctx := context.Background()
	session, _ := newSession(t)

	require.NoError(t, session.Projects.Add(ctx, "Foo"))
	projects := session.Projects.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Foo", projects[0].Name)

	id := projects[0].ID
	require.NoError(t, session.Projects.Remove(ctx, id))
	require.NoError(t, session.Projects.Load(ctx))
	for _, p := range session.Projects.Projects() {
		assert.NotEqual(t, id, p.ID)
	}

	assert.ErrorIs(t, session.Projects.Add(ctx, ""), api.ErrValidation)
	assert.ErrorIs(t, session.Projects.Remove(ctx, id), api.ErrNotFound)
}

func TestSessionImageScenario(t *testing.T) {
	ctx := context.Background()
	session, client := newSession(t)

	require.NoError(t, session.Projects.Add(ctx, "A"))
	require.NoError(t, session.Projects.Add(ctx, "B"))
	projects := session.Projects.Projects()
	a, b := projects[0].ID, projects[1].ID

	require.NoError(t, session.Images.Upload(ctx, a, []api.File{pngFile(t, "one.png"), pngFile(t, "two.PNG")}))
	require.NoError(t, session.Images.Upload(ctx, b, []api.File{pngFile(t, "three.png")}))

	latest, err := client.ListImages(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, latest, session.Images.Images(a))
	assert.Len(t, session.Images.Images(a), 2)
	assert.Len(t, session.Images.Images(b), 1)

	removed := session.Images.Images(a)[0]
	assert.Equal(t, "one.png", removed.Filename)
	assert.Contains(t, removed.URL, "/static/images/"+a+"/")
	require.NoError(t, session.Images.Remove(ctx, removed.ID, a))
	for _, image := range session.Images.Images(a) {
		assert.NotEqual(t, removed.ID, image.ID)
	}
	assert.Len(t, session.Images.Images(b), 1)
}
