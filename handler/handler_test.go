package handler

import (
	"Foodnote/config"
	"Foodnote/dao"
	"Foodnote/service"
	"Foodnote/types"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFood struct{ name string }

func (s stubFood) Identify(context.Context, []byte) (string, error) { return s.name, nil }

type stubGeo struct{}

func (stubGeo) ReverseGeocode(context.Context, types.Coordinate) (string, bool) {
	return "Shibuya, Tokyo, Japan", true
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := dao.NewFileStore(t.TempDir())
	require.NoError(t, err)
	conf := &config.Config{
		Catalog:   &config.CatalogConfig{LoadConcurrency: 2},
		Thumbnail: &config.ThumbnailConfig{CacheSize: 8, DefaultSize: 32},
		Map:       &config.MapConfig{},
	}
	catalog := service.NewCatalog(store, conf)
	require.NoError(t, catalog.Load(context.Background()))

	geo := stubGeo{}
	photos, err := service.NewPhotoService(catalog, stubFood{name: "Gyoza"}, geo, conf)
	require.NoError(t, err)
	browse := service.NewBrowseService(catalog, conf)

	r := gin.New()
	api := r.Group("/api")
	(&Photo{PhotoService: photos, NoteService: &service.NoteService{Catalog: catalog}, BrowseService: browse}).RegisterRouter(api)
	(&Browse{BrowseService: browse}).RegisterRouter(api)
	(&Selection{SelectionService: service.NewSelectionService(catalog)}).RegisterRouter(api)
	(&Geocode{Geo: geo}).RegisterRouter(api)
	return r
}

func do(t *testing.T, r http.Handler, req *http.Request) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func uploadRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "meal.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 64, 48))))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, url string, v any) *http.Request {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUploadSaveAndBrowse(t *testing.T) {
	r := newTestRouter(t)

	env := do(t, r, uploadRequest(t, map[string]string{"latitude": "35.66", "longitude": "139.70"}, true))
	require.Equal(t, 0, env.Code, env.Msg)
	var imported types.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &imported))
	assert.Equal(t, "Gyoza", imported.Draft.Name)
	assert.Equal(t, "Shibuya, Tokyo, Japan", imported.Draft.Location)

	photoID := imported.Photo.ID
	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+photoID+"/note", map[string]any{
		"name":       imported.Draft.Name,
		"restaurant": "Harajuku Gyoza Lou",
		"location":   imported.Draft.Location,
		"rating":     5,
	}))
	require.Equal(t, 0, env.Code, env.Msg)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/map", nil))
	require.Equal(t, 0, env.Code)
	var anns []types.CountryAnnotation
	require.NoError(t, json.Unmarshal(env.Data, &anns))
	require.Len(t, anns, 1)
	assert.Equal(t, "Japan", anns[0].Country)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/photos?q=gyoza", nil))
	var items []types.PhotoItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Note)
	assert.Equal(t, 5, items[0].Note.Rating)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photoID+"/thumbnail", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
}

func TestUploadCanceledAndMissingImage(t *testing.T) {
	r := newTestRouter(t)

	env := do(t, r, uploadRequest(t, map[string]string{"canceled": "true"}, false))
	assert.Equal(t, 0, env.Code)
	var res *types.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Nil(t, res)

	env = do(t, r, uploadRequest(t, nil, false))
	assert.Equal(t, 400, env.Code)
}

func TestSaveNoteValidation(t *testing.T) {
	r := newTestRouter(t)

	env := do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/ghost/note", map[string]any{"name": "x"}))
	assert.Equal(t, 404, env.Code)

	env = do(t, r, uploadRequest(t, nil, true))
	require.Equal(t, 0, env.Code)
	var imported types.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &imported))

	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+imported.Photo.ID+"/note", map[string]any{"name": ""}))
	assert.Equal(t, 400, env.Code)

	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+imported.Photo.ID+"/note", map[string]any{"name": "x", "rating": 9}))
	assert.Equal(t, 400, env.Code)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+imported.Photo.ID+"/note", nil))
	assert.Equal(t, 404, env.Code)
}

func TestPickPlace(t *testing.T) {
	r := newTestRouter(t)
	env := do(t, r, uploadRequest(t, nil, true))
	require.Equal(t, 0, env.Code)
	var imported types.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &imported))
	id := imported.Photo.ID

	place := map[string]any{"address": "Bukit Timah, Singapore", "place_name": "Hawker Centre", "latitude": 1.33, "longitude": 103.8}
	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+id+"/note/place", place))
	assert.Equal(t, 404, env.Code)

	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+id+"/note", map[string]any{
		"name": "Laksa", "restaurant": "Stall 12",
	}))
	require.Equal(t, 0, env.Code, env.Msg)

	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+id+"/note/place", place))
	require.Equal(t, 0, env.Code, env.Msg)
	var note types.Note
	require.NoError(t, json.Unmarshal(env.Data, &note))
	assert.Equal(t, "Bukit Timah, Singapore", note.Location)
	assert.Equal(t, "Stall 12", note.Restaurant)

	env = do(t, r, jsonRequest(t, http.MethodPut, "/api/v1/photos/"+id+"/note/place", map[string]any{"address": "x"}))
	assert.Equal(t, 400, env.Code)
}

func TestSelectionDelete(t *testing.T) {
	r := newTestRouter(t)
	env := do(t, r, uploadRequest(t, nil, true))
	require.Equal(t, 0, env.Code)
	var imported types.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &imported))

	withSession := func(req *http.Request) *http.Request {
		req.Header.Set("X-Session-ID", "phone")
		return req
	}
	do(t, r, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/selection/toggle", nil)))
	env = do(t, r, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/selection/tap/"+imported.Photo.ID, nil)))
	var st types.SelectionState
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, []string{imported.Photo.ID}, st.Selected)

	env = do(t, r, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/selection/delete", nil)))
	var resp types.DeleteSelectionResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, []string{imported.Photo.ID}, resp.Deleted)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil))
	var items []types.PhotoItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Empty(t, items)
}

func TestBadCriteria(t *testing.T) {
	r := newTestRouter(t)
	env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/browse/rating?start=yesterday", nil))
	assert.Equal(t, 400, env.Code)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/browse/location?tz=Mars/Olympus", nil))
	assert.Equal(t, 400, env.Code)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/browse/location?start=2024-05-01&tz=Asia/Tokyo", nil))
	assert.Equal(t, 0, env.Code)
}

func TestReverseGeocode(t *testing.T) {
	r := newTestRouter(t)
	env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/geocode/reverse?lat=35.66&lng=139.70", nil))
	require.Equal(t, 0, env.Code)
	var got types.ReverseGeocodeResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.Found)

	env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/geocode/reverse?lat=95&lng=0", nil))
	assert.Equal(t, 400, env.Code)
}
