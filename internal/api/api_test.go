package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arx-os/mg2container/internal/api"
	"github.com/arx-os/mg2container/internal/container"
	"github.com/arx-os/mg2container/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := storage.Local(t.TempDir())
	svc := container.NewService(backend)
	h := api.NewHandler(svc, nil)

	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func samplePayload() map[string]interface{} {
	return map[string]interface{}{
		"vertices": []map[string]float32{
			{"x": 0, "y": 0, "z": 0},
			{"x": 1, "y": 0, "z": 0},
			{"x": 0, "y": 1, "z": 0},
		},
		"indices":          []uint32{0, 1, 2},
		"vertex_precision": 0.001,
	}
}

func TestCreateAndGetMesh(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(samplePayload())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/meshes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	getReq := httptest.NewRequest(http.MethodGet, "/v1/meshes/"+created.Data.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestCreateMeshRejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(map[string]interface{}{"vertices": []interface{}{}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/meshes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMeshUnknownIDReturnsNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/meshes/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMesh(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(samplePayload())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/meshes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	delReq := httptest.NewRequest(http.MethodDelete, "/v1/meshes/"+created.Data.ID, nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	assert.Equal(t, http.StatusNoContent, delRec.Code)
}
