// Package api exposes the container service over HTTP using gin.
package api

import (
	"net/http"

	"github.com/arx-os/mg2container/internal/container"
	"github.com/arx-os/mg2container/internal/logger"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title MG2 Container API
// @version 1.0
// @description Mesh compression and storage service built on the MG2 codec

// @host localhost:8080
// @BasePath /v1

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

// Handler wires the container service into gin routes.
type Handler struct {
	svc *container.Service
	log *logger.Logger
}

// NewHandler builds an API handler around svc.
func NewHandler(svc *container.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default().WithField("component", "api")
	}
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the mesh endpoints and swagger UI onto router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	{
		meshes := v1.Group("/meshes")
		meshes.POST("", h.CreateMesh)
		meshes.GET("/:id", h.GetMesh)
		meshes.DELETE("/:id", h.DeleteMesh)
	}
}

// CreateMesh godoc
// @Summary Compress and store a mesh
// @Accept json
// @Produce json
// @Param mesh body meshPayload true "Mesh to compress"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/meshes [post]
func (h *Handler) CreateMesh(c *gin.Context) {
	var payload meshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	mesh, err := payload.toMesh()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.svc.Store(c.Request.Context(), mesh)
	if err != nil {
		h.log.Error("failed to store mesh", logger.Field{Key: "error", Value: err.Error()})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: gin.H{"id": id}})
}

// GetMesh godoc
// @Summary Decompress a stored mesh
// @Produce json
// @Param id path string true "Container id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/meshes/{id} [get]
func (h *Handler) GetMesh(c *gin.Context) {
	id := c.Param("id")

	mesh, err := h.svc.Load(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: fromMesh(mesh)})
}

// DeleteMesh godoc
// @Summary Delete a stored mesh
// @Param id path string true "Container id"
// @Success 204
// @Failure 500 {object} ErrorResponse
// @Router /v1/meshes/{id} [delete]
func (h *Handler) DeleteMesh(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
