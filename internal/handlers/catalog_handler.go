package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/sat-practice-service/internal/services"
	"github.com/SAP-F-2025/sat-practice-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
	}
}

// GetSkills lists skills ordered by description
// @Router /skills [get]
func (h *CatalogHandler) GetSkills(c *gin.Context) {
	skills, err := h.catalogService.Skills(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// GetModules lists section modules ordered by name
// @Router /modules [get]
func (h *CatalogHandler) GetModules(c *gin.Context) {
	modules, err := h.catalogService.Modules(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports service status. The database is probed when db is set.
func HealthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"status":  "OK",
			"message": "SAT Practice API is running",
		}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				resp["status"] = "DEGRADED"
				resp["database"] = "unreachable"
				c.JSON(http.StatusServiceUnavailable, resp)
				return
			}
			resp["database"] = "ok"
		}
		c.JSON(http.StatusOK, resp)
	}
}
