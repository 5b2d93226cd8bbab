package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/meeting-cost-api/internal/catalog"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// CatalogHandler expõe os dados de referência usados pelas comparações
type CatalogHandler struct{}

// NewCatalogHandler cria um novo handler de catálogo
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCatalog retorna o catálogo de itens, benchmarks e moedas suportadas
// @Summary      Catálogo de comparações
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} model.Response
// @Router       /api/v1/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data: gin.H{
			"items":      catalog.Items(),
			"benchmarks": catalog.DefaultBenchmarks(),
			"currencies": catalog.Currencies(),
		},
	})
}
