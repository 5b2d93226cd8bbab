package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/meeting-cost-api/internal/demo"
	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
	"github.com/cleberrangel/meeting-cost-api/internal/service"
)

// DemoHandler manipula requisições de relatório com dados sintéticos
type DemoHandler struct {
	reportService *service.ReportService
}

// NewDemoHandler cria um novo handler de demo
func NewDemoHandler(reportService *service.ReportService) *DemoHandler {
	return &DemoHandler{reportService: reportService}
}

// roleInfo é a projeção pública de um papel profissional.
type roleInfo struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	HourlyRate float64 `json:"hourly_rate"`
}

// ListRoles lista os papéis disponíveis para geração de dados sintéticos
// @Summary      Lista papéis de demo
// @Tags         demo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} model.Response
// @Router       /api/v1/demo/roles [get]
func (h *DemoHandler) ListRoles(c *gin.Context) {
	roles := demo.Roles()
	out := make([]roleInfo, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleInfo{
			ID:         string(r),
			Label:      demo.Label(r),
			HourlyRate: demo.HourlyRate(r),
		})
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    out,
	})
}

// GenerateDemoReport sintetiza um calendário e computa o relatório
// @Summary      Gera relatório demo
// @Description  Sintetiza reuniões plausíveis para o papel e retorna o relatório computado
// @Tags         demo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.DemoReportRequest true "Configuração do demo"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/v1/demo/reports [post]
func (h *DemoHandler) GenerateDemoReport(c *gin.Context) {
	var req model.DemoReportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return
	}

	result, err := h.reportService.GenerateDemo(c.Request.Context(), req, time.Now())
	if err != nil {
		if errors.Is(err, model.ErrUnknownRole) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Success: false,
				Error:   "papel desconhecido",
				Details: err.Error(),
			})
			return
		}

		logger.FromGin(c).Error().Err(err).Msg("Erro ao gerar relatório demo")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data: gin.H{
			"report":   result.Report,
			"meetings": result.Meetings,
		},
		Meta: &result.Meta,
	})
}
