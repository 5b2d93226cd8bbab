package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/middleware"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
	"github.com/cleberrangel/meeting-cost-api/internal/service"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler manipula requisições de relatório
type ReportHandler struct {
	reportService  *service.ReportService
	excelGenerator *service.ExcelGenerator
	webhookService *service.WebhookService
}

// NewReportHandler cria um novo handler de relatórios
func NewReportHandler(reportService *service.ReportService, webhookService *service.WebhookService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		excelGenerator: service.NewExcelGenerator(),
		webhookService: webhookService,
	}
}

// GenerateReport computa o relatório de custo de reuniões a partir de um feed ICS
// @Summary      Gera relatório de custo de reuniões
// @Description  Busca reuniões de um feed ICS e retorna o relatório computado
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.ReportRequest true "Configuração do relatório"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      401 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/reports [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req model.ReportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return
	}

	if _, err := middleware.ValidateFeedURL(req.FeedURL); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "feed_url inválida",
			Details: err.Error(),
		})
		return
	}

	result, err := h.reportService.GenerateFromFeed(c.Request.Context(), req, time.Now())
	if err != nil {
		h.handleError(c, err)
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

// ExportReport gera o relatório e o devolve como planilha Excel
// @Summary      Exporta relatório em Excel
// @Description  Gera a planilha do relatório; com webhook_url o processamento é assíncrono
// @Tags         reports
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        request body model.ReportRequest true "Configuração do relatório"
// @Success      200 {object} model.Response "Quando webhook_url é fornecido"
// @Success      200 {file} binary "Arquivo Excel quando webhook_url não é fornecido"
// @Failure      400 {object} model.ErrorResponse
// @Failure      401 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/reports/export [post]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var req model.ReportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return
	}

	if _, err := middleware.ValidateFeedURL(req.FeedURL); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "feed_url inválida",
			Details: err.Error(),
		})
		return
	}

	// Se webhook_url foi fornecido, processa de forma assíncrona
	if req.WebhookURL != "" {
		go h.processAsync(req)

		c.JSON(http.StatusOK, model.Response{
			Success: true,
		})
		return
	}

	result, err := h.reportService.GenerateFromFeed(c.Request.Context(), req, time.Now())
	if err != nil {
		h.handleError(c, err)
		return
	}

	buf, err := h.excelGenerator.Generate(result.Report, result.Meetings)
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.Get().IncrementReportExported()

	filename := fmt.Sprintf("reunioes_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))

	c.Header("Content-Type", xlsxMime)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Header("X-Total-Meetings", fmt.Sprintf("%d", result.Meta.TotalMeetings))

	c.Data(http.StatusOK, xlsxMime, buf.Bytes())
}

// processAsync processa o export de forma assíncrona e envia para o webhook
func (h *ReportHandler) processAsync(req model.ReportRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log := logger.Global()
	log.Info().Str("webhook", req.WebhookURL).Msg("Iniciando export assíncrono")

	result, err := h.reportService.GenerateFromFeed(ctx, req, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Erro ao gerar relatório para webhook")
		if webhookErr := h.webhookService.SendError(ctx, req.WebhookURL, err); webhookErr != nil {
			log.Error().Err(webhookErr).Msg("Erro ao enviar webhook de erro")
		}
		return
	}

	buf, err := h.excelGenerator.Generate(result.Report, result.Meetings)
	if err != nil {
		log.Error().Err(err).Msg("Erro ao gerar Excel para webhook")
		if webhookErr := h.webhookService.SendError(ctx, req.WebhookURL, err); webhookErr != nil {
			log.Error().Err(webhookErr).Msg("Erro ao enviar webhook de erro")
		}
		return
	}

	metrics.Get().IncrementReportExported()

	filename := fmt.Sprintf("reunioes_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	if err := h.webhookService.SendReport(ctx, req.WebhookURL, filename, buf.Bytes(),
		result.Meta.TotalMeetings, result.Report.TotalCost); err != nil {
		log.Error().Err(err).Msg("Erro ao enviar webhook de sucesso")
	}
}

// handleError trata erros e retorna resposta apropriada
func (h *ReportHandler) handleError(c *gin.Context, err error) {
	logger.FromGin(c).Error().Err(err).Msg("Erro ao gerar relatório")

	switch {
	case errors.Is(err, model.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, model.ErrorResponse{
			Success: false,
			Error:   "rate limit excedido",
			Details: "aguarde alguns segundos e tente novamente",
		})
	case errors.Is(err, model.ErrFeedUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Success: false,
			Error:   "feed recusou o acesso",
			Details: "verifique a URL secreta do feed ICS",
		})
	case errors.Is(err, model.ErrFeedNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "feed não encontrado",
			Details: "verifique a URL do feed ICS",
		})
	case errors.Is(err, model.ErrInvalidFeed):
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Success: false,
			Error:   "feed ICS inválido",
			Details: "o conteúdo retornado não é um calendário válido",
		})
	case errors.Is(err, model.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, model.ErrorResponse{
			Success: false,
			Error:   "timeout na requisição",
			Details: "o servidor do feed demorou muito para responder",
		})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
	}
}
