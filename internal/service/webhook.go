package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// WebhookService envia resultados de export para webhooks
type WebhookService struct {
	httpClient *http.Client
}

// NewWebhookService cria um novo serviço de webhook
func NewWebhookService() *WebhookService {
	return &WebhookService{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendReport envia o arquivo Excel gerado em base64 junto com os agregados
// principais do relatório.
func (w *WebhookService) SendReport(ctx context.Context, webhookURL, fileName string, file []byte, totalMeetings int, totalCost float64) error {
	payload := model.WebhookPayload{
		Success:       true,
		TotalMeetings: totalMeetings,
		TotalCost:     totalCost,
		FileName:      fileName,
		FileMime:      "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FileBase64:    base64.StdEncoding.EncodeToString(file),
	}

	return w.send(ctx, webhookURL, payload)
}

// SendError envia o resultado de erro para o webhook
func (w *WebhookService) SendError(ctx context.Context, webhookURL string, err error) error {
	payload := model.WebhookPayload{
		Success: false,
		Error:   err.Error(),
	}

	return w.send(ctx, webhookURL, payload)
}

// send envia o payload para o webhook
func (w *WebhookService) send(ctx context.Context, webhookURL string, payload model.WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("criar request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook retornou status %d", resp.StatusCode)
	}

	logger.Get(ctx).Info().
		Str("url", webhookURL).
		Int("status", resp.StatusCode).
		Msg("Webhook enviado com sucesso")

	return nil
}
