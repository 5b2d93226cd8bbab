package model

// ReportRequest representa o payload de entrada para geração de relatório
// a partir de um feed ICS real.
type ReportRequest struct {
	FeedURL    string    `json:"feed_url" binding:"required,url"`
	Days       int       `json:"days" binding:"omitempty,min=1,max=90"`
	Settings   *Settings `json:"settings,omitempty"`
	WebhookURL string    `json:"webhook_url" binding:"omitempty,url"`
}

// DemoReportRequest representa o payload para geração de relatório com dados
// sintéticos por papel profissional.
type DemoReportRequest struct {
	Role     string    `json:"role" binding:"required"`
	Days     int       `json:"days" binding:"omitempty,min=1,max=90"`
	Seed     *int64    `json:"seed,omitempty"` // presente = geração determinística
	Settings *Settings `json:"settings,omitempty"`
}

// Response representa a resposta padrão da API
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Meta contém metadados da resposta
type Meta struct {
	TotalMeetings int    `json:"total_meetings,omitempty"`
	Days          int    `json:"days,omitempty"`
	FromCache     bool   `json:"from_cache,omitempty"`
	Role          string `json:"role,omitempty"`
}

// ErrorResponse representa uma resposta de erro
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WebhookPayload representa o payload enviado para o webhook quando o export
// é processado de forma assíncrona.
type WebhookPayload struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	TotalMeetings int    `json:"total_meetings,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	FileMime      string `json:"file_mime,omitempty"`
	FileBase64    string `json:"file_base64,omitempty"`
}
