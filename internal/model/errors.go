package model

import "errors"

var (
	// ErrFeedUnauthorized indica que o feed ICS recusou o acesso (401/403)
	ErrFeedUnauthorized = errors.New("feed de calendário recusou o acesso")

	// ErrFeedNotFound indica que a URL do feed não existe
	ErrFeedNotFound = errors.New("feed de calendário não encontrado")

	// ErrTimeout indica timeout na requisição ao feed
	ErrTimeout = errors.New("timeout na requisição ao feed de calendário")

	// ErrInvalidFeed indica que o corpo retornado não é um ICS válido
	ErrInvalidFeed = errors.New("feed de calendário inválido")

	// ErrRateLimited indica que o provedor do feed retornou 429
	ErrRateLimited = errors.New("rate limit excedido no provedor do feed")

	// ErrUnknownRole indica que o papel pedido não existe no catálogo demo
	ErrUnknownRole = errors.New("papel desconhecido no catálogo demo")
)
