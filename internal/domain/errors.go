package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrCapacityExceeded  = errors.New("limite de transações atingido")
	ErrPersistence       = errors.New("falha ao persistir dados")
)
