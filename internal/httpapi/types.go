package httpapi

import (
	"github.com/gbyrne/gaa-ref-timer/internal/domain"
	"github.com/gbyrne/gaa-ref-timer/pkg/matchdto"
)

type calculateResponse struct {
	Session string                    `json:"session"`
	Result  *matchdto.CalculationView `json:"result"`
	Text    string                    `json:"text,omitempty"`
}

type saveResponse struct {
	Session string                 `json:"session"`
	Record  domain.HistoryRecord   `json:"record"`
	History []matchdto.HistoryView `json:"history"`
}

type historyResponse struct {
	Session string                 `json:"session"`
	History []matchdto.HistoryView `json:"history"`
	Text    string                 `json:"text,omitempty"`
}

type errorResponse struct {
	Error matchdto.DomainError `json:"error"`
}
