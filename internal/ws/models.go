package ws

import (
	"encoding/json"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type LegalMovesRequest struct {
	Board string `json:"board"`
}

type LegalMovesResponse struct {
	Turn  string   `json:"turn"`
	Moves []string `json:"moves"`
}

type BestMoveRequest struct {
	Board        string `json:"board"`
	Depth        int    `json:"depth"`
	TimeBudgetMs int    `json:"time_budget_ms"`
}
