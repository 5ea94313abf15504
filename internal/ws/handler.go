package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

// Conn is the part of a websocket connection used by the handler.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	ws      Conn
	options search.Options
}

// NewHandler creates a new Handler. Searches use options, with depth and time budget overridable per request.
func NewHandler(ws Conn, options search.Options) *Handler {
	return &Handler{ws: ws, options: options}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (any, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case "legal_moves":
		return h.handleLegalMoves(req)
	case "best_move":
		return h.handleBestMove(req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection until it is closed.
// Requests that cannot be answered get a reply with an error instead of closing the connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		outgoing := &Outgoing{ID: req.ID}

		data, err := h.handleMessage(req)
		if err != nil {
			outgoing.Error = err.Error()
		} else {
			outgoing.Data = data
		}

		if err = h.writeMessage(outgoing); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleLegalMoves(req *Incoming) (*LegalMovesResponse, error) {
	var reqData LegalMovesRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws legal moves request unmarshal error: %w", err)
	}

	board, err := othello.DecodeGrid(reqData.Board)
	if err != nil {
		return nil, err
	}

	return &LegalMovesResponse{
		Turn:  board.Turn().String(),
		Moves: models.Fields(othello.LegalMoves(board, board.Turn())),
	}, nil
}

func (h *Handler) handleBestMove(req *Incoming) (*models.SearchResponse, error) {
	var reqData BestMoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws best move request unmarshal error: %w", err)
	}

	payload := models.AnalyzePayload{
		Board:        reqData.Board,
		Depth:        reqData.Depth,
		TimeBudgetMs: reqData.TimeBudgetMs,
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	board := payload.Position()

	depth := reqData.Depth
	if depth == 0 {
		depth = h.options.MaxDepth
	}

	timeBudget := time.Duration(reqData.TimeBudgetMs) * time.Millisecond
	if timeBudget == 0 {
		timeBudget = h.options.TimeBudget
	}

	engine, err := search.NewEngine(h.options)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.MaxAnalysisTimeBudget)
	defer cancel()

	result, err := engine.BestMove(ctx, board, board.Turn(), depth, timeBudget)
	if err != nil {
		return nil, err
	}

	response := models.NewSearchResponse(result, false)
	return &response, nil
}
