package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/match"
)

// JSONBoard represents a position in JSON format.
type JSONBoard struct {
	Type     string   `json:"type"` // always "board"
	FEN      string   `json:"fen"`
	ToMove   string   `json:"toMove"` // "white" or "black"
	Status   string   `json:"status"`
	LastMove string   `json:"lastMove,omitempty"`
	Rows     []string `json:"rows"` // rank 8 first, '.' for empty
	Moves    []string `json:"moves,omitempty"`
	Checkers []string `json:"checkers,omitempty"` // squares giving check
}

// JSONEvent represents an accepted move in JSON format.
type JSONEvent struct {
	Type      string   `json:"type"` // always "move"
	Move      string   `json:"move"`
	Colour    string   `json:"colour"`
	Piece     string   `json:"piece"`
	Captured  string   `json:"captured,omitempty"`
	Castled   string   `json:"castled,omitempty"` // "kingside" or "queenside"
	Promotion string   `json:"promotion,omitempty"`
	Status    string   `json:"status"`
	Messages  []string `json:"messages,omitempty"`
	FEN       string   `json:"fen"`
}

// JSONMessage carries a free-form line.
type JSONMessage struct {
	Type string `json:"type"` // always "message"
	Text string `json:"text"`
}

// BoardToJSON converts a position to JSON format.
func BoardToJSON(p Position, fen string, withMoves bool) *JSONBoard {
	jb := &JSONBoard{
		Type:   "board",
		FEN:    fen,
		ToMove: colourName(p.State.ToMove),
		Status: p.Status.String(),
		Rows:   make([]string, 0, chess.BoardSize),
	}
	for row := 0; row < chess.BoardSize; row++ {
		jb.Rows = append(jb.Rows, rankString(&p.State.Board, row))
	}
	if p.LastMove != nil {
		jb.LastMove = p.LastMove.String()
	}
	if withMoves {
		jb.Moves = p.MoveTokens()
	}
	jb.Checkers = checkerNames(p)
	return jb
}

// EventToJSON converts a match event to JSON format.
func EventToJSON(ev match.Event) *JSONEvent {
	o := ev.Outcome
	je := &JSONEvent{
		Type:     "move",
		Move:     o.Move.String(),
		Colour:   colourName(o.Mover.Colour),
		Piece:    o.Mover.Kind.String(),
		Status:   o.Status.String(),
		Messages: ev.Messages,
		FEN:      ev.FEN,
	}
	if !o.Captured.IsEmpty() {
		je.Captured = o.Captured.Kind.String()
	}
	if o.Castled {
		je.Castled = o.Side.String()
	}
	if o.Promoted != chess.Empty {
		je.Promotion = o.Promoted.String()
	}
	return je
}

// JSONWriter writes one JSON object per line.
type JSONWriter struct {
	enc *json.Encoder
	cfg *config.OutputConfig
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{
		enc: json.NewEncoder(w),
		cfg: cfg,
	}
}

// WriteBoard writes a board object.
func (jw *JSONWriter) WriteBoard(p Position) error {
	return jw.enc.Encode(BoardToJSON(p, fenOf(p), jw.cfg.ShowMoves))
}

// WriteEvent writes a move object.
func (jw *JSONWriter) WriteEvent(ev match.Event) error {
	return jw.enc.Encode(EventToJSON(ev))
}

// WriteMessage writes a message object.
func (jw *JSONWriter) WriteMessage(msg string) error {
	return jw.enc.Encode(&JSONMessage{Type: "message", Text: msg})
}
