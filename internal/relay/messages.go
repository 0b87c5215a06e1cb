package relay

import (
	"encoding/json"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// ProtocolVersion is bumped whenever the envelope or a message changes shape.
const ProtocolVersion = 1

// MessageType identifies the payload of an envelope.
type MessageType int

const (
	TypeHello MessageType = iota
	TypeMove
	TypeReset
	TypeBye
)

func (m MessageType) String() string {
	switch m {
	case TypeHello:
		return "Hello"
	case TypeMove:
		return "Move"
	case TypeReset:
		return "Reset"
	case TypeBye:
		return "Bye"
	default:
		return "Unknown MessageType"
	}
}

// Message is anything that can travel inside an envelope.
type Message interface {
	Type() MessageType
}

// Envelope is one line on the wire.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Hello opens a session. The host sends it first; the joiner answers with
// its own name.
type Hello struct {
	Version int    `json:"version"`
	Session string `json:"session"`
	Name    string `json:"name"`
	Colour  string `json:"colour"`        // colour the sender plays
	FEN     string `json:"fen,omitempty"` // starting position, host only
}

func (Hello) Type() MessageType { return TypeHello }

// MoveRecord is a move in board coordinates. Row 0 is Black's back rank and
// column 0 is the a-file. Fingerprint is the sender's position hash after
// the move.
type MoveRecord struct {
	FromRow     int    `json:"fromRow"`
	FromCol     int    `json:"fromCol"`
	ToRow       int    `json:"toRow"`
	ToCol       int    `json:"toCol"`
	Promotion   string `json:"promotion,omitempty"` // q, r, b or n
	Fingerprint string `json:"fingerprint,omitempty"`
}

func (MoveRecord) Type() MessageType { return TypeMove }

// RecordFromMove converts a move into its wire form.
func RecordFromMove(m chess.Move) MoveRecord {
	rec := MoveRecord{
		FromRow: m.From.Row, FromCol: m.From.Col,
		ToRow: m.To.Row, ToCol: m.To.Col,
	}
	if m.Promotion.IsPromotionTarget() {
		rec.Promotion = string(chess.B(m.Promotion).Letter())
	}
	return rec
}

// Move converts the record back, rejecting squares off the board and
// unknown promotion letters.
func (r MoveRecord) Move() (chess.Move, error) {
	move := chess.NewMove(chess.Sq(r.FromRow, r.FromCol), chess.Sq(r.ToRow, r.ToCol))
	if !move.From.Valid() || !move.To.Valid() {
		return chess.Move{}, errors.Wrapf(errors.ErrProtocol, "move record %+v off the board", r)
	}
	if r.Promotion != "" {
		if len(r.Promotion) != 1 || !chess.KindFromLetter(r.Promotion[0]).IsPromotionTarget() {
			return chess.Move{}, errors.Wrapf(errors.ErrProtocol, "promotion %q", r.Promotion)
		}
		move.Promotion = chess.KindFromLetter(r.Promotion[0])
	}
	return move, nil
}

// Reset asks the opponent to start a new game from the starting position.
type Reset struct{}

func (Reset) Type() MessageType { return TypeReset }

// Bye announces that the sender is leaving.
type Bye struct {
	Reason string `json:"reason,omitempty"`
}

func (Bye) Type() MessageType { return TypeBye }

// encode wraps msg in an envelope and terminates it with a newline.
func encode(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(Envelope{Type: msg.Type(), Data: data})
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// decode parses one line from the wire.
func decode(line []byte) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, errors.Wrapf(errors.ErrProtocol, "envelope: %v", err)
	}

	var msg Message
	var err error
	switch env.Type {
	case TypeHello:
		var m Hello
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case TypeMove:
		var m MoveRecord
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case TypeReset:
		msg = Reset{}
	case TypeBye:
		var m Bye
		if len(env.Data) > 0 {
			err = json.Unmarshal(env.Data, &m)
		}
		msg = m
	default:
		return nil, errors.Wrapf(errors.ErrProtocol, "unknown message type %d", env.Type)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProtocol, "%s: %v", env.Type, err)
	}
	return msg, nil
}
