package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// EventType represents a UCI protocol event type.
type EventType int

const (
	EventUnknown EventType = iota
	EventID
	EventUCIOK
	EventReadyOK
	EventInfo
	EventBestMove
)

// Event is a parsed UCI protocol line.
type Event struct {
	Type   EventType
	Key    string
	Value  string
	Move   string
	Ponder string
	Raw    string
}

// Score represents a UCI evaluation score from the engine's point of view.
type Score struct {
	Kind  string // "cp" or "mate"
	Value int
}

// String returns a stable text representation for logging.
func (s Score) String() string {
	switch s.Kind {
	case "cp":
		return fmt.Sprintf("cp %d", s.Value)
	case "mate":
		return fmt.Sprintf("mate %d", s.Value)
	}
	return "unknown"
}

// ParseLine converts a raw line into a protocol event.
func ParseLine(line string) (Event, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Event{}, errors.Wrap(errors.ErrProtocol, "empty line")
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "id":
		if len(fields) < 3 {
			return Event{}, errors.Wrapf(errors.ErrProtocol, "invalid id: %q", line)
		}
		return Event{Type: EventID, Key: fields[1], Value: strings.Join(fields[2:], " "), Raw: line}, nil
	case "uciok":
		return Event{Type: EventUCIOK, Raw: line}, nil
	case "readyok":
		return Event{Type: EventReadyOK, Raw: line}, nil
	case "bestmove":
		if len(fields) < 2 {
			return Event{}, errors.Wrapf(errors.ErrProtocol, "invalid bestmove: %q", line)
		}
		e := Event{Type: EventBestMove, Move: fields[1], Raw: line}
		if len(fields) >= 4 && fields[2] == "ponder" {
			e.Ponder = fields[3]
		}
		return e, nil
	case "info":
		return Event{Type: EventInfo, Raw: line}, nil
	default:
		return Event{Type: EventUnknown, Raw: line}, nil
	}
}

// parseInfoScore extracts the score from an info line.
func parseInfoScore(line string) (Score, bool) {
	fields := strings.Fields(line)
	for i := 0; i+2 < len(fields); i++ {
		if fields[i] != "score" {
			continue
		}
		kind := fields[i+1]
		value, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return Score{}, false
		}
		if kind != "cp" && kind != "mate" {
			return Score{}, false
		}
		return Score{Kind: kind, Value: value}, true
	}
	return Score{}, false
}
