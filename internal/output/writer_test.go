package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/match"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

func plainConfig() *config.OutputConfig {
	cfg := config.NewOutputConfig()
	cfg.Colour = false
	return cfg
}

func playTokens(t *testing.T, m *match.Match, tokens ...string) []match.Event {
	t.Helper()
	var events []match.Event
	m.Observe(func(ev match.Event) { events = append(events, ev) })
	for _, token := range tokens {
		if _, err := m.SubmitToken(token); err != nil {
			t.Fatalf("SubmitToken(%s) error = %v", token, err)
		}
	}
	return events
}

// TestTextWriter_InitialBoard verifies the full diagram of the start position
func TestTextWriter_InitialBoard(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTextWriter(&buf, plainConfig())

	if err := tw.WriteBoard(PositionOf(match.New())); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}

	want := strings.Join([]string{
		"  +-----------------+",
		"8 | r n b q k b n r |",
		"7 | p p p p p p p p |",
		"6 | . . . . . . . . |",
		"5 | . . . . . . . . |",
		"4 | . . . . . . . . |",
		"3 | . . . . . . . . |",
		"2 | P P P P P P P P |",
		"1 | R N B Q K B N R |",
		"  +-----------------+",
		"    a b c d e f g h",
		"White to move",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteBoard() =\n%s\nwant\n%s", got, want)
	}
}

func TestTextWriter_FlippedWithoutCoordinates(t *testing.T) {
	cfg := plainConfig()
	cfg.Flip = true
	cfg.Coordinates = false
	var buf bytes.Buffer

	m := match.New()
	playTokens(t, m, "e2e4")
	if err := NewTextWriter(&buf, cfg).WriteBoard(PositionOf(m)); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[1] != "| R N B K Q B N R |" {
		t.Errorf("first rank from Black's side = %q", lines[1])
	}
	if lines[4] != "| . . . P . . . . |" {
		t.Errorf("fourth rank from Black's side = %q", lines[4])
	}
	if lines[8] != "| r n b k q b n r |" {
		t.Errorf("eighth rank from Black's side = %q", lines[8])
	}
	if lines[10] != "Black to move" {
		t.Errorf("status = %q, want Black to move", lines[10])
	}
}

func TestTextWriter_StatusLines(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"check", "R3k3/8/8/8/8/8/8/4K3 b - - 0 1", "Black to move, in check from a8"},
		{"double check", "4k3/8/8/1B6/8/8/8/4RK2 b - - 0 1", "Black to move, in check from b5, e1"},
		{"checkmate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", "Checkmate! White wins"},
		{"stalemate", "k7/P7/1K6/8/8/8/8/8 b - - 0 1", "Stalemate! The game is drawn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := match.NewFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewFromFEN(%q) error = %v", tt.fen, err)
			}
			var buf bytes.Buffer
			if err := NewTextWriter(&buf, plainConfig()).WriteBoard(PositionOf(m)); err != nil {
				t.Fatalf("WriteBoard failed: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want+"\n") {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestTextWriter_ShowMoves(t *testing.T) {
	cfg := plainConfig()
	cfg.ShowMoves = true
	m, err := match.NewFromFEN("k7/8/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewTextWriter(&buf, cfg).WriteBoard(PositionOf(m)); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Moves: h1g1 h1g2 h1h2\n") {
		t.Errorf("output missing move list:\n%s", buf.String())
	}
}

func TestTextWriter_EventAndMessage(t *testing.T) {
	m := match.New()
	events := playTokens(t, m, "e2e4", "d7d5", "e4d5")

	var buf bytes.Buffer
	tw := NewTextWriter(&buf, plainConfig())
	if err := tw.WriteEvent(events[2]); err != nil {
		t.Fatalf("WriteEvent failed: %v", err)
	}
	if err := tw.WriteMessage("Your move"); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}

	want := "Black Pawn captured by White Pawn!\nYour move\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

// TestJSONWriter_WriteBoard verifies JSON writer outputs correct format
func TestJSONWriter_WriteBoard(t *testing.T) {
	cfg := plainConfig()
	cfg.ShowMoves = true
	m := match.New()
	playTokens(t, m, "g1f3")

	var buf bytes.Buffer
	if err := NewJSONWriter(&buf, cfg).WriteBoard(PositionOf(m)); err != nil {
		t.Fatalf("WriteBoard failed: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected a single line, got %q", buf.String())
	}

	var got JSONBoard
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Type != "board" || got.ToMove != "black" || got.Status != "Ongoing" {
		t.Errorf("header = %+v", got)
	}
	if got.LastMove != "g1f3" {
		t.Errorf("LastMove = %q, want g1f3", got.LastMove)
	}
	if got.FEN != m.FEN() {
		t.Errorf("FEN = %q, want %q", got.FEN, m.FEN())
	}
	if len(got.Rows) != 8 || got.Rows[5] != ".....N.." || got.Rows[7] != "RNBQKB.R" {
		t.Errorf("Rows = %v", got.Rows)
	}
	if len(got.Moves) != 20 {
		t.Errorf("len(Moves) = %d, want 20", len(got.Moves))
	}
}

func TestEventToJSON(t *testing.T) {
	m, err := match.NewFromFEN("r3k3/1P6/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	events := playTokens(t, m, "b7a8n", "e8d7", "e1g1")

	promo := EventToJSON(events[0])
	if promo.Move != "b7a8n" || promo.Colour != "white" || promo.Piece != "Pawn" {
		t.Errorf("promotion event = %+v", promo)
	}
	if promo.Captured != "Rook" || promo.Promotion != "Knight" {
		t.Errorf("promotion capture = %+v", promo)
	}

	castle := EventToJSON(events[2])
	if castle.Castled != "kingside" || castle.Piece != "King" || castle.Captured != "" {
		t.Errorf("castle event = %+v", castle)
	}
	if castle.FEN != m.FEN() {
		t.Errorf("FEN = %q, want %q", castle.FEN, m.FEN())
	}
}

func TestBoardToJSON_Checkers(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"quiet", engine.InitialFEN, nil},
		{"double check", "4k3/8/8/1B6/8/8/8/4RK2 b - - 0 1", []string{"b5", "e1"}},
		{"checkmate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", []string{"a8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := match.NewFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewFromFEN(%q) error = %v", tt.fen, err)
			}
			p := PositionOf(m)
			testutil.AssertEqual(t, BoardToJSON(p, fenOf(p), false).Checkers, tt.want)
		})
	}
}

func TestJSONWriter_EventAndMessage(t *testing.T) {
	m := match.New()
	events := playTokens(t, m, "f2f3", "e7e5", "g2g4", "d8h4")

	var buf bytes.Buffer
	jw := NewJSONWriter(&buf, plainConfig())
	if err := jw.WriteEvent(events[3]); err != nil {
		t.Fatalf("WriteEvent failed: %v", err)
	}
	if err := jw.WriteMessage("good game"); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var ev JSONEvent
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ev.Status != "Checkmate" || ev.Colour != "black" {
		t.Errorf("event = %+v", ev)
	}
	if len(ev.Messages) == 0 || ev.Messages[len(ev.Messages)-1] != "Checkmate! Black wins" {
		t.Errorf("Messages = %v", ev.Messages)
	}
	var msg JSONMessage
	if err := json.Unmarshal([]byte(lines[1]), &msg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if msg != (JSONMessage{Type: "message", Text: "good game"}) {
		t.Errorf("message = %+v", msg)
	}
}

func TestNewWriter(t *testing.T) {
	cfg := plainConfig()
	if _, ok := NewWriter(&bytes.Buffer{}, cfg).(*TextWriter); !ok {
		t.Error("text format should give a TextWriter")
	}
	cfg.Format = config.JSONFormat
	if _, ok := NewWriter(&bytes.Buffer{}, cfg).(*JSONWriter); !ok {
		t.Error("json format should give a JSONWriter")
	}
}

func TestPositionOf_Initial(t *testing.T) {
	p := PositionOf(match.New())
	if p.LastMove != nil {
		t.Errorf("LastMove = %v, want nil", p.LastMove)
	}
	if fenOf(p) != engine.InitialFEN {
		t.Errorf("fenOf() = %q", fenOf(p))
	}
}
