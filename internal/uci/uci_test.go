package uci

import (
	"bufio"
	"context"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/match"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

// fakeEngine answers each command line with the lines returned by reply.
type fakeEngine struct {
	mu       sync.Mutex
	received []string
}

func (f *fakeEngine) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

// newFakeSession connects a Session to an in-memory engine.
func newFakeSession(t *testing.T, reply func(line string) []string) (*Session, *fakeEngine) {
	t.Helper()
	toEngineR, toEngineW := io.Pipe()
	fromEngineR, fromEngineW := io.Pipe()
	fake := &fakeEngine{}

	go func() {
		defer fromEngineW.Close()
		scanner := bufio.NewScanner(toEngineR)
		for scanner.Scan() {
			line := scanner.Text()
			fake.mu.Lock()
			fake.received = append(fake.received, line)
			fake.mu.Unlock()
			if line == "quit" {
				return
			}
			for _, out := range reply(line) {
				if _, err := io.WriteString(fromEngineW, out+"\n"); err != nil {
					return
				}
			}
		}
	}()

	s := NewSession(fromEngineR, toEngineW, toEngineW)
	t.Cleanup(func() { s.Close() })
	return s, fake
}

// standardReply behaves like a minimal engine that always plays move.
func standardReply(move string) func(string) []string {
	return func(line string) []string {
		switch {
		case line == "uci":
			return []string{"id name FakeFish 1.0", "id author nobody", "option name Hash type spin default 16", "uciok"}
		case line == "isready":
			return []string{"readyok"}
		case strings.HasPrefix(line, "go"):
			return []string{"info depth 1 score cp 12 pv " + move, "info depth 2 score cp -30 pv " + move, "bestmove " + move + " ponder e2e4"}
		}
		return nil
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Event
	}{
		{"uciok", Event{Type: EventUCIOK, Raw: "uciok"}},
		{"readyok\r", Event{Type: EventReadyOK, Raw: "readyok"}},
		{"id name Stockfish 16", Event{Type: EventID, Key: "name", Value: "Stockfish 16", Raw: "id name Stockfish 16"}},
		{"bestmove e2e4", Event{Type: EventBestMove, Move: "e2e4", Raw: "bestmove e2e4"}},
		{"bestmove e7e8q ponder a2a3", Event{Type: EventBestMove, Move: "e7e8q", Ponder: "a2a3", Raw: "bestmove e7e8q ponder a2a3"}},
		{"info depth 3 score cp 20", Event{Type: EventInfo, Raw: "info depth 3 score cp 20"}},
		{"option name Hash type spin", Event{Type: EventUnknown, Raw: "option name Hash type spin"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestParseLine_Invalid(t *testing.T) {
	for _, line := range []string{"", "   ", "id name", "bestmove"} {
		_, err := ParseLine(line)
		testutil.AssertErrorIs(t, err, errors.ErrProtocol, "ParseLine(%q)", line)
	}
}

func TestParseInfoScore(t *testing.T) {
	tests := []struct {
		line   string
		want   Score
		wantOK bool
	}{
		{"info depth 10 score cp 35 nodes 100", Score{Kind: "cp", Value: 35}, true},
		{"info depth 10 score mate -3", Score{Kind: "mate", Value: -3}, true},
		{"info depth 10 score lowerbound 3", Score{}, false},
		{"info string hello", Score{}, false},
	}

	for _, tt := range tests {
		got, ok := parseInfoScore(tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseInfoScore(%q) = %v, %v, want %v, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
	testutil.AssertEqual(t, Score{Kind: "cp", Value: -4}.String(), "cp -4")
	testutil.AssertEqual(t, Score{}.String(), "unknown")
}

func TestSession_Handshake(t *testing.T) {
	s, fake := newFakeSession(t, standardReply("e7e5"))

	testutil.AssertNoError(t, s.Handshake(testContext(t)))
	testutil.AssertEqual(t, s.Name(), "FakeFish 1.0")
	testutil.AssertEqual(t, fake.lines(), []string{"uci", "isready"})
}

func TestSession_BestMove(t *testing.T) {
	s, fake := newFakeSession(t, standardReply("e7e5"))
	ctx := testContext(t)

	testutil.AssertNoError(t, s.Handshake(ctx))
	testutil.AssertNoError(t, s.NewGame(ctx))

	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	move, score, err := s.BestMove(ctx, fen, 250*time.Millisecond)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move, "e7e5")
	testutil.AssertEqual(t, score, Score{Kind: "cp", Value: -30})

	lines := fake.lines()
	testutil.AssertEqual(t, lines[len(lines)-2:], []string{"position fen " + fen, "go movetime 250"})
}

func TestSession_BestMoveCancelled(t *testing.T) {
	var searches int32
	s, fake := newFakeSession(t, func(line string) []string {
		switch {
		case line == "stop":
			return []string{"bestmove a7a6"}
		case strings.HasPrefix(line, "go") && atomic.AddInt32(&searches, 1) > 1:
			return []string{"bestmove h7h6"}
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err := s.BestMove(ctx, "4k3/8/8/8/8/8/8/4K3 b - - 0 1", time.Minute)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)

	// The stopped search's bestmove must not answer the next search.
	move, _, err := s.BestMove(testContext(t), "4k3/8/8/8/8/8/8/4K3 b - - 0 1", time.Millisecond)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move, "h7h6")
	testutil.AssertEqual(t, fake.lines()[2], "stop")
}

func TestSession_EngineExits(t *testing.T) {
	s, _ := newFakeSession(t, func(line string) []string { return nil })
	testutil.AssertNoError(t, s.Close())

	_, _, err := s.BestMove(testContext(t), "4k3/8/8/8/8/8/8/4K3 w - - 0 1", time.Millisecond)
	testutil.AssertErrorIs(t, err, errors.ErrClosed)
}

func TestPlayer_Move(t *testing.T) {
	s, _ := newFakeSession(t, standardReply("e7e5"))
	ctx := testContext(t)
	testutil.AssertNoError(t, s.Handshake(ctx))

	m := match.New()
	if _, err := m.SubmitToken("e2e4"); err != nil {
		t.Fatalf("SubmitToken(e2e4) error: %v", err)
	}

	outcome, err := NewPlayer(s, 10*time.Millisecond).Move(ctx, m)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, outcome.Mover, chess.B(chess.Pawn))
	testutil.AssertEqual(t, m.ToMove(), chess.White)
}

func TestPlayer_RejectsIllegalEngineMove(t *testing.T) {
	tests := []struct {
		name    string
		move    string
		wantErr error
	}{
		{"illegal shape", "e7e4", errors.ErrIllegalShape},
		{"wrong side", "e2e4", errors.ErrWrongTurn},
		{"no move", "(none)", errors.ErrProtocol},
		{"garbage", "xyzzy", errors.ErrInvalidMoveToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newFakeSession(t, standardReply(tt.move))
			ctx := testContext(t)

			m := match.New()
			if _, err := m.SubmitToken("d2d4"); err != nil {
				t.Fatalf("SubmitToken(d2d4) error: %v", err)
			}
			before := m.State()

			_, err := NewPlayer(s, time.Millisecond).Move(ctx, m)
			testutil.AssertErrorIs(t, err, tt.wantErr)
			testutil.AssertEqual(t, m.State(), before)
		})
	}
}

// noisyEngine writes 256 KiB to stderr before answering on stdout, well past
// the capacity of an undrained pipe.
const noisyEngine = `head -c 262144 /dev/zero >&2
while read line; do
  case "$line" in
    uci) echo "id name NoisyFish"; echo uciok ;;
    isready) echo readyok ;;
    quit) exit 0 ;;
  esac
done`

type countingWriter struct {
	n atomic.Int64
}

func (w *countingWriter) Write(b []byte) (int, error) {
	w.n.Add(int64(len(b)))
	return len(b), nil
}

func TestStartSession_EngineWritesStderr(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	logged := &countingWriter{}
	ctx := testContext(t)

	s, err := StartSession(ctx, sh, []string{"-c", noisyEngine}, WithLogger(log.New(logged, "", 0)))
	if err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Handshake(ctx); err != nil {
		t.Fatalf("Handshake() error: %v", err)
	}
	testutil.AssertEqual(t, s.Name(), "NoisyFish")
	if n := logged.n.Load(); n < 128*1024 {
		t.Errorf("logger received %d bytes, want most of the engine's stderr", n)
	}
}
