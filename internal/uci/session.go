package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// stopGrace bounds how long an abandoned search may take to report its
// bestmove after stop.
const stopGrace = time.Second

// Session manages a UCI engine conversation and its event stream.
type Session struct {
	w      io.Writer
	closer io.Closer
	events chan Event
	errCh  chan error
	logger *log.Logger

	mu     sync.Mutex // serialises writes
	name   string
	stale  bool // a search was abandoned and its bestmove is still due
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger logs every line sent to and received from the engine.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts reading engine output from r and sends commands to w.
// closer, if not nil, is closed by Close after quit has been sent.
func NewSession(r io.Reader, w io.Writer, closer io.Closer, opts ...Option) *Session {
	s := &Session{
		w:      w,
		closer: closer,
		events: make(chan Event, 64),
		errCh:  make(chan error, 1),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.readLoop(r)
	return s
}

// StartSession launches a UCI engine and starts a reader goroutine.
func StartSession(ctx context.Context, path string, args []string, opts ...Option) (*Session, error) {
	proc, err := Start(ctx, path, args...)
	if err != nil {
		return nil, err
	}
	s := NewSession(proc.Stdout(), proc, proc, opts...)
	go s.logStderr(proc.Stderr())
	return s, nil
}

// logStderr copies the engine's diagnostics into the session logger until
// the engine exits. An engine blocked on a full stderr pipe stops answering.
func (s *Session) logStderr(r io.Reader) {
	_, _ = io.Copy(s.logger.Writer(), r)
}

func (s *Session) readLoop(r io.Reader) {
	defer close(s.events)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.logger.Printf("< %s", line)
		event, err := ParseLine(line)
		if err != nil {
			s.logger.Printf("ignoring line: %v", err)
			continue
		}
		s.events <- event
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	s.errCh <- err
}

// Name returns the engine name reported during the handshake.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Send sends a single command line to the engine.
func (s *Session) Send(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	s.logger.Printf("> %s", line)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err := io.WriteString(s.w, line)
	return err
}

// Handshake runs the standard UCI handshake.
func (s *Session) Handshake(ctx context.Context) error {
	if err := s.Send("uci"); err != nil {
		return err
	}
	for {
		event, err := s.nextEvent(ctx)
		if err != nil {
			return errors.Wrap(err, "waiting for uciok")
		}
		if event.Type == EventID && event.Key == "name" {
			s.mu.Lock()
			s.name = event.Value
			s.mu.Unlock()
		}
		if event.Type == EventUCIOK {
			break
		}
	}
	return s.ready(ctx)
}

// NewGame tells the engine that the next position belongs to a new game.
func (s *Session) NewGame(ctx context.Context) error {
	if err := s.Send("ucinewgame"); err != nil {
		return err
	}
	return s.ready(ctx)
}

func (s *Session) ready(ctx context.Context) error {
	if err := s.Send("isready"); err != nil {
		return err
	}
	_, err := s.waitForEvent(ctx, EventReadyOK)
	return errors.Wrap(err, "waiting for readyok")
}

// BestMove runs a search of moveTime on the FEN position and returns the
// engine's move token together with the last score it reported, if any.
// If ctx ends first the search is stopped and ctx.Err() is returned.
func (s *Session) BestMove(ctx context.Context, fen string, moveTime time.Duration) (string, Score, error) {
	if err := s.drainStale(); err != nil {
		return "", Score{}, err
	}
	if err := s.Send("position fen " + fen); err != nil {
		return "", Score{}, err
	}
	ms := moveTime.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	if err := s.Send(fmt.Sprintf("go movetime %d", ms)); err != nil {
		return "", Score{}, err
	}

	var score Score
	for {
		event, err := s.nextEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.mu.Lock()
				s.stale = true
				s.mu.Unlock()
				_ = s.Send("stop")
			}
			return "", Score{}, err
		}
		switch event.Type {
		case EventInfo:
			if parsed, ok := parseInfoScore(event.Raw); ok {
				score = parsed
			}
		case EventBestMove:
			return event.Move, score, nil
		}
	}
}

// drainStale consumes the bestmove of a search abandoned by BestMove.
func (s *Session) drainStale() error {
	s.mu.Lock()
	stale := s.stale
	s.stale = false
	s.mu.Unlock()
	if !stale {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopGrace)
	defer cancel()
	_, err := s.waitForEvent(ctx, EventBestMove)
	return errors.Wrap(err, "waiting for stopped search")
}

// Close asks the engine to quit and releases the underlying process.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	_ = s.Send("quit")

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Session) waitForEvent(ctx context.Context, want EventType) (Event, error) {
	for {
		event, err := s.nextEvent(ctx)
		if err != nil {
			return Event{}, err
		}
		if event.Type == want {
			return event, nil
		}
	}
}

func (s *Session) nextEvent(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case event, ok := <-s.events:
		if !ok {
			return Event{}, s.readErr()
		}
		return event, nil
	}
}

// readErr reports why the event stream ended.
func (s *Session) readErr() error {
	select {
	case err := <-s.errCh:
		s.errCh <- err
		if err == io.EOF {
			return errors.Wrap(errors.ErrClosed, "engine output closed")
		}
		return err
	default:
		return errors.Wrap(errors.ErrClosed, "engine output closed")
	}
}
