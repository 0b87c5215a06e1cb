// Package relay exchanges validated moves between two chessplay instances
// over TCP. Each side runs its own rules engine; the relay only carries move
// records as newline-delimited JSON envelopes.
package relay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// MessageQueueSize is the number of decoded messages buffered per peer.
const MessageQueueSize = 20

// Peer is one end of an established relay session.
type Peer struct {
	conn   net.Conn
	logger *log.Logger

	colour   chess.Colour
	session  string
	name     string
	opponent string
	startFEN string

	in    chan Message
	errCh chan error
	done  chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Option configures a Peer.
type Option func(*Peer)

// WithLogger logs session traffic.
func WithLogger(l *log.Logger) Option {
	return func(p *Peer) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithName sets the name announced to the opponent. A random name is used
// otherwise.
func WithName(name string) Option {
	return func(p *Peer) {
		if name != "" {
			p.name = name
		}
	}
}

// WithStartFEN sets the starting position the host announces.
func WithStartFEN(fen string) Option {
	return func(p *Peer) {
		if fen != "" {
			p.startFEN = fen
		}
	}
}

func newPeer(conn net.Conn, colour chess.Colour, opts []Option) *Peer {
	p := &Peer{
		conn:     conn,
		colour:   colour,
		logger:   log.New(io.Discard, "", 0),
		name:     petname.Generate(2, "-"),
		startFEN: engine.InitialFEN,
		in:       make(chan Message, MessageQueueSize),
		errCh:    make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Host listens on address, waits for one opponent and plays White.
func Host(ctx context.Context, address string, opts ...Option) (*Peer, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", address)
	}
	defer ln.Close()
	return Accept(ctx, ln, opts...)
}

// Accept waits on ln for one opponent and runs the host handshake.
func Accept(ctx context.Context, ln net.Listener, opts ...Option) (*Peer, error) {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, "accepting opponent")
	}
	return HostConn(ctx, conn, opts...)
}

// Join dials a host and plays Black.
func Join(ctx context.Context, address string, opts ...Option) (*Peer, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", address)
	}
	return JoinConn(ctx, conn, opts...)
}

// HostConn runs the host side of the handshake on an open connection.
func HostConn(ctx context.Context, conn net.Conn, opts ...Option) (*Peer, error) {
	p := newPeer(conn, chess.White, opts)
	p.session = uuid.NewString()
	go p.readLoop()

	err := p.send(Hello{
		Version: ProtocolVersion,
		Session: p.session,
		Name:    p.name,
		Colour:  p.colour.String(),
		FEN:     p.startFEN,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}

	hello, err := p.awaitHello(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if hello.Session != p.session {
		conn.Close()
		return nil, errors.Wrapf(errors.ErrProtocol, "joiner answered session %q", hello.Session)
	}
	p.opponent = hello.Name
	p.logger.Printf("session %s: %s joined as %s", p.session, p.opponent, p.colour.Opposite())
	return p, nil
}

// JoinConn runs the joining side of the handshake on an open connection.
func JoinConn(ctx context.Context, conn net.Conn, opts ...Option) (*Peer, error) {
	p := newPeer(conn, chess.Black, opts)
	go p.readLoop()

	hello, err := p.awaitHello(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if hello.Colour != chess.White.String() {
		conn.Close()
		return nil, errors.Wrapf(errors.ErrProtocol, "host plays %q", hello.Colour)
	}
	if _, err := engine.NewStateFromFEN(hello.FEN); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: host FEN: %w", errors.ErrProtocol, err)
	}
	p.session = hello.Session
	p.opponent = hello.Name
	p.startFEN = hello.FEN

	err = p.send(Hello{
		Version: ProtocolVersion,
		Session: p.session,
		Name:    p.name,
		Colour:  p.colour.String(),
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.logger.Printf("session %s: joined %s as %s", p.session, p.opponent, p.colour)
	return p, nil
}

func (p *Peer) awaitHello(ctx context.Context) (Hello, error) {
	msg, err := p.Receive(ctx)
	if err != nil {
		return Hello{}, errors.Wrap(err, "waiting for hello")
	}
	hello, ok := msg.(Hello)
	if !ok {
		return Hello{}, errors.Wrapf(errors.ErrProtocol, "expected Hello, got %s", msg.Type())
	}
	if hello.Version != ProtocolVersion {
		return Hello{}, errors.Wrapf(errors.ErrProtocol, "protocol version %d, want %d", hello.Version, ProtocolVersion)
	}
	return hello, nil
}

// Colour returns the colour this side plays.
func (p *Peer) Colour() chess.Colour { return p.colour }

// Session returns the session identifier chosen by the host.
func (p *Peer) Session() string { return p.session }

// Name returns the name this side announced.
func (p *Peer) Name() string { return p.name }

// Opponent returns the name the other side announced.
func (p *Peer) Opponent() string { return p.opponent }

// StartFEN returns the agreed starting position.
func (p *Peer) StartFEN() string { return p.startFEN }

func (p *Peer) readLoop() {
	defer close(p.in)
	scanner := bufio.NewScanner(p.conn)
	for scanner.Scan() {
		msg, err := decode(scanner.Bytes())
		if err != nil {
			p.logger.Printf("dropping line: %v", err)
			continue
		}
		p.logger.Printf("< %s", msg.Type())
		select {
		case p.in <- msg:
		case <-p.done:
			return
		}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	p.errCh <- err
}

// Send writes one message to the opponent.
func (p *Peer) Send(msg Message) error {
	return p.send(msg)
}

func (p *Peer) send(msg Message) error {
	b, err := encode(msg)
	if err != nil {
		return err
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	p.logger.Printf("> %s", msg.Type())
	if _, err := p.conn.Write(b); err != nil {
		return errors.Wrap(errors.ErrClosed, "connection lost: "+err.Error())
	}
	return nil
}

// Receive blocks until the next message arrives, the connection is lost or
// ctx ends.
func (p *Peer) Receive(ctx context.Context) (Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-p.in:
		if !ok {
			return nil, p.readErr()
		}
		return msg, nil
	}
}

func (p *Peer) readErr() error {
	select {
	case err := <-p.errCh:
		p.errCh <- err
		if err == io.EOF {
			return errors.Wrap(errors.ErrClosed, "connection lost")
		}
		return errors.Wrap(errors.ErrClosed, "connection lost: "+err.Error())
	default:
		return errors.Wrap(errors.ErrClosed, "connection lost")
	}
}

// Close says goodbye and closes the connection. It is safe to call twice.
func (p *Peer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		_ = p.send(Bye{Reason: "closed"})
		close(p.done)
		err = p.conn.Close()
	})
	return err
}
