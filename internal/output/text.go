package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/match"
)

// TextWriter draws boards as text diagrams.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig

	white     *color.Color
	black     *color.Color
	highlight *color.Color
	notice    *color.Color
}

// NewTextWriter creates a new text writer. Colours are only emitted when
// cfg.Colour is set and the terminal supports them.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	tw := &TextWriter{
		w:         w,
		cfg:       cfg,
		white:     color.New(color.FgHiWhite, color.Bold),
		black:     color.New(color.FgHiRed, color.Bold),
		highlight: color.New(color.BgYellow, color.FgBlack),
		notice:    color.New(color.FgCyan),
	}
	if !cfg.Colour {
		for _, c := range []*color.Color{tw.white, tw.black, tw.highlight, tw.notice} {
			c.DisableColor()
		}
	}
	return tw
}

// WriteBoard draws the board followed by a status line.
func (tw *TextWriter) WriteBoard(p Position) error {
	var sb strings.Builder
	board := &p.State.Board

	rows := make([]int, chess.BoardSize)
	cols := make([]int, chess.BoardSize)
	for i := range rows {
		rows[i], cols[i] = i, i
		if tw.cfg.Flip {
			rows[i] = chess.BoardSize - 1 - i
			cols[i] = chess.BoardSize - 1 - i
		}
	}

	border := "+" + strings.Repeat("-", 2*chess.BoardSize+1) + "+"
	if tw.cfg.Coordinates {
		sb.WriteString("  ")
	}
	sb.WriteString(border + "\n")

	for _, row := range rows {
		if tw.cfg.Coordinates {
			fmt.Fprintf(&sb, "%d ", chess.BoardSize-row)
		}
		sb.WriteByte('|')
		for _, col := range cols {
			sb.WriteByte(' ')
			sb.WriteString(tw.square(board, chess.Sq(row, col), p.LastMove))
		}
		sb.WriteString(" |\n")
	}

	if tw.cfg.Coordinates {
		sb.WriteString("  ")
	}
	sb.WriteString(border + "\n")
	if tw.cfg.Coordinates {
		sb.WriteString("   ")
		for _, col := range cols {
			fmt.Fprintf(&sb, " %c", 'a'+col)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(statusLine(p) + "\n")
	if tw.cfg.ShowMoves && len(p.Moves) > 0 {
		sb.WriteString("Moves: " + strings.Join(p.MoveTokens(), " ") + "\n")
	}

	_, err := io.WriteString(tw.w, sb.String())
	return err
}

// square renders one square, highlighting both ends of the last move.
func (tw *TextWriter) square(board *chess.Board, sq chess.Square, last *chess.Move) string {
	piece := board.Get(sq)
	text := "."
	if !piece.IsEmpty() {
		text = string(piece.Letter())
	}

	if last != nil && (sq == last.From || sq == last.To) {
		return tw.highlight.Sprint(text)
	}
	switch {
	case piece.IsEmpty():
		return text
	case piece.Colour == chess.White:
		return tw.white.Sprint(text)
	default:
		return tw.black.Sprint(text)
	}
}

// WriteEvent prints the status lines of an accepted move.
func (tw *TextWriter) WriteEvent(ev match.Event) error {
	for _, msg := range ev.Messages {
		if _, err := fmt.Fprintln(tw.w, tw.notice.Sprint(msg)); err != nil {
			return err
		}
	}
	return nil
}

// WriteMessage prints a free-form line.
func (tw *TextWriter) WriteMessage(msg string) error {
	_, err := fmt.Fprintln(tw.w, msg)
	return err
}
