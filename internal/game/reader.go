package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ob-ivan/bot2048/internal/board"
)

// ReaderSource reads one board per line from a stream, in the format
// accepted by board.Parse. Blank lines and lines starting with '#' are
// skipped.
type ReaderSource struct {
	scanner *bufio.Scanner
	conv    *board.Converter
	line    int
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r), conv: board.NewConverter()}
}

// Read returns the next board. It returns io.EOF once the stream is
// exhausted and a wrapped board.ErrInvalidBoard for a malformed line.
func (s *ReaderSource) Read() (board.Board, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimSpace(s.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		b, err := board.Parse(s.conv, text)
		if err != nil {
			return board.Board{}, fmt.Errorf("game: line %d: %w", s.line, err)
		}
		return b, nil
	}
	if err := s.scanner.Err(); err != nil {
		return board.Board{}, fmt.Errorf("game: read boards: %w", err)
	}
	return board.Board{}, io.EOF
}
