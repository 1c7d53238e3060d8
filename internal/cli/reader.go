package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// maxLineBytes bounds a single query line.
const maxLineBytes = 1 << 20

// LineReader reads trimmed lines and gives up when its context ends.
type LineReader struct {
	scanner *bufio.Scanner
	mu      sync.Mutex
}

// NewLineReader creates a reader over r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &LineReader{scanner: scanner}
}

// ReadLine returns the next line without surrounding whitespace.
// It returns io.EOF when input ends and ErrInputCancelled when ctx ends first.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.scanner.Scan() {
			resultCh <- result{value: strings.TrimSpace(r.scanner.Text())}
			return
		}
		err := r.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		resultCh <- result{err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// ReadQueries returns the non-empty lines of the input, skipping # comments.
func (r *LineReader) ReadQueries(ctx context.Context) ([]string, error) {
	var queries []string
	for {
		line, err := r.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return queries, nil
		}
		if err != nil {
			return queries, err
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
}
