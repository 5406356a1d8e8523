package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
)

// Stream is a line-based transport over a byte stream such as stdin/stdout or a TCP
// connection. A message is a run of lines ended by an empty line or the end of the stream.
type Stream struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer
	mu     sync.Mutex // Guards writer
	stop   func() bool
}

// NewStream reads messages from r and writes them to w.
func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{reader: bufio.NewReader(r), writer: w}
}

// Dial connects to a controller listening on addr. The connection is closed when ctx ends,
// which also releases a blocked Receive.
func Dial(ctx context.Context, addr string) (*Stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	s := NewStream(conn, conn)
	s.closer = conn
	s.stop = context.AfterFunc(ctx, func() { conn.Close() })
	return s, nil
}

func (s *Stream) Receive(ctx context.Context) (string, error) {
	var sb strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := s.reader.ReadString('\n')
		if strings.TrimSpace(line) == "" {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		} else {
			sb.WriteString(strings.TrimRight(line, "\r\n"))
			sb.WriteByte('\n')
		}

		if errors.Is(err, io.EOF) {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", io.EOF
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("failed to read message: %w", err)
		}
	}
}

// Send writes msg followed by the empty line that ends it.
func (s *Stream) Send(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg = strings.TrimRight(msg, "\n") + "\n\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.writer, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (s *Stream) Close() error {
	if s.stop != nil {
		s.stop()
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
