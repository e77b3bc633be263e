package protocol

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/YukiGDMG/TCP-IP/internal/apperror"
)

// MaxLineBytes is the ceiling for a single wire record, terminator included.
const MaxLineBytes = 1024

// LineCodec reads and writes newline-delimited JSON records over one
// bidirectional stream. Reads are single-goroutine (the connection's own
// loop); writes are mutex-serialized because room goroutines write to both
// peers concurrently.
type LineCodec struct {
	reader *bufio.Reader

	writeMu sync.Mutex
	writer  io.Writer
}

func NewLineCodec(rw io.ReadWriter) *LineCodec {
	return &LineCodec{
		reader: bufio.NewReaderSize(rw, MaxLineBytes),
		writer: rw,
	}
}

// Read blocks until one full record is available and returns it. A partial
// record is never dispatched: the call returns only on a terminator, an
// oversized line, or end of stream. Malformed JSON is a read error; the
// caller treats any error here as a disconnect.
func (that *LineCodec) Read() (*Message, error) {
	line, err := that.reader.ReadSlice('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", apperror.ErrConnectionClosed, err)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("%w: over %d bytes", apperror.ErrMessageTooLarge, MaxLineBytes)
		}
		return nil, fmt.Errorf("failed to read line: %w", err)
	}

	var msg Message
	if err = json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	return &msg, nil
}

// Send marshals one record and writes it with its line terminator.
func (that *LineCodec) Send(msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if _, err = that.writer.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
