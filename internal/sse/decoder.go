package sse

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// Decoder incrementally decodes a chat-completion event stream. Raw bytes
// are buffered across chunk boundaries and a line is only interpreted once
// its terminating newline has arrived, so feeding the same stream split at
// any byte offsets yields the same deltas in the same order.
type Decoder struct {
	buf       bytes.Buffer
	done      bool
	malformed int
}

const doneSentinel = "[DONE]"

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends raw bytes and returns the text deltas completed by them, in
// arrival order. After the end-of-stream sentinel no further deltas are
// emitted.
func (d *Decoder) Feed(p []byte) []string {
	d.buf.Write(p)

	var deltas []string
	for !d.done {
		line, ok := d.nextLine()
		if !ok {
			break
		}
		if delta, ok := d.decodeLine(line); ok {
			deltas = append(deltas, delta)
		}
	}
	return deltas
}

// Done reports whether the end-of-stream sentinel has been seen.
func (d *Decoder) Done() bool { return d.done }

// Malformed reports how many complete data lines failed to parse.
func (d *Decoder) Malformed() int { return d.malformed }

// nextLine pops one complete newline-terminated line from the buffer. An
// unterminated tail stays buffered until more bytes arrive.
func (d *Decoder) nextLine() (string, bool) {
	raw := d.buf.Bytes()
	idx := bytes.IndexByte(raw, '\n')
	if idx < 0 {
		return "", false
	}
	line := string(raw[:idx])
	d.buf.Next(idx + 1)
	return strings.TrimSuffix(line, "\r"), true
}

func (d *Decoder) decodeLine(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false
	}
	if !strings.HasPrefix(line, "data: ") {
		return "", false
	}

	payload := strings.TrimSpace(line[len("data: "):])
	if payload == doneSentinel {
		d.done = true
		return "", false
	}
	if !gjson.Valid(payload) {
		d.malformed++
		return "", false
	}

	delta := gjson.Get(payload, "choices.0.delta.content")
	if !delta.Exists() || delta.String() == "" {
		return "", false
	}
	return delta.String(), true
}

// DecodeStream consumes r to completion, invoking fn once per delta in
// arrival order. It returns on the sentinel, EOF, context cancellation, or
// the first fn error.
func DecodeStream(ctx context.Context, r io.Reader, fn func(delta string) error) error {
	d := NewDecoder()
	chunk := make([]byte, 4096)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := r.Read(chunk)
		if n > 0 {
			for _, delta := range d.Feed(chunk[:n]) {
				if err := fn(delta); err != nil {
					return err
				}
			}
		}
		if d.done {
			return nil
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
