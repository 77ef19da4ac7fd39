package sse

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const sampleStream = "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n" +
	"data: [DONE]\n\n"

func collect(d *Decoder, chunks ...string) []string {
	var out []string
	for _, chunk := range chunks {
		out = append(out, d.Feed([]byte(chunk))...)
	}
	return out
}

func TestDecoderWholeStream(t *testing.T) {
	d := NewDecoder()
	deltas := collect(d, sampleStream)
	if strings.Join(deltas, "") != "Hello" {
		t.Fatalf("deltas mismatch: %v", deltas)
	}
	if !d.Done() {
		t.Fatalf("sentinel not recognized")
	}
	if d.Malformed() != 0 {
		t.Fatalf("unexpected malformed count: %d", d.Malformed())
	}
}

func TestDecoderChunkBoundaryIndependence(t *testing.T) {
	for split := 1; split < len(sampleStream); split++ {
		d := NewDecoder()
		deltas := collect(d, sampleStream[:split], sampleStream[split:])
		if strings.Join(deltas, "") != "Hello" {
			t.Fatalf("split at %d: deltas mismatch: %v", split, deltas)
		}
		if !d.Done() {
			t.Fatalf("split at %d: sentinel not recognized", split)
		}
	}
}

func TestDecoderByteAtATime(t *testing.T) {
	d := NewDecoder()
	var deltas []string
	for i := 0; i < len(sampleStream); i++ {
		deltas = append(deltas, d.Feed([]byte{sampleStream[i]})...)
	}
	if strings.Join(deltas, "") != "Hello" {
		t.Fatalf("deltas mismatch: %v", deltas)
	}
}

func TestDecoderSkipsMalformedLines(t *testing.T) {
	d := NewDecoder()
	deltas := collect(d,
		"data: {\"choices\":[{\"delta\"\n\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n",
	)
	if strings.Join(deltas, "") != "ok" {
		t.Fatalf("valid line after malformed one must decode: %v", deltas)
	}
	if d.Malformed() != 1 {
		t.Fatalf("malformed count: %d", d.Malformed())
	}
}

func TestDecoderUnterminatedTailStaysBuffered(t *testing.T) {
	d := NewDecoder()
	deltas := d.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}"))
	if len(deltas) != 0 {
		t.Fatalf("line without newline must not be interpreted: %v", deltas)
	}
	if d.Malformed() != 0 {
		t.Fatalf("incomplete is not malformed, count: %d", d.Malformed())
	}

	deltas = d.Feed([]byte("\n"))
	if len(deltas) != 1 || deltas[0] != "hi" {
		t.Fatalf("completed line must decode: %v", deltas)
	}
}

func TestDecoderIgnoresAfterSentinel(t *testing.T) {
	d := NewDecoder()
	deltas := collect(d,
		"data: [DONE]\n\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\"late\"}}]}\n\n",
	)
	if len(deltas) != 0 {
		t.Fatalf("no deltas may follow the sentinel: %v", deltas)
	}
}

func TestDecoderIgnoresCommentsAndBlankLines(t *testing.T) {
	d := NewDecoder()
	deltas := collect(d,
		": keep-alive\n\n",
		"event: message\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n\n",
	)
	if strings.Join(deltas, "") != "x" {
		t.Fatalf("deltas mismatch: %v", deltas)
	}
	if d.Malformed() != 0 {
		t.Fatalf("comments and non-data fields are not malformed, count: %d", d.Malformed())
	}
}

func TestDecodeStream(t *testing.T) {
	var got []string
	err := DecodeStream(context.Background(), strings.NewReader(sampleStream), func(delta string) error {
		got = append(got, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("DecodeStream error: %v", err)
	}
	if strings.Join(got, "") != "Hello" {
		t.Fatalf("deltas mismatch: %v", got)
	}
}

func TestDecodeStreamStopsOnCallbackError(t *testing.T) {
	wantErr := errors.New("stop")
	calls := 0
	err := DecodeStream(context.Background(), strings.NewReader(sampleStream), func(delta string) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one callback, got %d", calls)
	}
}

func TestDecodeStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := DecodeStream(ctx, strings.NewReader(sampleStream), func(delta string) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
