package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const defaultChunkSize = 4096

// Drain reads body in fixed-size chunks and feeds them to the decoder until
// end-of-stream, checking for cancellation between reads. Cancellation
// surfaces as the context's error, distinct from I/O failures, and stops
// emission immediately; the decoder is only finalized on a clean EOF.
func Drain(ctx context.Context, body io.Reader, dec *Decoder) error {
	buf := make([]byte, defaultChunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := body.Read(buf)
		if n > 0 {
			// re-check: a cancelled task must not emit further chunks
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			dec.Feed(buf[:n])
		}

		if errors.Is(err, io.EOF) {
			return dec.Close()
		}
		if err != nil {
			return fmt.Errorf("stream: read body: %w", err)
		}
	}
}
