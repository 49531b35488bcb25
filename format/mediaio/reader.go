package mediaio

import (
	"context"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used by ReadFrom.
const DefaultChunkSize = 64 << 10

// ReadFrom feeds t from r in chunks of chunkSize bytes until the tree is
// done, r fails or ctx is cancelled. Bytes inside deferred or skipped
// elements are dropped as they are read.
func (t *Tree[N]) ReadFrom(ctx context.Context, r io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, err := t.Write(buf[:n]); err != nil {
				return err
			}
			if _, err := t.Parse(ctx); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
	}
	t.Close()
	status, err := t.Parse(ctx)
	if err != nil {
		return err
	}
	if status != StatusDone {
		return ErrTruncated
	}
	return nil
}
