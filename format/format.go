// Package format detects the container of a byte source and parses it into
// a box or element tree plus per-track summaries.
package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/format/mkv"
	"github.com/deepch/mediaparser/format/mkv/mkvio"
	"github.com/deepch/mediaparser/format/mp4"
	"github.com/deepch/mediaparser/format/mp4/mp4io"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownFormat = errors.New("format: unrecognized container")

type Kind int

const (
	Unknown Kind = iota
	ISOBMFF
	Matroska
)

func (k Kind) String() string {
	switch k {
	case ISOBMFF:
		return "isobmff"
	case Matroska:
		return "matroska"
	}
	return "unknown"
}

// ProbeSize is the number of leading bytes Probe needs.
const ProbeSize = 8

// Probe sniffs the first bytes of a source.
func Probe(b []byte) Kind {
	switch {
	case mkv.Probe(b):
		return Matroska
	case mp4.Probe(b):
		return ISOBMFF
	}
	return Unknown
}

// Options tune a parse. Zero values select the defaults.
type Options struct {
	ChunkSize   int   `mapstructure:"chunk_size"`
	MaxLeafSize int64 `mapstructure:"max_leaf_size"`
	SkipSamples bool  `mapstructure:"skip_samples"`
	Parallel    int   `mapstructure:"parallel"`
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:   mediaio.DefaultChunkSize,
		MaxLeafSize: mediaio.DefaultMaxLeafSize,
		Parallel:    4,
	}
}

// DecodeOptions overlays m on the defaults. Values may be strings, as
// read from a command line or the environment.
func DecodeOptions(m map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return opts, err
	}
	if err = dec.Decode(m); err != nil {
		return opts, fmt.Errorf("format: options: %w", err)
	}
	return opts, nil
}

// Result is a finished parse. Exactly one of Boxes and Elements is set.
type Result struct {
	Kind     Kind
	Boxes    []mp4io.Box
	Elements []*mkvio.Element
	Tracks   []*av.Track
}

// Parser is fed the source through Write and parses as bytes arrive. The
// container is chosen once the first ProbeSize bytes are seen.
type Parser struct {
	ID   uuid.UUID
	opts Options
	log  *slog.Logger

	kind    Kind
	head    []byte
	boxes   *mediaio.Tree[mp4io.Box]
	elems   *mediaio.Tree[*mkvio.Element]
	written int64
}

// NewParser returns a parser; log may be nil.
func NewParser(opts Options, log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.New()
	return &Parser{
		ID:   id,
		opts: opts,
		log:  log.With("session", id.String()),
	}
}

func (self *Parser) Kind() Kind {
	return self.kind
}

// Write buffers p and parses what it can. Insufficient data is not an
// error.
func (self *Parser) Write(b []byte) (int, error) {
	return len(b), self.parse(context.Background(), b)
}

func (self *Parser) parse(ctx context.Context, b []byte) error {
	self.written += int64(len(b))
	if self.kind == Unknown {
		self.head = append(self.head, b...)
		if len(self.head) < ProbeSize {
			return nil
		}
		if err := self.detect(); err != nil {
			return err
		}
		b, self.head = self.head, nil
	}
	var err error
	switch self.kind {
	case ISOBMFF:
		self.boxes.Write(b)
		_, err = self.boxes.Parse(ctx)
	case Matroska:
		self.elems.Write(b)
		_, err = self.elems.Parse(ctx)
	}
	if err != nil {
		self.log.Warn("malformed source", "format", self.kind, "offset", self.written, "error", err)
	}
	return err
}

func (self *Parser) detect() error {
	switch self.kind = Probe(self.head); self.kind {
	case ISOBMFF:
		self.boxes = mp4io.NewTree()
		if self.opts.MaxLeafSize > 0 {
			self.boxes.MaxLeafSize = self.opts.MaxLeafSize
		}
	case Matroska:
		self.elems = mkvio.NewTree()
		if self.opts.MaxLeafSize > 0 {
			self.elems.MaxLeafSize = self.opts.MaxLeafSize
		}
	default:
		self.log.Warn("unrecognized source", "head", fmt.Sprintf("% x", self.head))
		return ErrUnknownFormat
	}
	self.log.Debug("detected format", "format", self.kind)
	return nil
}

// Close ends the source and returns the tree with its track summaries.
func (self *Parser) Close() (*Result, error) {
	return self.finish(context.Background())
}

func (self *Parser) finish(ctx context.Context) (res *Result, err error) {
	if self.kind == Unknown {
		return nil, ErrUnknownFormat
	}
	res = &Result{Kind: self.kind}
	var status mediaio.Status
	switch self.kind {
	case ISOBMFF:
		self.boxes.Close()
		if status, err = self.boxes.Parse(ctx); err == nil && status == mediaio.StatusDone {
			res.Boxes = self.boxes.Roots()
			res.Tracks, err = mp4.Tracks(res.Boxes, !self.opts.SkipSamples)
		}
	case Matroska:
		self.elems.Close()
		if status, err = self.elems.Parse(ctx); err == nil && status == mediaio.StatusDone {
			res.Elements = self.elems.Roots()
			res.Tracks, err = mkv.Tracks(res.Elements, !self.opts.SkipSamples)
		}
	}
	if err == nil && status != mediaio.StatusDone {
		err = mediaio.ErrTruncated
	}
	if err != nil {
		self.log.Warn("parse failed", "format", self.kind, "bytes", self.written, "error", err)
		return nil, err
	}
	self.log.Debug("parse complete", "format", self.kind, "bytes", self.written, "tracks", len(res.Tracks))
	return res, nil
}

// ParseReader reads r to the end in chunks of opts.ChunkSize.
func ParseReader(ctx context.Context, r io.Reader, opts Options, log *slog.Logger) (*Result, error) {
	p := NewParser(opts, log)
	size := opts.ChunkSize
	if size <= 0 {
		size = mediaio.DefaultChunkSize
	}
	buf := make([]byte, size)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if err := p.parse(ctx, buf[:n]); err != nil {
				return nil, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, rerr
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", mediaio.ErrCancelled, err)
		}
	}
	return p.finish(ctx)
}

// ParseFile opens and parses one file.
func ParseFile(ctx context.Context, path string, opts Options, log *slog.Logger) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if log == nil {
		log = slog.Default()
	}
	return ParseReader(ctx, f, opts, log.With("path", path))
}

// ProbeFiles parses every path, at most opts.Parallel at a time. Each file
// has its own parser. The results are in path order; a failed file leaves
// a nil entry and its error is collected into the returned error.
func ProbeFiles(ctx context.Context, paths []string, opts Options, log *slog.Logger) ([]*Result, error) {
	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i, path := range paths {
		g.Go(func() error {
			res, err := ParseFile(ctx, path, opts, log)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return results, merr.ErrorOrNil()
}
