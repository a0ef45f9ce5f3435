// Package meshfile stores built world meshes on disk: a JSON header line
// followed by a JSON body, the whole stream zstd-compressed.
package meshfile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blueprint/internal/mesh"
	"github.com/samdwyer/blueprint/internal/telemetry"
)

const (
	Format  = "blueprint-mesh"
	Version = 1
)

// ErrFormat is returned for files that are not mesh exports of a known
// version.
var ErrFormat = errors.New("not a mesh file")

// Header is the first line of every export. It can be read without
// decoding the body.
type Header struct {
	Format   string `json:"format"`
	Version  int    `json:"version"`
	Surfaces int    `json:"surfaces"`
	Strips   int    `json:"strips"`
	Doors    int    `json:"doors"`
	Items    int    `json:"items"`
}

func headerFor(m mesh.WorldMesh) Header {
	return Header{
		Format:   Format,
		Version:  Version,
		Surfaces: len(m.Surfaces),
		Strips:   m.StripCount(),
		Doors:    len(m.Doors),
		Items:    len(m.Items),
	}
}

// Write exports the mesh to path, creating parent directories.
func Write(ctx context.Context, path string, m mesh.WorldMesh) (err error) {
	tracer := telemetry.Tracer("meshfile")
	_, span := tracer.Start(ctx, "meshfile.write")
	defer span.End()
	defer func() { telemetry.Fail(span, err) }()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	cw := &countingWriter{w: f}
	if err := Encode(cw, m); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	h := headerFor(m)
	span.SetAttributes(
		attribute.String("meshfile.path", path),
		attribute.Int("meshfile.bytes", int(cw.n)),
		attribute.Int("mesh.surfaces", h.Surfaces),
		attribute.Int("mesh.strips", h.Strips),
	)
	return nil
}

// Encode writes the compressed export to w.
func Encode(w io.Writer, m mesh.WorldMesh) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	if err := writeBody(bw, m); err != nil {
		enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeBody(bw *bufio.Writer, m mesh.WorldMesh) error {
	hb, err := json.Marshal(headerFor(m))
	if err != nil {
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(m); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// Read loads an export written by Write.
func Read(path string) (Header, mesh.WorldMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, mesh.WorldMesh{}, err
	}
	defer f.Close()

	h, m, err := Decode(f)
	if err != nil {
		return h, m, fmt.Errorf("%s: %w", path, err)
	}
	return h, m, nil
}

// Decode reads a compressed export from r.
func Decode(r io.Reader) (Header, mesh.WorldMesh, error) {
	var (
		h Header
		m mesh.WorldMesh
	)

	dec, err := zstd.NewReader(r)
	if err != nil {
		return h, m, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, m, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, m, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	if h.Format != Format || h.Version != Version {
		return h, m, fmt.Errorf("%w: %s v%d", ErrFormat, h.Format, h.Version)
	}

	if err := json.NewDecoder(br).Decode(&m); err != nil {
		return h, m, fmt.Errorf("json decode: %w", err)
	}
	return h, m, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
