package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"github.com/soocke/lscan-go/domain/scan"
)

// Format names an output file format by its extension.
type Format string

const (
	VRML Format = "wrl"
	ASC  Format = "asc"
	PCD  Format = "pcd"
	LAS  Format = "las"
)

// ErrFormat is returned for unsupported formats.
var ErrFormat = errors.New("unsupported export format")

// ParseFormat accepts a format name with or without a leading dot, case insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case VRML, ASC, PCD, LAS:
		return f, nil
	case "vrml":
		return VRML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// FileExporter writes the whole point cloud to Path each time Export is called. Text formats
// are rendered in memory and written with a single create/write/close; LAS is written beside
// the destination and renamed into place.
type FileExporter struct {
	Path   string
	Format Format
	logger *slog.Logger
}

var _ scan.Exporter = (*FileExporter)(nil)

// NewFileExporter validates the format. An empty format means VRML.
func NewFileExporter(logger *slog.Logger, path string, format Format) (*FileExporter, error) {
	if path == "" {
		return nil, errors.New("export path is empty")
	}
	if format == "" {
		format = VRML
	}
	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &FileExporter{Path: path, Format: f, logger: logger}, nil
}

// Export writes points in insertion order.
func (e *FileExporter) Export(points []r3.Vector) error {
	var err error
	switch e.Format {
	case LAS:
		err = e.writeLAS(points)
	case ASC:
		err = e.writeText(points, WriteASC)
	case PCD:
		err = e.writeText(points, WritePCD)
	default:
		err = e.writeText(points, WriteVRML)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", e.Path, err)
	}
	e.logExport(points)
	return nil
}

func (e *FileExporter) writeText(points []r3.Vector, render func(io.Writer, []r3.Vector) error) error {
	var buf bytes.Buffer
	if err := render(&buf, points); err != nil {
		return err
	}
	return writeFile(e.Path, buf.Bytes())
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	_, err = f.Write(data)
	return err
}

// writeLAS writes next to the destination and renames on success.
func (e *FileExporter) writeLAS(points []r3.Vector) error {
	tmp := filepath.Join(filepath.Dir(e.Path), "."+filepath.Base(e.Path)+".tmp")
	if err := WriteLAS(tmp, points); err != nil {
		return multierr.Combine(err, removeIfExists(tmp))
	}
	if err := os.Rename(tmp, e.Path); err != nil {
		return multierr.Combine(err, removeIfExists(tmp))
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (e *FileExporter) logExport(points []r3.Vector) {
	if e.logger == nil {
		return
	}
	var size uint64
	if fi, err := os.Stat(e.Path); err == nil {
		size = uint64(fi.Size())
	}
	var pc scan.PointCloud
	pc.Append(points...)
	sum := pc.Summary()
	e.logger.Info("point cloud exported",
		"path", e.Path,
		"format", string(e.Format),
		"points", sum.Count,
		"size", humanize.Bytes(size),
		"mean_radius", sum.MeanRadius,
	)
}
