package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
)

var samplePoints = []r3.Vector{{X: 10, Y: 0, Z: 5}, {X: -1.5, Y: 2.25, Z: 0}}

func TestWriteVRMLMatchesSceneLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVRML(&buf, samplePoints); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "#VRML V2.0 utf8\n\nShape{\n\tgeometry PointSet {\n\t\tcoord Coordinate {\n\t\t\t\tpoint [ " +
		"10.000000, 0.000000, 5.000000\n" +
		"-1.500000, 2.250000, 0.000000\n" +
		"\t\t\t\t]\n\t   }\n\t}\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("vrml mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteVRMLEmptyCloud(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVRML(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "point [ \t\t\t\t]") {
		t.Fatalf("empty cloud should produce an empty coordinate list: %q", buf.String())
	}
}

func TestWriteASC(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteASC(&buf, samplePoints); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "# Exported points\n# Format: X Y Z\n10.000000 0.000000 5.000000\n-1.500000 2.250000 0.000000\n"
	if buf.String() != want {
		t.Fatalf("asc mismatch\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWritePCD(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePCD(&buf, samplePoints); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 10 header lines and 2 points, got %d lines:\n%s", len(lines), buf.String())
	}
	for i, want := range map[int]string{0: "VERSION .7", 5: "WIDTH 2", 8: "POINTS 2", 9: "DATA ascii", 10: "10.000000 0.000000 5.000000"} {
		if lines[i] != want {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"wrl": VRML, ".WRL": VRML, "vrml": VRML, "asc": ASC, "pcd": PCD, ".las": LAS} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("obj"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestFileExporterRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.wrl")
	e, err := NewFileExporter(nil, path, "")
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	if err := e.Export(samplePoints); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := e.Export(samplePoints[:1]); err != nil {
		t.Fatalf("second export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Count(string(data), "\n") != 10 || strings.Contains(string(data), "-1.5") {
		t.Fatalf("second export must replace the file:\n%s", data)
	}
}

func TestFileExporterReportsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "scan.wrl")
	e, _ := NewFileExporter(nil, path, VRML)
	if err := e.Export(samplePoints); err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
}

func TestFileExporterLAS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.las")
	e, err := NewFileExporter(nil, path, LAS)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	if err := e.Export(samplePoints); err != nil {
		t.Fatalf("export: %v", err)
	}
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		t.Fatalf("open las: %v", err)
	}
	defer lf.Close()
	if lf.Header.NumberPoints != len(samplePoints) {
		t.Fatalf("las points = %d, want %d", lf.Header.NumberPoints, len(samplePoints))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary file left behind: %v", entries)
	}
}

func TestNewFileExporterValidates(t *testing.T) {
	if _, err := NewFileExporter(nil, "", VRML); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := NewFileExporter(nil, "x.obj", "obj"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
