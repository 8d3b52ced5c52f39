package export

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"text/template"

	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"github.com/soocke/lscan-go/assets"
)

var (
	sceneOnce sync.Once
	sceneTmpl *template.Template
	sceneErr  error
)

func scene() (*template.Template, error) {
	sceneOnce.Do(func() { sceneTmpl, sceneErr = assets.Scene() })
	return sceneTmpl, sceneErr
}

// WriteVRML writes a single PointSet shape with one coordinate per point, one
// "x, y, z" triple per line.
func WriteVRML(w io.Writer, points []r3.Vector) error {
	t, err := scene()
	if err != nil {
		return fmt.Errorf("scene template: %w", err)
	}
	bw := bufio.NewWriter(w)
	if err := t.Execute(bw, points); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteASC writes one space separated "x y z" triple per line after a short header.
func WriteASC(w io.Writer, points []r3.Vector) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "# Exported points\n# Format: X Y Z\n"); err != nil {
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%.6f %.6f %.6f\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePCD writes an unorganized ascii PCD v0.7 cloud with x, y and z fields.
func WritePCD(w io.Writer, points []r3.Vector) error {
	bw := bufio.NewWriter(w)
	_, err := fmt.Fprintf(bw, "VERSION .7\n"+
		"FIELDS x y z\n"+
		"SIZE 4 4 4\n"+
		"TYPE F F F\n"+
		"COUNT 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT %d\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA ascii\n",
		len(points), 1, len(points))
	if err != nil {
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%f %f %f\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteLAS writes a point format 0 LAS file at path.
func WriteLAS(path string, points []r3.Vector) (err error) {
	lf, err := lidario.NewLasFile(path, "w")
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, lf.Close())
	}()
	if err = lf.AddHeader(lidario.LasHeader{PointFormatID: 0}); err != nil {
		return err
	}
	for _, p := range points {
		pr := &lidario.PointRecord0{
			X: p.X,
			Y: p.Y,
			Z: p.Z,
			BitField: lidario.PointBitField{
				Value: (1) | (1 << 3),
			},
			ClassBitField: lidario.ClassificationBitField{
				Value: 0,
			},
			PointSourceID: 1,
		}
		if err = lf.AddLasPoint(pr); err != nil {
			return err
		}
	}
	return nil
}
