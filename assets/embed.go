package assets

import (
	_ "embed"
	"fmt"
	"text/template"
)

// SceneTemplate contains the raw VRML point set scene template. It is executed with a
// slice of points exposing X, Y and Z.
//
//go:embed scene.wrl.tmpl
var SceneTemplate string

// Scene parses the embedded VRML template.
func Scene() (*template.Template, error) {
	if len(SceneTemplate) == 0 {
		return nil, fmt.Errorf("embedded scene.wrl.tmpl is empty")
	}
	return template.New("scene.wrl").Parse(SceneTemplate)
}
