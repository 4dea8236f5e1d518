package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/unroll/internal/cmdutil"
)

// render writes data in the selected format. text is used for the human format.
func render(g *Globals, data any, text func(w io.Writer) error) error {
	w, err := cmdutil.OpenOutput(g.Output, stdout)
	if err != nil {
		return err
	}

	switch g.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(data)
		if err == nil {
			err = enc.Close()
		}
	case "", "text":
		err = text(w)
	default:
		err = fmt.Errorf("unsupported output format %q", g.Format)
	}

	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}
