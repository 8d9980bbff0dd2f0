package output

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/prjconf/pkg/core"
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Renderer writes results in one format.
type Renderer interface {
	RenderResult(result *core.Result) error
	RenderOrder(order []string) error
	RenderError(err error) error
}

// New returns the renderer for format. Color only affects the text format.
func New(format Format, w io.Writer, color bool) (Renderer, error) {
	logger := logging.GetLogger("output")
	logger.Debug().Str("format", string(format)).Bool("color", color).Msg("Creating renderer")

	switch format {
	case FormatText, "":
		return newTextRenderer(w, color), nil
	case FormatJSON:
		return &encodingRenderer{encode: func(v interface{}) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}}, nil
	case FormatYAML:
		return &encodingRenderer{encode: func(v interface{}) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}}, nil
	case FormatTOML:
		return &encodingRenderer{encode: func(v interface{}) error {
			enc := toml.NewEncoder(w)
			enc.SetIndentTables(true)
			return enc.Encode(v)
		}}, nil
	}
	_, err := ParseFormat(string(format))
	return nil, err
}

type orderDoc struct {
	Order []string `json:"order" yaml:"order" toml:"order"`
}

type errorDoc struct {
	Error   string                 `json:"error" yaml:"error" toml:"error"`
	Code    string                 `json:"code" yaml:"code" toml:"code"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

// encodingRenderer serialises documents with a structured encoder.
type encodingRenderer struct {
	encode func(v interface{}) error
}

func (r *encodingRenderer) RenderResult(result *core.Result) error {
	return r.encode(result)
}

func (r *encodingRenderer) RenderOrder(order []string) error {
	if order == nil {
		order = []string{}
	}
	return r.encode(orderDoc{Order: order})
}

func (r *encodingRenderer) RenderError(err error) error {
	doc := errorDoc{
		Error: err.Error(),
		Code:  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		doc.Details = details
	}
	return r.encode(doc)
}
