// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/style"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult renders any result type as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError renders an error as JSON, with its code and details when it
// carries them
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(ErrorObject(err))
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": style.Strip(msg)})
}

// ErrorObject is the structured form of err shared by the JSON and YAML
// renderers
func ErrorObject(err error) map[string]interface{} {
	obj := map[string]interface{}{"error": err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		obj["code"] = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return obj
}
