package templates

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/a-h/templ"
)

// ErrRender wraps failures while rendering a component.
var ErrRender = errors.New("failed to render email template")

// Render writes c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: nil component", ErrRender)
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.String(), nil
}
