package homepage

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// renderHTML renders cmp into a string so that a template failure can be
// reported before any response bytes are written.
func renderHTML(ctx context.Context, cmp templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
