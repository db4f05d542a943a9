package templates

import (
	"context"
	"io"
	"math"
	"strconv"

	"github.com/a-h/templ"
)

const (
	fontStack = `font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Helvetica,Arial,sans-serif;`
	textColor = `color:#1f2933;`
)

// Layout wraps children in a centered single column email shell.
func Layout(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"></head>`+
			`<body style="margin:0;padding:0;background:#f4f5f7;">`+
			`<table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:24px;">`+
			`<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;`+fontStack+textColor+`">`); err != nil {
			return err
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table></td></tr></table></body></html>`)
		return err
	})
}

// Header renders a title with an optional subtitle.
func Header(title, subtitle string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := `<tr><td><h1 style="margin:0 0 8px;font-size:24px;">` + templ.EscapeString(title) + `</h1>`
		if subtitle != "" {
			out += `<p style="margin:0 0 24px;color:#616e7c;">` + templ.EscapeString(subtitle) + `</p>`
		}
		_, err := io.WriteString(w, out+`</td></tr>`)
		return err
	})
}

// Text renders a paragraph.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<tr><td><p style="margin:0 0 16px;line-height:1.5;">`+templ.EscapeString(s)+`</p></td></tr>`)
		return err
	})
}

// Row is one line of a ScoreTable.
type Row struct {
	Label string
	Score float64
}

// ScoreTable renders labelled scores as a two column table.
func ScoreTable(rows []Row) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(rows) == 0 {
			return nil
		}
		out := `<tr><td><table role="presentation" width="100%" cellpadding="8" cellspacing="0" style="border-collapse:collapse;margin:0 0 16px;">`
		for _, r := range rows {
			out += `<tr style="border-bottom:1px solid #e4e7eb;"><td>` + templ.EscapeString(r.Label) +
				`</td><td align="right"><strong>` + FormatScore(r.Score) + `</strong></td></tr>`
		}
		_, err := io.WriteString(w, out+`</table></td></tr>`)
		return err
	})
}

// FormatScore prints whole scores without decimals and others with up to two.
func FormatScore(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
