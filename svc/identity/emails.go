package identity

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type actionEmail struct {
	Greeting string
	Body     string
	Action   string
	Link     string
	Footer   string
}

// component renders a single call-to-action email with inline styles.
func (e actionEmail) component() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;color:#1f2933;">
<table role="presentation" width="100%%" cellpadding="0" cellspacing="0"><tr><td align="center">
<table role="presentation" width="480" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
<tr><td style="font-size:18px;font-weight:bold;padding-bottom:16px;">%s</td></tr>
<tr><td style="font-size:15px;line-height:22px;padding-bottom:24px;">%s</td></tr>
<tr><td align="center" style="padding-bottom:24px;"><a href="%s" style="display:inline-block;background:#0f766e;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;font-weight:bold;">%s</a></td></tr>
<tr><td style="font-size:12px;color:#7b8794;">%s</td></tr>
</table>
</td></tr></table>
</body>
</html>`,
			templ.EscapeString(e.Greeting),
			templ.EscapeString(e.Body),
			templ.EscapeString(string(templ.URL(e.Link))),
			templ.EscapeString(e.Action),
			templ.EscapeString(e.Footer),
		)
		return err
	})
}
