package email

import (
	"bytes"
	"html/template"
	"time"
)

// DigestItem is one attention line in the digest.
type DigestItem struct {
	Severity string
	Message  string
}

// DigestData feeds the attention digest template.
type DigestData struct {
	GeneratedAt time.Time
	Items       []DigestItem
}

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; margin: 0; padding: 24px;">
  <h2 style="margin-top: 0;">Your dashboard needs attention</h2>
  <p>Snapshot from {{.GeneratedAt.Format "Jan 2, 2006 15:04 MST"}}:</p>
  <ul style="padding-left: 18px;">
    {{- range .Items}}
    <li style="margin-bottom: 6px;">
      <strong style="text-transform: uppercase;{{if eq .Severity "red"}} color: #dc2626;{{else}} color: #ea580c;{{end}}">{{.Severity}}</strong>:
      {{.Message}}
    </li>
    {{- end}}
  </ul>
  <p style="color: #6b7280; font-size: 12px;">This digest is sent when a scheduled refresh finds actionable items.</p>
</body>
</html>`))

func renderDigest(data DigestData) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
