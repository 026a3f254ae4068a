package render

import (
	"bytes"
	"html/template"
	"net/url"
	"sort"

	dErrors "authgate/pkg/domain-errors"
)

// formPostTmpl auto-submits the response parameters to the client's redirect
// endpoint. The redirect URI itself is left unmodified; parameters travel as
// hidden form fields. A visible button covers clients with scripting off.
var formPostTmpl = template.Must(template.New("form_post").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Redirecting&hellip;</title>
</head>
<body onload="document.forms[0].submit()">
<form method="post" action="{{.Action}}">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue</button></noscript>
</form>
</body>
</html>
`))

type formPostContext struct {
	Action string
	Fields []formPostField
}

type formPostField struct {
	Name  string
	Value string
}

// FormPost renders the auto-submitting form document for the given action
// URI and flattened parameters. Fields are emitted in sorted key order so
// the output is deterministic.
func FormPost(action string, params url.Values) ([]byte, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ctx := formPostContext{Action: action}
	for _, key := range keys {
		for _, value := range params[key] {
			ctx.Fields = append(ctx.Fields, formPostField{Name: key, Value: value})
		}
	}

	var buf bytes.Buffer
	if err := formPostTmpl.Execute(&buf, ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncoding, "render form_post document")
	}
	return buf.Bytes(), nil
}
