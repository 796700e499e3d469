package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Template names understood by Render.
const (
	Welcome        = "welcome"
	ProfileUpdated = "profile_updated"
)

type emailTemplate struct {
	subject string
	text    string
	html    string
}

var emailTemplates = map[string]emailTemplate{
	Welcome: {
		subject: "Welcome to GiftLink",
		text: `Hi {{.Name}},

Welcome to GiftLink! Your account ({{.Email}}) is ready.
Browse the gift catalogue and find something you love.

The GiftLink team`,
		html: `<p>Hi {{.Name}},</p>
<p>Welcome to <strong>GiftLink</strong>! Your account ({{.Email}}) is ready.</p>
<p>Browse the gift catalogue and find something you love.</p>
<p>The GiftLink team</p>`,
	},
	ProfileUpdated: {
		subject: "Your GiftLink profile was updated",
		text: `Hi {{.Name}},

Your GiftLink profile details were just changed. If this wasn't you,
please contact support.

The GiftLink team`,
		html: `<p>Hi {{.Name}},</p>
<p>Your GiftLink profile details were just changed. If this wasn't you, please contact support.</p>
<p>The GiftLink team</p>`,
	},
}

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (string, string, string, error) {
	tpl, ok := emailTemplates[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	tt, err := texttpl.New(name + "_text").Parse(tpl.text)
	if err != nil {
		return "", "", "", err
	}
	var textBuf bytes.Buffer
	if err := tt.Execute(&textBuf, data); err != nil {
		return "", "", "", err
	}

	ht, err := htmpl.New(name + "_html").Parse(tpl.html)
	if err != nil {
		return "", "", "", err
	}
	var htmlBuf bytes.Buffer
	if err := ht.Execute(&htmlBuf, data); err != nil {
		return "", "", "", err
	}

	return tpl.subject, textBuf.String(), htmlBuf.String(), nil
}
