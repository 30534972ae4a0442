package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lumoshop/lumoshop-api/pkg/mailer"
)

// One template per mailer.Template* kind. Render expects Data to carry
// at least Name; link-bearing kinds also need Link.
var bodies = map[string]*template.Template{
	mailer.TemplateWelcome: template.Must(template.New(mailer.TemplateWelcome).Parse(
		`Hello {{.Name}},<br><br>Welcome aboard. Your account is ready to use.`)),
	mailer.TemplateConfirmEmail: template.Must(template.New(mailer.TemplateConfirmEmail).Parse(
		`Hello {{.Name}},<br><br>Please click on the following <strong><a href="{{.Link}}">link</a></strong> to confirm your email address.<br><br>Once you do, you'll be able to access features that require a valid email address.`)),
	mailer.TemplatePasswordRequest: template.Must(template.New(mailer.TemplatePasswordRequest).Parse(
		`Hello {{.Name}},<br><br>Please click on the following <strong><a href="{{.Link}}">link</a></strong> to reset your password.<br><br>If you did not request this, please ignore this email and your password will remain unchanged.`)),
	mailer.TemplatePasswordChanged: template.Must(template.New(mailer.TemplatePasswordChanged).Parse(
		`Hello {{.Name}},<br><br>This is a confirmation that the password for your account {{.Email}} has just been changed.`)),
}

var subjects = map[string]string{
	mailer.TemplateWelcome:         "Welcome to Lumoshop",
	mailer.TemplateConfirmEmail:    "Confirm your email",
	mailer.TemplatePasswordRequest: "Password change request",
	mailer.TemplatePasswordChanged: "Your password has been changed",
}

// Render returns the subject and HTML body for a template kind.
func Render(kind string, data map[string]any) (subject, html string, err error) {
	tpl, ok := bodies[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", kind)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[kind], buf.String(), nil
}
