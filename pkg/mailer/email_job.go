package mailer

// Template kinds the worker knows how to render.
const (
	TemplateWelcome         = "welcome"
	TemplateConfirmEmail    = "confirm_email"
	TemplatePasswordRequest = "password_request"
	TemplatePasswordChanged = "password_changed"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Publishing is fire-and-forget: a failed publish is logged by
// the caller and never rolls back the operation that preceded it.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}
