package mail

import (
	"fmt"
	"strings"
)

type template struct {
	Subject string
	Body    string
}

var templates = map[string]template{
	"appointment-reminder": {
		Subject: "Appointment reminder for {{patient_name}}",
		Body:    "Dear {{patient_name}}, this is a reminder of your {{type}} appointment on {{date}} at {{time}} with {{dentist}}.",
	},
	"appointment-confirmation": {
		Subject: "Your appointment is booked",
		Body:    "Dear {{patient_name}}, your {{type}} appointment is booked for {{date}} at {{time}} with {{dentist}}.",
	},
	"appointment-cancelled": {
		Subject: "Appointment cancelled",
		Body:    "Dear {{patient_name}}, your appointment on {{date}} at {{time}} has been cancelled. Please contact us to rebook.",
	},
	"welcome": {
		Subject: "Welcome to the clinic, {{patient_name}}",
		Body:    "Dear {{patient_name}}, thank you for registering with us. We look forward to seeing you.",
	},
}

// Render fills {{key}} placeholders of a built-in template. Keys missing from
// data are left as-is.
func Render(name string, data map[string]string) (subject, body string, err error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown template %q", ErrInvalidMessage, name)
	}
	subject, body = t.Subject, t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// Templates lists the built-in template names.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}
