// Package render produces a channel-specific wire-ready message from
// a routed event and its template, substituting `{{name}}`
// placeholders with values from a merged rendering context.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notifyhub/internal/model"
)

// Fallback synthesizes a template when none is configured for a
// (channel, event_type) pair: subject names the event type, body is
// the raw event data as JSON.
func Fallback(eventType model.EventType, data map[string]any) *model.Template {
	body, err := json.Marshal(data)
	if err != nil {
		body = []byte("{}")
	}
	return &model.Template{
		Subject:   "Notification: " + string(eventType),
		Body:      string(body),
		Variables: nil,
	}
}

// BuildContext merges the event's data with the injected user_name
// (the local part of user_email, or "User" when there is none) and
// user_email fields. Event data keys take no precedence over the
// injected fields — user_name/user_email are always present.
func BuildContext(data map[string]any, userEmail string) map[string]any {
	ctx := make(map[string]any, len(data)+2)
	for k, v := range data {
		ctx[k] = v
	}

	userName := "User"
	if userEmail != "" {
		if at := strings.IndexByte(userEmail, '@'); at > 0 {
			userName = userEmail[:at]
		} else {
			userName = userEmail
		}
	}
	ctx["user_name"] = userName
	ctx["user_email"] = userEmail

	return ctx
}

// Render substitutes every placeholder named in template.Variables
// with its string value from ctx (or empty string if absent) in both
// subject and body. Placeholders not declared in template.Variables
// are left untouched.
func Render(template *model.Template, ctx map[string]any) (subject, body string) {
	subject = template.Subject
	body = template.Body

	for _, name := range template.Variables {
		value := toString(ctx[name])
		placeholder := "{{" + name + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		body = strings.ReplaceAll(body, placeholder, value)
	}

	return subject, body
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
