package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notifyhub/internal/model"
)

func TestFallback_SubjectNamesEventTypeAndBodyIsJSONData(t *testing.T) {
	data := map[string]any{"amount": "42"}
	tmpl := Fallback(model.EventTypeSecurity, data)

	require.Equal(t, "Notification: security", tmpl.Subject)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(tmpl.Body), &decoded))
	require.Equal(t, "42", decoded["amount"])
	require.Empty(t, tmpl.Variables)
}

func TestBuildContext_InjectsUserNameFromEmailLocalPart(t *testing.T) {
	ctx := BuildContext(map[string]any{"foo": "bar"}, "alice@example.com")

	require.Equal(t, "alice", ctx["user_name"])
	require.Equal(t, "alice@example.com", ctx["user_email"])
	require.Equal(t, "bar", ctx["foo"])
}

func TestBuildContext_FallsBackToGenericUserNameWhenEmailAbsent(t *testing.T) {
	ctx := BuildContext(map[string]any{}, "")

	require.Equal(t, "User", ctx["user_name"])
}

func TestBuildContext_UsesWholeStringWhenEmailHasNoAtSign(t *testing.T) {
	ctx := BuildContext(map[string]any{}, "not-an-email")

	require.Equal(t, "not-an-email", ctx["user_name"])
}

func TestRender_SubstitutesOnlyDeclaredVariables(t *testing.T) {
	tmpl := &model.Template{
		Subject:   "Hello {{user_name}}",
		Body:      "Your code is {{code}}. Do not share {{user_name}}'s {{unsent}}.",
		Variables: []string{"user_name", "code"},
	}
	ctx := map[string]any{"user_name": "alice", "code": "123456"}

	subject, body := Render(tmpl, ctx)

	require.Equal(t, "Hello alice", subject)
	require.Contains(t, body, "Your code is 123456")
	require.Contains(t, body, "{{unsent}}", "undeclared placeholders should survive untouched")
}

func TestRender_MissingContextValueSubstitutesEmptyString(t *testing.T) {
	tmpl := &model.Template{
		Subject:   "{{missing}}",
		Body:      "",
		Variables: []string{"missing"},
	}

	subject, _ := Render(tmpl, map[string]any{})

	require.Equal(t, "", subject)
}

func TestToString_FormatsTimeAsRFC3339(t *testing.T) {
	tmpl := &model.Template{
		Body:      "{{when}}",
		Variables: []string{"when"},
	}
	ts, err := time.Parse(time.RFC3339, "2026-08-03T12:00:00Z")
	require.NoError(t, err)

	_, body := Render(tmpl, map[string]any{"when": ts})

	require.Equal(t, "2026-08-03T12:00:00Z", body)
}
