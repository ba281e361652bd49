package pages

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/layout"
)

// LoginData is the data for the login page
type LoginData struct {
	layout.PageData
	Email string
	Error string
	Next  string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<h1>Log in</h1>`)
		errorBlock(&buf, data.Error)
		buf.WriteString(`<form id="login-form" method="post" action="/auth/login">`)
		if data.Next != "" {
			fmt.Fprintf(&buf, `<input type="hidden" name="next" value="%s">`, templ.EscapeString(data.Next))
		}
		field(&buf, "email", "Email", "email", data.Email, "")
		field(&buf, "password", "Password", "password", "", "")
		buf.WriteString(`<button type="submit">Log in</button></form>`)
		buf.WriteString(`<p>No account yet? <a href="/register">Register</a></p>`)
		_, err := buf.WriteTo(w)
		return err
	}))
}

// RegisterData is the data for the registration page
type RegisterData struct {
	layout.PageData
	Email       string
	FirstName   string
	LastName    string
	Code        string
	InviteCode  string
	Error       string
	FieldErrors map[string]string
}

// Register renders the registration form. With an invite code the club
// code and role fields are omitted since the invitation fixes both.
func Register(data RegisterData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<h1>Create your account</h1>`)
		errorBlock(&buf, data.Error)
		buf.WriteString(`<form id="register-form" method="post" action="/auth/register">`)
		field(&buf, "email", "Email", "email", data.Email, data.FieldErrors["email"])
		field(&buf, "password", "Password", "password", "", data.FieldErrors["password"])
		field(&buf, "password_confirm", "Confirm password", "password", "", data.FieldErrors["password_confirm"])
		field(&buf, "first_name", "First name", "text", data.FirstName, data.FieldErrors["first_name"])
		field(&buf, "last_name", "Last name", "text", data.LastName, data.FieldErrors["last_name"])
		if data.InviteCode != "" {
			fmt.Fprintf(&buf, `<input type="hidden" name="invite_code" value="%s">`, templ.EscapeString(data.InviteCode))
		} else {
			field(&buf, "code", "Club code", "text", data.Code, data.FieldErrors["code"])
			buf.WriteString(`<p class="hint">Coaches and club admins join through an invitation from their club.</p>`)
		}
		buf.WriteString(`<button type="submit">Register</button></form>`)
		buf.WriteString(`<p>Already registered? <a href="/login">Log in</a></p>`)
		_, err := buf.WriteTo(w)
		return err
	}))
}

func errorBlock(buf *bytes.Buffer, msg string) {
	if msg != "" {
		fmt.Fprintf(buf, `<div class="error" role="alert">%s</div>`, templ.EscapeString(msg))
	}
}

func field(buf *bytes.Buffer, name, label, kind, value, fieldErr string) {
	fmt.Fprintf(buf, `<label for="%[1]s">%[2]s</label><input id="%[1]s" name="%[1]s" type="%[3]s" value="%[4]s">`,
		name, templ.EscapeString(label), kind, templ.EscapeString(value))
	if fieldErr != "" {
		fmt.Fprintf(buf, `<span class="field-error" data-field="%s">%s</span>`, name, templ.EscapeString(fieldErr))
	}
}
