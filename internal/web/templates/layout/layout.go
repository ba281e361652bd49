// Package layout holds the page shell shared by every HTML page.
package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
)

// Flash message types
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is the data every page passes to the shell
type PageData struct {
	Title string
	// User is nil on public pages viewed anonymously
	User  *model.User
	Flash *FlashMessage
}

// navLink is a nav entry shown only to users meeting Role, when set
type navLink struct {
	Href  string
	Label string
	Role  model.Role
}

var navLinks = []navLink{
	{Href: "/dashboard", Label: "Dashboard"},
	{Href: "/players", Label: "Players"},
	{Href: "/calendar", Label: "Calendar"},
	{Href: "/invitations", Label: "Invitations", Role: model.RoleAdmin},
	{Href: "/account-settings", Label: "Account"},
}

// Base wraps body in the document shell with navigation and flash message
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s | NextGen Academy</title></head><body>`,
			templ.EscapeString(data.Title))

		buf.WriteString(`<nav>`)
		if data.User != nil {
			for _, l := range navLinks {
				if l.Role != "" && l.Role != data.User.Role {
					continue
				}
				fmt.Fprintf(&buf, `<a href="%s">%s</a> `, l.Href, templ.EscapeString(l.Label))
			}
			fmt.Fprintf(&buf, `<span class="user" data-role="%s">%s</span>`,
				templ.EscapeString(string(data.User.Role)), templ.EscapeString(data.User.DisplayName()))
			buf.WriteString(`<form method="post" action="/auth/logout"><button type="submit">Log out</button></form>`)
		} else {
			buf.WriteString(`<a href="/login">Log in</a> <a href="/register">Register</a>`)
		}
		buf.WriteString(`</nav>`)

		if data.Flash != nil {
			fmt.Fprintf(&buf, `<div class="flash flash-%s">%s</div>`,
				templ.EscapeString(data.Flash.Type), templ.EscapeString(data.Flash.Message))
		}

		buf.WriteString(`<main>`)
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</main></body></html>`)

		_, err := buf.WriteTo(w)
		return err
	})
}
