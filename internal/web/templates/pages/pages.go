package pages

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/layout"
)

// DashboardData is the data for the dashboard
type DashboardData struct {
	layout.PageData
	Club        *model.Club
	TeamCount   int
	PlayerCount int
}

// Dashboard renders the signed-in landing page
func Dashboard(data DashboardData) templ.Component {
	return page(data.PageData, func(buf *bytes.Buffer) {
		fmt.Fprintf(buf, `<h1>Welcome, %s</h1>`, templ.EscapeString(data.User.DisplayName()))
		fmt.Fprintf(buf, `<p class="role">Role: %s</p>`, templ.EscapeString(string(data.User.Role)))
		if data.Club == nil {
			buf.WriteString(`<p class="no-club">You are not attached to a club yet.</p>`)
			return
		}
		fmt.Fprintf(buf, `<section id="club"><h2>%s</h2><p>Club code: <code>%s</code></p>`,
			templ.EscapeString(data.Club.Name), templ.EscapeString(data.Club.Code))
		fmt.Fprintf(buf, `<p class="teams">%d teams</p><p class="players">%d players</p></section>`,
			data.TeamCount, data.PlayerCount)
	})
}

// AccountSettings renders the current user's account details
func AccountSettings(data layout.PageData) templ.Component {
	return page(data, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Account settings</h1><dl>`)
		fmt.Fprintf(buf, `<dt>Email</dt><dd class="email">%s</dd>`, templ.EscapeString(data.User.Email))
		fmt.Fprintf(buf, `<dt>Name</dt><dd class="name">%s %s</dd>`,
			templ.EscapeString(data.User.FirstName), templ.EscapeString(data.User.LastName))
		fmt.Fprintf(buf, `<dt>Role</dt><dd class="role">%s</dd>`, templ.EscapeString(string(data.User.Role)))
		buf.WriteString(`</dl>`)
	})
}

// PlayersData is the data for the players page
type PlayersData struct {
	layout.PageData
	Players []*model.Player
	Teams   map[model.TeamID]string
}

// Players renders the club's players
func Players(data PlayersData) templ.Component {
	return page(data.PageData, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Players</h1>`)
		if len(data.Players) == 0 {
			buf.WriteString(`<p class="empty">No players yet.</p>`)
			return
		}
		buf.WriteString(`<table id="players"><thead><tr><th>Name</th><th>Position</th><th>Team</th></tr></thead><tbody>`)
		for _, p := range data.Players {
			team := ""
			if p.TeamID != nil {
				team = data.Teams[*p.TeamID]
			}
			fmt.Fprintf(buf, `<tr><td>%s %s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(p.FirstName), templ.EscapeString(p.LastName),
				templ.EscapeString(p.Position), templ.EscapeString(team))
		}
		buf.WriteString(`</tbody></table>`)
	})
}

// Calendar renders the club calendar
func Calendar(data layout.PageData) templ.Component {
	return page(data, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Calendar</h1><p class="empty">No upcoming events.</p>`)
	})
}

// InvitationsData is the data for the invitations page
type InvitationsData struct {
	layout.PageData
	Invitations []*model.Invitation
	Email       string
	Error       string
}

// Invitations renders the invite form and the club's invitations
func Invitations(data InvitationsData) templ.Component {
	return page(data.PageData, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Invitations</h1>`)
		errorBlock(buf, data.Error)
		buf.WriteString(`<form id="invite-form" method="post" action="/invitations">`)
		field(buf, "email", "Email", "email", data.Email, "")
		buf.WriteString(`<label for="role">Role</label><select id="role" name="role">` +
			`<option value="member">Member</option>` +
			`<option value="staff">Staff</option>` +
			`<option value="admin">Admin</option></select>`)
		buf.WriteString(`<button type="submit">Send invitation</button></form>`)

		if len(data.Invitations) == 0 {
			buf.WriteString(`<p class="empty">No invitations sent yet.</p>`)
			return
		}
		buf.WriteString(`<table id="invitations"><thead><tr><th>Email</th><th>Role</th><th>Expires</th><th>Status</th></tr></thead><tbody>`)
		for _, inv := range data.Invitations {
			status := "pending"
			if inv.Consumed() {
				status = "used"
			}
			fmt.Fprintf(buf, `<tr><td>%s</td><td>%s</td><td>%s</td><td class="status">%s</td></tr>`,
				templ.EscapeString(inv.Email), templ.EscapeString(string(inv.Role)),
				inv.ExpiresAt.Format("2006-01-02"), status)
		}
		buf.WriteString(`</tbody></table>`)
	})
}

// NotFound renders the 404 page
func NotFound(data layout.PageData) templ.Component {
	return page(data, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Page not found</h1><p><a href="/dashboard">Back to the dashboard</a></p>`)
	})
}

// ServerError renders the 500 page. ref is the request ID, shown when set.
func ServerError(data layout.PageData, ref string) templ.Component {
	return page(data, func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Something went wrong</h1><p>Please try again in a moment.</p>`)
		if ref != "" {
			fmt.Fprintf(buf, `<p class="ref">Reference: <code>%s</code></p>`, templ.EscapeString(ref))
		}
		buf.WriteString(`<p><a href="/dashboard">Back to the dashboard</a></p>`)
	})
}

// page wraps a body writer in the layout
func page(data layout.PageData, body func(buf *bytes.Buffer)) templ.Component {
	return layout.Base(data, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		body(&buf)
		_, err := buf.WriteTo(w)
		return err
	}))
}
