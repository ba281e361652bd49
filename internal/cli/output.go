package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printUser(v.User)
		fmt.Fprintf(o.w, "Session expires: %s\n", v.ExpiresAt.Format(time.RFC3339))
	case Club:
		fmt.Fprintf(o.w, "Club: %s (%d)\nCode: %s\n", v.Name, v.ID, v.Code)
	case []Club:
		o.table("ID\tCODE\tNAME", len(v), func(i int) []any { return []any{v[i].ID, v[i].Code, v[i].Name} })
	case Team:
		fmt.Fprintf(o.w, "Team: %s (%d)\n", v.Name, v.ID)
	case []Team:
		o.table("ID\tNAME\tAGE GROUP", len(v), func(i int) []any { return []any{v[i].ID, v[i].Name, v[i].AgeGroup} })
	case Player:
		fmt.Fprintf(o.w, "Player: %s %s (%d)\n", v.FirstName, v.LastName, v.ID)
	case []Player:
		o.table("ID\tNAME\tPOSITION", len(v), func(i int) []any {
			return []any{v[i].ID, v[i].FirstName + " " + v[i].LastName, v[i].Position}
		})
	case []StaffMember:
		o.table("ID\tNAME", len(v), func(i int) []any { return []any{v[i].ID, v[i].FirstName + " " + v[i].LastName} })
	case InviteResult:
		fmt.Fprintf(o.w, "Invited %s as %s (expires %s)\n",
			v.Invitation.Email, v.Invitation.Role, v.Invitation.ExpiresAt.Format(time.DateOnly))
		if !v.Notified {
			fmt.Fprintln(o.w, "Warning: the invitation email could not be sent")
		}
	case []Invitation:
		o.table("EMAIL\tROLE\tEXPIRES\tSTATUS", len(v), func(i int) []any {
			status := "pending"
			if v[i].UsedAt != nil {
				status = "used"
			}
			return []any{v[i].Email, v[i].Role, v[i].ExpiresAt.Format(time.DateOnly), status}
		})
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s (%s, %dms)\n", v.Status, v.Server, v.LatencyMS)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u User) {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	fmt.Fprintf(o.w, "User: %s (%s)\n", u.Email, u.ID)
	if name != "" {
		fmt.Fprintf(o.w, "Name: %s\n", name)
	}
	fmt.Fprintf(o.w, "Role: %s\n", u.Role)
	if u.ClubID != 0 {
		fmt.Fprintf(o.w, "Club: %d\n", u.ClubID)
	}
}

func (o *Output) table(header string, n int, row func(i int) []any) {
	if n == 0 {
		fmt.Fprintln(o.w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for i := 0; i < n; i++ {
		cells := row(i)
		for j, c := range cells {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}
