package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"tasnim.dev/idc-audit/internal/audit"
	"tasnim.dev/idc-audit/internal/utils"
)

// ANSI codes for terminal output (used when Colored=true).
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiCyan  = "\033[0;36m"
)

// TableOptions controls which columns RenderTable renders and how rows are
// coloured.
type TableOptions struct {
	// Colored bolds the header and tints group-provisioned VIA cells.
	// Default false (pipe-safe).
	Colored bool

	// IncludeIDs adds USER ID and ACCOUNT ID columns next to the name columns.
	IncludeIDs bool
}

// truncateField shortens s to at most max display cells for ID/name columns,
// keeping rune boundaries intact. An ellipsis marks truncation.
func truncateField(s string, max int) string {
	return runewidth.Truncate(s, max, "…")
}

// pad right-pads s to width display cells. %-*s pads by byte count, which
// drifts for multibyte names.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// viaCell returns the VIA column value padded to width characters.
// Group-provisioned cells are tinted when colored; padding spaces stay plain
// so subsequent columns align regardless of terminal ANSI support.
func viaCell(row audit.AccessRow, width int, colored bool) string {
	text := "direct"
	if row.ViaGroup {
		text = truncateField(row.GroupName, width)
	}
	if !colored || !row.ViaGroup {
		return pad(text, width)
	}
	spaces := width - runewidth.StringWidth(text)
	if spaces < 0 {
		spaces = 0
	}
	return ansiCyan + text + ansiReset + strings.Repeat(" ", spaces)
}

// RenderTable writes access rows as an aligned table to w.
// The separator line width is derived from the header row so all rows align.
//
// Column order:
//
//	USER  [USER ID]  ACCOUNT  [ACCOUNT ID]  PERMISSION SET  VIA  SESSION
func RenderTable(w io.Writer, rows []audit.AccessRow, opts TableOptions) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No assignments.")
		return
	}

	// Fixed column display widths.
	const (
		wUser      = 20
		wUserID    = 22
		wAccount   = 24
		wAccountID = 14
		wPermSet   = 28
		wVia       = 24
	)

	var hb strings.Builder
	hb.WriteString(pad("USER", wUser))
	if opts.IncludeIDs {
		hb.WriteString("  " + pad("USER ID", wUserID))
	}
	hb.WriteString("  " + pad("ACCOUNT", wAccount))
	if opts.IncludeIDs {
		hb.WriteString("  " + pad("ACCOUNT ID", wAccountID))
	}
	hb.WriteString("  " + pad("PERMISSION SET", wPermSet))
	hb.WriteString("  " + pad("VIA", wVia))
	hb.WriteString("  SESSION")
	header := hb.String()

	if opts.Colored {
		fmt.Fprintln(w, ansiBold+header+ansiReset)
	} else {
		fmt.Fprintln(w, header)
	}
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, r := range rows {
		var rb strings.Builder
		rb.WriteString(pad(truncateField(r.UserName, wUser), wUser))
		if opts.IncludeIDs {
			rb.WriteString("  " + pad(truncateField(r.UserID, wUserID), wUserID))
		}
		rb.WriteString("  " + pad(truncateField(r.AccountName, wAccount), wAccount))
		if opts.IncludeIDs {
			rb.WriteString("  " + pad(r.AccountID, wAccountID))
		}
		rb.WriteString("  " + pad(truncateField(r.PermissionSetName, wPermSet), wPermSet))
		rb.WriteString("  " + viaCell(r, wVia, opts.Colored))
		rb.WriteString("  " + utils.ISODuration(r.SessionDuration))
		fmt.Fprintln(w, strings.TrimRight(rb.String(), " "))
	}
}

// RenderJSON writes access rows as an indented JSON array to w.
// A nil slice renders as [] rather than null.
func RenderJSON(w io.Writer, rows []audit.AccessRow) error {
	if rows == nil {
		rows = []audit.AccessRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
