// Package status renders the one-line JSON payload read by the status bar.
package status

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hegde-atri/wg-burrow/internal/types"
)

const (
	activeGlyph  = "🛡️  "
	blockedGlyph = "🚫  "
	noTunnels    = "No VPNs"
)

// Style selects how the label is built
type Style int

const (
	// StyleToggle labels with the bare tunnel name
	StyleToggle Style = iota
	// StyleStatus prefixes the name with a shield or blocked glyph
	StyleStatus
)

// Payload is what the status bar shows: a label and a CSS class
type Payload struct {
	Text  string
	Class types.State
}

// Render builds the payload for a tunnel in the given state
func Render(name string, state types.State, style Style) Payload {
	text := name
	if style == StyleStatus {
		if state == types.Active {
			text = activeGlyph + name
		} else {
			text = blockedGlyph + name
		}
	}
	return Payload{Text: text, Class: state}
}

// NoTunnels is shown when there is nothing to rotate through
func NoTunnels() Payload {
	return Payload{Text: noTunnels, Class: types.Inactive}
}

// String formats the payload as {"text": "...", "class": "..."}
func (p Payload) String() string {
	return fmt.Sprintf(`{"text": %s, "class": %s}`, quote(p.Text), quote(p.Class.String()))
}

// WriteTo writes the payload followed by a newline
func (p Payload) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String()+"\n")
	return int64(n), err
}

// quote encodes s as a JSON string without HTML escaping
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
