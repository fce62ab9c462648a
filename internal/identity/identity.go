// Package identity owns the contact address shown on the page. Nothing
// else writes the display node, and language files never supply it.
package identity

import (
	"errors"
	"html"
	"strings"
)

// IDEmailDisplay is the element that shows the address.
const IDEmailDisplay = "email-display"

// Email is assembled from its parts at render time.
type Email struct {
	User   string
	Domain string
	TLD    string
}

// Default is the site owner's address.
var Default = Email{User: "fjvico", Domain: "uma", TLD: "es"}

// Target is the page the address is written into.
type Target interface {
	SetHTML(id, html string) bool
}

func (e Email) String() string {
	return e.User + "@" + e.Domain + "." + e.TLD
}

func (e Email) Validate() error {
	if strings.TrimSpace(e.User) == "" || strings.TrimSpace(e.Domain) == "" || strings.TrimSpace(e.TLD) == "" {
		return errors.New("identity: user, domain and tld are required")
	}
	if strings.ContainsAny(e.User+e.Domain+e.TLD, " @<>\"'") {
		return errors.New("identity: invalid characters in address")
	}
	return nil
}

// Markup returns the address with empty comments between its parts. The
// element text is the plain address while the served markup never holds
// it as one contiguous string.
func (e Email) Markup() string {
	parts := []string{e.User, "@", e.Domain, ".", e.TLD}
	for i, p := range parts {
		parts[i] = html.EscapeString(p)
	}
	return strings.Join(parts, "<!---->")
}

// Restore rewrites the display node. It reports false when the page has
// no such node.
func (e Email) Restore(t Target) bool {
	return t.SetHTML(IDEmailDisplay, e.Markup())
}
