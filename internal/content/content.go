// Package content derives marketing copy from project fields. Every function
// is a pure mapping from its inputs; calling one repeatedly with the same
// fields always yields the same text.
package content

import (
	"fmt"
	"strings"
)

// Canned fallbacks used when a project has no description.
const (
	shillFallback        = "The next big thing on pump.fun!"
	announcementFallback = "Coming soon to pump.fun!"
)

// PumpFunDescription builds the description paragraph used on pump.fun.
// The description comes first; when either social field is set, a
// blank-line-separated block follows listing website then twitter, each on
// its own line. When both are absent the block is omitted entirely.
func PumpFunDescription(description, website, twitter string) string {
	var parts []string
	if description != "" {
		parts = append(parts, description)
	}

	var socials []string
	if website != "" {
		socials = append(socials, "Website: "+website)
	}
	if twitter != "" {
		socials = append(socials, "Twitter: @"+twitter)
	}
	if len(socials) > 0 {
		parts = append(parts, strings.Join(socials, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// ShillMessage builds the short promotional message for a token. A follow-us
// clause is appended only when the twitter handle is set.
func ShillMessage(symbol, description, twitter string) string {
	if description == "" {
		description = shillFallback
	}
	msg := fmt.Sprintf("Check out $%s! %s", symbol, description)
	if twitter != "" {
		msg += fmt.Sprintf(" Follow us @%s", twitter)
	}
	return msg
}

// Announcement builds the launch announcement template for a token.
func Announcement(name, symbol, description string) string {
	if description == "" {
		description = announcementFallback
	}
	return fmt.Sprintf("Introducing %s ($%s)!\n\n%s", name, symbol, description)
}
