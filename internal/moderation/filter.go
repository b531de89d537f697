// Package moderation implements the group moderation primitives: the
// keyword-based content filter and the join-challenge callback payload
// codec. Both are pure; the Telegram calls they drive live in the handler
// layer.
package moderation

import "strings"

// MatchKeyword scans text case-insensitively for membership of any keyword
// and returns the first match. Matching is substring-based: "guaranteed
// profit airdrop" matches on "guaranteed".
func MatchKeyword(text string, keywords []string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return keyword, true
		}
	}
	return "", false
}

// RemovalNotice formats the user-facing notice posted after a message is
// deleted by the content filter.
func RemovalNotice(authorName string) string {
	return "Message from " + authorName + " removed: Potential scam content detected."
}
