package moderation_test

import (
	"testing"

	"github.com/edenlabs/edenbot/internal/moderation"
)

var scamKeywords = []string{"airdrop", "presale", "whitelist", "investment", "guaranteed", "profit", "buy now"}

func TestMatchKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		keyword string
		matched bool
	}{
		{
			name:    "Clean message",
			text:    "gm everyone, chart looks great",
			matched: false,
		},
		{
			name:    "Single keyword",
			text:    "join the airdrop now",
			keyword: "airdrop",
			matched: true,
		},
		{
			name:    "Case insensitive",
			text:    "GUARANTEED returns!!",
			keyword: "guaranteed",
			matched: true,
		},
		{
			name:    "Keyword inside word",
			text:    "profitability is up",
			keyword: "profit",
			matched: true,
		},
		{
			name:    "Multiple keywords returns first match",
			text:    "guaranteed profit airdrop",
			keyword: "airdrop",
			matched: true,
		},
		{
			name:    "Multi-word keyword",
			text:    "BUY NOW before it's too late",
			keyword: "buy now",
			matched: true,
		},
		{
			name:    "Empty text",
			text:    "",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			keyword, matched := moderation.MatchKeyword(tt.text, scamKeywords)
			if matched != tt.matched {
				t.Fatalf("MatchKeyword(%q) matched = %v, want %v", tt.text, matched, tt.matched)
			}
			if matched && keyword != tt.keyword {
				t.Errorf("MatchKeyword(%q) keyword = %q, want %q", tt.text, keyword, tt.keyword)
			}
		})
	}
}

func TestMatchKeywordSkipsEmptyKeywords(t *testing.T) {
	t.Parallel()

	if keyword, matched := moderation.MatchKeyword("anything at all", []string{""}); matched {
		t.Errorf("empty keyword matched %q", keyword)
	}
}

func TestCaptchaPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	payload := moderation.CaptchaPayload(123456789)
	if payload != "captcha_solve_123456789" {
		t.Fatalf("CaptchaPayload() = %q", payload)
	}

	id, err := moderation.ParseCaptchaPayload(payload)
	if err != nil {
		t.Fatalf("ParseCaptchaPayload() error: %v", err)
	}
	if id != 123456789 {
		t.Errorf("ParseCaptchaPayload() = %d, want 123456789", id)
	}
}

func TestParseCaptchaPayloadRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "Wrong prefix", data: "view_project_42"},
		{name: "Missing ID", data: "captcha_solve_"},
		{name: "Non-numeric ID", data: "captcha_solve_abc"},
		{name: "Empty", data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if id, err := moderation.ParseCaptchaPayload(tt.data); err == nil {
				t.Errorf("ParseCaptchaPayload(%q) = %d, want error", tt.data, id)
			}
		})
	}
}

func TestCanSolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    int64
		activator int64
		want      bool
	}{
		{name: "Challenged member", target: 100, activator: 100, want: true},
		{name: "Different member", target: 100, activator: 200, want: false},
		{name: "Group admin trying on behalf", target: 100, activator: 1, want: false},
		{name: "Zero target never solvable", target: 0, activator: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := moderation.CanSolve(tt.target, tt.activator); got != tt.want {
				t.Errorf("CanSolve(%d, %d) = %v, want %v", tt.target, tt.activator, got, tt.want)
			}
		})
	}
}

func TestRemovalNotice(t *testing.T) {
	t.Parallel()

	got := moderation.RemovalNotice("Alice")
	want := "Message from Alice removed: Potential scam content detected."
	if got != want {
		t.Errorf("RemovalNotice() = %q, want %q", got, want)
	}
}

func TestChallengeMessage(t *testing.T) {
	t.Parallel()

	got := moderation.ChallengeMessage("Bob")
	want := "Welcome Bob! Please solve the captcha to speak."
	if got != want {
		t.Errorf("ChallengeMessage() = %q, want %q", got, want)
	}
}
