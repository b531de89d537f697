package content_test

import (
	"testing"

	"github.com/edenlabs/edenbot/internal/content"
)

func TestPumpFunDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		website     string
		twitter     string
		expected    string
	}{
		{
			name:        "Description only",
			description: "To the moon",
			expected:    "To the moon",
		},
		{
			name:        "Description with website",
			description: "To the moon",
			website:     "eden.xyz",
			expected:    "To the moon\n\nWebsite: eden.xyz",
		},
		{
			name:        "Description with twitter",
			description: "To the moon",
			twitter:     "edenbot",
			expected:    "To the moon\n\nTwitter: @edenbot",
		},
		{
			name:        "Description with both socials",
			description: "To the moon",
			website:     "eden.xyz",
			twitter:     "edenbot",
			expected:    "To the moon\n\nWebsite: eden.xyz\nTwitter: @edenbot",
		},
		{
			name:     "Socials without description",
			website:  "eden.xyz",
			twitter:  "edenbot",
			expected: "Website: eden.xyz\nTwitter: @edenbot",
		},
		{
			name:     "Everything empty",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := content.PumpFunDescription(tt.description, tt.website, tt.twitter)
			if got != tt.expected {
				t.Errorf("PumpFunDescription() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPumpFunDescriptionDeterministic(t *testing.T) {
	t.Parallel()

	first := content.PumpFunDescription("To the moon", "eden.xyz", "edenbot")
	second := content.PumpFunDescription("To the moon", "eden.xyz", "edenbot")
	if first != second {
		t.Errorf("repeated calls differ: %q vs %q", first, second)
	}
}

func TestShillMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		symbol      string
		description string
		twitter     string
		expected    string
	}{
		{
			name:        "With description and twitter",
			symbol:      "DOGE",
			description: "Much wow",
			twitter:     "dogecoin",
			expected:    "Check out $DOGE! Much wow Follow us @dogecoin",
		},
		{
			name:     "Fallback description",
			symbol:   "PEPE",
			expected: "Check out $PEPE! The next big thing on pump.fun!",
		},
		{
			name:        "No twitter",
			symbol:      "PEPE",
			description: "Rare frog",
			expected:    "Check out $PEPE! Rare frog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := content.ShillMessage(tt.symbol, tt.description, tt.twitter)
			if got != tt.expected {
				t.Errorf("ShillMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAnnouncement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tokenName   string
		symbol      string
		description string
		expected    string
	}{
		{
			name:        "With description",
			tokenName:   "Dogecoin",
			symbol:      "DOGE",
			description: "Much wow",
			expected:    "Introducing Dogecoin ($DOGE)!\n\nMuch wow",
		},
		{
			name:      "Fallback description",
			tokenName: "Pepe",
			symbol:    "PEPE",
			expected:  "Introducing Pepe ($PEPE)!\n\nComing soon to pump.fun!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := content.Announcement(tt.tokenName, tt.symbol, tt.description)
			if got != tt.expected {
				t.Errorf("Announcement() = %q, want %q", got, tt.expected)
			}
		})
	}
}
