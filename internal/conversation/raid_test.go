package conversation_test

import (
	"testing"

	"github.com/edenlabs/edenbot/internal/conversation"
)

var raidHosts = []string{"twitter.com", "x.com"}

func TestValidRaidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{name: "Twitter URL", text: "https://twitter.com/user/status/1", valid: true},
		{name: "X URL", text: "https://x.com/user/status/1", valid: true},
		{name: "Other URL", text: "https://example.com/post/1", valid: false},
		{name: "Plain text", text: "raid this", valid: false},
		{name: "Empty", text: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := conversation.ValidRaidURL(tt.text, raidHosts); got != tt.valid {
				t.Errorf("ValidRaidURL(%q) = %v, want %v", tt.text, got, tt.valid)
			}
		})
	}
}

func TestRaidFlowFullWalk(t *testing.T) {
	t.Parallel()

	fields := make(map[string]string)

	result := conversation.StartRaid()
	if result.Next != conversation.StepRaidURL {
		t.Fatalf("StartRaid().Next = %v, want StepRaidURL", result.Next)
	}

	result = conversation.AdvanceRaid(result.Next, conversation.Input{Text: "https://x.com/user/status/1"}, fields, raidHosts)
	if result.Next != conversation.StepRaidInstruction {
		t.Fatalf("after URL, Next = %v, want StepRaidInstruction", result.Next)
	}

	result = conversation.AdvanceRaid(result.Next, conversation.Input{Text: "Like and Retweet!"}, fields, raidHosts)
	if !result.Done {
		t.Fatal("instruction step did not complete the flow")
	}
	if fields[conversation.FieldRaidURL] != "https://x.com/user/status/1" {
		t.Errorf("tweet_url = %q", fields[conversation.FieldRaidURL])
	}
	if fields[conversation.FieldRaidInstruction] != "Like and Retweet!" {
		t.Errorf("instruction = %q", fields[conversation.FieldRaidInstruction])
	}
}

func TestRaidFlowInvalidURLRepromptsInPlace(t *testing.T) {
	t.Parallel()

	fields := make(map[string]string)

	// Repeated invalid input keeps the flow at the same step every time.
	for i := 0; i < 3; i++ {
		result := conversation.AdvanceRaid(conversation.StepRaidURL, conversation.Input{Text: "https://example.com/nope"}, fields, raidHosts)
		if result.Next != conversation.StepRaidURL {
			t.Fatalf("attempt %d: Next = %v, want StepRaidURL", i, result.Next)
		}
		if result.Done {
			t.Fatalf("attempt %d: invalid URL reported Done", i)
		}
		if result.Reply.Text == "" {
			t.Fatalf("attempt %d: no re-prompt reply", i)
		}
	}

	if len(fields) != 0 {
		t.Errorf("invalid input stored fields: %v", fields)
	}
}
