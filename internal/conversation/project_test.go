package conversation_test

import (
	"testing"

	"github.com/edenlabs/edenbot/internal/conversation"
)

func TestProjectFlowFullWalk(t *testing.T) {
	t.Parallel()

	fields := make(map[string]string)

	result := conversation.StartProject()
	if result.Next != conversation.StepProjectName {
		t.Fatalf("StartProject().Next = %v, want StepProjectName", result.Next)
	}
	if result.Reply.Text == "" {
		t.Fatal("StartProject() produced empty prompt")
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Text: "Dogecoin"}, fields)
	if result.Next != conversation.StepProjectSymbol {
		t.Fatalf("after name, Next = %v, want StepProjectSymbol", result.Next)
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Text: "doge"}, fields)
	if result.Next != conversation.StepProjectDescription {
		t.Fatalf("after symbol, Next = %v, want StepProjectDescription", result.Next)
	}
	if fields[conversation.FieldTokenSymbol] != "DOGE" {
		t.Errorf("symbol = %q, want uppercased DOGE", fields[conversation.FieldTokenSymbol])
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Text: "Much wow"}, fields)
	if result.Next != conversation.StepProjectLogo {
		t.Fatalf("after description, Next = %v, want StepProjectLogo", result.Next)
	}
	if len(result.Reply.Buttons) == 0 || result.Reply.Buttons[0].Data != conversation.CallbackSkipLogo {
		t.Errorf("logo prompt missing skip button: %+v", result.Reply.Buttons)
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{PhotoFileID: "file123"}, fields)
	if result.Next != conversation.StepProjectWebsite {
		t.Fatalf("after logo, Next = %v, want StepProjectWebsite", result.Next)
	}
	if fields[conversation.FieldLogoFileID] != "file123" {
		t.Errorf("logo_file_id = %q, want file123", fields[conversation.FieldLogoFileID])
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Text: "https://doge.example"}, fields)
	if result.Next != conversation.StepProjectTwitter {
		t.Fatalf("after website, Next = %v, want StepProjectTwitter", result.Next)
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Text: "@dogecoin"}, fields)
	if !result.Done {
		t.Fatal("final step did not report Done")
	}
	if fields[conversation.FieldTwitter] != "dogecoin" {
		t.Errorf("twitter = %q, want handle with @ stripped", fields[conversation.FieldTwitter])
	}
}

func TestProjectFlowSkipsConverge(t *testing.T) {
	t.Parallel()

	fields := map[string]string{
		conversation.FieldTokenName:   "Pepe",
		conversation.FieldTokenSymbol: "PEPE",
		conversation.FieldDescription: "Rare frog",
	}

	result := conversation.AdvanceProject(conversation.StepProjectLogo, conversation.Input{Skip: true}, fields)
	if result.Next != conversation.StepProjectWebsite {
		t.Fatalf("skip logo Next = %v, want StepProjectWebsite", result.Next)
	}
	if v, ok := fields[conversation.FieldLogoFileID]; !ok || v != "" {
		t.Errorf("skipped logo stored %q (present=%v), want explicit empty value", v, ok)
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Skip: true}, fields)
	if result.Next != conversation.StepProjectTwitter {
		t.Fatalf("skip website Next = %v, want StepProjectTwitter", result.Next)
	}

	result = conversation.AdvanceProject(result.Next, conversation.Input{Skip: true}, fields)
	if !result.Done {
		t.Fatal("skip twitter did not complete the flow")
	}
}

func TestProjectFlowRepromptsInPlace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		step conversation.Step
		in   conversation.Input
	}{
		{name: "Empty name", step: conversation.StepProjectName, in: conversation.Input{}},
		{name: "Photo at symbol step", step: conversation.StepProjectSymbol, in: conversation.Input{PhotoFileID: "file1"}},
		{name: "Empty text at logo step", step: conversation.StepProjectLogo, in: conversation.Input{}},
		{name: "Photo at website step", step: conversation.StepProjectWebsite, in: conversation.Input{PhotoFileID: "file1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := make(map[string]string)
			result := conversation.AdvanceProject(tt.step, tt.in, fields)
			if result.Next != tt.step {
				t.Errorf("Next = %v, want unchanged %v", result.Next, tt.step)
			}
			if result.Done {
				t.Error("re-prompt reported Done")
			}
			if result.Reply.Text == "" {
				t.Error("re-prompt produced no reply")
			}
			if len(fields) != 0 {
				t.Errorf("re-prompt stored fields: %v", fields)
			}
		})
	}
}
