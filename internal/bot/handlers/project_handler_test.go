package handlers

import (
	"testing"
)

func TestProjectCreatedKeyboardOffersAllActions(t *testing.T) {
	t.Parallel()

	kb := projectCreatedKeyboard(42)

	payloads := make(map[string]bool)
	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			payloads[button.CallbackData] = true
		}
	}

	want := []string{
		"view_project_42",
		"generate_content_42",
		"police_settings_42",
		"raid_manager_42",
		"launch_42",
		"main_menu",
	}
	for _, data := range want {
		if !payloads[data] {
			t.Errorf("keyboard missing %q action, got %v", data, payloads)
		}
	}
}
