package conversation

import "strings"

const (
	promptRaidURL         = "Please send the Twitter/X tweet URL for the raid:"
	promptRaidInvalidURL  = "Please provide a valid Twitter/X URL."
	promptRaidInstruction = "Enter a short instruction for the raid (e.g., 'Like and Retweet!'):"
)

// StartRaid returns the opening prompt and initial step of the raid flow.
func StartRaid() Result {
	return Result{
		Reply: Reply{Text: promptRaidURL},
		Next:  StepRaidURL,
	}
}

// ValidRaidURL reports whether the text contains one of the accepted host
// markers. Validation is a substring match, not a full URL parse.
func ValidRaidURL(text string, allowedHosts []string) bool {
	for _, host := range allowedHosts {
		if strings.Contains(text, host) {
			return true
		}
	}
	return false
}

// AdvanceRaid applies one user input to the raid flow. An invalid URL
// re-prompts in place without advancing, so retries are idempotent.
func AdvanceRaid(step Step, in Input, fields map[string]string, allowedHosts []string) Result {
	switch step {
	case StepRaidURL:
		if in.Text == "" || !ValidRaidURL(in.Text, allowedHosts) {
			return reprompt(step, promptRaidInvalidURL)
		}
		fields[FieldRaidURL] = in.Text
		return Result{
			Reply: Reply{Text: promptRaidInstruction},
			Next:  StepRaidInstruction,
		}

	case StepRaidInstruction:
		if in.Text == "" {
			return reprompt(step, promptRaidInstruction)
		}
		fields[FieldRaidInstruction] = in.Text
		return Result{Next: StepNone, Done: true}
	}

	return Result{Next: step}
}
