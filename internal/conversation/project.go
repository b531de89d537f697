package conversation

import (
	"fmt"
	"strings"
)

const (
	promptName        = "Let's create your new token project!\n\nPlease enter your token name:"
	promptDescription = "Now enter a description for your token (this will appear on pump.fun):"
	promptLogo        = "Now send your token logo image, or click 'Skip Logo' to continue without one:"
	promptWebsite     = "Enter your project website URL (optional):"
	promptTwitter     = "Enter your project Twitter handle (optional):"
)

// StartProject returns the opening prompt and initial step of the project
// creation flow.
func StartProject() Result {
	return Result{
		Reply: Reply{Text: promptName},
		Next:  StepProjectName,
	}
}

// AdvanceProject applies one user input to the project flow. Text steps
// ignore non-text input by re-prompting in place; the logo step accepts an
// image attachment or the skip control. Skip controls store an explicit
// empty value and converge on the same next step as the input path.
func AdvanceProject(step Step, in Input, fields map[string]string) Result {
	switch step {
	case StepProjectName:
		if in.Text == "" {
			return reprompt(step, promptName)
		}
		fields[FieldTokenName] = in.Text
		return Result{
			Reply: Reply{Text: fmt.Sprintf("Token name: %s\n\nNow enter your token symbol (e.g., DOGE, PEPE):", in.Text)},
			Next:  StepProjectSymbol,
		}

	case StepProjectSymbol:
		if in.Text == "" {
			return reprompt(step, "Please enter your token symbol (e.g., DOGE, PEPE):")
		}
		symbol := strings.ToUpper(in.Text)
		fields[FieldTokenSymbol] = symbol
		return Result{
			Reply: Reply{Text: fmt.Sprintf("Token symbol: %s\n\n%s", symbol, promptDescription)},
			Next:  StepProjectDescription,
		}

	case StepProjectDescription:
		if in.Text == "" {
			return reprompt(step, promptDescription)
		}
		fields[FieldDescription] = in.Text
		return Result{
			Reply: Reply{
				Text:    "Description saved!\n\n" + promptLogo,
				Buttons: []Button{{Label: "Skip Logo", Data: CallbackSkipLogo}},
			},
			Next: StepProjectLogo,
		}

	case StepProjectLogo:
		if in.Skip {
			fields[FieldLogoFileID] = ""
		} else if in.PhotoFileID != "" {
			fields[FieldLogoFileID] = in.PhotoFileID
		} else {
			return Result{
				Reply: Reply{
					Text:    promptLogo,
					Buttons: []Button{{Label: "Skip Logo", Data: CallbackSkipLogo}},
				},
				Next: step,
			}
		}
		return Result{
			Reply: Reply{
				Text:    promptWebsite,
				Buttons: []Button{{Label: "Skip Website", Data: CallbackSkipWebsite}},
			},
			Next: StepProjectWebsite,
		}

	case StepProjectWebsite:
		if in.Skip {
			fields[FieldWebsite] = ""
		} else if in.Text != "" {
			fields[FieldWebsite] = in.Text
		} else {
			return Result{
				Reply: Reply{
					Text:    promptWebsite,
					Buttons: []Button{{Label: "Skip Website", Data: CallbackSkipWebsite}},
				},
				Next: step,
			}
		}
		return Result{
			Reply: Reply{
				Text:    promptTwitter,
				Buttons: []Button{{Label: "Skip Twitter", Data: CallbackSkipTwitter}},
			},
			Next: StepProjectTwitter,
		}

	case StepProjectTwitter:
		if in.Skip {
			fields[FieldTwitter] = ""
		} else if in.Text != "" {
			fields[FieldTwitter] = strings.TrimPrefix(in.Text, "@")
		} else {
			return Result{
				Reply: Reply{
					Text:    promptTwitter,
					Buttons: []Button{{Label: "Skip Twitter", Data: CallbackSkipTwitter}},
				},
				Next: step,
			}
		}
		return Result{Next: StepNone, Done: true}
	}

	return Result{Next: step}
}

func reprompt(step Step, text string) Result {
	return Result{
		Reply: Reply{Text: text},
		Next:  step,
	}
}
