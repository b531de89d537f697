// Package conversation implements the guided-form state machines that walk a
// user through creating a project or announcing a raid. Each flow is a tagged
// union of steps plus a pure transition function (step, input, accumulator)
// -> (next step, reply); all Telegram I/O stays in the handler layer, so the
// machines can be exercised directly in tests.
package conversation

// Step enumerates the states of both conversation flows. The zero value
// means no conversation is in progress.
type Step int

const (
	StepNone Step = iota

	StepProjectName
	StepProjectSymbol
	StepProjectDescription
	StepProjectLogo
	StepProjectWebsite
	StepProjectTwitter

	StepRaidURL
	StepRaidInstruction
)

// Accumulator field keys. Handlers read these when finalizing a flow.
const (
	FieldTokenName       = "token_name"
	FieldTokenSymbol     = "token_symbol"
	FieldDescription     = "description"
	FieldLogoFileID      = "logo_file_id"
	FieldWebsite         = "website"
	FieldTwitter         = "twitter"
	FieldRaidURL         = "tweet_url"
	FieldRaidInstruction = "instruction"
)

// Callback payloads for the skip controls rendered by the project flow.
const (
	CallbackSkipLogo    = "skip_logo"
	CallbackSkipWebsite = "skip_website"
	CallbackSkipTwitter = "skip_twitter"
)

// Input is a single user event fed to a transition function. Exactly one of
// Text/PhotoFileID/Skip is meaningful for any given step.
type Input struct {
	Text        string
	PhotoFileID string
	Skip        bool
}

// Button describes a tappable control attached to a reply. Either Data
// (callback payload) or URL is set.
type Button struct {
	Label string
	Data  string
	URL   string
}

// Reply is the outbound message a transition produces.
type Reply struct {
	Text    string
	Buttons []Button
}

// Result is the outcome of one transition: the reply to send, the step the
// session moves to, and whether the flow reached its terminal state. When
// Done is set the handler finalizes the flow (persistence, summary message)
// and Reply is empty.
type Result struct {
	Reply Reply
	Next  Step
	Done  bool
}
