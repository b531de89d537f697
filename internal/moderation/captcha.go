package moderation

import (
	"fmt"
	"strconv"
	"strings"
)

// CaptchaCallbackPrefix is the callback payload prefix of join-challenge
// verification buttons. The joining member's Telegram ID is appended so
// resolution can verify the activating identity.
const CaptchaCallbackPrefix = "captcha_solve_"

// CaptchaPayload builds the callback payload tagging a challenge button
// with the joining member's identity.
func CaptchaPayload(telegramID int64) string {
	return CaptchaCallbackPrefix + strconv.FormatInt(telegramID, 10)
}

// ParseCaptchaPayload extracts the target identity from a challenge
// callback payload.
func ParseCaptchaPayload(data string) (int64, error) {
	raw, ok := strings.CutPrefix(data, CaptchaCallbackPrefix)
	if !ok {
		return 0, fmt.Errorf("not a captcha payload: %q", data)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid captcha payload %q: %w", data, err)
	}
	return id, nil
}

// CanSolve reports whether the activating user may resolve a challenge
// addressed to target. Only the challenged member themselves qualifies;
// anyone else must be rejected without the restriction being lifted.
func CanSolve(target, activator int64) bool {
	return target != 0 && target == activator
}

// ChallengeMessage formats the challenge posted when a member joins a
// captcha-moderated group.
func ChallengeMessage(firstName string) string {
	return fmt.Sprintf("Welcome %s! Please solve the captcha to speak.", firstName)
}
