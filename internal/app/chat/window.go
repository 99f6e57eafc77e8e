package chat

import "github.com/rankpilot/rankpilot/internal/domain"

// WindowSize is how many stored turns are resent as context with each new
// message. Older turns stay stored for display but are not resent.
const WindowSize = 4

// Window returns the last n turns eligible for the context prompt, in their
// original order. Error turns are excluded: resending failure text as
// conversation history only degrades the model's replies.
func Window(turns []*domain.Turn, n int) []*domain.Turn {
	eligible := make([]*domain.Turn, 0, len(turns))
	for _, t := range turns {
		if t.IsError {
			continue
		}
		eligible = append(eligible, t)
	}

	if n > 0 && len(eligible) > n {
		return eligible[len(eligible)-n:]
	}
	return eligible
}
