package domain

// Turn represents a single message in a conversation timeline (user or agent).
type Turn struct {
	ID             TurnID
	ConversationID ConversationID
	Author         Role
	Text           string
	CreatedAt      Timestamp

	// IsError marks agent turns that carry a failure message instead of a
	// real model reply. They are kept for display but excluded from the
	// context sent back to the model.
	IsError bool
}

// Conversation is one consultant-chat session with the agent.
type Conversation struct {
	ID        ConversationID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	Title string
}
