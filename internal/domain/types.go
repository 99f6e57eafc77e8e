package domain

import "time"

type ConversationID string
type TurnID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type Timestamp = time.Time
