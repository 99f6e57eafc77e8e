package chat

import (
	"testing"

	"github.com/rankpilot/rankpilot/internal/domain"
	"github.com/rankpilot/rankpilot/internal/prompt"
)

func turn(author domain.Role, text string) *domain.Turn {
	return &domain.Turn{Author: author, Text: text}
}

func TestWindowKeepsLastFourInOrder(t *testing.T) {
	turns := []*domain.Turn{
		turn(domain.RoleUser, "t1"),
		turn(domain.RoleAgent, "t2"),
		turn(domain.RoleUser, "t3"),
		turn(domain.RoleAgent, "t4"),
		turn(domain.RoleUser, "t5"),
		turn(domain.RoleAgent, "t6"),
	}

	got := Window(turns, WindowSize)
	if len(got) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(got))
	}
	for i, want := range []string{"t3", "t4", "t5", "t6"} {
		if got[i].Text != want {
			t.Errorf("window[%d] = %q, want %q", i, got[i].Text, want)
		}
	}
}

func TestWindowExcludesErrorTurns(t *testing.T) {
	errTurn := turn(domain.RoleAgent, "I encountered an error")
	errTurn.IsError = true

	turns := []*domain.Turn{
		turn(domain.RoleUser, "t1"),
		turn(domain.RoleAgent, "t2"),
		turn(domain.RoleUser, "t3"),
		errTurn,
		turn(domain.RoleUser, "t4"),
	}

	got := Window(turns, WindowSize)
	if len(got) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(got))
	}
	for _, tt := range got {
		if tt.IsError {
			t.Error("error turn leaked into the context window")
		}
	}
}

func TestWindowedContextPrompt(t *testing.T) {
	turns := []*domain.Turn{
		turn(domain.RoleUser, "t1"),
		turn(domain.RoleAgent, "t2"),
		turn(domain.RoleUser, "t3"),
		turn(domain.RoleAgent, "t4"),
		turn(domain.RoleUser, "t5"),
		turn(domain.RoleAgent, "t6"),
	}

	got := prompt.Chat(Window(turns, WindowSize), "new question")
	want := "User: t3\nAgent: t4\nUser: t5\nAgent: t6\nUser: new question\nAgent:"
	if got != want {
		t.Errorf("context prompt = %q, want %q", got, want)
	}
}
