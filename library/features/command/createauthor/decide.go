package createauthor

import (
	"strings"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide validates the command and returns the author to persist.
//
// Business Rules:
//
//	WHEN: CreateAuthor command is received
//	THEN: an Author is persisted and an author.created event is staged
//	ERROR: ErrMissingName if the name is blank
func Decide(command Command) (core.Author, core.DecisionResult) {
	name := strings.TrimSpace(command.Name)
	if name == "" {
		return core.Author{}, core.ErrorDecision(core.ErrMissingName)
	}

	return core.Author{Name: name, Bio: command.Bio}, core.SuccessDecision()
}
