package updateauthor

import (
	"strings"

	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide applies the provided fields to the current author.
//
// Business Rules:
//
//	GIVEN: An existing author
//	WHEN: UpdateAuthor command is received
//	THEN: the changed author is persisted and an author.updated event is staged
//	ERROR: ErrMissingName if a blank name is provided
//	IDEMPOTENCY: If no provided field differs from the current author, nothing is persisted
func Decide(current core.Author, command Command) (core.Author, core.DecisionResult) {
	updated := current

	if command.Name != nil {
		name := strings.TrimSpace(*command.Name)
		if name == "" {
			return current, core.ErrorDecision(core.ErrMissingName)
		}

		updated.Name = name
	}

	if command.Bio != nil {
		bio := *command.Bio
		updated.Bio = &bio
	}

	if updated.Name == current.Name && sameBio(updated.Bio, current.Bio) {
		return current, core.IdempotentDecision()
	}

	return updated, core.SuccessDecision()
}

func sameBio(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
