package policy

import "github.com/geocoder89/supportdesk/internal/domain/user"

// Operation enumerates every gated action the HTTP surface exposes. The
// decision table below must stay total over this set.
type Operation string

const (
	QuestionRead        Operation = "question.read"
	QuestionAnswer      Operation = "question.answer"
	QuestionCreate      Operation = "question.create"
	QuestionDelete      Operation = "question.delete"
	QuestionClearAnswer Operation = "question.clear_answer"
	UserRead            Operation = "user.read"
	UserUpdateProfile   Operation = "user.update_profile"
	UserUpdateRole      Operation = "user.update_role"
	UserDelete          Operation = "user.delete"
	MessageCreate       Operation = "message.create"
)

// Allows is the single source of truth for record visibility. Handlers call
// it before touching a repo and never re-derive the rules locally.
//
// ownerID is the id of the account that owns the resource; for operations
// with no meaningful owner (creates) callers pass the actor's own id.
func Allows(role user.Role, actorID, ownerID string, op Operation) bool {
	if actorID == "" {
		return false
	}

	if role == user.RoleAdmin {
		switch op {
		case QuestionRead, QuestionAnswer, QuestionCreate, QuestionDelete,
			QuestionClearAnswer, UserRead, UserUpdateProfile, UserUpdateRole,
			UserDelete, MessageCreate:
			return true
		}
		return false
	}

	if role != user.RoleUser {
		// unknown role: deny everything
		return false
	}

	switch op {
	case QuestionRead, QuestionAnswer:
		return ownerID == actorID
	case UserRead, UserUpdateProfile:
		return ownerID == actorID
	case MessageCreate:
		// any authenticated user may send; the sender is forced to the
		// actor's id upstream regardless of what the client claims
		return true
	case QuestionCreate, QuestionDelete, QuestionClearAnswer, UserUpdateRole, UserDelete:
		return false
	}

	return false
}
