package policy

import (
	"testing"

	"github.com/geocoder89/supportdesk/internal/domain/user"
)

const (
	actorA = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	actorB = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		name    string
		role    user.Role
		actorID string
		ownerID string
		op      Operation
		want    bool
	}{
		// question reads
		{"user reads own question", user.RoleUser, actorA, actorA, QuestionRead, true},
		{"user reads another user's question", user.RoleUser, actorA, actorB, QuestionRead, false},
		{"admin reads any question", user.RoleAdmin, actorA, actorB, QuestionRead, true},

		// answering: owner or admin
		{"owner answers own question", user.RoleUser, actorA, actorA, QuestionAnswer, true},
		{"user answers someone else's question", user.RoleUser, actorA, actorB, QuestionAnswer, false},
		{"admin answers any question", user.RoleAdmin, actorA, actorB, QuestionAnswer, true},

		// admin-only question operations
		{"user creates via admin surface", user.RoleUser, actorA, actorA, QuestionCreate, false},
		{"user deletes question", user.RoleUser, actorA, actorA, QuestionDelete, false},
		{"user clears answer", user.RoleUser, actorA, actorA, QuestionClearAnswer, false},
		{"admin deletes question", user.RoleAdmin, actorA, actorB, QuestionDelete, true},
		{"admin clears answer", user.RoleAdmin, actorA, actorB, QuestionClearAnswer, true},

		// user records
		{"user reads own profile", user.RoleUser, actorA, actorA, UserRead, true},
		{"user reads another profile", user.RoleUser, actorA, actorB, UserRead, false},
		{"user updates own profile", user.RoleUser, actorA, actorA, UserUpdateProfile, true},
		{"user updates another profile", user.RoleUser, actorA, actorB, UserUpdateProfile, false},
		{"user changes a role", user.RoleUser, actorA, actorA, UserUpdateRole, false},
		{"user deletes an account", user.RoleUser, actorA, actorB, UserDelete, false},
		{"admin changes a role", user.RoleAdmin, actorA, actorB, UserUpdateRole, true},
		{"admin deletes an account", user.RoleAdmin, actorA, actorB, UserDelete, true},

		// messages: any authenticated actor may send
		{"user sends message", user.RoleUser, actorA, actorA, MessageCreate, true},
		{"admin sends message", user.RoleAdmin, actorA, actorA, MessageCreate, true},

		// degenerate inputs always deny
		{"empty actor id", user.RoleAdmin, "", actorB, QuestionRead, false},
		{"unknown role", user.Role("superuser"), actorA, actorA, QuestionRead, false},
		{"unknown operation", user.RoleUser, actorA, actorA, Operation("question.export"), false},
		{"unknown operation for admin", user.RoleAdmin, actorA, actorA, Operation("question.export"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Allows(tc.role, tc.actorID, tc.ownerID, tc.op)

			if got != tc.want {
				t.Errorf("Allows(%q, %q, %q, %q) = %v, want %v",
					tc.role, tc.actorID, tc.ownerID, tc.op, got, tc.want)
			}
		})
	}
}
