package models

import "time"

// ParticipantRole is the professional role a user holds on a deal.
type ParticipantRole string

const (
	RoleBuyer      ParticipantRole = "buyer"
	RoleSeller     ParticipantRole = "seller"
	RoleBroker     ParticipantRole = "broker"
	RoleAttorney   ParticipantRole = "attorney"
	RoleLender     ParticipantRole = "lender"
	RoleAccountant ParticipantRole = "accountant"
	RoleAdmin      ParticipantRole = "admin"
)

func ParseParticipantRole(s string) (ParticipantRole, bool) {
	r := ParticipantRole(s)
	switch r {
	case RoleBuyer, RoleSeller, RoleBroker, RoleAttorney, RoleLender, RoleAccountant, RoleAdmin:
		return r, true
	}
	return "", false
}

// Participant links a user to a deal. Rows are deactivated, never deleted.
type Participant struct {
	ID       string          `json:"id"`
	DealID   string          `json:"deal_id"`
	UserID   string          `json:"user_id"`
	Role     ParticipantRole `json:"role"`
	IsActive bool            `json:"is_active"`
	JoinedAt time.Time       `json:"joined_at"`
	LeftAt   *time.Time      `json:"left_at,omitempty"`
}
