package authz

import "dealdesk/internal/models"

// Capability is what an actor wants to do with a deal.
type Capability string

const (
	CapRead           Capability = "read"
	CapWriteDeal      Capability = "write_deal"
	CapWriteMilestone Capability = "write_milestone"
)

// Actor is the authenticated caller. GlobalAdmin is granted outside the deal
// and only ever widens read access.
type Actor struct {
	ID          string
	GlobalAdmin bool
}

// CanWriteDeal reports whether role may change status, offer, dates and participants.
func CanWriteDeal(role models.ParticipantRole) bool {
	switch role {
	case models.RoleBuyer, models.RoleSeller, models.RoleBroker, models.RoleAdmin:
		return true
	case models.RoleAttorney, models.RoleLender, models.RoleAccountant:
		return false
	}
	return false
}

// CanWriteMilestone reports whether role may complete or annotate milestones.
func CanWriteMilestone(role models.ParticipantRole) bool {
	switch role {
	case models.RoleBuyer, models.RoleSeller, models.RoleBroker, models.RoleAdmin,
		models.RoleAttorney, models.RoleLender, models.RoleAccountant:
		return true
	}
	return false
}

// Allows reports whether a participant holding role has capability.
func Allows(role models.ParticipantRole, c Capability) bool {
	switch c {
	case CapRead:
		_, ok := models.ParseParticipantRole(string(role))
		return ok
	case CapWriteDeal:
		return CanWriteDeal(role)
	case CapWriteMilestone:
		return CanWriteMilestone(role)
	}
	return false
}
