package models

import "time"

type ActivityKind string

const (
	ActivityDealCreated          ActivityKind = "deal_created"
	ActivityStatusChanged        ActivityKind = "status_changed"
	ActivityOfferUpdated         ActivityKind = "offer_updated"
	ActivityPriorityUpdated      ActivityKind = "priority_updated"
	ActivityAssigneeUpdated      ActivityKind = "assignee_updated"
	ActivityDealRescheduled      ActivityKind = "deal_rescheduled"
	ActivityMilestoneCompleted   ActivityKind = "milestone_completed"
	ActivityMilestoneReopened    ActivityKind = "milestone_reopened"
	ActivityMilestoneAnnotated   ActivityKind = "milestone_annotated"
	ActivityMilestoneRescheduled ActivityKind = "milestone_rescheduled"
	ActivityParticipantAdded     ActivityKind = "participant_added"
	ActivityParticipantRemoved   ActivityKind = "participant_removed"
)

// Activity is an append-only audit entry recorded with the mutation it describes.
type Activity struct {
	ID        string            `json:"id"`
	DealID    string            `json:"deal_id"`
	ActorID   string            `json:"actor_id"`
	Kind      ActivityKind      `json:"kind"`
	Detail    map[string]string `json:"detail,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
