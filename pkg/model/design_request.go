package model

import (
	"errors"
	"time"
)

// ErrInvalidTransition is returned when a design request status change is not
// allowed from its current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// DesignStatus is the review state of a CAD design request.
type DesignStatus string

const (
	DesignPending   DesignStatus = "pending"
	DesignInReview  DesignStatus = "in-review"
	DesignApproved  DesignStatus = "approved"
	DesignRejected  DesignStatus = "rejected"
	DesignDelivered DesignStatus = "delivered"
)

var designTransitions = map[DesignStatus][]DesignStatus{
	DesignPending:  {DesignInReview, DesignRejected},
	DesignInReview: {DesignApproved, DesignRejected},
	DesignApproved: {DesignDelivered},
}

// CanTransition reports whether a request in status s may move to next.
func (s DesignStatus) CanTransition(next DesignStatus) bool {
	for _, allowed := range designTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known design status.
func (s DesignStatus) Valid() bool {
	switch s {
	case DesignPending, DesignInReview, DesignApproved, DesignRejected, DesignDelivered:
		return true
	}
	return false
}

// ServiceOptions selects what the design studio is asked to produce.
type ServiceOptions struct {
	CADModel      bool `json:"cadModel" firestore:"cadModel"`
	Rendering     bool `json:"rendering" firestore:"rendering"`
	PrintedResin  bool `json:"printedResin" firestore:"printedResin"`
	CastingReady  bool `json:"castingReady" firestore:"castingReady"`
	RevisionLimit int  `json:"revisionLimit" firestore:"revisionLimit" binding:"gte=0,lte=10"`
}

// WorkflowOptions controls turnaround and review.
type WorkflowOptions struct {
	Priority        string `json:"priority" firestore:"priority" binding:"omitempty,oneof=standard rush"`
	RequiresClient  bool   `json:"requiresClientApproval" firestore:"requiresClientApproval"`
	AssignedArtisan string `json:"assignedArtisan,omitempty" firestore:"assignedArtisan,omitempty"`
	DueDate         string `json:"dueDate,omitempty" firestore:"dueDate,omitempty"`
}

// ConstraintOptions describes the physical constraints of the piece.
type ConstraintOptions struct {
	Metal        string  `json:"metal,omitempty" firestore:"metal,omitempty"`
	RingSize     float64 `json:"ringSize,omitempty" firestore:"ringSize,omitempty" binding:"gte=0,lte=16"`
	MaxWeightG   float64 `json:"maxWeightGrams,omitempty" firestore:"maxWeightGrams,omitempty" binding:"gte=0"`
	StoneShape   string  `json:"stoneShape,omitempty" firestore:"stoneShape,omitempty"`
	StoneSizeMM  float64 `json:"stoneSizeMm,omitempty" firestore:"stoneSizeMm,omitempty" binding:"gte=0"`
	BudgetLimit  float64 `json:"budgetLimit,omitempty" firestore:"budgetLimit,omitempty" binding:"gte=0"`
	ReferenceURL string  `json:"referenceUrl,omitempty" firestore:"referenceUrl,omitempty" binding:"omitempty,url"`
}

// DesignRequestOptions is the full configuration of a CAD request.
type DesignRequestOptions struct {
	Service     ServiceOptions    `json:"service" firestore:"service"`
	Workflow    WorkflowOptions   `json:"workflow" firestore:"workflow"`
	Constraints ConstraintOptions `json:"constraints" firestore:"constraints"`
}

// DesignRequest is a CAD design request stored in `design_requests`.
type DesignRequest struct {
	ID          string               `json:"id,omitempty" firestore:"id,omitempty"`
	RepairID    string               `json:"repairId,omitempty" firestore:"repairId,omitempty"`
	ClientName  string               `json:"clientName" firestore:"clientName" binding:"required"`
	ClientEmail string               `json:"clientEmail,omitempty" firestore:"clientEmail,omitempty" binding:"omitempty,email"`
	Title       string               `json:"title" firestore:"title" binding:"required"`
	Notes       string               `json:"notes,omitempty" firestore:"notes,omitempty"`
	Options     DesignRequestOptions `json:"options" firestore:"options"`
	Status      DesignStatus         `json:"status" firestore:"status"`
	CreatedAt   time.Time            `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	UpdatedAt   time.Time            `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}
