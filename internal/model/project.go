package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines persistence operations for projects.
type ProjectStore interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetByMember(ctx context.Context, memberUID uuid.UUID) ([]Project, error)
}

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	// ProjectOpen is an active savings goal.
	ProjectOpen ProjectStatus = "open"
	// ProjectArchived is a closed goal kept for history.
	ProjectArchived ProjectStatus = "archived"
)

// Project is a shared savings goal between two weighted contributors.
// TargetCents holds the goal in minor currency units to keep money out
// of floating point. MemberBUID stays nil until a join flow exists.
type Project struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	TargetCents   int64         `json:"targetCents"`
	MemberAUID    uuid.UUID     `json:"memberAUid"`
	MemberBUID    *uuid.UUID    `json:"memberBUid"`
	MemberAWeight int           `json:"memberAWeight"`
	MemberBWeight int           `json:"memberBWeight"`
	Status        ProjectStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// CreateProjectParams contains parameters to create a project.
// TargetMajor is the target amount in major currency units as entered
// by the user; it is converted to cents on creation.
type CreateProjectParams struct {
	Name        string
	TargetMajor float64
	WeightA     int
	WeightB     int
}
