package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/model"
	"github.com/ryancham715/sav4us/internal/watch"
)

// Project manages weighted-contribution savings projects.
type Project struct {
	store  model.ProjectStore
	hub    *watch.Hub[[]model.Project]
	logger *logger.Logger
}

func NewProject(store model.ProjectStore, logger *logger.Logger) *Project {
	return &Project{
		store:  store,
		hub:    watch.NewHub[[]model.Project](),
		logger: logger,
	}
}

func projectsTopic(id uuid.UUID) string { return "projects:" + id.String() }

// CreateProject validates the input and persists a new open project with
// the caller as member A. The target arrives in major units and is stored
// in cents, rounded half away from zero.
func (s *Project) CreateProject(ctx context.Context, callerID uuid.UUID, params model.CreateProjectParams) (model.Project, error) {
	s.logger.Debug("Project service: creating project",
		"caller_id", callerID,
		"name", params.Name)

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.Project{}, model.NewErrEmptyName()
	}

	if math.IsNaN(params.TargetMajor) || math.IsInf(params.TargetMajor, 0) || params.TargetMajor <= 0 {
		return model.Project{}, model.NewErrInvalidTarget()
	}

	if params.WeightA <= 0 || params.WeightB <= 0 {
		return model.Project{}, model.NewErrInvalidWeights()
	}

	targetCents := int64(math.Round(params.TargetMajor * 100))
	if targetCents <= 0 {
		// Sub-cent targets round down to nothing.
		return model.Project{}, model.NewErrInvalidTarget()
	}

	project := model.Project{
		ID:            uuid.New(),
		Name:          name,
		TargetCents:   targetCents,
		MemberAUID:    callerID,
		MemberBUID:    nil,
		MemberAWeight: params.WeightA,
		MemberBWeight: params.WeightB,
		Status:        model.ProjectOpen,
		CreatedAt:     time.Now(),
	}

	project, err := s.store.Create(ctx, project)
	if err != nil {
		s.logger.Error("Project service: failed to create project",
			"caller_id", callerID,
			"name", name,
			"error", err.Error())
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project service: project created",
		"project_id", project.ID,
		"member_a_uid", callerID,
		"target_cents", project.TargetCents)

	s.republish(ctx, callerID)

	return project, nil
}

// ListProjects returns every project where the caller is member A or B,
// sorted by name ascending.
func (s *Project) ListProjects(ctx context.Context, callerID uuid.UUID) ([]model.Project, error) {
	projects, err := s.store.GetByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// WatchProjects subscribes to the caller's visible project set.
func (s *Project) WatchProjects(ctx context.Context, callerID uuid.UUID) ([]model.Project, <-chan []model.Project, func(), error) {
	ch, cancel := s.hub.Subscribe(projectsTopic(callerID))

	projects, err := s.ListProjects(ctx, callerID)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	return projects, ch, cancel, nil
}

func (s *Project) republish(ctx context.Context, memberUID uuid.UUID) {
	projects, err := s.store.GetByMember(ctx, memberUID)
	if err != nil {
		s.logger.Error("Project service: failed to republish projects",
			"member_uid", memberUID,
			"error", err.Error())
		return
	}
	s.hub.Publish(projectsTopic(memberUID), projects)
}
