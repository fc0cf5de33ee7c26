package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

const projectColumns = `id, name, target_cents, member_a_uid, member_b_uid, member_a_weight, member_b_weight, status, created_at`

type ProjectRepository struct {
	db *Connection
}

func NewProjectRepository(db *Connection) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	query := `INSERT INTO projects (id, name, target_cents, member_a_uid, member_b_uid, member_a_weight, member_b_weight, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + projectColumns

	var saved model.Project
	err := r.db.QueryRow(ctx, query,
		project.ID, project.Name, project.TargetCents,
		project.MemberAUID, project.MemberBUID,
		project.MemberAWeight, project.MemberBWeight,
		string(project.Status), project.CreatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.TargetCents,
		&saved.MemberAUID, &saved.MemberBUID,
		&saved.MemberAWeight, &saved.MemberBWeight,
		&saved.Status, &saved.CreatedAt,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return saved, nil
}

// GetByMember returns every project the user participates in on either
// side, sorted by name with byte-wise comparison.
func (r *ProjectRepository) GetByMember(ctx context.Context, memberUID uuid.UUID) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
			  WHERE member_a_uid = $1 OR member_b_uid = $1
			  ORDER BY name COLLATE "C" ASC, id ASC`

	rows, err := r.db.Query(ctx, query, memberUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects by member: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var project model.Project
		err := rows.Scan(
			&project.ID, &project.Name, &project.TargetCents,
			&project.MemberAUID, &project.MemberBUID,
			&project.MemberAWeight, &project.MemberBWeight,
			&project.Status, &project.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
