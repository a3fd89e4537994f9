package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/studypartner-auth/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT id, name, description, created_at FROM roles ORDER BY name`

	rows, err := r.db.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, mapError("list roles", err)
	}
	return collectRoles("list roles", rows)
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (model.Role, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT id, name, description, created_at FROM roles WHERE id = $1`

	var role model.Role
	err := r.db.querier(ctx).QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		return model.Role{}, mapError("get role by id", err)
	}
	return role, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (model.Role, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT id, name, description, created_at FROM roles WHERE name = $1`

	var role model.Role
	err := r.db.querier(ctx).QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		return model.Role{}, mapError("get role by name", err)
	}
	return role, nil
}

func (r *RoleRepository) Create(ctx context.Context, name, description string) (model.Role, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO roles (name, description) VALUES ($1, $2)
				   RETURNING id, name, description, created_at`

	var role model.Role
	err := r.db.querier(ctx).QueryRow(ctx, query, name, description).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		return model.Role{}, mapError("create role", err)
	}
	return role, nil
}

// Delete removes a role together with its assignments.
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	tag, err := r.db.querier(ctx).Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return mapError("delete role", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("delete role", model.ErrNotFound)
	}
	return nil
}

// Assign links a role to an identity. Assigning a role twice is a
// conflict; a missing identity or role is reported as ErrNotFound.
func (r *RoleRepository) Assign(ctx context.Context, userID uuid.UUID, roleID int64) (model.RoleAssignment, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `WITH inserted AS (
					   INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
					   RETURNING user_id, role_id, assigned_at
				   )
				   SELECT i.user_id, i.role_id, r.name, i.assigned_at
				   FROM inserted i JOIN roles r ON r.id = i.role_id`

	var a model.RoleAssignment
	err := r.db.querier(ctx).QueryRow(ctx, query, userID, roleID).Scan(&a.UserID, &a.RoleID, &a.RoleName, &a.AssignedAt)
	if err != nil {
		return model.RoleAssignment{}, mapError("assign role", err)
	}
	return a, nil
}

// Unassign is a no-op when the role is not assigned.
func (r *RoleRepository) Unassign(ctx context.Context, userID uuid.UUID, roleID int64) error {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	if _, err := r.db.querier(ctx).Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID); err != nil {
		return mapError("unassign role", err)
	}
	return nil
}

func (r *RoleRepository) RolesOf(ctx context.Context, userID uuid.UUID) ([]model.Role, error) {
	ctx, cancel := r.db.withQueryTimeout(ctx)
	defer cancel()

	const query = `SELECT r.id, r.name, r.description, r.created_at
				   FROM user_roles ur JOIN roles r ON r.id = ur.role_id
				   WHERE ur.user_id = $1
				   ORDER BY r.name`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, mapError("get roles of user", err)
	}
	return collectRoles("get roles of user", rows)
}

func collectRoles(op string, rows pgx.Rows) ([]model.Role, error) {
	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Role, error) {
		var role model.Role
		err := row.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
		return role, err
	})
	if err != nil {
		return nil, mapError(op, err)
	}
	return roles, nil
}
