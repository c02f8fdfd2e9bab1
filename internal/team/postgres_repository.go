package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new team record.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (name, description, slug, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, t.Name, t.Description, t.Slug, t.CreatorID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	if t.Members == nil {
		t.Members = []Member{}
	}

	return nil
}

// GetByID retrieves a single team with its creator's username and members.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `
		SELECT t.id, t.name, t.description, t.slug, t.creator_id, u.username,
		       t.created_at, t.updated_at
		FROM teams t
		JOIN users u ON u.id = t.creator_id
		WHERE t.id = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Slug, &t.CreatorID, &t.CreatorName,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	members, err := r.loadMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Members = members

	return &t, nil
}

// ListForUser retrieves teams the user created or belongs to, ordered by
// creation time.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Team, error) {
	query := `
		SELECT DISTINCT t.id, t.name, t.description, t.slug, t.creator_id, u.username,
		       t.created_at, t.updated_at
		FROM teams t
		JOIN users u ON u.id = t.creator_id
		LEFT JOIN team_members tm ON tm.team_id = t.id
		WHERE t.creator_id = $1 OR tm.user_id = $1
		ORDER BY t.created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		var t Team
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Slug, &t.CreatorID, &t.CreatorName,
			&t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(teams))
	for i := range teams {
		ids = append(ids, teams[i].ID)
	}

	membersByTeam, err := r.loadMembersForTeams(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		members := membersByTeam[teams[i].ID]
		if members == nil {
			members = []Member{}
		}
		teams[i].Members = members
	}

	return teams, nil
}

// AddMember inserts a membership row.
func (r *PostgresRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, teamID, userID); err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}

	return nil
}

// RemoveMember deletes the membership row and clears the removed user's task
// assignments in the team. Both statements run in one transaction so a
// removed member never keeps dangling assignments.
func (r *PostgresRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("deleting team member: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE tasks SET assigned_to = NULL, updated_at = now() WHERE team_id = $1 AND assigned_to = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("clearing task assignments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing member removal: %w", err)
	}

	return nil
}

// Delete removes a team along with its membership rows and tasks.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE team_id = $1`, id); err != nil {
		return fmt.Errorf("deleting team tasks: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, id); err != nil {
		return fmt.Errorf("deleting team members: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing team deletion: %w", err)
	}

	return nil
}

// loadMembersForTeams fetches the membership sets for all given teams in a
// single query, keyed by team id.
func (r *PostgresRepository) loadMembersForTeams(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID][]Member, error) {
	if len(teamIDs) == 0 {
		return map[uuid.UUID][]Member{}, nil
	}

	query := `
		SELECT tm.team_id, u.id, u.username
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = ANY($1)
		ORDER BY tm.team_id, u.username ASC`

	rows, err := r.pool.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	membersByTeam := map[uuid.UUID][]Member{}
	for rows.Next() {
		var teamID uuid.UUID
		var m Member
		if err := rows.Scan(&teamID, &m.ID, &m.Username); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		membersByTeam[teamID] = append(membersByTeam[teamID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return membersByTeam, nil
}

func (r *PostgresRepository) loadMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	query := `
		SELECT u.id, u.username
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY u.username ASC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Username); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return members, nil
}
