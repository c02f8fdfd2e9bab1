package task

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

const taskColumns = `
	t.id, t.title, t.description, t.completed, t.due_date, t.team_id,
	t.assigned_to, u.username, t.created_at, t.updated_at`

const taskFrom = `
	FROM tasks t
	LEFT JOIN users u ON u.id = t.assigned_to`

// Create inserts a new task record.
func (r *PostgresRepository) Create(ctx context.Context, t *Task) error {
	query := `
		INSERT INTO tasks (title, description, completed, due_date, team_id, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		t.Title, t.Description, t.Completed, t.DueDate, t.TeamID, t.AssignedTo,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// GetByID retrieves a single task with its assignee's username.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	query := `SELECT` + taskColumns + taskFrom + `
	WHERE t.id = $1`

	var t Task
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.TeamID,
		&t.AssignedTo, &t.AssigneeName, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("querying task: %w", err)
	}

	return &t, nil
}

// ListForUser retrieves all tasks assigned to the user. Due dates sort
// ascending with nulls last; the split and per-partition ordering happen in
// Summarize.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	query := `SELECT` + taskColumns + taskFrom + `
	WHERE t.assigned_to = $1
	ORDER BY t.due_date ASC NULLS LAST`

	return r.list(ctx, query, userID)
}

// ListForTeam retrieves all tasks belonging to the team.
func (r *PostgresRepository) ListForTeam(ctx context.Context, teamID uuid.UUID) ([]Task, error) {
	query := `SELECT` + taskColumns + taskFrom + `
	WHERE t.team_id = $1
	ORDER BY t.due_date ASC NULLS LAST`

	return r.list(ctx, query, teamID)
}

// SetCompleted updates the completion flag and returns the updated task.
func (r *PostgresRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*Task, error) {
	query := `
		UPDATE tasks
		SET completed = $2, updated_at = now()
		WHERE id = $1`

	return r.update(ctx, id, query, completed)
}

// SetAssignee updates the assignee (nil clears it) and returns the updated task.
func (r *PostgresRepository) SetAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*Task, error) {
	query := `
		UPDATE tasks
		SET assigned_to = $2, updated_at = now()
		WHERE id = $1`

	return r.update(ctx, id, query, assignee)
}

func (r *PostgresRepository) update(ctx context.Context, id uuid.UUID, query string, arg any) (*Task, error) {
	result, err := r.pool.Exec(ctx, query, id, arg)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrTaskNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]Task, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.TeamID,
			&t.AssignedTo, &t.AssigneeName, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	return tasks, nil
}
