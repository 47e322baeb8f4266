package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mstrand/todoapi/internal/model"
)

type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

// Filter narrows List results. A nil Completed means no completion filter;
// an empty Search means no substring filter.
type Filter struct {
	Completed *bool
	Search    string
}

// Patch carries a partial update. Only non-nil fields are written.
type Patch struct {
	Description *string
	Completed   *bool
}

func scanTodo(scanner interface{ Scan(...any) error }) (*model.Todo, error) {
	var t model.Todo
	err := scanner.Scan(&t.ID, &t.UserID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const todoCols = `id, user_id, description, completed, created_at, updated_at`

// Create inserts a todo with the owner set in the same statement, so a todo
// row is never visible without its user_id.
func (s *TodoStore) Create(userID int64, description string, completed bool) (*model.Todo, error) {
	result, err := s.db.Exec(
		`INSERT INTO todos (user_id, description, completed) VALUES (?, ?, ?)`,
		userID, description, completed,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(userID, id)
}

// Get returns the todo with the given id owned by userID, or nil. A todo
// owned by another user is indistinguishable from a missing one.
func (s *TodoStore) Get(userID, id int64) (*model.Todo, error) {
	row := s.db.QueryRow(
		`SELECT `+todoCols+` FROM todos WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// List returns userID's todos matching the filter, oldest first. The owner
// predicate is always present; filter predicates are ANDed onto it.
func (s *TodoStore) List(userID int64, f Filter) ([]model.Todo, error) {
	query := `SELECT ` + todoCols + ` FROM todos WHERE user_id = ?`
	args := []any{userID}

	if f.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, *f.Completed)
	}
	if f.Search != "" {
		query += ` AND description LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update applies the patch to the todo scoped by userID and id in a single
// statement. Returns nil without error when no row matched. An empty patch
// just returns the current row.
func (s *TodoStore) Update(userID, id int64, p Patch) (*model.Todo, error) {
	var sets []string
	var args []any
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *p.Completed)
	}
	if len(sets) == 0 {
		return s.Get(userID, id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	query := `UPDATE todos SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	args = append(args, id, userID)

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.Get(userID, id)
}

// Delete removes the todo scoped by userID and id. The affected-row count
// decides whether anything was deleted.
func (s *TodoStore) Delete(userID, id int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete todo: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// escapeLike makes s safe to embed in a LIKE pattern as a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
