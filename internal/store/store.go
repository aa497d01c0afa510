package store

import (
	"context"
	"errors"

	"github.com/ardiansyahn/todo-app/internal/models"
)

// ErrNotFound is returned when no record matches the requested id or email.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed required field. It is
// returned before any mutation takes place.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewTodo carries the caller-supplied fields for creating a todo.
// Title, UserID and DueDate are required; Status defaults to pending.
type NewTodo struct {
	Title       string
	Description string
	UserID      int
	DueDate     string
	Status      models.Status
}

// TodoPatch is a partial todo update. Nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Status      *models.Status
}

// NewUser carries the caller-supplied fields for registering a user.
// Password is plaintext here; the store hashes it before persisting.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// UserPatch is a partial user update. A non-nil Password is re-hashed.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// Store is the data-access contract for users and todos. Every mutating
// operation persists the full dataset before returning, so the backing file
// stays the source of truth.
type Store interface {
	AddTodo(ctx context.Context, in NewTodo) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id int, patch TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int) error
	ListTodos(ctx context.Context, userID int) ([]models.Todo, error)
	GetTodoByID(ctx context.Context, id int) (*models.Todo, error)

	AddUser(ctx context.Context, in NewUser) (*models.User, error)
	UpdateUser(ctx context.Context, id int, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}
