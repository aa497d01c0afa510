package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ardiansyahn/todo-app/internal/models"
)

// Compile-time assertion: *FileStore satisfies Store.
var _ Store = (*FileStore)(nil)

// dataset is the on-disk document. The whole document is rewritten on every
// mutation; there are no partial or append writes.
type dataset struct {
	Users []models.User `json:"users"`
	Todos []models.Todo `json:"todos"`
}

// FileStore keeps all users and todos in memory and mirrors them to a single
// JSON file. The mutex serializes every read-modify-write cycle, so requests
// inside one process cannot interleave mid-mutation. Writers in other
// processes are not coordinated with.
type FileStore struct {
	mu   sync.Mutex
	path string
	data dataset
}

// New opens the store backed by the JSON file at path. An existing file is
// parsed as the authoritative state; a missing or unreadable file initializes
// both collections empty and writes that state out, creating the file.
func New(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		data: dataset{Users: []models.User{}, Todos: []models.Todo{}},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read %s, starting empty: %v", path, err)
		}
		if err := fs.save(); err != nil {
			return nil, fmt.Errorf("failed to create data file: %v", err)
		}
		return fs, nil
	}

	if err := json.Unmarshal(raw, &fs.data); err != nil {
		log.Printf("Could not parse %s, starting empty: %v", path, err)
		fs.data = dataset{Users: []models.User{}, Todos: []models.Todo{}}
		if err := fs.save(); err != nil {
			return nil, fmt.Errorf("failed to reset data file: %v", err)
		}
	}

	return fs, nil
}

// save rewrites the whole document. Callers must hold fs.mu.
func (fs *FileStore) save() error {
	raw, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data: %v", err)
	}
	if err := os.WriteFile(fs.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", fs.path, err)
	}
	return nil
}

// nextTodoID returns max(existing ids)+1, or 1 when the collection is empty.
// Ids are never reused after deletion.
func (fs *FileStore) nextTodoID() int {
	max := 0
	for _, t := range fs.data.Todos {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func (fs *FileStore) nextUserID() int {
	max := 0
	for _, u := range fs.data.Users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func (fs *FileStore) AddTodo(_ context.Context, in NewTodo) (*models.Todo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if in.Title == "" {
		return nil, &ValidationError{Msg: "title is required"}
	}
	if in.UserID == 0 {
		return nil, &ValidationError{Msg: "userId is required"}
	}
	if in.DueDate == "" {
		return nil, &ValidationError{Msg: "dueDate is required"}
	}

	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid status: %s", status)}
	}

	now := time.Now().UTC()
	todo := models.Todo{
		ID:          fs.nextTodoID(),
		Title:       in.Title,
		Description: in.Description,
		UserID:      in.UserID,
		DueDate:     in.DueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	fs.data.Todos = append(fs.data.Todos, todo)
	if err := fs.save(); err != nil {
		return nil, err
	}

	log.Printf("Todo added: %s", todo.Title)
	return &todo, nil
}

func (fs *FileStore) UpdateTodo(_ context.Context, id int, patch TodoPatch) (*models.Todo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	idx := -1
	for i, t := range fs.data.Todos {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid status: %s", *patch.Status)}
	}

	todo := fs.data.Todos[idx]
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.DueDate != nil {
		todo.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		todo.Status = *patch.Status
	}
	todo.UpdatedAt = time.Now().UTC()

	fs.data.Todos[idx] = todo
	if err := fs.save(); err != nil {
		return nil, err
	}

	log.Printf("Todo updated: %d", id)
	return &todo, nil
}

func (fs *FileStore) DeleteTodo(_ context.Context, id int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	kept := fs.data.Todos[:0]
	removed := false
	for _, t := range fs.data.Todos {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return ErrNotFound
	}

	fs.data.Todos = kept
	if err := fs.save(); err != nil {
		return err
	}

	log.Printf("Todo deleted: %d", id)
	return nil
}

// ListTodos returns todos in insertion order. A userID of 0 returns all
// todos; any other value filters to that owner.
func (fs *FileStore) ListTodos(_ context.Context, userID int) ([]models.Todo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	todos := make([]models.Todo, 0, len(fs.data.Todos))
	for _, t := range fs.data.Todos {
		if userID != 0 && t.UserID != userID {
			continue
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (fs *FileStore) GetTodoByID(_ context.Context, id int) (*models.Todo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, t := range fs.data.Todos {
		if t.ID == id {
			todo := t
			return &todo, nil
		}
	}
	return nil, ErrNotFound
}

// AddUser hashes the plaintext password with bcrypt and appends the user.
// Email uniqueness is the caller's responsibility; the returned record still
// carries the hash and must be sanitized before leaving the process.
func (fs *FileStore) AddUser(_ context.Context, in NewUser) (*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:       fs.nextUserID(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
	}

	fs.data.Users = append(fs.data.Users, user)
	if err := fs.save(); err != nil {
		return nil, err
	}

	log.Printf("User added: %s", user.Email)
	return &user, nil
}

func (fs *FileStore) UpdateUser(_ context.Context, id int, patch UserPatch) (*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	idx := -1
	for i, u := range fs.data.Users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	user := fs.data.Users[idx]
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		user.Password = string(hash)
	}

	fs.data.Users[idx] = user
	if err := fs.save(); err != nil {
		return nil, err
	}

	log.Printf("User updated: %d", id)
	return &user, nil
}

func (fs *FileStore) DeleteUser(_ context.Context, id int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	kept := fs.data.Users[:0]
	removed := false
	for _, u := range fs.data.Users {
		if u.ID == id {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	if !removed {
		return ErrNotFound
	}

	fs.data.Users = kept
	if err := fs.save(); err != nil {
		return err
	}

	log.Printf("User deleted: %d", id)
	return nil
}

func (fs *FileStore) ListUsers(_ context.Context) ([]models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	users := make([]models.User, len(fs.data.Users))
	copy(users, fs.data.Users)
	return users, nil
}

// FindUserByEmail does an exact, case-sensitive match.
func (fs *FileStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, u := range fs.data.Users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}
