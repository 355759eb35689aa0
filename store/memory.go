package store

import (
	"context"
	"sort"
	"sync"

	"taskman/models"
)

// Memory is an in-process Store used by tests. It honors the same contract as
// DB: sentinel errors for missing ids, distinct ids under concurrent creates.
type Memory struct {
	mu         sync.Mutex
	tasks      map[int]models.Task
	users      map[string]models.User
	nextTaskID int
	nextUserID int
}

func NewMemory() *Memory {
	return &Memory{
		tasks: make(map[int]models.Task),
		users: make(map[string]models.User),
	}
}

func (m *Memory) List(ctx context.Context, completed *bool) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []models.Task{}
	for _, t := range m.tasks {
		if completed != nil && t.Completed != *completed {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *Memory) Get(ctx context.Context, id int) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (m *Memory) Create(ctx context.Context, in models.CreateTask) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTaskID++
	t := models.Task{
		ID:          m.nextTaskID,
		Title:       in.Title,
		Description: in.Description,
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *Memory) Update(ctx context.Context, id int, in models.UpdateTask) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description.Set {
		t.Description = in.Description.Value
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	m.tasks[id] = t
	return t, nil
}

func (m *Memory) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *Memory) CreateUser(ctx context.Context, username, hashedPassword string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return models.User{}, ErrUserExists
	}
	m.nextUserID++
	u := models.User{
		ID:             m.nextUserID,
		Username:       username,
		HashedPassword: hashedPassword,
	}
	m.users[username] = u
	return u, nil
}

func (m *Memory) UserByUsername(ctx context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}
