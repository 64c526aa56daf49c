package service

import (
	"context"
	"sync"

	"project-tracker/internal/domain"
	"project-tracker/internal/repository"
)

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
	err     error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memProjectRepo struct {
	mu       sync.Mutex
	projects []domain.Project
}

func (r *memProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, *p)
	return nil
}

func (r *memProjectRepo) find(ownerID, id string) int {
	for i := range r.projects {
		if r.projects[i].ID == id && r.projects[i].OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (r *memProjectRepo) Get(_ context.Context, ownerID, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(ownerID, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := r.projects[i]
	return &p, nil
}

func (r *memProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Project{}
	for i := len(r.projects) - 1; i >= 0; i-- {
		if r.projects[i].OwnerID == ownerID {
			out = append(out, r.projects[i])
		}
	}
	return out, nil
}

func (r *memProjectRepo) Mutate(_ context.Context, ownerID, id string, fn repository.MutateFunc) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(ownerID, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := r.projects[i]
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.ID, p.OwnerID, p.CreatedAt = r.projects[i].ID, r.projects[i].OwnerID, r.projects[i].CreatedAt
	r.projects[i] = p
	return &p, nil
}

func (r *memProjectRepo) Delete(_ context.Context, ownerID, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(ownerID, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := r.projects[i]
	r.projects = append(r.projects[:i], r.projects[i+1:]...)
	return &p, nil
}
