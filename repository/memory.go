package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"notesmanager/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps users and notes in process memory. It backs
// STORAGE_DRIVER=memory and the package tests of the layers above.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]model.User
	notes map[primitive.ObjectID]model.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[primitive.ObjectID]model.User),
		notes: make(map[primitive.ObjectID]model.Note),
	}
}

// MemoryUserRepo and MemoryNotesRepo expose the store with the same
// method sets as UserRepo and NotesRepo.
type MemoryUserRepo struct{ s *MemoryStore }
type MemoryNotesRepo struct{ s *MemoryStore }

func (s *MemoryStore) Users() *MemoryUserRepo  { return &MemoryUserRepo{s: s} }
func (s *MemoryStore) Notes() *MemoryNotesRepo { return &MemoryNotesRepo{s: s} }

func sortNewestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) primitive.ObjectID) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]).Hex() > id(items[j]).Hex()
	})
}

// Users

func (r *MemoryUserRepo) CreateUser(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = NormalizeEmail(user.Email)
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) find(match func(model.User) bool) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepo) FindUserByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id })
}

func (r *MemoryUserRepo) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	email = NormalizeEmail(email)
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *MemoryUserRepo) FindAdminByEmail(_ context.Context, email string) (*model.User, error) {
	email = NormalizeEmail(email)
	return r.find(func(u model.User) bool { return u.Email == email && u.Role == model.RoleAdmin })
}

func (r *MemoryUserRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u // per-iteration copy (Go 1.22 loopvar semantics)
		u.Password = ""
		users = append(users, &u)
	}
	sortNewestFirst(users,
		func(u *model.User) time.Time { return u.CreatedAt },
		func(u *model.User) primitive.ObjectID { return u.ID })
	return users, nil
}

func (r *MemoryUserRepo) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *MemoryUserRepo) CountUsers(_ context.Context, role model.Role, since time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, u := range r.s.users {
		if (role == model.RoleAdmin) != (u.Role == model.RoleAdmin) {
			continue
		}
		if !since.IsZero() && u.CreatedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

// The memory store cannot tell a missing role from a null one; both
// backfills touch every record with an empty role and the second finds none.
func (r *MemoryUserRepo) BackfillMissingRoles(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var modified int64
	for id, u := range r.s.users {
		if u.Role == "" {
			u.Role = model.RoleUser
			r.s.users[id] = u
			modified++
		}
	}
	return modified, nil
}

func (r *MemoryUserRepo) BackfillNullRoles(ctx context.Context) (int64, error) {
	return r.BackfillMissingRoles(ctx)
}

func (r *MemoryUserRepo) PromoteByEmail(_ context.Context, email string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = NormalizeEmail(email)
	for id, u := range r.s.users {
		if u.Email != email {
			continue
		}
		if u.Role == model.RoleAdmin {
			return 0, nil
		}
		u.Role = model.RoleAdmin
		u.UpdatedAt = time.Now().UTC()
		r.s.users[id] = u
		return 1, nil
	}
	return 0, nil
}

func (r *MemoryUserRepo) CountByRole(_ context.Context) ([]model.RoleCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byRole := make(map[model.Role]int64)
	for _, u := range r.s.users {
		byRole[u.Role]++
	}
	counts := make([]model.RoleCount, 0, len(byRole))
	for role, n := range byRole {
		rc := model.RoleCount{Count: n}
		if role != "" {
			name := string(role)
			rc.Role = &name
		}
		counts = append(counts, rc)
	}
	return counts, nil
}

func (r *MemoryUserRepo) Ping(context.Context) error { return nil }

// Notes

func (r *MemoryNotesRepo) CreateNote(_ context.Context, note *model.Note) error {
	if note.UserID.IsZero() {
		return errors.New("note owner is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	r.s.notes[note.ID] = *note
	return nil
}

func (r *MemoryNotesRepo) collect(match func(model.Note) bool) []*model.Note {
	notes := make([]*model.Note, 0)
	for _, n := range r.s.notes {
		n := n // per-iteration copy (Go 1.22 loopvar semantics)
		if match(n) {
			notes = append(notes, &n)
		}
	}
	sortNewestFirst(notes,
		func(n *model.Note) time.Time { return n.CreatedAt },
		func(n *model.Note) primitive.ObjectID { return n.ID })
	return notes
}

func (r *MemoryNotesRepo) ListNotesByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(n model.Note) bool { return n.UserID == ownerID }), nil
}

func (r *MemoryNotesRepo) FindOwnedNote(_ context.Context, id, ownerID primitive.ObjectID) (*model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.notes[id]
	if !ok || n.UserID != ownerID {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (r *MemoryNotesRepo) UpdateOwnedNote(_ context.Context, id, ownerID primitive.ObjectID, title, description string, updatedAt time.Time) (*model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[id]
	if !ok || n.UserID != ownerID {
		return nil, ErrNotFound
	}
	n.Title = title
	n.Description = description
	n.UpdatedAt = updatedAt
	r.s.notes[id] = n
	return &n, nil
}

func (r *MemoryNotesRepo) DeleteOwnedNote(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[id]
	if !ok || n.UserID != ownerID {
		return ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}

func (r *MemoryNotesRepo) DeleteNote(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}

func (r *MemoryNotesRepo) DeleteNotesByOwner(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, n := range r.s.notes {
		if n.UserID == ownerID {
			delete(r.s.notes, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MemoryNotesRepo) withOwner(n *model.Note) *model.NoteWithOwner {
	joined := &model.NoteWithOwner{Note: *n}
	if u, ok := r.s.users[n.UserID]; ok {
		joined.Owner = &model.NoteOwner{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return joined
}

func (r *MemoryNotesRepo) ListNotesWithOwners(_ context.Context) ([]*model.NoteWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	notes := r.collect(func(model.Note) bool { return true })
	joined := make([]*model.NoteWithOwner, 0, len(notes))
	for _, n := range notes {
		joined = append(joined, r.withOwner(n))
	}
	return joined, nil
}

func (r *MemoryNotesRepo) FindNoteWithOwner(_ context.Context, id primitive.ObjectID) (*model.NoteWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.withOwner(&n), nil
}

func (r *MemoryNotesRepo) CountNotes(_ context.Context, since time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, n := range r.s.notes {
		if since.IsZero() || !n.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryNotesRepo) TopOwners(_ context.Context, limit int) ([]model.TopUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[primitive.ObjectID]int64)
	for _, n := range r.s.notes {
		counts[n.UserID]++
	}

	top := make([]model.TopUser, 0, len(counts))
	for ownerID, n := range counts {
		u, ok := r.s.users[ownerID]
		if !ok {
			continue
		}
		top = append(top, model.TopUser{ID: u.ID, Name: u.Name, Email: u.Email, NoteCount: n})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].NoteCount != top[j].NoteCount {
			return top[i].NoteCount > top[j].NoteCount
		}
		return top[i].ID.Hex() < top[j].ID.Hex()
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
