package application

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory, mutex-guarded stand-in for the postgres
// store. ConsumeResetToken keeps the conditional-write semantics so the
// concurrency tests exercise the same contract.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = strconv.Itoa(f.nextID)
	if u.PhotoURL == "" {
		u.PhotoURL = entity.DefaultPhotoURL
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, err := f.getByEmail(email)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (f *fakeUserRepo) GetByEmailWithPassword(_ context.Context, email string) (*entity.User, error) {
	return f.getByEmail(email)
}

func (f *fakeUserRepo) getByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string, now time.Time) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now) {
			cp := *u
			cp.PasswordHash = ""
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		cp.PasswordHash = ""
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range f.users {
		if id != u.ID && other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	stored.Email = u.Email
	stored.Username = u.Username
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.PhotoURL = u.PhotoURL
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, id, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpires = &expires
	return nil
}

func (f *fakeUserRepo) ConsumeResetToken(_ context.Context, id, expectedToken string, m repository.ResetMutation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.ResetToken == nil || *u.ResetToken != expectedToken {
		return repository.ErrNotFound
	}
	if m.PasswordHash != nil {
		u.PasswordHash = *m.PasswordHash
	}
	if m.EmailConfirmed {
		u.EmailConfirmed = true
	}
	u.ResetToken = nil
	u.ResetTokenExpires = nil
	return nil
}

func (f *fakeUserRepo) SetBanned(_ context.Context, id string, banned bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsBanned = banned
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// recordingNotifier captures sends instead of publishing them.
type recordingNotifier struct {
	mu    sync.Mutex
	sends []recordedSend
}

type recordedSend struct {
	To       string
	Template string
	Data     map[string]any
}

func (n *recordingNotifier) Send(_ context.Context, to, template string, data map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, recordedSend{To: to, Template: template, Data: data})
}

func (n *recordingNotifier) all() []recordedSend {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedSend(nil), n.sends...)
}

// fakeVerifier returns canned claims or an error.
type fakeVerifier struct {
	claims *FederatedClaims
	err    error
}

func (v *fakeVerifier) Verify(_ context.Context, _ string) (*FederatedClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}
