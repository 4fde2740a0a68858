package serviceimpl

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasklist-api/domain/models"
	"tasklist-api/domain/ports"
	"tasklist-api/domain/repositories"
	"tasklist-api/pkg/scheduler"
)

var errStorageDown = errors.New("storage down")

// fakeStore เก็บ collections/tasks ใน memory และนับจำนวนครั้งที่ถูกเรียก
type fakeStore struct {
	mu          sync.Mutex
	calls       int
	failWith    error
	nextID      uint
	collections map[uint]*models.Collection
	tasks       map[uint]*models.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: make(map[uint]*models.Collection),
		tasks:       make(map[uint]*models.Task),
	}
}

func (s *fakeStore) enter() error {
	s.calls++
	return s.failWith
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addCollection(userID, name string, color models.CollectionColor) *models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.Collection{ID: s.id(), UserID: userID, Name: name, Color: color, CreatedAt: time.Unix(int64(s.nextID), 0).UTC()}
	s.collections[c.ID] = c
	return c
}

func (s *fakeStore) addTask(c *models.Collection, content string, done bool) *models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &models.Task{ID: s.id(), UserID: c.UserID, CollectionID: c.ID, Content: content, Done: done}
	s.tasks[t.ID] = t
	return t
}

func (s *fakeStore) withTasks(c *models.Collection) *models.Collection {
	out := *c
	out.Tasks = nil
	ids := make([]uint, 0)
	for id, t := range s.tasks {
		if t.CollectionID == c.ID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		out.Tasks = append(out.Tasks, *s.tasks[id])
	}
	return &out
}

type fakeCollectionRepo struct{ *fakeStore }

func (r fakeCollectionRepo) Create(ctx context.Context, collection *models.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	collection.ID = r.id()
	collection.CreatedAt = time.Unix(int64(collection.ID), 0).UTC()
	stored := *collection
	r.collections[collection.ID] = &stored
	return nil
}

func (r fakeCollectionRepo) ListByUserID(ctx context.Context, userID string) ([]*models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	var out []*models.Collection
	for _, c := range r.collections {
		if c.UserID == userID {
			out = append(out, r.withTasks(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeCollectionRepo) DeleteByIDAndUserID(ctx context.Context, id uint, userID string) (*models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	c, ok := r.collections[id]
	if !ok || c.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	deleted := r.withTasks(c)
	for tid, t := range r.tasks {
		if t.CollectionID == id {
			delete(r.tasks, tid)
		}
	}
	delete(r.collections, id)
	return deleted, nil
}

type fakeTaskRepo struct {
	*fakeStore
	expiring []*models.Task
	from, to time.Time
}

func (r *fakeTaskRepo) CreateInCollection(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	c, ok := r.collections[task.CollectionID]
	if !ok || c.UserID != task.UserID {
		return repositories.ErrNotFound
	}
	task.ID = r.id()
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) UpdateDone(ctx context.Context, id uint, userID string, done bool) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	t.Done = done
	out := *t
	return &out, nil
}

func (r *fakeTaskRepo) DeleteByIDAndUserID(ctx context.Context, id uint, userID string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	delete(r.tasks, id)
	return t, nil
}

func (r *fakeTaskRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	r.from, r.to = from, to
	return r.expiring, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*ports.ChangeEvent
	err    error
}

func (p *fakePublisher) PublishChange(ctx context.Context, event *ports.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []ports.ChangeEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ports.ChangeEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeStorage struct {
	path        string
	contentType string
	body        []byte
	err         error
}

func (s *fakeStorage) UploadFile(file io.Reader, path string, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.path, s.contentType, s.body = path, contentType, body
	return s.GetFileURL(path), nil
}

func (s *fakeStorage) DeleteFile(path string) error { return nil }

func (s *fakeStorage) GetFileURL(path string) string { return "http://files.test/" + path }

func (s *fakeStorage) GetProviderName() string { return "fake" }

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	for _, u := range r.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func (b *fakeBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if b.revoked == nil {
		b.revoked = make(map[string]time.Duration)
	}
	b.revoked[tokenID] = ttl
	return nil
}

func (b *fakeBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := b.revoked[tokenID]
	return ok, nil
}

type fakeScheduler struct {
	jobs map[string]string
	task func()
}

func (s *fakeScheduler) Start()          {}
func (s *fakeScheduler) Stop()           {}
func (s *fakeScheduler) IsRunning() bool { return true }

func (s *fakeScheduler) AddJob(jobID string, cronExpr string, task func()) error {
	if s.jobs == nil {
		s.jobs = make(map[string]string)
	}
	s.jobs[jobID] = cronExpr
	s.task = task
	return nil
}

var _ scheduler.EventScheduler = (*fakeScheduler)(nil)
