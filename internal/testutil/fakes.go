// Package testutil provides in-memory repository fakes for use case tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/linkupge/linkup-backend/internal/domain"
)

// FakeUserRepository is an in-memory UserRepository.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User

	CreateErr error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[string]*domain.User)}
}

func (r *FakeUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FakeSessionRepository is an in-memory SessionRepository keyed by token hash.
type FakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	nextID   int

	CreateErr error
}

func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *FakeSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.nextID++
	session.ID = r.nextID
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	cp := *session
	r.sessions[session.TokenHash] = &cp
	return nil
}

func (r *FakeSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[tokenHash]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *FakeSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[tokenHash]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, tokenHash)
	return nil
}

func (r *FakeSessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	for hash, s := range r.sessions {
		if s.IsExpired() {
			delete(r.sessions, hash)
			n++
		}
	}
	return n, nil
}

// FakeProfileRepository is an in-memory ProfileRepository.
type FakeProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile

	UpsertErr error
	ListErr   error
	GetErr    error
}

func NewFakeProfileRepository() *FakeProfileRepository {
	return &FakeProfileRepository{profiles: make(map[string]*domain.Profile)}
}

// Seed stores a profile directly, bypassing error injection.
func (r *FakeProfileRepository) Seed(profiles ...*domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range profiles {
		cp := *p
		r.profiles[p.ID] = &cp
	}
}

func (r *FakeProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	now := time.Now()
	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	cp := *profile
	r.profiles[profile.ID] = &cp
	return nil
}

func (r *FakeProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *FakeProfileRepository) List(ctx context.Context, excludeID string, limit int) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []*domain.Profile
	for _, p := range r.profiles {
		if p.ID == excludeID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *FakeProfileRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []*domain.Profile
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *FakeProfileRepository) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.ImageURL = &imageURL
	p.UpdatedAt = time.Now()
	return nil
}

// FakeInteractionRepository is an in-memory InteractionRepository keyed by
// the directed (user, target) pair.
type FakeInteractionRepository struct {
	mu     sync.Mutex
	edges  map[[2]string]*domain.Interaction
	nextID int

	UpsertErr error
	GetErr    error
	ListErr   error
}

func NewFakeInteractionRepository() *FakeInteractionRepository {
	return &FakeInteractionRepository{edges: make(map[[2]string]*domain.Interaction)}
}

func (r *FakeInteractionRepository) Upsert(ctx context.Context, interaction *domain.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	key := [2]string{interaction.UserID, interaction.TargetUserID}
	if existing, ok := r.edges[key]; ok {
		interaction.ID = existing.ID
		interaction.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		interaction.ID = r.nextID
		interaction.CreatedAt = time.Now()
	}
	cp := *interaction
	r.edges[key] = &cp
	return nil
}

func (r *FakeInteractionRepository) Get(ctx context.Context, userID, targetUserID string) (*domain.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	e, ok := r.edges[[2]string{userID, targetUserID}]
	if !ok {
		return nil, domain.ErrInteractionNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *FakeInteractionRepository) ListByActor(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	return r.list(userID, false)
}

func (r *FakeInteractionRepository) ListLikesByActor(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	return r.list(userID, true)
}

func (r *FakeInteractionRepository) list(userID string, likesOnly bool) ([]*domain.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []*domain.Interaction
	for _, e := range r.edges {
		if e.UserID != userID {
			continue
		}
		if likesOnly && e.Type != domain.InteractionLike {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FakeMatchRepository is an in-memory MatchRepository. Pairs are normalized
// to user1 < user2 like the postgres implementation.
type FakeMatchRepository struct {
	mu      sync.Mutex
	matches map[[2]string]*domain.Match
	nextID  int

	CreateErr error
}

func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{matches: make(map[[2]string]*domain.Match)}
}

func orderPair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func (r *FakeMatchRepository) Create(ctx context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	key := orderPair(match.User1ID, match.User2ID)
	match.User1ID, match.User2ID = key[0], key[1]
	if existing, ok := r.matches[key]; ok {
		match.ID = existing.ID
		match.MatchedAt = existing.MatchedAt
		return nil
	}
	r.nextID++
	match.ID = r.nextID
	match.MatchedAt = time.Now()
	cp := *match
	r.matches[key] = &cp
	return nil
}

func (r *FakeMatchRepository) GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[orderPair(user1ID, user2ID)]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *FakeMatchRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MatchedAt.After(out[j].MatchedAt)
	})
	return out, nil
}

// Count reports how many match rows are stored.
func (r *FakeMatchRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}

// FakeEventRepository is an in-memory EventRepository.
type FakeEventRepository struct {
	mu           sync.Mutex
	events       map[string]*domain.Event
	participants map[string][]*domain.EventParticipant
	nextID       int

	CreateErr error
}

func NewFakeEventRepository() *FakeEventRepository {
	return &FakeEventRepository{
		events:       make(map[string]*domain.Event),
		participants: make(map[string][]*domain.EventParticipant),
	}
}

func (r *FakeEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *FakeEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *FakeEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out, nil
}

func (r *FakeEventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[event.ID]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now()
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *FakeEventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	delete(r.participants, id)
	return nil
}

func (r *FakeEventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants[eventID] {
		if p.UserID == userID {
			return domain.ErrAlreadyJoined
		}
	}
	r.nextID++
	r.participants[eventID] = append(r.participants[eventID], &domain.EventParticipant{
		ID:       r.nextID,
		EventID:  eventID,
		UserID:   userID,
		JoinedAt: time.Now(),
	})
	return nil
}

func (r *FakeEventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.participants[eventID]
	for i, p := range list {
		if p.UserID == userID {
			r.participants[eventID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotJoined
}

func (r *FakeEventRepository) ListParticipants(ctx context.Context, eventID string) ([]*domain.EventParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.EventParticipant, 0, len(r.participants[eventID]))
	for _, p := range r.participants[eventID] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *FakeEventRepository) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants[eventID] {
		if p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeEventRepository) CountParticipants(ctx context.Context, eventID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants[eventID]), nil
}
