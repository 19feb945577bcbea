package hub

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
	"github.com/no-thing-project/hub-frontend/shared/logger"
)

// Entity is the common surface the facade needs from gates, classes and
// boards.
type Entity interface {
	ID() string
	Favorited() bool
	MemberCap() int
}

// Payload is a create/update request carrying at least a name.
type Payload interface {
	PayloadName() string
}

// Operations are the per-kind network calls a Facade is parameterized with.
// The facade owns caching, retries, validation and state; implementations
// only know their endpoint paths and payload shapes.
type Operations[T Entity, P Payload] interface {
	Kind() string
	List(ctx context.Context, filters Filters) ([]T, domain.Pagination, error)
	Get(ctx context.Context, id string) (T, error)
	ListMembers(ctx context.Context, id string) ([]api.RawMember, error)
	Create(ctx context.Context, payload P) (T, error)
	Update(ctx context.Context, id string, payload P) (T, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) (T, error)
	Favorite(ctx context.Context, id string) (T, error)
	Unfavorite(ctx context.Context, id string) (T, error)
	AddMember(ctx context.Context, id string, req api.AddMemberRequest) ([]api.RawMember, error)
	RemoveMember(ctx context.Context, id string, username domain.Username) ([]api.RawMember, error)
	UpdateMemberRole(ctx context.Context, id string, username domain.Username, role domain.Role) ([]api.RawMember, error)
}

type listPage[T Entity] struct {
	Items      []T
	Pagination domain.Pagination
}

type detailPage[T Entity] struct {
	Item    T
	Members []domain.Member
}

// Snapshot is a point-in-time copy of the facade state for rendering.
type Snapshot[T Entity] struct {
	List       []T
	Detail     *T
	Members    []domain.Member
	Pagination domain.Pagination
	Loading    bool
	LastErr    error
}

// Facade is the single access point for one entity kind. It mediates between
// the cache store, the retry policy and the state exposed to handlers.
// Racing operations on the same entity resolve last-write-wins; the only
// ordering safeguard is that a new fetch cancels the previous in-flight one.
type Facade[T Entity, P Payload] struct {
	ops           Operations[T, P]
	cache         *CacheStore
	tokens        TokenSource
	retry         RetryPolicy
	refresh       *Debouncer
	onAuthFailure func()

	mu           sync.RWMutex
	list         []T
	detail       *T
	members      []domain.Member
	pagination   domain.Pagination
	loading      bool
	lastErr      error
	cancelList   context.CancelFunc
	cancelDetail context.CancelFunc
}

// NewFacade wires a facade around per-kind operations. The cache store is
// injected so each facade (and each session) keeps an independent one.
// onAuthFailure fires once per classified 401/403 so the owner can log the
// session out; it may be nil.
func NewFacade[T Entity, P Payload](ops Operations[T, P], cache *CacheStore, tokens TokenSource, retry RetryPolicy, onAuthFailure func()) *Facade[T, P] {
	return &Facade[T, P]{
		ops:           ops,
		cache:         cache,
		tokens:        tokens,
		retry:         retry,
		refresh:       NewDebouncer(DefaultDebounceDelay),
		onAuthFailure: onAuthFailure,
	}
}

// FetchList returns entities matching filters, from cache when a fresh entry
// exists. A canceled context leaves all state untouched.
func (f *Facade[T, P]) FetchList(ctx context.Context, filters Filters) ([]T, error) {
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}

	key := listKey(f.ops.Kind(), filters)
	if v, ok := f.cache.Get(key); ok {
		if page, ok := v.(listPage[T]); ok {
			f.commitList(page)
			return page.Items, nil
		}
	}

	ctx, cancel := f.beginList(ctx)
	defer cancel()
	defer f.endLoading()

	page, err := retryWithData(ctx, f.retry, func() (listPage[T], error) {
		items, pagination, err := f.ops.List(ctx, filters)
		return listPage[T]{Items: items, Pagination: pagination}, err
	})
	if err != nil {
		return nil, f.fail(err)
	}

	f.cache.Set(key, page)
	f.commitList(page)
	return page.Items, nil
}

// RefreshSoon schedules a debounced background list refresh. Bursts of calls
// coalesce into a single fetch after the quiet period; intermediate
// invocations are discarded.
func (f *Facade[T, P]) RefreshSoon(filters Filters) {
	f.refresh.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultHTTPTimeout)
		defer cancel()
		if _, err := f.FetchList(ctx, filters); err != nil {
			logger.Log.Debug("background refresh failed",
				"kind", f.ops.Kind(),
				"error", err)
		}
	})
}

// FetchDetail loads one entity and its member list concurrently; either call
// failing fails the whole operation.
func (f *Facade[T, P]) FetchDetail(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}

	key := detailKey(f.ops.Kind(), id)
	if v, ok := f.cache.Get(key); ok {
		if page, ok := v.(detailPage[T]); ok {
			f.commitDetail(page)
			item := page.Item
			return &item, nil
		}
	}

	ctx, cancel := f.beginDetail(ctx)
	defer cancel()
	defer f.endLoading()

	var page detailPage[T]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		item, err := retryWithData(gctx, f.retry, func() (T, error) {
			return f.ops.Get(gctx, id)
		})
		if err != nil {
			return err
		}
		page.Item = item
		return nil
	})
	g.Go(func() error {
		raw, err := retryWithData(gctx, f.retry, func() ([]api.RawMember, error) {
			return f.ops.ListMembers(gctx, id)
		})
		if err != nil {
			return err
		}
		page.Members = NormalizeMembers(raw)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, f.fail(err)
	}

	f.cache.Set(key, page)
	f.commitDetail(page)
	item := page.Item
	return &item, nil
}

// Create posts a new entity. Entity-specific default settings are merged in
// by the operations layer with caller values winning. On success the entity
// is appended to the list state and the cache is cleared wholesale.
func (f *Facade[T, P]) Create(ctx context.Context, payload P) (*T, error) {
	if payload.PayloadName() == "" {
		return nil, f.fail(internal_errors.MissingField("name"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	item, err := retryWithData(ctx, f.retry, func() (T, error) {
		return f.ops.Create(ctx, payload)
	})
	if err != nil {
		return nil, f.fail(err)
	}

	f.mu.Lock()
	f.list = append(f.list, item)
	f.mu.Unlock()
	f.cache.Clear()
	return &item, nil
}

// Update replaces an entity. The payload carries no identity field, so the
// server-assigned id is never resent.
func (f *Facade[T, P]) Update(ctx context.Context, id string, payload P) (*T, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if payload.PayloadName() == "" {
		return nil, f.fail(internal_errors.MissingField("name"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	item, err := retryWithData(ctx, f.retry, func() (T, error) {
		return f.ops.Update(ctx, id, payload)
	})
	if err != nil {
		return nil, f.fail(err)
	}

	f.replaceEntity(item)
	f.cache.Clear()
	return &item, nil
}

// Delete removes an entity from the backend and from list/detail state.
func (f *Facade[T, P]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if err := f.requireToken(); err != nil {
		return f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	if err := retry(ctx, f.retry, func() error {
		return f.ops.Delete(ctx, id)
	}); err != nil {
		return f.fail(err)
	}

	f.mu.Lock()
	kept := f.list[:0]
	for _, item := range f.list {
		if item.ID() != id {
			kept = append(kept, item)
		}
	}
	f.list = kept
	if f.detail != nil && (*f.detail).ID() == id {
		f.detail = nil
		f.members = nil
	}
	f.mu.Unlock()
	f.cache.Clear()
	return nil
}

// UpdateStatus performs a status transition on the entity.
func (f *Facade[T, P]) UpdateStatus(ctx context.Context, id, status string) (*T, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if status == "" {
		return nil, f.fail(internal_errors.MissingField("status"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	item, err := retryWithData(ctx, f.retry, func() (T, error) {
		return f.ops.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return nil, f.fail(err)
	}

	f.replaceEntity(item)
	f.cache.Clear()
	return &item, nil
}

// ToggleFavorite dispatches to favorite or unfavorite depending on the
// current flag and patches list/detail state by identity.
func (f *Facade[T, P]) ToggleFavorite(ctx context.Context, id string, currentlyFavorited bool) (*T, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	op := f.ops.Favorite
	if currentlyFavorited {
		op = f.ops.Unfavorite
	}
	item, err := retryWithData(ctx, f.retry, func() (T, error) {
		return op(ctx, id)
	})
	if err != nil {
		return nil, f.fail(err)
	}

	f.replaceEntity(item)
	f.cache.Clear()
	return &item, nil
}

// AddMember adds a user to the entity. The member cap is checked against
// local state before calling out; the server remains authoritative.
func (f *Facade[T, P]) AddMember(ctx context.Context, id string, req api.AddMemberRequest) ([]domain.Member, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if req.Username == "" {
		return nil, f.fail(internal_errors.MissingField("username"))
	}
	if req.Role == "" {
		req.Role = domain.RoleViewer
	}
	if !req.Role.Valid() {
		return nil, f.fail(internal_errors.MissingField("role"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}
	if err := f.checkMemberCap(id); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	raw, err := retryWithData(ctx, f.retry, func() ([]api.RawMember, error) {
		return f.ops.AddMember(ctx, id, req)
	})
	if err != nil {
		return nil, f.fail(err)
	}
	return f.commitMembers(raw), nil
}

// RemoveMember removes a user from the entity. Owners cannot be removed.
func (f *Facade[T, P]) RemoveMember(ctx context.Context, id string, username domain.Username) ([]domain.Member, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if username == "" {
		return nil, f.fail(internal_errors.MissingField("username"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}
	if err := f.checkNotOwner(username, "removed"); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	raw, err := retryWithData(ctx, f.retry, func() ([]api.RawMember, error) {
		return f.ops.RemoveMember(ctx, id, username)
	})
	if err != nil {
		return nil, f.fail(err)
	}
	return f.commitMembers(raw), nil
}

// UpdateMemberRole changes a member's role. The owner role is immutable.
func (f *Facade[T, P]) UpdateMemberRole(ctx context.Context, id string, username domain.Username, role domain.Role) ([]domain.Member, error) {
	if id == "" {
		return nil, f.fail(internal_errors.MissingField(f.ops.Kind() + "_id"))
	}
	if username == "" {
		return nil, f.fail(internal_errors.MissingField("username"))
	}
	if role == "" || !role.Valid() {
		return nil, f.fail(internal_errors.MissingField("role"))
	}
	if err := f.requireToken(); err != nil {
		return nil, f.fail(err)
	}
	if err := f.checkNotOwner(username, "reassigned"); err != nil {
		return nil, f.fail(err)
	}

	f.setLoading()
	defer f.endLoading()

	raw, err := retryWithData(ctx, f.retry, func() ([]api.RawMember, error) {
		return f.ops.UpdateMemberRole(ctx, id, username, role)
	})
	if err != nil {
		return nil, f.fail(err)
	}
	return f.commitMembers(raw), nil
}

// Snapshot copies the current facade state for rendering.
func (f *Facade[T, P]) Snapshot() Snapshot[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	snap := Snapshot[T]{
		List:       append([]T(nil), f.list...),
		Members:    append([]domain.Member(nil), f.members...),
		Pagination: f.pagination,
		Loading:    f.loading,
		LastErr:    f.lastErr,
	}
	if f.detail != nil {
		item := *f.detail
		snap.Detail = &item
	}
	return snap
}

// Reset drops all state and cached entries and cancels anything pending.
// Called on logout.
func (f *Facade[T, P]) Reset() {
	f.refresh.Stop()
	f.mu.Lock()
	if f.cancelList != nil {
		f.cancelList()
		f.cancelList = nil
	}
	if f.cancelDetail != nil {
		f.cancelDetail()
		f.cancelDetail = nil
	}
	f.list = nil
	f.detail = nil
	f.members = nil
	f.pagination = domain.Pagination{}
	f.lastErr = nil
	f.loading = false
	f.mu.Unlock()
	f.cache.Clear()
}

func (f *Facade[T, P]) requireToken() error {
	if f.tokens.Token() == "" {
		return internal_errors.ErrAuthRequired
	}
	return nil
}

// fail classifies err, records it as the facade error unless the request was
// canceled, and fires the auth-failure hook on 401/403. Cancellation never
// reaches the error-display path.
func (f *Facade[T, P]) fail(err error) error {
	switch internal_errors.Classify(err) {
	case internal_errors.KindCancelled:
		return err
	case internal_errors.KindNotFound:
		err = internal_errors.NotFound(f.ops.Kind())
	case internal_errors.KindAuthFailure:
		if f.onAuthFailure != nil {
			f.onAuthFailure()
		}
	}
	f.mu.Lock()
	f.lastErr = err
	f.mu.Unlock()
	logger.Log.Warn("operation failed",
		"kind", f.ops.Kind(),
		"error", err)
	return err
}

func (f *Facade[T, P]) checkMemberCap(id string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.detail == nil || (*f.detail).ID() != id {
		return nil
	}
	if limit := (*f.detail).MemberCap(); limit > 0 && len(f.members) >= limit {
		return &internal_errors.ErrorWithStatusCode{
			Message:    f.ops.Kind() + " member limit reached",
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

func (f *Facade[T, P]) checkNotOwner(username domain.Username, action string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if m, ok := findMember(f.members, username); ok && m.Role == domain.RoleOwner {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "owner cannot be " + action,
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

// beginList cancels any in-flight list fetch so a superseded request can
// never surface its result, then marks the facade loading.
func (f *Facade[T, P]) beginList(ctx context.Context) (context.Context, context.CancelFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelList != nil {
		f.cancelList()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancelList = cancel
	f.loading = true
	return ctx, cancel
}

func (f *Facade[T, P]) beginDetail(ctx context.Context) (context.Context, context.CancelFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelDetail != nil {
		f.cancelDetail()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancelDetail = cancel
	f.loading = true
	return ctx, cancel
}

func (f *Facade[T, P]) setLoading() {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()
}

func (f *Facade[T, P]) endLoading() {
	f.mu.Lock()
	f.loading = false
	f.mu.Unlock()
}

func (f *Facade[T, P]) commitList(page listPage[T]) {
	f.mu.Lock()
	f.list = append([]T(nil), page.Items...)
	f.pagination = page.Pagination
	f.mu.Unlock()
}

func (f *Facade[T, P]) commitDetail(page detailPage[T]) {
	f.mu.Lock()
	item := page.Item
	f.detail = &item
	f.members = append([]domain.Member(nil), page.Members...)
	f.mu.Unlock()
}

func (f *Facade[T, P]) commitMembers(raw []api.RawMember) []domain.Member {
	members := NormalizeMembers(raw)
	f.mu.Lock()
	f.members = append([]domain.Member(nil), members...)
	f.mu.Unlock()
	f.cache.Clear()
	return members
}

func (f *Facade[T, P]) replaceEntity(item T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID() == item.ID() {
			f.list[i] = item
			break
		}
	}
	if f.detail != nil && (*f.detail).ID() == item.ID() {
		v := item
		f.detail = &v
	}
}
