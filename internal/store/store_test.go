package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/storage"
	"github.com/pixil98/go-testutil"
)

// fakeBackend is an in-memory backend with injectable failures.
type fakeBackend struct {
	mu        sync.Mutex
	doc       *document.Document
	revision  int
	loadCalls int
	saveCalls int

	conflicts int
	loadErr   error
	saveErr   error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{doc: document.New()}
}

func (b *fakeBackend) token() storage.Version {
	return storage.Version(fmt.Sprintf("rev-%d", b.revision))
}

func (b *fakeBackend) Load(context.Context) (*document.Document, storage.Version, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.loadCalls++
	if b.loadErr != nil {
		return nil, "", b.loadErr
	}
	return b.doc.Clone(), b.token(), nil
}

func (b *fakeBackend) Save(_ context.Context, doc *document.Document, base storage.Version, _ string) (storage.Version, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.saveCalls++
	if b.saveErr != nil {
		return "", b.saveErr
	}
	if b.conflicts > 0 {
		b.conflicts--
		return "", storage.ErrConflict
	}
	if base != b.token() {
		return "", storage.ErrConflict
	}

	b.doc = doc.Clone()
	b.revision++
	return b.token(), nil
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *fakePublisher) Publish(subject string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func addUser(id, username string, balance int) Mutator {
	return func(doc *document.Document) (any, error) {
		user := &document.User{ID: id, Username: username, Balance: balance}
		doc.Users = append(doc.Users, user)
		return user, nil
	}
}

func withdraw(id string, amount int) func(*document.Document) (int, error) {
	return func(doc *document.Document) (int, error) {
		user := doc.UserByID(id)
		if user == nil {
			return 0, NotFoundf("user %q not found", id)
		}
		if user.Balance < amount {
			return 0, InsufficientFundsf("balance %d below %d", user.Balance, amount)
		}
		user.Balance -= amount
		return user.Balance, nil
	}
}

func TestStore_MutateAppliesAndPersists(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)

	doc, result, err := s.Mutate(context.Background(), "user.register", addUser("u1", "Alice", 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, ok := result.(*document.User)
	if !ok {
		t.Fatalf("expected *document.User result, got %T", result)
	}
	testutil.AssertEqual(t, "username", user.Username, "Alice")
	testutil.AssertEqual(t, "returned doc users", len(doc.Users), 1)
	testutil.AssertEqual(t, "persisted users", len(backend.doc.Users), 1)
	testutil.AssertEqual(t, "saves", backend.saveCalls, 1)
}

func TestStore_MutatorFailureWritesNothing(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)

	_, err := Apply(context.Background(), s, "user.withdraw", withdraw("ghost", 10))
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected NotFound, got: %v", err)
	}

	testutil.AssertEqual(t, "saves", backend.saveCalls, 0)
}

func TestStore_NoChangeSkipsWrite(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)

	_, result, err := s.Mutate(context.Background(), "noop", func(doc *document.Document) (any, error) {
		return 0, ErrNoChange
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "result", result.(int), 0)
	testutil.AssertEqual(t, "saves", backend.saveCalls, 0)
}

func TestStore_ConflictRetriesFromFreshLoad(t *testing.T) {
	backend := newFakeBackend()
	backend.conflicts = 2
	s := New(backend, WithRetryBackoff(time.Millisecond))

	_, _, err := s.Mutate(context.Background(), "user.register", addUser("u1", "Alice", 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Each attempt reloads before re-running the mutator
	testutil.AssertEqual(t, "loads", backend.loadCalls, 3)
	testutil.AssertEqual(t, "saves", backend.saveCalls, 3)
	testutil.AssertEqual(t, "persisted users", len(backend.doc.Users), 1)
}

func TestStore_ConflictRetriesAreBounded(t *testing.T) {
	backend := newFakeBackend()
	backend.conflicts = 10
	s := New(backend, WithConflictRetries(3), WithRetryBackoff(time.Millisecond))

	_, _, err := s.Mutate(context.Background(), "user.register", addUser("u1", "Alice", 1000))
	if !IsKind(err, KindConflict) {
		t.Fatalf("expected Conflict, got: %v", err)
	}

	testutil.AssertEqual(t, "saves", backend.saveCalls, 3)
}

func TestStore_FatalBackendErrorsAreNotRetried(t *testing.T) {
	tests := map[string]struct {
		loadErr error
		saveErr error
		expKind Kind
	}{
		"corrupt load": {
			loadErr: storage.ErrCorrupt,
			expKind: KindCorrupt,
		},
		"unavailable load": {
			loadErr: storage.ErrUnavailable,
			expKind: KindBackendUnavailable,
		},
		"auth failure on save": {
			saveErr: storage.ErrAuth,
			expKind: KindBackendUnavailable,
		},
		"unavailable save": {
			saveErr: storage.ErrUnavailable,
			expKind: KindBackendUnavailable,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			backend := newFakeBackend()
			backend.loadErr = tt.loadErr
			backend.saveErr = tt.saveErr
			s := New(backend, WithRetryBackoff(time.Millisecond))

			_, _, err := s.Mutate(context.Background(), "user.register", addUser("u1", "Alice", 1000))
			if !IsKind(err, tt.expKind) {
				t.Fatalf("expected kind %q, got: %v", tt.expKind, err)
			}

			attempts := backend.loadCalls
			if tt.saveErr != nil {
				attempts = backend.saveCalls
			}
			testutil.AssertEqual(t, "attempts", attempts, 1)
		})
	}
}

func TestStore_SerializesConcurrentMutations(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)
	ctx := context.Background()

	if _, _, err := s.Mutate(ctx, "user.register", addUser("u1", "Alice", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Mutate(ctx, "user.credit", func(doc *document.Document) (any, error) {
				doc.UserByID("u1").Balance += 10
				return nil, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, "final balance", backend.doc.UserByID("u1").Balance, writers*10)
}

func TestStore_LostUpdatePreventedOnFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.json")
	s := New(storage.NewFileBackend(path))
	ctx := context.Background()

	if _, _, err := s.Mutate(ctx, "user.register", addUser("u1", "Alice", 1000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two concurrent withdrawals of 600: serialized, the second must see
	// the updated balance and fail.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Apply(ctx, s, "user.withdraw", withdraw("u1", 600))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case IsKind(err, KindInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	testutil.AssertEqual(t, "successes", succeeded, 1)
	testutil.AssertEqual(t, "insufficient funds failures", insufficient, 1)

	doc, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "final balance", doc.UserByID("u1").Balance, 400)
}

func TestStore_PublishesEventAfterPersist(t *testing.T) {
	backend := newFakeBackend()
	pub := &fakePublisher{}
	s := New(backend, WithPublisher(pub))

	if _, _, err := s.Mutate(context.Background(), "user.register", addUser("u1", "Alice", 1000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "events", len(pub.subjects), 1)
	testutil.AssertEqual(t, "subject", pub.subjects[0], "forge.mutations.user.register")
}

func TestStore_NoEventOnFailure(t *testing.T) {
	backend := newFakeBackend()
	pub := &fakePublisher{}
	s := New(backend, WithPublisher(pub))

	_, err := Apply(context.Background(), s, "user.withdraw", withdraw("ghost", 10))
	if err == nil {
		t.Fatal("expected error")
	}

	testutil.AssertEqual(t, "events", len(pub.subjects), 0)
}

func TestApply_TypedResult(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)
	ctx := context.Background()

	if _, _, err := s.Mutate(ctx, "user.register", addUser("u1", "Alice", 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	remaining, err := Apply(ctx, s, "user.withdraw", withdraw("u1", 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "remaining", remaining, 70)
}
