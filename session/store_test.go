package session

import (
	"context"
	"errors"
	"testing"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
)

func authenticatedSession() Session {
	return Session{
		Identity: &Identity{ID: "u-1", Email: "ana@legends.example", Username: "ana"},
		Role:     permission.RoleBartender,
		Token:    "tok-1",
		Status:   StatusAuthenticated,
	}
}

type failingStorage struct{}

func (failingStorage) Load(context.Context) ([]byte, error) {
	return nil, errors.New("backend down")
}
func (failingStorage) Save(context.Context, []byte) error { return errors.New("backend down") }
func (failingStorage) Delete(context.Context) error       { return errors.New("backend down") }

func TestStoreStartsAnonymous(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)

	current := store.Current()
	if current.Status != StatusAnonymous {
		t.Fatalf("expected anonymous, got %v", current.Status)
	}
	if current.Role != permission.RoleGuest {
		t.Fatalf("expected guest role, got %v", current.Role)
	}
	if current.Identity != nil || current.Token != "" {
		t.Fatalf("anonymous session must carry no identity or token")
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)

	var order []string
	store.Subscribe(func(Session) { order = append(order, "first") })
	store.Subscribe(func(Session) { order = append(order, "second") })
	store.Subscribe(func(Session) { order = append(order, "third") })

	store.Set(authenticatedSession())

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("notification order %v, want %v", order, want)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)

	var calls int
	unsubscribe := store.Subscribe(func(Session) { calls++ })

	store.Set(authenticatedSession())
	unsubscribe()
	unsubscribe()
	store.Set(Anonymous())

	if calls != 1 {
		t.Fatalf("expected 1 delivery, got %d", calls)
	}
}

func TestSubscriberMutationDoesNotReachStore(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)

	store.Subscribe(func(s Session) {
		if s.Identity != nil {
			s.Identity.Username = "mallory"
		}
	})

	store.Set(authenticatedSession())

	current := store.Current()
	if current.Identity.Username != "ana" {
		t.Fatalf("subscriber mutation leaked into store: %q", current.Identity.Username)
	}

	// Snapshots from Current are isolated too.
	current.Identity.Username = "mallory"
	if store.Current().Identity.Username != "ana" {
		t.Fatal("snapshot mutation leaked into store")
	}
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, nil)
	ctx := context.Background()

	sess := authenticatedSession()
	if err := store.Persist(ctx, sess); err != nil {
		t.Fatalf("persist: %v", err)
	}

	fresh := NewStore(storage, nil)
	restored := fresh.Restore(ctx)

	if restored.Status != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %v", restored.Status)
	}
	if restored.Identity == nil || restored.Identity.ID != "u-1" {
		t.Fatalf("identity not restored: %+v", restored.Identity)
	}
	if restored.Role != permission.RoleBartender {
		t.Fatalf("role not restored: %v", restored.Role)
	}
	if restored.Token != "tok-1" {
		t.Fatalf("token not restored: %q", restored.Token)
	}
}

func TestRestorePassesThroughAuthenticating(t *testing.T) {
	storage := NewMemoryStorage()
	seed := NewStore(storage, nil)
	if err := seed.Persist(context.Background(), authenticatedSession()); err != nil {
		t.Fatalf("persist: %v", err)
	}

	store := NewStore(storage, nil)
	var statuses []Status
	store.Subscribe(func(s Session) { statuses = append(statuses, s.Status) })

	store.Restore(context.Background())

	if len(statuses) != 2 {
		t.Fatalf("expected 2 transitions, got %v", statuses)
	}
	if statuses[0] != StatusAuthenticating || statuses[1] != StatusAuthenticated {
		t.Fatalf("expected authenticating then authenticated, got %v", statuses)
	}
}

func TestRestoreDegradesOnBackendFailure(t *testing.T) {
	store := NewStore(failingStorage{}, nil)

	restored := store.Restore(context.Background())
	if restored.Status != StatusAnonymous {
		t.Fatalf("expected anonymous after backend failure, got %v", restored.Status)
	}
	if store.Current().Status != StatusAnonymous {
		t.Fatalf("store not resting anonymous after failed restore")
	}
}

func TestRestoreDegradesOnCorruptRecord(t *testing.T) {
	storage := NewMemoryStorage()
	if err := storage.Save(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := NewStore(storage, nil)
	restored := store.Restore(context.Background())
	if restored.Status != StatusAnonymous {
		t.Fatalf("expected anonymous after corrupt record, got %v", restored.Status)
	}

	// The unusable record must have been discarded.
	data, err := storage.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Fatal("corrupt record not discarded")
	}
}

func TestRestoreDegradesOnStaleToken(t *testing.T) {
	storage := NewMemoryStorage()
	seed := NewStore(storage, nil)
	if err := seed.Persist(context.Background(), authenticatedSession()); err != nil {
		t.Fatalf("persist: %v", err)
	}

	stale := errors.New("token expired")
	store := NewStore(storage, func(string) error { return stale })

	restored := store.Restore(context.Background())
	if restored.Status != StatusAnonymous {
		t.Fatalf("expected anonymous after stale token, got %v", restored.Status)
	}
}

func TestClearRemovesPersistedRecordOnly(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, nil)
	ctx := context.Background()

	sess := authenticatedSession()
	store.Set(sess)
	if err := store.Persist(ctx, sess); err != nil {
		t.Fatalf("persist: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	data, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Fatal("persisted record survived Clear")
	}
	if store.Current().Status != StatusAuthenticated {
		t.Fatal("Clear must not touch the in-memory session")
	}
}

func TestEncodeRejectsNonAuthenticated(t *testing.T) {
	if _, err := Encode(Anonymous()); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestDecodeRejectsWrongSchemaVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version":99,"token":"t","identity":{"id":"u"},"role":"admin"}`))
	if !errors.Is(err, ErrSchemaVersion) {
		t.Fatalf("expected ErrSchemaVersion, got %v", err)
	}
}

func TestDecodeRejectsUnknownRole(t *testing.T) {
	_, err := Decode([]byte(`{"version":1,"token":"t","identity":{"id":"u"},"role":"sommelier"}`))
	if !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}
