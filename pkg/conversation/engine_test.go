package conversation_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/conversation/conversationtest"
	"github.com/aurorabot/aurora/pkg/locks"
	"github.com/jonboulle/clockwork"
)

type testData struct {
	Name string `json:"name"`
}

func newEngine() (*conversation.Engine, *conversationtest.Messenger, *clockwork.FakeClock) {
	messenger := conversationtest.NewMessenger()
	clock := clockwork.NewFakeClock()
	e := conversation.NewEngine(conversation.Config{
		Family:    conversation.FamilyRegistration,
		Store:     conversation.NewMemoryStore(),
		Locker:    locks.NewKeyedMutex(),
		Messenger: messenger,
		Clock:     clock,
	})
	return e, messenger, clock
}

func TestIsCancel(t *testing.T) {
	for _, in := range []string{"aurora!cancelar", "  AURORA!Cancelar ", "Aurora!CANCELAR\n"} {
		if !conversation.IsCancel(in) {
			t.Errorf("%q should cancel", in)
		}
	}
	for _, in := range []string{"cancelar", "aurora!cancelar ya", "aurora! cancelar"} {
		if conversation.IsCancel(in) {
			t.Errorf("%q should not cancel", in)
		}
	}
}

func TestStartTwiceFails(t *testing.T) {
	e, _, _ := newEngine()
	ctx := context.Background()

	st, err := e.Start(ctx, "u1", "dm-u1", "riotid", testData{Name: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if st.FlowID == "" || st.Stage != "riotid" {
		t.Errorf("unexpected state %+v", st)
	}
	if _, err := e.Start(ctx, "u1", "dm-u1", "riotid", nil); !errors.Is(err, conversation.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
	if _, err := e.Start(ctx, "u2", "dm-u2", "riotid", nil); err != nil {
		t.Fatalf("other users must not be affected: %v", err)
	}
}

func TestHandleWithoutState(t *testing.T) {
	e, _, _ := newEngine()
	handled, err := e.Handle(context.Background(), "ghost", func(st *conversation.State) (conversation.Step, error) {
		t.Fatal("step must not run")
		return conversation.Stay, nil
	})
	if handled || err != nil {
		t.Errorf("expected unhandled, got %v %v", handled, err)
	}
}

func TestHandlePersistsAndFinishes(t *testing.T) {
	e, messenger, _ := newEngine()
	ctx := context.Background()
	_, _ = e.Start(ctx, "u1", "dm-u1", "riotid", nil)

	_, err := e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		st.Stage = "region"
		st.Pending = &conversation.MessageRef{ChannelID: "dm-u1", MessageID: "m1"}
		return conversation.Stay, st.Encode(testData{Name: "Faker"})
	})
	if err != nil {
		t.Fatal(err)
	}

	_, _ = e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		var d testData
		if err := st.Decode(&d); err != nil {
			t.Fatal(err)
		}
		if st.Stage != "region" || d.Name != "Faker" {
			t.Errorf("state was not persisted: %+v %+v", st, d)
		}
		return conversation.Finish, nil
	})

	if active, _ := e.Active(ctx, "u1"); active {
		t.Error("finished state should be gone")
	}
	if d := messenger.Disabled(); len(d) != 1 || d[0].MessageID != "m1" {
		t.Errorf("pending components should be disabled on finish, got %+v", d)
	}
}

func TestHandleErrorLeavesStateUntouched(t *testing.T) {
	e, _, _ := newEngine()
	ctx := context.Background()
	_, _ = e.Start(ctx, "u1", "dm-u1", "riotid", nil)

	boom := errors.New("boom")
	_, err := e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		st.Stage = "region"
		return conversation.Stay, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	_, _ = e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		if st.Stage != "riotid" {
			t.Errorf("stage should be unchanged, got %s", st.Stage)
		}
		return conversation.Stay, nil
	})
}

func TestReplacingPendingDisablesPrevious(t *testing.T) {
	e, messenger, _ := newEngine()
	ctx := context.Background()
	_, _ = e.Start(ctx, "u1", "dm-u1", "confirmation", nil)

	_, _ = e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		st.Pending = &conversation.MessageRef{ChannelID: "dm-u1", MessageID: "m1"}
		return conversation.Stay, nil
	})
	if len(messenger.Disabled()) != 0 {
		t.Fatal("nothing to disable yet")
	}
	_, _ = e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		st.Pending = nil
		st.Stage = "riotid"
		return conversation.Stay, nil
	})
	if d := messenger.Disabled(); len(d) != 1 || d[0].MessageID != "m1" {
		t.Errorf("abandoned confirmation should be disabled, got %+v", d)
	}
}

func TestButton(t *testing.T) {
	e, _, _ := newEngine()
	ctx := context.Background()
	noop := func(st *conversation.State) (conversation.Step, error) { return conversation.Stay, nil }

	if err := e.Button(ctx, "u1", "m1", noop); !errors.Is(err, conversation.ErrNoConversation) {
		t.Fatalf("expected ErrNoConversation, got %v", err)
	}
	_, _ = e.Start(ctx, "u1", "dm-u1", "confirmation", nil)
	if err := e.Button(ctx, "u1", "m1", noop); !errors.Is(err, conversation.ErrStaleInteraction) {
		t.Fatalf("expected ErrStaleInteraction without pending, got %v", err)
	}
	_, _ = e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		st.Pending = &conversation.MessageRef{ChannelID: "dm-u1", MessageID: "m2"}
		return conversation.Stay, nil
	})
	if err := e.Button(ctx, "u1", "m1", noop); !errors.Is(err, conversation.ErrStaleInteraction) {
		t.Fatalf("expected ErrStaleInteraction for old message, got %v", err)
	}
	if err := e.Button(ctx, "u1", "m2", noop); err != nil {
		t.Fatalf("expected the pending message to be accepted, got %v", err)
	}
}

func TestExpireFiresOnce(t *testing.T) {
	e, messenger, _ := newEngine()
	ctx := context.Background()
	var expired []string
	e.OnExpire(func(_ context.Context, st *conversation.State) {
		expired = append(expired, st.FlowID)
	})

	st, _ := e.Start(ctx, "u1", "dm-u1", "confirmation", nil)
	_, _ = e.Handle(ctx, "u1", func(s *conversation.State) (conversation.Step, error) {
		s.Pending = &conversation.MessageRef{ChannelID: "dm-u1", MessageID: "m1"}
		return conversation.Stay, nil
	})

	fired, err := e.Expire(ctx, "u1", st.StartedAt)
	if err != nil || !fired {
		t.Fatalf("expected the timeout to fire: %v %v", fired, err)
	}
	fired, _ = e.Expire(ctx, "u1", st.StartedAt)
	if fired {
		t.Error("second expiry must be a no-op")
	}
	if len(expired) != 1 || expired[0] != st.FlowID {
		t.Errorf("expected one expiry callback, got %v", expired)
	}
	if d := messenger.Disabled(); len(d) != 1 {
		t.Errorf("expected pending components disabled, got %+v", d)
	}
}

func TestStaleTimerIsNoop(t *testing.T) {
	e, _, clock := newEngine()
	ctx := context.Background()
	calls := 0
	e.OnExpire(func(context.Context, *conversation.State) { calls++ })

	first, _ := e.Start(ctx, "u1", "dm-u1", "riotid", nil)
	clock.Advance(10 * time.Minute)
	_, _ = e.Handle(ctx, "u1", func(*conversation.State) (conversation.Step, error) {
		return conversation.Finish, nil
	})
	_, _ = e.Start(ctx, "u1", "dm-u1", "riotid", nil)

	fired, err := e.Expire(ctx, "u1", first.StartedAt)
	if err != nil || fired {
		t.Fatalf("timer of a finished flow must not fire: %v %v", fired, err)
	}
	if calls != 0 {
		t.Errorf("expected no expiry callback, got %d", calls)
	}
	if active, _ := e.Active(ctx, "u1"); !active {
		t.Error("the new flow must survive the stale timer")
	}
}

func TestTimerExpiresAfterTimeout(t *testing.T) {
	e, _, clock := newEngine()
	ctx := context.Background()
	done := make(chan string, 1)
	e.OnExpire(func(_ context.Context, st *conversation.State) { done <- st.UserID })

	_, _ = e.Start(ctx, "u1", "dm-u1", "riotid", nil)
	clock.Advance(conversation.DefaultTimeout)

	select {
	case user := <-done:
		if user != "u1" {
			t.Errorf("unexpected user %s", user)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout callback never ran")
	}
	if active, _ := e.Active(ctx, "u1"); active {
		t.Error("expired state should be gone")
	}
}

func TestDiscard(t *testing.T) {
	e, messenger, _ := newEngine()
	ctx := context.Background()
	_, _ = e.Start(ctx, "u1", "dm-u1", "riotid", nil)
	if err := e.Discard(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if active, _ := e.Active(ctx, "u1"); active {
		t.Error("discarded state should be gone")
	}
	if len(messenger.Sent()) != 0 {
		t.Error("discard sends nothing")
	}
}

func TestExclusiveFamiliesUnderConcurrency(t *testing.T) {
	store := conversation.NewMemoryStore()
	locker := locks.NewKeyedMutex()
	newFamily := func(f conversation.Family) *conversation.Engine {
		return conversation.NewEngine(conversation.Config{
			Family:    f,
			Store:     store,
			Locker:    locker,
			Messenger: conversationtest.NewMessenger(),
			Clock:     clockwork.NewFakeClock(),
		})
	}
	registration := newFamily(conversation.FamilyRegistration)
	personalization := newFamily(conversation.FamilyPersonalization)
	registration.Exclusive(personalization)
	personalization.Exclusive(registration)

	ctx := context.Background()
	for round := 0; round < 50; round++ {
		userID := "u" + strconv.Itoa(round)
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, e := range []*conversation.Engine{registration, personalization} {
			wg.Add(1)
			go func(i int, e *conversation.Engine) {
				defer wg.Done()
				_, errs[i] = e.Start(ctx, userID, "dm-"+userID, "start", nil)
			}(i, e)
		}
		wg.Wait()

		started := 0
		for _, err := range errs {
			switch {
			case err == nil:
				started++
			case !errors.Is(err, conversation.ErrAlreadyActive):
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if started != 1 {
			t.Fatalf("round %d: %d families started for one user", round, started)
		}
	}
}

func TestExclusiveFamilyRefusesWhileOtherActive(t *testing.T) {
	e, _, _ := newEngine()
	other, _, _ := newEngine()
	e.Exclusive(other)
	ctx := context.Background()

	if _, err := other.Start(ctx, "u1", "dm-u1", "menu", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Start(ctx, "u1", "dm-u1", "riotid", nil); !errors.Is(err, conversation.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
	if active, _ := e.Active(ctx, "u1"); active {
		t.Error("refused start left a state behind")
	}
	if err := other.Discard(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Start(ctx, "u1", "dm-u1", "riotid", nil); err != nil {
		t.Fatalf("start after the other family ended: %v", err)
	}
}

func TestDiscardWaitsForUserLock(t *testing.T) {
	e, _, _ := newEngine()
	ctx := context.Background()
	if _, err := e.Start(ctx, "u1", "dm-u1", "riotid", nil); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	_, err := e.Handle(ctx, "u1", func(st *conversation.State) (conversation.Step, error) {
		go func() { done <- e.Discard(ctx, "u1") }()
		select {
		case <-done:
			t.Error("discard ran while another writer held the user")
		case <-time.After(20 * time.Millisecond):
		}
		st.Stage = "region"
		return conversation.Stay, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if active, _ := e.Active(ctx, "u1"); active {
		t.Error("state survived discard")
	}
}
