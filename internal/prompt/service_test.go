package prompt

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/key"
	"github.com/osse101/CrateBot_Go/internal/metrics"
	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/testing/fakes"
)

func voteKey() *domain.Key {
	return &domain.Key{Name: "vote", Item: &domain.ItemStack{Material: "TRIPWIRE_HOOK", Amount: 1, DisplayName: "&6Vote"}}
}

type fixture struct {
	repo   *fakes.PlayerRepository
	svc    Service
	events []event.Event
	viewer *domain.Player
	owner  *domain.Player
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{repo: fakes.NewPlayerRepository()}

	presence := player.NewPresenceTracker(time.Minute)
	t.Cleanup(presence.Stop)
	players := player.NewService(f.repo, presence)
	keys := key.NewService(key.Config{Repo: fakes.NewKeyRepository(voteKey())})

	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{event.KeyWithdrawn, event.KeyDeposited} {
		bus.Subscribe(typ, func(ctx context.Context, evt event.Event) error {
			f.events = append(f.events, evt)
			return nil
		})
	}

	f.svc = NewService(NewMemoryStore(10, time.Minute), players, keys, bus, nil)
	f.viewer = f.repo.Add(&domain.Player{Name: "Admin", Registered: true})
	f.owner = f.repo.Add(&domain.Player{Name: "Alice", Registered: true})
	return f
}

func (f *fixture) ask(t *testing.T, viewer, owner *domain.Player, action domain.PromptAction) {
	t.Helper()
	require.NoError(t, f.svc.Ask(context.Background(), domain.Prompt{
		ViewerID: viewer.ID, OwnerID: owner.ID, KeyName: "vote", Action: action,
	}))
}

func (f *fixture) answer(t *testing.T, viewer *domain.Player, line string) domain.Reply {
	t.Helper()
	reply, consumed, err := f.svc.Answer(context.Background(), viewer, line)
	require.NoError(t, err)
	require.True(t, consumed)
	assert.True(t, reply.Cancel)
	return reply
}

func texts(r domain.Reply) map[string][]string {
	out := map[string][]string{}
	for _, m := range r.Messages {
		out[m.Recipient] = append(out[m.Recipient], m.Text)
	}
	return out
}

func TestAnswer_NoPendingPrompt(t *testing.T) {
	f := newFixture(t)

	reply, consumed, err := f.svc.Answer(context.Background(), f.viewer, "5")
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.False(t, reply.Cancel)
	assert.Empty(t, reply.Messages)
}

func TestAnswer_PromptIsOneShot(t *testing.T) {
	f := newFixture(t)
	f.ask(t, f.viewer, f.owner, domain.PromptDeposit)

	f.answer(t, f.viewer, "2")
	_, consumed, err := f.svc.Answer(context.Background(), f.viewer, "2")
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestAnswer_OwnerNotRegistered(t *testing.T) {
	f := newFixture(t)
	stranger := f.repo.Add(&domain.Player{Name: "Bob"})
	f.ask(t, f.viewer, stranger, domain.PromptWithdraw)

	reply := f.answer(t, f.viewer, "1")
	assert.Equal(t, []string{"§cBob is not registered."}, texts(reply)["Admin"])
}

func TestAnswer_NotANumber(t *testing.T) {
	for _, line := range []string{"abc", "0", "-3", "07", " 5", "3000000000", "99999999999999999999999"} {
		t.Run(line, func(t *testing.T) {
			f := newFixture(t)
			f.ask(t, f.viewer, f.owner, domain.PromptWithdraw)

			reply := f.answer(t, f.viewer, line)
			assert.Equal(t, []string{"§c" + line + " is not a valid number."}, texts(reply)["Admin"])
		})
	}
}

func TestWithdraw_Self(t *testing.T) {
	f := newFixture(t)
	f.repo.SetBalance(f.owner.ID, "vote", 5)
	f.ask(t, f.owner, f.owner, domain.PromptWithdraw)

	before := testutil.ToFloat64(metrics.PromptsAnswered.WithLabelValues("withdraw", metrics.OutcomeDone))
	reply := f.answer(t, f.owner, "3")

	assert.Equal(t, []string{"§aYou withdrew §e3 vote §akey(s)."}, texts(reply)["Alice"])
	assert.Equal(t, 2, f.repo.BalanceOf(f.owner.ID, "vote"))
	assert.Equal(t, 3, f.repo.InventoryOf(f.owner.ID).Count(voteKey().Item))
	require.Contains(t, reply.Inventories, "Alice")
	assert.Equal(t, 3, reply.Inventories["Alice"].Count(voteKey().Item))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PromptsAnswered.WithLabelValues("withdraw", metrics.OutcomeDone)))
	require.Len(t, f.events, 1)
	assert.Equal(t, event.KeyWithdrawn, f.events[0].Type)
}

func TestWithdraw_SelfNotEnough(t *testing.T) {
	f := newFixture(t)
	f.repo.SetBalance(f.owner.ID, "vote", 2)
	f.ask(t, f.owner, f.owner, domain.PromptWithdraw)

	reply := f.answer(t, f.owner, "3")
	assert.Equal(t, []string{"§cYou don't have 3 vote keys to withdraw."}, texts(reply)["Alice"])
	assert.Equal(t, 2, f.repo.BalanceOf(f.owner.ID, "vote"))
	assert.Empty(t, f.events)
}

func TestWithdraw_OtherNotEnough(t *testing.T) {
	f := newFixture(t)
	f.ask(t, f.viewer, f.owner, domain.PromptWithdraw)

	reply := f.answer(t, f.viewer, "1")
	assert.Equal(t, []string{"§cAlice doesn't have 1 vote keys to withdraw."}, texts(reply)["Admin"])
}

func TestWithdraw_InventoryFull(t *testing.T) {
	full := domain.NewInventory()
	for i := range full.Slots {
		full.Slots[i] = &domain.ItemStack{Material: "STONE", Amount: domain.MaxStackSize}
	}

	t.Run("self", func(t *testing.T) {
		f := newFixture(t)
		f.repo.Add(&domain.Player{ID: f.owner.ID, Name: "Alice", Registered: true, Inventory: full})
		f.repo.SetBalance(f.owner.ID, "vote", 5)
		f.ask(t, f.owner, f.owner, domain.PromptWithdraw)

		reply := f.answer(t, f.owner, "1")
		assert.Equal(t, []string{"§cYour inventory is full."}, texts(reply)["Alice"])
	})

	t.Run("other", func(t *testing.T) {
		f := newFixture(t)
		f.repo.Add(&domain.Player{ID: f.owner.ID, Name: "Alice", Registered: true, Inventory: full})
		f.repo.SetBalance(f.owner.ID, "vote", 5)
		f.ask(t, f.viewer, f.owner, domain.PromptWithdraw)

		reply := f.answer(t, f.viewer, "1")
		assert.Equal(t, []string{"§cAlice's inventory is full."}, texts(reply)["Admin"])
		assert.Equal(t, 5, f.repo.BalanceOf(f.owner.ID, "vote"))
	})
}

func TestWithdraw_Other(t *testing.T) {
	f := newFixture(t)
	f.repo.SetBalance(f.owner.ID, "vote", 5)
	f.ask(t, f.viewer, f.owner, domain.PromptWithdraw)

	reply := f.answer(t, f.viewer, "4")
	msgs := texts(reply)

	assert.Equal(t, []string{"§cYou lost §e4 vote §ckey(s)."}, msgs["Alice"])
	assert.Equal(t, []string{"§aYou removed §e4 vote §akey(s) from §eAlice§a."}, msgs["Admin"])
	assert.Equal(t, 1, f.repo.BalanceOf(f.owner.ID, "vote"))
	assert.Zero(t, f.repo.InventoryOf(f.owner.ID).Count(voteKey().Item))
}

func TestDeposit_Self(t *testing.T) {
	f := newFixture(t)
	inv := domain.NewInventory()
	inv.Slots[5] = voteKey().Item.Clone(4)
	f.repo.Add(&domain.Player{ID: f.owner.ID, Name: "Alice", Registered: true, Inventory: inv})
	f.ask(t, f.owner, f.owner, domain.PromptDeposit)

	reply := f.answer(t, f.owner, "4")

	assert.Equal(t, []string{"§aYou deposited §e4 vote §akey(s)."}, texts(reply)["Alice"])
	assert.Equal(t, 4, f.repo.BalanceOf(f.owner.ID, "vote"))
	assert.Zero(t, f.repo.InventoryOf(f.owner.ID).Count(voteKey().Item))
	require.Contains(t, reply.Inventories, "Alice")
	assert.Zero(t, reply.Inventories["Alice"].Count(voteKey().Item))
	require.Len(t, f.events, 1)
	assert.Equal(t, event.KeyDeposited, f.events[0].Type)
}

func TestDeposit_BalanceLimit(t *testing.T) {
	t.Run("self keeps items", func(t *testing.T) {
		f := newFixture(t)
		inv := domain.NewInventory()
		inv.Slots[0] = voteKey().Item.Clone(2)
		f.repo.Add(&domain.Player{ID: f.owner.ID, Name: "Alice", Registered: true, Inventory: inv})
		f.repo.SetBalance(f.owner.ID, "vote", domain.MaxKeyAmount-1)
		f.ask(t, f.owner, f.owner, domain.PromptDeposit)

		reply := f.answer(t, f.owner, "2")
		assert.Equal(t, []string{"§cAlice cannot hold any more vote keys."}, texts(reply)["Alice"])
		assert.Equal(t, 2, f.repo.InventoryOf(f.owner.ID).Count(voteKey().Item))
		assert.Equal(t, domain.MaxKeyAmount-1, f.repo.BalanceOf(f.owner.ID, "vote"))
		assert.Empty(t, reply.Inventories)
		assert.Empty(t, f.events)
	})

	t.Run("other", func(t *testing.T) {
		f := newFixture(t)
		f.repo.SetBalance(f.owner.ID, "vote", domain.MaxKeyAmount)
		f.ask(t, f.viewer, f.owner, domain.PromptDeposit)

		reply := f.answer(t, f.viewer, "1")
		assert.Equal(t, []string{"§cAlice cannot hold any more vote keys."}, texts(reply)["Admin"])
		assert.Empty(t, texts(reply)["Alice"])
		assert.Equal(t, domain.MaxKeyAmount, f.repo.BalanceOf(f.owner.ID, "vote"))
	})
}

func TestDeposit_SelfNotEnough(t *testing.T) {
	f := newFixture(t)
	f.ask(t, f.owner, f.owner, domain.PromptDeposit)

	reply := f.answer(t, f.owner, "1")
	assert.Equal(t, []string{"§cYou don't have 1 vote keys to deposit."}, texts(reply)["Alice"])
	assert.Zero(t, f.repo.BalanceOf(f.owner.ID, "vote"))
}

func TestDeposit_OtherSkipsPhysicalCheck(t *testing.T) {
	f := newFixture(t)
	f.ask(t, f.viewer, f.owner, domain.PromptDeposit)

	reply := f.answer(t, f.viewer, "6")
	msgs := texts(reply)

	assert.Equal(t, []string{"§aYou received §e6 vote §akey(s)."}, msgs["Alice"])
	assert.Equal(t, []string{"§aYou gave §e6 vote §akey(s) to §eAlice§a."}, msgs["Admin"])
	assert.Equal(t, 6, f.repo.BalanceOf(f.owner.ID, "vote"))
}

func TestAnswer_KeyDeletedWhilePending(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Ask(context.Background(), domain.Prompt{
		ViewerID: f.viewer.ID, OwnerID: f.owner.ID, KeyName: "gone", Action: domain.PromptDeposit,
	}))

	reply := f.answer(t, f.viewer, "1")
	assert.Equal(t, []string{"§cThe key gone is not registered."}, texts(reply)["Admin"])
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.ask(t, f.viewer, f.owner, domain.PromptDeposit)

	require.NoError(t, f.svc.Cancel(context.Background(), f.viewer.ID))
	_, consumed, err := f.svc.Answer(context.Background(), f.viewer, "1")
	require.NoError(t, err)
	assert.False(t, consumed)
}
