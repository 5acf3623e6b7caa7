package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CrateBot_Go/internal/command"
	"github.com/osse101/CrateBot_Go/internal/crate"
	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/key"
	"github.com/osse101/CrateBot_Go/internal/listener"
	"github.com/osse101/CrateBot_Go/internal/notification"
	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/prize"
	"github.com/osse101/CrateBot_Go/internal/prompt"
	"github.com/osse101/CrateBot_Go/internal/testing/fakes"
)

type apiFixture struct {
	router   http.Handler
	players  *fakes.PlayerRepository
	presence *player.PresenceTracker
	admin    *domain.Player
	alice    *domain.Player
}

func voteKey() *domain.Key {
	return &domain.Key{Name: "vote", Item: &domain.ItemStack{Material: "TRIPWIRE_HOOK", Amount: 1, DisplayName: "&6Vote"}, Slot: 0}
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		players:  fakes.NewPlayerRepository(),
		presence: player.NewPresenceTracker(time.Minute),
	}
	t.Cleanup(f.presence.Stop)

	sword := domain.NewPrize(&domain.ItemStack{Material: "IRON_SWORD", Amount: 1}, &domain.ItemStack{Material: "IRON_SWORD", Amount: 1}, 4, 10)
	crates := fakes.NewCrateRepository(&domain.Crate{Name: "vote", KeyName: "vote", Size: 9, Prizes: []*domain.Prize{sword}})
	require.NoError(t, crates.UpsertTag(context.Background(), domain.Tag{Name: "weapon", Description: "&7Weapon"}))

	bus := event.NewMemoryBus()
	catalog := notification.Default()
	players := player.NewService(f.players, f.presence)
	keys := key.NewService(key.Config{Repo: fakes.NewKeyRepository(voteKey()), Usage: crates, Balances: players, Bus: bus})
	prompts := prompt.NewService(prompt.NewMemoryStore(10, time.Minute), players, keys, bus, catalog)
	menus := listener.NewService(keys, players, prompts, catalog, time.Minute)
	commands := command.NewService(keys, players, menus, bus, catalog)
	menuHandler := NewMenuHandler(menus, players)
	crateHandler := NewCrateHandler(crate.NewService(crates), prize.NewService(crates, bus, catalog))

	r := chi.NewRouter()
	r.Post("/players/register", HandleRegisterPlayer(players))
	r.Post("/players/presence", HandlePresence(players, prompts, menus))
	r.Get("/players/{name}", HandleGetPlayer(players))
	r.Put("/players/{name}/inventory", HandleSyncInventory(players))
	r.Post("/commands", HandleRunCommand(commands, players))
	r.Get("/commands/complete", HandleComplete(commands, players))
	r.Post("/chat", HandleChat(prompts, players))
	r.Post("/menu/click", menuHandler.HandleClick)
	r.Post("/menu/drag", menuHandler.HandleDrag)
	r.Post("/menu/close", menuHandler.HandleClose)
	r.Get("/menu/{viewer}", menuHandler.HandleView)
	r.Get("/crates", crateHandler.HandleListCrates)
	r.Get("/crates/{crate}/prizes/{slot}", crateHandler.HandleGetPrize)
	r.Post("/crates/{crate}/prizes/{slot}/tags", crateHandler.HandleSwitchTag)
	r.Post("/crates/{crate}/prizes/{slot}/chance", crateHandler.HandleChangeChance)
	r.Post("/crates/{crate}/prizes/{slot}/rarity", crateHandler.HandleChangeRarity)
	r.Post("/crates/{crate}/prizes/{slot}/skin", crateHandler.HandleChangeSkin)
	f.router = r

	f.admin = f.players.Add(&domain.Player{Name: "Admin", Registered: true, Permissions: []string{domain.PermissionWildcard}})
	f.alice = f.players.Add(&domain.Player{Name: "Alice", Registered: true, Permissions: []string{command.PermKeys}})
	f.presence.Track("Admin")
	f.presence.Track("Alice")
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) ReplyResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp ReplyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func textsTo(resp ReplyResponse, recipient string) []string {
	var out []string
	for _, m := range resp.Messages {
		if m.Recipient == recipient {
			out = append(out, m.Text)
		}
	}
	return out
}

func TestRegisterPlayer(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/players/register", RegisterPlayerRequest{Name: "Bob", Permissions: []string{"keys"}})
	require.Equal(t, http.StatusOK, w.Code)
	var p domain.Player
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.True(t, p.Registered)
	assert.Equal(t, []string{"keys"}, p.Permissions)

	w = f.do(t, http.MethodPost, "/players/register", RegisterPlayerRequest{Name: "no spaces allowed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid player name")

	req := httptest.NewRequest(http.MethodPost, "/players/register", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequest)
}

func TestPresenceAndGetPlayer(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/players/presence", PresenceRequest{Name: "Carol", Online: true})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/players/carol", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp PlayerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Carol", resp.Name)
	assert.False(t, resp.Registered)
	assert.True(t, resp.Online)

	w = f.do(t, http.MethodPost, "/players/presence", PresenceRequest{Name: "Carol", Online: false})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodGet, "/players/Carol", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Online)

	w = f.do(t, http.MethodGet, "/players/Nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgPlayerNotFoundError)
}

func TestSyncInventory(t *testing.T) {
	f := newAPIFixture(t)

	slots := make([]*domain.ItemStack, 9)
	slots[2] = &domain.ItemStack{Material: "DIAMOND", Amount: 5}
	w := f.do(t, http.MethodPut, "/players/Alice/inventory", InventoryRequest{Slots: slots, HeldSlot: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	inv := f.players.InventoryOf(f.alice.ID)
	require.NotNil(t, inv.MainHand())
	assert.Equal(t, domain.Material("DIAMOND"), inv.MainHand().Material)

	w = f.do(t, http.MethodPut, "/players/Alice/inventory", InventoryRequest{HeldSlot: 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunCommand(t *testing.T) {
	f := newAPIFixture(t)
	catalog := notification.Default()

	resp := decodeReply(t, f.do(t, http.MethodPost, "/commands", RunCommandRequest{Player: "Admin", Line: "/keys give Alice 3 vote"}))
	assert.Equal(t, []string{catalog.Get(notification.PlayerReceiveKey, notification.With("name", "vote"), notification.With("amount", "3"))}, textsTo(resp, "Alice"))
	assert.Len(t, textsTo(resp, "Admin"), 1)
	assert.Equal(t, 3, f.players.InventoryOf(f.alice.ID).Count(voteKey().Item))
	require.Contains(t, resp.Inventories, "Alice")
	assert.Equal(t, 3, resp.Inventories["Alice"].Count(voteKey().Item))

	w := f.do(t, http.MethodPost, "/commands", RunCommandRequest{Player: "Admin", Line: "/crates open"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/commands", RunCommandRequest{Player: "Ghost", Line: "/keys"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComplete(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/commands/complete?player=Admin&line=/keys+give+Al", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp CompletionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Alice"}, resp.Completions)

	w = f.do(t, http.MethodGet, "/commands/complete?player=Admin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing line query parameter")
}

func TestMenuWithdrawFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.players.SetBalance(f.alice.ID, "vote", 5)
	catalog := notification.Default()

	resp := decodeReply(t, f.do(t, http.MethodPost, "/commands", RunCommandRequest{Player: "Alice", Line: "/keys"}))
	require.NotNil(t, resp.OpenMenu)

	w := f.do(t, http.MethodGet, "/menu/Alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view domain.MenuView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, domain.MenuKeyShow, view.Kind)
	require.NotNil(t, view.Slots[0])

	resp = decodeReply(t, f.do(t, http.MethodPost, "/menu/drag", DragRequest{Player: "Alice", Slots: []int{0, 1}}))
	assert.True(t, resp.Cancel)

	resp = decodeReply(t, f.do(t, http.MethodPost, "/menu/click", ClickRequest{
		Player:           "Alice",
		Slot:             0,
		Click:            domain.ClickLeft,
		ClickedInventory: domain.InventoryMenu,
		CurrentItem:      view.Slots[0],
	}))
	assert.True(t, resp.Cancel)
	assert.True(t, resp.CloseMenu)
	assert.Equal(t, []string{catalog.Get(notification.KeyAskWithdraw, notification.With("name", "vote"))}, textsTo(resp, "Alice"))

	resp = decodeReply(t, f.do(t, http.MethodPost, "/chat", ChatRequest{Player: "Alice", Line: "2"}))
	require.NotNil(t, resp.Consumed)
	assert.True(t, *resp.Consumed)
	assert.Equal(t, 3, f.players.BalanceOf(f.alice.ID, "vote"))
	assert.Equal(t, 2, f.players.InventoryOf(f.alice.ID).Count(voteKey().Item))
	require.Contains(t, resp.Inventories, "Alice")
	assert.Equal(t, 2, resp.Inventories["Alice"].Count(voteKey().Item))

	resp = decodeReply(t, f.do(t, http.MethodPost, "/chat", ChatRequest{Player: "Alice", Line: "hello"}))
	require.NotNil(t, resp.Consumed)
	assert.False(t, *resp.Consumed)
	assert.Empty(t, resp.Messages)
	assert.Empty(t, resp.Inventories)
}

func TestMenuClose(t *testing.T) {
	f := newAPIFixture(t)

	decodeReply(t, f.do(t, http.MethodPost, "/commands", RunCommandRequest{Player: "Admin", Line: "/keys edit"}))
	decodeReply(t, f.do(t, http.MethodPost, "/menu/close", CloseRequest{Player: "Admin"}))

	w := f.do(t, http.MethodGet, "/menu/Admin", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgNoMenuOpenError)
}

func TestCrateEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/crates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key_name":"vote"`)

	w = f.do(t, http.MethodGet, "/crates/vote/prizes/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp PrizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10.0, resp.Prize.Chance)
	assert.Len(t, resp.EditBackground.Lore, 4)

	w = f.do(t, http.MethodPost, "/crates/vote/prizes/4/tags", TagRequest{Tag: "weapon"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Prize.HasTag("weapon"))

	chance := 12.5
	w = f.do(t, http.MethodPost, "/crates/vote/prizes/4/chance", ChanceRequest{Chance: &chance})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12.5, resp.Prize.Chance)

	tooHigh := 150.0
	w = f.do(t, http.MethodPost, "/crates/vote/prizes/4/chance", ChanceRequest{Chance: &tooHigh})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidChanceError)

	w = f.do(t, http.MethodPost, "/crates/vote/prizes/4/chance", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/crates/vote/prizes/4/rarity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Prize.Rarity)

	w = f.do(t, http.MethodPost, "/crates/vote/prizes/4/skin", SkinRequest{Skin: &SkinItem{Material: "STICK"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.Material("STICK"), resp.Prize.Skin.Material)
	assert.Equal(t, 1, resp.Prize.Skin.Amount)

	w = f.do(t, http.MethodGet, "/crates/vote/prizes/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/crates/vote/prizes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
