package notification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ResolvesEveryKnownKey(t *testing.T) {
	c := Default()

	keys := []Key{
		PlayerNotRegistered, PlayerYouInventoryFull, PlayerInventoryFull, PlayerHaventKey,
		PlayerGiveKey, PlayerRemoveKey, PlayerReceiveKey, PlayerLooseKey, PlayerEmptyHand,
		PlayerAlreadyUsedCrate, KeyFull, KeyAlreadyRegistered, KeyCreated, KeyNotRegistered,
		KeyUsedByCrate, KeyDeleted, KeyAskWithdraw, KeyAskDeposit, KeyYouNotEnoughToWithdraw,
		KeyPlayerNotEnoughToWithdraw, KeyWithdraw, KeyYouNotEnoughToDeposit, KeyDeposit,
		KeyShowMenuTitle, KeyEditMenuTitle, KeyMenuAmount, KeyBalanceLimit, UtilNotOnline, UtilNotANumber,
		UtilNoPermission, UtilSyntax, UtilHelpHeader, UtilHelpLine, PrizeChance, PrizeRare,
		PrizeNotRare,
	}
	for _, k := range keys {
		assert.NotEqual(t, string(k), c.Get(k), "key %s missing from embedded language file", k)
	}
}

func TestGet_ReplacesPlaceholdersAndColours(t *testing.T) {
	c, err := Parse([]byte(`PLAYER_GIVE_KEY: "&aGave %amount% %name% to %player%"`))
	require.NoError(t, err)

	got := c.Get(PlayerGiveKey, With("name", "vote"), With("amount", "3"), With("player", "Steve"))

	assert.Equal(t, "§aGave 3 vote to Steve", got)
}

func TestGet_PlaceholderValuesAreLiteral(t *testing.T) {
	c, err := Parse([]byte(`KEY_CREATED: "created %name%"`))
	require.NoError(t, err)

	assert.Equal(t, "created a$1.*b", c.Get(KeyCreated, With("name", "a$1.*b")))
}

func TestGet_MissingKeyFallsBackToName(t *testing.T) {
	c, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "KEY_FULL", c.Get(KeyFull))
	assert.Equal(t, []string{"KEY_FULL"}, c.Lines(KeyFull))
}

func TestLines(t *testing.T) {
	c, err := Parse([]byte("KEY_MENU_USAGE:\n  - \"&7left %name%\"\n  - \"&7right\"\nKEY_FULL: single\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"§7left vote", "§7right"}, c.Lines(KeyMenuUsage, With("name", "vote")))
	assert.Equal(t, []string{"single"}, c.Lines(KeyFull))
	assert.Equal(t, "§7left %name%\n§7right", c.Get(KeyMenuUsage))
}

func TestLoad_OverridesEmbeddedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang.yml")
	require.NoError(t, os.WriteFile(path, []byte(`KEY_FULL: "&4no room"`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "§4no room", c.Get(KeyFull))
	assert.NotEqual(t, string(KeyCreated), c.Get(KeyCreated))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorContains(t, err, ErrMsgReadLangFile)
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "§6Gold §lbold & co", Colorize("&6Gold &Lbold & co"))
	assert.Equal(t, "Gold bold", StripColor(Colorize("&6Gold &lbold")))
	assert.Equal(t, "&zkeep", Colorize("&zkeep"))
}
