package notification

// Key names a template in the language file
type Key string

// Player notifications
const (
	PlayerNotRegistered    Key = "PLAYER_NOT_REGISTERED"
	PlayerYouInventoryFull Key = "PLAYER_YOU_INVENTORY_FULL"
	PlayerInventoryFull    Key = "PLAYER_INVENTORY_FULL"
	PlayerHaventKey        Key = "PLAYER_HAVENT_KEY"
	PlayerGiveKey          Key = "PLAYER_GIVE_KEY"
	PlayerRemoveKey        Key = "PLAYER_REMOVE_KEY"
	PlayerReceiveKey       Key = "PLAYER_RECEIVE_KEY"
	PlayerLooseKey         Key = "PLAYER_LOOSE_KEY"
	PlayerEmptyHand        Key = "PLAYER_EMPTY_HAND"
	PlayerAlreadyUsedCrate Key = "PLAYER_ALREADY_USED_CRATE"
)

// Key notifications
const (
	KeyFull                      Key = "KEY_FULL"
	KeyAlreadyRegistered         Key = "KEY_ALREADY_REGISTERED"
	KeyCreated                   Key = "KEY_CREATED"
	KeyNotRegistered             Key = "KEY_NOT_REGISTERED"
	KeyUsedByCrate               Key = "KEY_USED_BY_CRATE"
	KeyDeleted                   Key = "KEY_DELETED"
	KeyAskWithdraw               Key = "KEY_ASK_WITHDRAW"
	KeyAskDeposit                Key = "KEY_ASK_DEPOSIT"
	KeyYouNotEnoughToWithdraw    Key = "KEY_YOU_NOT_ENOUGH_TO_WITHDRAW"
	KeyPlayerNotEnoughToWithdraw Key = "KEY_PLAYER_NOT_ENOUGH_TO_WITHDRAW"
	KeyWithdraw                  Key = "KEY_WITHDRAW"
	KeyYouNotEnoughToDeposit     Key = "KEY_YOU_NOT_ENOUGH_TO_DEPOSIT"
	KeyDeposit                   Key = "KEY_DEPOSIT"
	KeyShowMenuTitle             Key = "KEY_SHOW_MENU_TITLE"
	KeyEditMenuTitle             Key = "KEY_EDIT_MENU_TITLE"
	KeyMenuAmount                Key = "KEY_MENU_AMOUNT"
	KeyMenuUsage                 Key = "KEY_MENU_USAGE"
	KeyBalanceLimit              Key = "KEY_BALANCE_LIMIT"
)

// Utility notifications
const (
	UtilNotOnline    Key = "UTIL_NOT_ONLINE"
	UtilNotANumber   Key = "UTIL_NOT_A_NUMBER"
	UtilNoPermission Key = "UTIL_NO_PERMISSION"
	UtilSyntax       Key = "UTIL_SYNTAX"
	UtilHelpHeader   Key = "UTIL_HELP_HEADER"
	UtilHelpLine     Key = "UTIL_HELP_LINE"
)

// Prize notifications
const (
	PrizeChance  Key = "PRIZE_CHANCE"
	PrizeRare    Key = "PRIZE_RARE"
	PrizeNotRare Key = "PRIZE_NOT_RARE"
)
