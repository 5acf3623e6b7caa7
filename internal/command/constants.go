package command

// Root is the command every line must start with
const Root = "keys"

// Completion sources
const (
	CompleteKeys    = "@keys"
	CompletePlayers = "@players"
	CompleteEmpty   = "@empty"
)

// Subcommand names
const (
	SubDefault  = ""
	SubHelp     = "help"
	SubCreate   = "create"
	SubDelete   = "delete"
	SubGive     = "give"
	SubDeposit  = "deposit"
	SubWithdraw = "withdraw"
	SubInfo     = "info"
	SubEdit     = "edit"
)

// Permissions
const (
	PermKeys     = "keys"
	PermHelp     = "keys.help"
	PermCreate   = "keys.create"
	PermDelete   = "keys.delete"
	PermGive     = "keys.give"
	PermDeposit  = "keys.deposit"
	PermWithdraw = "keys.withdraw"
	PermInfo     = "keys.info"
	PermEdit     = "keys.edit"
)

// Log messages
const (
	LogMsgCommandRun     = "Command executed"
	LogMsgPublishFailed  = "Failed to publish command event"
	LogMsgUnknownCommand = "Unknown command"
)
