package discord

// Friendly message constants for Discord responses
const (
	MsgNoOutput       = "✅ Done."
	MsgNoCrates       = "📦 No crates are configured."
	MsgNotConsumed    = "💬 Nothing was waiting for an answer."
	MsgAPIUnavailable = "🔌 **Crate server unreachable**\nTry again in a moment."
	MsgBadRequest     = "⚠️ **Invalid request**"
	MsgNoPermission   = "🔒 **No permission**"
	MsgNotFound       = "❓ **Not found**"
	MsgConflict       = "⛔ **Not possible right now**"
	MsgGenericError   = "❌ Something went wrong."

	FooterText = "CrateBot"
	ColorKeys  = 0xF1C40F
	ColorInfo  = 0x3498DB
)
