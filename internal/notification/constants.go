package notification

const (
	ErrMsgReadLangFile  = "failed to read language file"
	ErrMsgParseLangFile = "failed to parse language file"

	LogMsgMissingKey = "Missing notification in language file"
)
