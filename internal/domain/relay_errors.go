package domain

// Caller-facing texts for relay failures. The frontend matches on them, so
// they are part of the HTTP contract.
const (
	MsgRequiredFields = "name и tg обязательны"
	MsgNotConfigured  = "Сервер не сконфигурирован (нет токена/чат-айди)"
	MsgTelegramError  = "Telegram error"
)
