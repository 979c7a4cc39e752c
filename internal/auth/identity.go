package auth

import (
	"strconv"
	"strings"
)

// TelegramPrefix namespaces users signed in through the bot. The HTTP API
// never accepts ids in this namespace.
const TelegramPrefix = "tg:"

// TelegramUserID is the user id of a Telegram account.
func TelegramUserID(telegramID int64) string {
	return TelegramPrefix + strconv.FormatInt(telegramID, 10)
}

// IsTelegramUserID reports whether userID belongs to the bot's namespace.
func IsTelegramUserID(userID string) bool {
	return strings.HasPrefix(userID, TelegramPrefix)
}
