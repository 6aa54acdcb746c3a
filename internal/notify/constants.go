package notify

// Embed colors by rarity
const (
	ColorCommon    = 0x95A5A6
	ColorRare      = 0x3498DB
	ColorEpic      = 0x9B59B6
	ColorLegendary = 0xFFD700
	ColorLevelUp   = 0x2ECC71
)

// Embed text
const (
	TitleAchievementUnlocked = "🏆 Achievement Unlocked!"
	TitleLevelUp             = "⬆️ Level Up!"
	FooterText               = "Sales Achievements"
)

// Log messages
const (
	LogMsgNotificationSent    = "Discord notification sent"
	LogMsgNotificationError   = "Failed to send Discord notification"
	LogMsgNotificationDropped = "Discord notification dropped, queue full"
	LogMsgPayloadError        = "Failed to decode notification payload"
)
