// Package notify announces achievement unlocks and level ups to a
// Discord channel.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

// Sender is the subset of *discordgo.Session used for announcements
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Subscriber is the part of event.Bus the announcer needs
type Subscriber interface {
	Subscribe(eventType event.Type, handler event.Handler)
}

// Enqueuer runs jobs off the publishing goroutine
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// DiscordAnnouncer turns events into channel embeds
type DiscordAnnouncer struct {
	sender    Sender
	channelID string
	queue     Enqueuer
	printer   *message.Printer
	caser     cases.Caser
	now       func() time.Time
}

// NewSession opens a bot session for token
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return session, nil
}

// NewDiscordAnnouncer creates an announcer. With a nil queue, sends happen
// synchronously inside the event handler.
func NewDiscordAnnouncer(sender Sender, channelID string, queue Enqueuer) *DiscordAnnouncer {
	return &DiscordAnnouncer{
		sender:    sender,
		channelID: channelID,
		queue:     queue,
		printer:   message.NewPrinter(language.English),
		caser:     cases.Title(language.English),
		now:       time.Now,
	}
}

// Register subscribes to unlock and level up events
func (a *DiscordAnnouncer) Register(bus Subscriber) {
	bus.Subscribe(event.AchievementUnlocked, a.HandleUnlocked)
	bus.Subscribe(event.LevelUp, a.HandleLevelUp)
}

// HandleUnlocked announces an unlocked achievement
func (a *DiscordAnnouncer) HandleUnlocked(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "error", err, "event_type", evt.Type)
		return nil
	}
	return a.send(ctx, evt.Type, a.unlockedEmbed(p))
}

// HandleLevelUp announces a level up
func (a *DiscordAnnouncer) HandleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "error", err, "event_type", evt.Type)
		return nil
	}
	return a.send(ctx, evt.Type, a.levelUpEmbed(p))
}

func (a *DiscordAnnouncer) send(ctx context.Context, eventType event.Type, embed *discordgo.MessageEmbed) error {
	deliver := func(ctx context.Context) error {
		if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
			logger.FromContext(ctx).Error(LogMsgNotificationError, "error", err, "event_type", eventType)
			return err
		}
		logger.FromContext(ctx).Info(LogMsgNotificationSent, "event_type", eventType)
		return nil
	}

	if a.queue == nil {
		return deliver(ctx)
	}
	if !a.queue.TryEnqueue(worker.JobFunc(deliver)) {
		logger.FromContext(ctx).Warn(LogMsgNotificationDropped, "event_type", eventType)
	}
	return nil
}

func (a *DiscordAnnouncer) unlockedEmbed(p event.AchievementUnlockedPayloadV1) *discordgo.MessageEmbed {
	name := p.DisplayName
	if name == "" {
		name = p.UserID
	}
	return &discordgo.MessageEmbed{
		Title:       TitleAchievementUnlocked,
		Description: fmt.Sprintf("**%s** earned %s **%s**", name, p.Icon, p.Name),
		Color:       rarityColor(domain.Rarity(p.Rarity)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: a.caser.String(p.Category), Inline: true},
			{Name: "Tier", Value: a.caser.String(p.Tier), Inline: true},
			{Name: "Rarity", Value: a.caser.String(p.Rarity), Inline: true},
			{Name: "Points", Value: a.printer.Sprintf("+%d", p.Points), Inline: true},
			{Name: "Total", Value: a.printer.Sprintf("%d", p.TotalPoints), Inline: true},
		},
		Timestamp: a.timestamp(p.UnlockedAt),
		Footer:    &discordgo.MessageEmbedFooter{Text: FooterText},
	}
}

func (a *DiscordAnnouncer) levelUpEmbed(p event.LevelUpPayloadV1) *discordgo.MessageEmbed {
	name := p.DisplayName
	if name == "" {
		name = p.UserID
	}
	return &discordgo.MessageEmbed{
		Title:       TitleLevelUp,
		Description: fmt.Sprintf("**%s** reached **level %d**: %s", name, p.NewLevel, p.Title),
		Color:       ColorLevelUp,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Previous Level", Value: fmt.Sprintf("%d", p.OldLevel), Inline: true},
			{Name: "Total Points", Value: a.printer.Sprintf("%d", p.TotalPoints), Inline: true},
		},
		Timestamp: a.timestamp(time.Time{}),
		Footer:    &discordgo.MessageEmbedFooter{Text: FooterText},
	}
}

func (a *DiscordAnnouncer) timestamp(t time.Time) string {
	if t.IsZero() {
		t = a.now()
	}
	return t.UTC().Format(time.RFC3339)
}

func rarityColor(r domain.Rarity) int {
	switch r {
	case domain.RarityLegendary:
		return ColorLegendary
	case domain.RarityEpic:
		return ColorEpic
	case domain.RarityRare:
		return ColorRare
	case domain.RarityCommon:
	}
	return ColorCommon
}
