package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/umedrahimoff/techstan/app/cfg"
	"github.com/umedrahimoff/techstan/app/moderation"
	"github.com/umedrahimoff/techstan/app/news"
)

// Bot is the Telegram transport: it posts moderation cards and reports to the
// moderation group, publishes approved items to the public channel, and
// handles moderator commands and button presses over long polling.
type Bot struct {
	api              *tgbotapi.BotAPI
	moderationChatID int64
	channelID        string
	checkInterval    int
}

func NewBot() (*Bot, error) {
	cfg := cfg.Get()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = cfg.Debug

	slog.Debug("Telegram bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:              api,
		moderationChatID: cfg.ModerationChatID,
		channelID:        cfg.ChannelID,
		checkInterval:    cfg.CheckInterval,
	}, nil
}

// PostModerationCard sends the item to the moderation group with approve and
// reject buttons carrying the item ID.
func (b *Bot) PostModerationCard(item news.PendingItem) error {
	text := fmt.Sprintf("<b>Новая новость для модерации:</b>\n\n"+
		"<b>Заголовок:</b> %s\n"+
		"<b>Источник:</b> %s\n"+
		"<b>Ссылка:</b> %s\n\n"+
		"<b>Канал:</b> %s",
		item.Title, item.Source, item.Link, b.channelID)

	msg := tgbotapi.NewMessage(b.moderationChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Одобрить", fmt.Sprintf("approve_%d", item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("Отклонить", fmt.Sprintf("reject_%d", item.ID)),
		),
	)

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send moderation card: %w", err)
	}
	return nil
}

// SendChannelMessage posts Markdown text to the public channel. The channel
// may be addressed by @username or by numeric chat ID.
func (b *Bot) SendChannelMessage(channelID, text string) error {
	var msg tgbotapi.MessageConfig
	if chatID, err := strconv.ParseInt(channelID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(chatID, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(channelID, text)
	}
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send channel message: %w", err)
	}
	return nil
}

// SendReport posts an HTML report to the moderation group.
func (b *Bot) SendReport(text string) error {
	msg := tgbotapi.NewMessage(b.moderationChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// Run processes incoming updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context, queue *moderation.Queue) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update, queue)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update, queue *moderation.Queue) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(update.CallbackQuery, queue)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message, queue)
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery, queue *moderation.Queue) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		slog.Warn("Failed to answer callback query", "error", err)
	}

	decision, id, err := parseCallbackData(query.Data)
	if err != nil {
		slog.Warn("Unrecognized callback data", "data", query.Data, "error", err)
		b.editCard(query, "Произошла ошибка")
		return
	}

	outcome, err := queue.Resolve(id, decision)
	if err != nil {
		slog.Error("Moderation decision failed", "id", id, "decision", string(decision), "error", err)
	}

	b.editCard(query, outcomeText(outcome))
}

// parseCallbackData splits "approve_<id>" / "reject_<id>" button payloads.
func parseCallbackData(data string) (moderation.Decision, int, error) {
	action, rawID, found := strings.Cut(data, "_")
	if !found {
		return "", 0, fmt.Errorf("malformed callback data: %s", data)
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return "", 0, fmt.Errorf("malformed item ID in callback data: %s", data)
	}

	switch action {
	case "approve":
		return moderation.DecisionApprove, id, nil
	case "reject":
		return moderation.DecisionReject, id, nil
	default:
		return "", 0, fmt.Errorf("unknown callback action: %s", action)
	}
}

func outcomeText(outcome moderation.Outcome) string {
	switch outcome {
	case moderation.OutcomeApproved:
		return "✅ Новость одобрена и опубликована!"
	case moderation.OutcomeRejected:
		return "❌ Новость отклонена"
	case moderation.OutcomeNotFound:
		return "❌ Новость не найдена"
	default:
		return "Произошла ошибка"
	}
}

func (b *Bot) editCard(query *tgbotapi.CallbackQuery, text string) {
	if query.Message == nil {
		return
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
	if _, err := b.api.Send(edit); err != nil {
		slog.Warn("Failed to edit moderation card", "error", err)
	}
}

func (b *Bot) handleCommand(message *tgbotapi.Message, queue *moderation.Queue) {
	var reply tgbotapi.MessageConfig

	switch message.Command() {
	case "start":
		reply = tgbotapi.NewMessage(message.Chat.ID,
			"Бот для мониторинга технологических новостей запущен!\n\n"+
				"Бот автоматически проверяет новости и отправляет их на модерацию.")

	case "status":
		status := queue.Status()
		reply = tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf(
			"Статус бота:\n\nНа модерации: %d\nОпубликовано: %d\nПроверка каждые %d минут",
			status.PendingCount, status.PublishedCount, b.checkInterval))

	case "report":
		hours := 24
		if args := strings.TrimSpace(message.CommandArguments()); args != "" {
			if parsed, err := strconv.Atoi(args); err == nil && parsed > 0 {
				hours = parsed
			}
		}
		reply = tgbotapi.NewMessage(message.Chat.ID, queue.Report(hours))
		reply.ParseMode = tgbotapi.ModeHTML

	default:
		return
	}

	if _, err := b.api.Send(reply); err != nil {
		slog.Warn("Failed to reply to command", "command", message.Command(), "error", err)
	}
}
