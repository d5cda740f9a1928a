package publish

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/umedrahimoff/techstan/app/news"
)

// Sender delivers a formatted message to the public channel. Implemented by
// the telegram transport.
type Sender interface {
	SendChannelMessage(channelID, text string) error
}

// shortLabels maps known source hosts to the display string shown in the
// channel. Unknown hosts fall back to https://{host}/.
var shortLabels = map[string]string{
	"digitalbusiness.kz": "https://digitalbusiness.kz/",
	"spot.uz":            "https://spot.uz/",
	"the-tech.kz":        "https://the-tech.kz/",
	"bluescreen.kz":      "https://bluescreen.kz/",
}

// Publisher formats approved items and emits them to the public channel.
type Publisher struct {
	sender      Sender
	channelID   string
	utmCampaign string
	utmContent  string
}

func NewPublisher(sender Sender, channelID, utmCampaign, utmContent string) *Publisher {
	return &Publisher{
		sender:      sender,
		channelID:   channelID,
		utmCampaign: utmCampaign,
		utmContent:  utmContent,
	}
}

// Publish sends the item to the public channel. Failures are returned to the
// caller; there is no internal retry.
func (p *Publisher) Publish(item news.PendingItem) error {
	text := p.FormatMessage(item)

	if err := p.sender.SendChannelMessage(p.channelID, text); err != nil {
		return fmt.Errorf("failed to post to channel: %w", err)
	}

	return nil
}

// FormatMessage renders the channel post: title, a link whose visible text is
// the short host label but whose target carries the tracking parameters, and
// the channel identifier.
func (p *Publisher) FormatMessage(item news.PendingItem) string {
	label := ShortLabel(item.Link)
	tracking := p.TrackingLink(item.Link)

	return fmt.Sprintf("%s\n\nЧитать: [%s](%s)\n\n%s", item.Title, label, tracking, p.channelID)
}

// TrackingLink adds the fixed attribution query parameters to the original
// link, preserving pre-existing parameters and overwriting same-named ones.
func (p *Publisher) TrackingLink(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}

	query := parsed.Query()
	query.Set("utm_source", "telegram")
	query.Set("utm_medium", "social")
	query.Set("utm_campaign", p.utmCampaign)
	query.Set("utm_content", p.utmContent)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// ShortLabel derives the display label from the link's host.
func ShortLabel(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return link
	}

	host := strings.TrimPrefix(parsed.Host, "www.")
	if label, ok := shortLabels[host]; ok {
		return label
	}
	return fmt.Sprintf("https://%s/", parsed.Host)
}
