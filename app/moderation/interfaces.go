package moderation

import (
	"github.com/umedrahimoff/techstan/app/news"
)

// Classifier decides topical relevance of a candidate title.
type Classifier interface {
	IsRelevant(title string) bool
}

// Publisher emits an approved item to the public channel.
type Publisher interface {
	Publish(item news.PendingItem) error
}

// CardPoster renders a pending item in the moderation channel with
// approve/reject controls mapped to the item ID.
type CardPoster interface {
	PostModerationCard(item news.PendingItem) error
}
