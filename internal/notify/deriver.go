// Package notify derives due-date notifications from assigned cards. Nothing
// is persisted; every call recomputes from the store.
package notify

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
)

type Deriver struct {
	store storage.Store
}

func NewDeriver(store storage.Store) *Deriver {
	return &Deriver{store: store}
}

// Derive classifies every card assigned to userID with a due date. The
// classification runs in fixed priority order, so a card yields at most one
// notification. Result order is unspecified.
func (d *Deriver) Derive(ctx context.Context, userID string, now time.Time) ([]models.Notification, error) {
	cards, err := d.store.ListAssignedCardsDue(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(cards))
	for _, card := range cards {
		if card.DueDate == nil {
			continue
		}
		days := daysUntil(*card.DueDate, now)
		switch {
		case days <= 0:
			notifications = append(notifications, models.Notification{
				Type:    models.NotificationOverdue,
				CardID:  card.ID,
				Title:   card.Title,
				Message: fmt.Sprintf("Card '%s' is overdue", card.Title),
			})
		case days <= 1:
			notifications = append(notifications, models.Notification{
				Type:    models.NotificationDueToday,
				CardID:  card.ID,
				Title:   card.Title,
				Message: fmt.Sprintf("Card '%s' is due today", card.Title),
			})
		case days <= 7:
			notifications = append(notifications, models.Notification{
				Type:    models.NotificationDueThisWeek,
				CardID:  card.ID,
				Title:   card.Title,
				Message: fmt.Sprintf("Card '%s' is due in %d days", card.Title, days),
			})
		}
	}
	return notifications, nil
}

// daysUntil counts whole days from now to due, both normalized to UTC,
// rounding up. A due date at or before now yields <= 0, anything later the
// same day yields 1.
func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.UTC().Sub(now.UTC()).Hours() / 24))
}
