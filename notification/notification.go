// Package notification keeps the short lived messages shown to the user after a cart operation
// fails. Each message disappears on its own once its ttl elapsed.
package notification

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
)

type Level string

const (
	LevelError Level = "error"
	LevelInfo  Level = "info"
)

type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
	OperationUpdate Operation = "update"
)

const (
	MessageOutOfStock    = "requested amount is out of stock"
	MessageFailedAdd     = "failed adding product"
	MessageFailedRemove  = "failed removing product"
	MessageFailedUpdate  = "failed updating product amount"
	MessageUnknownFailed = "operation failed"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Operation Operation `json:"operation"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromError turns a failed operation into the message the user sees. Out of stock wins over the
// generic per-operation text for add and update.
func FromError(op Operation, err error) Notification {
	message := MessageUnknownFailed
	switch {
	case errors.Is(err, commonErrors.ErrOutOfStock) && op != OperationRemove:
		message = MessageOutOfStock
	case op == OperationAdd:
		message = MessageFailedAdd
	case op == OperationRemove:
		message = MessageFailedRemove
	case op == OperationUpdate:
		message = MessageFailedUpdate
	}
	return Notification{
		ID:        uuid.New(),
		Level:     LevelError,
		Operation: op,
		Message:   message,
	}
}

// maxItems bounds the notifications kept when nobody drains them.
const maxItems = 100

type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	items []Notification
	now   func() time.Time
}

func NewNotifier(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl, now: time.Now}
}

func (n *Notifier) Push(c context.Context, notification Notification) Notification {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.Level == "" {
		notification.Level = LevelInfo
	}

	n.mu.Lock()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = n.now()
	}
	n.items = append(n.prune(), notification)
	if len(n.items) > maxItems {
		n.items = slices.Delete(n.items, 0, len(n.items)-maxItems)
	}
	n.mu.Unlock()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Notifier Push").
		Any(log.KeyNotification, notification).
		Logger()
	if notification.Level == LevelError {
		logger.Error().Msg(notification.Message)
	} else {
		logger.Info().Msg(notification.Message)
	}

	return notification
}

// Notify pushes the notification for a failed operation. A nil err pushes nothing.
func (n *Notifier) Notify(c context.Context, op Operation, err error) (Notification, bool) {
	if err == nil {
		return Notification{}, false
	}
	return n.Push(c, FromError(op, err)), true
}

// Drain returns the unexpired notifications and forgets all of them.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	active := n.prune()
	n.items = nil
	return active
}

// Active returns the unexpired notifications without consuming them.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	active := n.prune()
	n.items = active
	return slices.Clone(active)
}

func (n *Notifier) prune() []Notification {
	now := n.now()
	active := make([]Notification, 0, len(n.items))
	for _, item := range n.items {
		if n.ttl > 0 && now.Sub(item.CreatedAt) >= n.ttl {
			continue
		}
		active = append(active, item)
	}
	return active
}
