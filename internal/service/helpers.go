package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bitforge_shop/pkg/events"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
)

const publishTimeout = 5 * time.Second

// publish is best-effort: failures are logged and never reach the caller.
func publish(ctx context.Context, pub events.Publisher, topic, key, typ string, data map[string]any) {
	if pub == nil {
		return
	}
	l := logging.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.PublishEvent(ctx, topic, key, events.NewEvent(typ, data)); err != nil {
		l.Warn("event_publish_error", "topic", topic, "type", typ, "error", err)
	}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func key(id uint) string {
	return fmt.Sprint(id)
}
