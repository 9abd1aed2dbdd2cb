package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoBrokersIsNop(t *testing.T) {
	p := New(nil)
	_, ok := p.(Nop)
	require.True(t, ok)
	require.NoError(t, p.PublishEvent(context.Background(), TopicOrders, "1", NewEvent("x", nil)))
	require.NoError(t, p.Close())
}

func TestNew_WithBrokers(t *testing.T) {
	p := New([]string{"localhost:9092"})
	_, ok := p.(*Producer)
	require.True(t, ok)
	require.NoError(t, p.Close())
}

func TestRecorder_Types(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()
	require.NoError(t, r.PublishEvent(ctx, TopicOrders, "1", NewEvent("order_created", map[string]any{"id": 1})))
	require.NoError(t, r.PublishEvent(ctx, TopicCatalog, "2", NewEvent("product_created", nil)))
	require.NoError(t, r.PublishEvent(ctx, TopicOrders, "1", NewEvent("order_status_changed", nil)))

	assert.Equal(t, []string{"order_created", "order_status_changed"}, r.Types(TopicOrders))
	assert.Equal(t, []string{"product_created"}, r.Types(TopicCatalog))
}
