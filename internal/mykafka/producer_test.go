package mykafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishEvent_MarshalError(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "order_events")
	defer p.Close()

	err := p.PublishEvent(context.Background(), "k", "create", make(chan int))
	require.ErrorContains(t, err, "json.Marshal")
}
