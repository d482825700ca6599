package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestPointsMessage_JSON(t *testing.T) {
	msg := &PointsMessage{
		Type:        "points_changed",
		UserID:      1,
		Amount:      10,
		Balance:     110,
		Source:      "daily_sign",
		Description: "每日签到",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "balance")

	var decoded PointsMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg.UserID, decoded.UserID)
	assert.Equal(t, msg.Balance, decoded.Balance)
}

func TestPublishPointsChanged_FillsTypeAndMessage(t *testing.T) {
	client := setupRedis(t)
	defer client.Close()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan *PointsMessage, 1)
	go func() {
		subscriber.Subscribe(ctx, func(msg *PointsMessage) {
			received <- msg
		})
	}()

	// 等订阅建立
	time.Sleep(100 * time.Millisecond)

	err := publisher.PublishPointsChanged(ctx, &PointsMessage{
		UserID:  123,
		Amount:  10,
		Balance: 110,
		Source:  "daily_sign",
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "points_changed", msg.Type)
		assert.Equal(t, int64(123), msg.UserID)
		assert.Equal(t, int64(110), msg.Balance)
		assert.Equal(t, "签到成功", msg.Message) // 按来源自动补提示文案
	case <-ctx.Done():
		t.Fatal("Timeout waiting for message")
	}
}

func TestPublishPointsChanged_KeepsExplicitMessage(t *testing.T) {
	client := setupRedis(t)
	defer client.Close()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan *PointsMessage, 1)
	go func() {
		subscriber.Subscribe(ctx, func(msg *PointsMessage) {
			received <- msg
		})
	}()

	time.Sleep(100 * time.Millisecond)

	err := publisher.PublishPointsChanged(ctx, &PointsMessage{
		UserID:  1,
		Amount:  46000,
		Balance: 46000,
		Source:  "subscription",
		Message: "自定义提示",
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "自定义提示", msg.Message)
	case <-ctx.Done():
		t.Fatal("Timeout waiting for message")
	}
}

func TestSubscribe_StopsOnContextCancel(t *testing.T) {
	client := setupRedis(t)
	defer client.Close()

	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- subscriber.Subscribe(ctx, func(*PointsMessage) {})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscriber did not stop after cancel")
	}
}
