package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelPointsChanged = "points_changed"
)

// 事件来源对应的提示文案
var sourceMessages = map[string]string{
	"daily_sign":   "签到成功",
	"subscription": "会员积分已到账",
}

// PointsMessage 积分变动消息，推送给用户的在线连接
type PointsMessage struct {
	Type        string `json:"type"`
	UserID      int64  `json:"user_id"`
	Amount      int64  `json:"amount"`
	Balance     int64  `json:"balance"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishPointsChanged 发布积分变动消息
func (p *Publisher) PublishPointsChanged(ctx context.Context, msg *PointsMessage) error {
	msg.Type = "points_changed"

	if msg.Message == "" {
		if m, ok := sourceMessages[msg.Source]; ok {
			msg.Message = m
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal points message: %w", err)
	}

	return p.client.Publish(ctx, ChannelPointsChanged, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅积分变动消息
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*PointsMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelPointsChanged)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var pointsMsg PointsMessage
			if err := json.Unmarshal([]byte(msg.Payload), &pointsMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&pointsMsg)
		}
	}
}
