package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelContentRefresh = "blog:content_refresh"
	ChannelImportResult   = "blog:import_result"
)

const (
	TypeRefresh      = "refresh"
	TypeImportResult = "import_result"
)

// RefreshMessage 通知所有打开的后台页面重新拉取某类资源
type RefreshMessage struct {
	Type       string `json:"type"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	ResourceID string `json:"resource_id,omitempty"`
	UserID     int64  `json:"user_id,omitempty"` // 触发者
}

// ImportResultMessage 表格导入结果，只推给发起人
type ImportResultMessage struct {
	Type    string   `json:"type"`
	UserID  int64    `json:"user_id"`
	JobID   string   `json:"job_id"`
	Status  string   `json:"status"` // done, failed
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishRefresh 广播刷新事件
func (p *Publisher) PublishRefresh(ctx context.Context, msg *RefreshMessage) error {
	msg.Type = TypeRefresh
	return p.publish(ctx, ChannelContentRefresh, msg)
}

// PublishImportResult 发布导入结果
func (p *Publisher) PublishImportResult(ctx context.Context, msg *ImportResultMessage) error {
	msg.Type = TypeImportResult
	return p.publish(ctx, ChannelImportResult, msg)
}

func (p *Publisher) publish(ctx context.Context, channel string, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", channel, err)
	}
	return p.client.Publish(ctx, channel, data).Err()
}

// Handlers 订阅回调，未设置的回调对应的消息会被丢弃
type Handlers struct {
	OnRefresh      func(*RefreshMessage)
	OnImportResult func(*ImportResultMessage)
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 阻塞订阅，直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, h Handlers) error {
	ps := s.client.Subscribe(ctx, ChannelContentRefresh, ChannelImportResult)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			dispatch(msg, h)
		}
	}
}

func dispatch(msg *redis.Message, h Handlers) {
	switch msg.Channel {
	case ChannelContentRefresh:
		if h.OnRefresh == nil {
			return
		}
		var m RefreshMessage
		if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
			return // 忽略解析错误
		}
		h.OnRefresh(&m)
	case ChannelImportResult:
		if h.OnImportResult == nil {
			return
		}
		var m ImportResultMessage
		if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
			return
		}
		h.OnImportResult(&m)
	}
}
