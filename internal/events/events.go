package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const (
	SubjectPostCreated = "post.created"
	SubjectPostUpdated = "post.updated"
)

// PostEvent 帖子变更事件
type PostEvent struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	GroupID   string    `json:"group_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPostEvent(p *model.Post) PostEvent {
	ev := PostEvent{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.GroupID != nil {
		ev.GroupID = *p.GroupID
	}
	return ev
}

// Publisher 发布帖子事件
type Publisher interface {
	Publish(ctx context.Context, subject string, post *model.Post) error
	Close()
}

// NatsPublisher 通过 NATS 发布，并把 trace context 注入消息头
type NatsPublisher struct {
	nc *nats.Conn
}

func Connect(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("yatube"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return NewNatsPublisher(nc), nil
}

// NewNatsPublisher wraps an existing connection; Close drains it.
func NewNatsPublisher(nc *nats.Conn) *NatsPublisher { return &NatsPublisher{nc: nc} }

func (p *NatsPublisher) Publish(ctx context.Context, subject string, post *model.Post) error {
	data, err := json.Marshal(NewPostEvent(post))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	msg := &nats.Msg{Subject: subject, Data: data, Header: nats.Header{}}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	logger.Debug("publishing post event", zap.String("subject", subject), zap.String("post_id", post.ID))
	return p.nc.PublishMsg(msg)
}

func (p *NatsPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}

// NopPublisher 在事件关闭时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *model.Post) error { return nil }

func (NopPublisher) Close() {}
