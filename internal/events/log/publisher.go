// Package log provides an EventPublisher that writes events to a zap logger.
// It stands in for a broker in development and when none is configured.
package log

import (
	"context"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/bank-api/internal/interfaces"
)

type Publisher struct {
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{logger: logger.Named("events")}
}

func (p *Publisher) Publish(_ context.Context, topic string, event any) error {
	p.logger.Info("event published",
		zap.String("topic", topic),
		zap.Any("event", event),
	)
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
