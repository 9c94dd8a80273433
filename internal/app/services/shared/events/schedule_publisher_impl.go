package events

import (
	"context"
	"mise-service/internal/app/contracts"
	"mise-service/internal/pkg/constvars"
	"mise-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	schedulePublisherInstance contracts.SchedulePublisher
	onceSchedulePublisher     sync.Once
)

type schedulePublisher struct {
	ch        *amqp.Channel
	queueName string
	log       *zap.Logger
	mu        sync.Mutex
}

// NewSchedulePublisher opens a channel on the shared connection and declares
// the durable schedule events queue.
func NewSchedulePublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (contracts.SchedulePublisher, error) {
	var initErr error
	onceSchedulePublisher.Do(func() {
		ch, err := conn.Channel()
		if err != nil {
			initErr = err
			return
		}

		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			initErr = err
			return
		}

		schedulePublisherInstance = &schedulePublisher{
			ch:        ch,
			queueName: queueName,
			log:       logger,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return schedulePublisherInstance, nil
}

func (p *schedulePublisher) PublishScheduleEvent(ctx context.Context, event contracts.ScheduleEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("schedulePublisher.PublishScheduleEvent publish failed",
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err)
	}
	return nil
}
