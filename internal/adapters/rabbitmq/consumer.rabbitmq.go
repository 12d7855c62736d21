package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	libLog "github.com/LerianStudio/lib-commons/v2/commons/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/CedrusPay/sluice/pkg/mmodel"
)

const defaultPrefetch = 10

// TransactionConsumer feeds the engine from a queue instead of a file. It is
// deliberately a single consumer: the broker delivers a queue in order, and a
// single consumer keeps that order intact on the way to the dispatcher.
type TransactionConsumer struct {
	uri      string
	queue    string
	prefetch int
	logger   libLog.Logger
}

// NewTransactionConsumer creates a consumer for the given queue.
func NewTransactionConsumer(uri, queue string, prefetch int, logger libLog.Logger) *TransactionConsumer {
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	return &TransactionConsumer{
		uri:      uri,
		queue:    queue,
		prefetch: prefetch,
		logger:   logger,
	}
}

// Run consumes deliveries until the context is canceled or the broker closes
// the channel, pushing decoded transactions into out. Malformed payloads are
// rejected to the broker and logged. The channel is closed on return.
func (c *TransactionConsumer) Run(ctx context.Context, out chan<- *mmodel.Transaction) error {
	defer close(out)

	connection, err := amqp.Dial(c.uri)
	if err != nil {
		return fmt.Errorf("connecting on rabbitmq: %w", err)
	}

	defer connection.Close()

	channel, err := connection.Channel()
	if err != nil {
		return fmt.Errorf("opening channel on rabbitmq: %w", err)
	}

	defer channel.Close()

	if err := channel.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("setting prefetch on rabbitmq: %w", err)
	}

	deliveries, err := channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consuming queue %s: %w", c.queue, err)
	}

	c.logger.Infof("consuming transactions from queue %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, open := <-deliveries:
			if !open {
				return nil
			}

			transaction, err := decodeTransaction(delivery.Body)
			if err != nil {
				c.logger.Errorf("discarding message: %v", err)

				_ = delivery.Nack(false, false)

				continue
			}

			select {
			case out <- transaction:
			case <-ctx.Done():
				return nil
			}

			_ = delivery.Ack(false)
		}
	}
}

// decodeTransaction unmarshals a queue payload and normalizes its type field.
func decodeTransaction(body []byte) (*mmodel.Transaction, error) {
	var transaction mmodel.Transaction

	if err := json.Unmarshal(body, &transaction); err != nil {
		return nil, fmt.Errorf("unmarshalling transaction payload: %w", err)
	}

	kind, err := mmodel.ParseTransactionType(string(transaction.Type))
	if err != nil {
		return nil, err
	}

	transaction.Type = kind

	return &transaction, nil
}
