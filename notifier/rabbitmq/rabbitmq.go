// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rabbitmq implements the notifier boundary on RabbitMQ.
//
// Each notification is published as a JSON envelope to the default
// exchange with the destination queue as routing key, so the destination
// receives it directly.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"code.hybscloud.com/tx/notifier"
)

// Channel is the slice of amqp.Channel the notifier uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// ChannelOpener hands out a fresh channel per publish.
type ChannelOpener func() (Channel, error)

// Notifier publishes notifications over an AMQP connection.
type Notifier struct {
	conn *amqp.Connection
	open ChannelOpener
}

// New builds a notifier from a channel opener. Used directly in tests;
// production code goes through Dial.
func New(open ChannelOpener) *Notifier {
	return &Notifier{open: open}
}

// Dial connects to the broker at url.
func Dial(url string) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	n := &Notifier{conn: conn}
	n.open = func() (Channel, error) { return conn.Channel() }
	return n, nil
}

// Close shuts the underlying connection, if any.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}

// Notify publishes message to the queue named by to.
func (n *Notifier) Notify(ctx context.Context, to, message string) error {
	if to == "" {
		return notifier.Error{Kind: notifier.KindUnknownDestination, Detail: "empty destination"}
	}

	ch, err := n.open()
	if err != nil {
		return notifier.Error{Kind: notifier.KindUnavailable, Detail: err.Error()}
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(to, true, false, false, false, nil); err != nil {
		return notifier.Error{Kind: notifier.KindUnavailable, Detail: err.Error()}
	}

	body, err := json.Marshal(notifier.NewEnvelope(to, message))
	if err != nil {
		return notifier.Error{Kind: notifier.KindUnavailable, Detail: err.Error()}
	}

	err = ch.PublishWithContext(ctx, "", to, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return notifier.Error{Kind: notifier.KindUnavailable, Detail: err.Error()}
	}
	return nil
}
