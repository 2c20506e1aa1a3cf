package rabbitmq_producer

import (
	"context"
	"fmt"
	"rental-search-service/pkg/rabbitmq/rabbitmq_common"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig - the exchange a Publisher writes to.
type PublisherConfig struct {
	ExchangeName       string // "" publishes to the default exchange
	ExchangeType       string // direct, fanout, topic, headers
	DurableExchange    bool
	AutoDeleteExchange bool
	InternalExchange   bool
	ExchangeArgs       amqp.Table

	// DeclareExchangeIfMissing declares the exchange on start; otherwise it must already exist.
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (cfg PublisherConfig) Validate() error {
	if !cfg.DeclareExchangeIfMissing {
		return nil
	}
	if cfg.ExchangeName == "" && cfg.ExchangeType != "" {
		return fmt.Errorf("producer: exchange name is required if ExchangeType is specified and DeclareExchangeIfMissing is true")
	}
	if cfg.ExchangeType == "" && cfg.ExchangeName != "" {
		return fmt.Errorf("producer: exchange type is required if ExchangeName is specified and DeclareExchangeIfMissing is true")
	}
	return nil
}

// Channel is the part of *amqp.Channel a Publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelProvider opens channels on a live connection.
type ChannelProvider interface {
	OpenChannel() (Channel, error)
}

type managerChannels struct {
	manager *rabbitmq_common.ConnectionManager
}

func (m managerChannels) OpenChannel() (Channel, error) {
	_, ch, err := m.manager.GetChannel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Publisher publishes on its own channel of the shared connection. A closed channel
// is replaced on the next Publish, so a broker restart only loses in-flight messages.
type Publisher struct {
	config   PublisherConfig
	provider ChannelProvider

	mu      sync.Mutex
	channel Channel
	closed  bool

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("producer: connection manager cannot be nil")
	}
	return NewPublisherWithProvider(cfg, managerChannels{manager: connManager})
}

// NewPublisherWithProvider opens the first channel eagerly so misconfiguration fails at start.
func NewPublisherWithProvider(cfg PublisherConfig, provider ChannelProvider) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("producer: channel provider cannot be nil")
	}

	p := &Publisher{config: cfg, provider: provider, Logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.channelLocked(); err != nil {
		return nil, err
	}

	p.Logger.Debug("Publisher ready", "exchange", cfg.ExchangeName)
	return p, nil
}

// channelLocked returns the open channel, reopening it (and redeclaring the exchange)
// when it was closed. p.mu must be held.
func (p *Publisher) channelLocked() (Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	if p.channel != nil {
		p.Logger.Warn("Publisher channel is closed, reopening", "exchange", p.config.ExchangeName)
		p.channel = nil
	}

	ch, err := p.provider.OpenChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing && p.config.ExchangeName != "" {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			p.config.InternalExchange,
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return ch, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.provider == nil {
		return fmt.Errorf("producer: not connected or publisher is closed")
	}

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, p.config.ExchangeName, routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close closes the channel only; the connection belongs to the ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.channel == nil || p.channel.IsClosed() {
		p.channel = nil
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Error closing channel")
		return err
	}
	p.Logger.Info("Publisher closed")
	return nil
}
