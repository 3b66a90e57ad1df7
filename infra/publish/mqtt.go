// Package publish pushes daily summaries to downstream consumers over
// MQTT. It is an optional outbound channel: the pipeline itself never
// depends on it.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"settlementwatch/core/model"
	"settlementwatch/infra/logger"
	"settlementwatch/pkg/export"
)

const connectTimeout = 5 * time.Second

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTPublisher publishes daily summaries using Eclipse Paho.
type MQTTPublisher struct {
	cli    pahoClient
	prefix string
	qos    byte
	log    logger.Logger
}

// NewMQTTPublisher connects to the broker and returns a ready publisher.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		log:    logger.New("summary-publisher"),
	}, nil
}

// PublishSummary publishes the summary document to <prefix>/<date>.
func (p *MQTTPublisher) PublishSummary(summary model.DailySummary) error {
	payload, err := json.Marshal(export.NewSummaryDoc(summary))
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	topic := fmt.Sprintf("%s/%s", p.prefix, summary.Date)
	tok := p.cli.Publish(topic, p.qos, true, payload)
	if !tok.WaitTimeout(connectTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	p.log.Infof("published summary for %s", summary.Date)
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
