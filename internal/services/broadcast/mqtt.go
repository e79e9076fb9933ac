package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
)

const (
	mqttAckTimeout     = 5 * time.Second
	mqttConnectTimeout = 3 * time.Second
)

// MQTTPublisher публикует снимок парка целиком в один топик и состояние
// каждого станка в retained-топик <topic>/<machineID> для табло в цеху
type MQTTPublisher struct {
	client    mqtt.Client
	topic     string
	logger    *logging.Logger
	onFailure func(sink string)
}

func NewMQTTPublisher(cfg *config.AppConfig, logger *logging.Logger, onFailure func(sink string)) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broadcast.MQTTBroker).
		SetClientID(cfg.Broadcast.MQTTClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)

	// переподключение включается только после первого успешного соединения,
	// поэтому недоступный брокер не задерживает запуск
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout + time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s: timed out after %s", cfg.Broadcast.MQTTBroker, mqttConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broadcast.MQTTBroker, err)
	}

	return newMQTTPublisher(client, cfg.Broadcast.MQTTTopic, logger, onFailure), nil
}

func newMQTTPublisher(client mqtt.Client, topic string, logger *logging.Logger, onFailure func(sink string)) *MQTTPublisher {
	return &MQTTPublisher{
		client:    client,
		topic:     strings.TrimSuffix(topic, "/"),
		logger:    logger.WithPrefix("MQTT"),
		onFailure: onFailure,
	}
}

func (p *MQTTPublisher) Name() string { return "mqtt" }

// Publish не ждет подтверждений брокера: они проверяются в фоне
func (p *MQTTPublisher) Publish(_ context.Context, snapshot models.FleetSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	tokens := []mqtt.Token{p.client.Publish(p.topic, 0, false, payload)}
	for _, m := range snapshot.Machines {
		state, err := json.Marshal(m)
		if err != nil {
			return err
		}
		tokens = append(tokens, p.client.Publish(p.topic+"/"+m.MachineID, 1, true, state))
	}

	go p.await(tokens)
	return nil
}

func (p *MQTTPublisher) await(tokens []mqtt.Token) {
	for _, token := range tokens {
		if !token.WaitTimeout(mqttAckTimeout) {
			p.fail(fmt.Errorf("publish timed out"))
			return
		}
		if err := token.Error(); err != nil {
			p.fail(err)
			return
		}
	}
}

func (p *MQTTPublisher) fail(err error) {
	p.logger.Warn("Failed to publish snapshot to MQTT", "topic", p.topic, "error", err)
	if p.onFailure != nil {
		p.onFailure(p.Name())
	}
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
