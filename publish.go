package main

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 10 * time.Second

// Publisher sends run reports to an MQTT broker, one message per scenario
// plus a summary.
type Publisher struct {
	client paho.Client
	prefix string
}

// NewPublisher creates a publisher for brokerURL but does not connect.
func NewPublisher(brokerURL, prefix string) *Publisher {
	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("blueprint-optimizer-" + fmt.Sprint(time.Now().UnixNano())).
		SetConnectRetry(false).
		SetKeepAlive(30 * time.Second)
	if prefix == "" {
		prefix = "blueprints"
	}
	return &Publisher{client: paho.NewClient(opts), prefix: prefix}
}

// TimeoutError reports an MQTT operation that did not complete in time.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return "mqtt " + e.Op + " timeout"
}

// Connect connects to the broker.
func (p *Publisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return &TimeoutError{Op: "connect"}
	}
	return token.Error()
}

func summaryTopic(prefix string, r *RunReport) string {
	return fmt.Sprintf("%s/%s/%s", prefix, r.Mode, r.RunID)
}

func scenarioTopic(prefix string, r *RunReport, s ScenarioResult) string {
	return fmt.Sprintf("%s/blueprint/%d", summaryTopic(prefix, r), s.BlueprintID)
}

type summaryMessage struct {
	RunID     string `json:"runId"`
	Mode      Mode   `json:"mode"`
	Horizon   int    `json:"horizon"`
	Answer    int    `json:"answer"`
	Scenarios int    `json:"scenarios"`
	TotalMs   int64  `json:"totalMs"`
}

func summaryOf(r *RunReport) summaryMessage {
	return summaryMessage{
		RunID:     r.RunID,
		Mode:      r.Mode,
		Horizon:   r.Horizon,
		Answer:    r.Answer,
		Scenarios: len(r.Scenarios),
		TotalMs:   r.TotalMs,
	}
}

// Record publishes each scenario result and then the run summary.
func (p *Publisher) Record(r *RunReport) error {
	for _, s := range r.Scenarios {
		if err := p.publish(scenarioTopic(p.prefix, r, s), s); err != nil {
			return err
		}
	}
	return p.publish(summaryTopic(p.prefix, r), summaryOf(r))
}

func (p *Publisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return &TimeoutError{Op: "publish " + topic}
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
