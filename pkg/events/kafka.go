package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logrus.Entry
}

// NewKafkaProducer dials the brokers, retrying while they come up.
func NewKafkaProducer(brokers []string, attempts int) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	var err error
	for i := 1; i <= attempts; i++ {
		var p sarama.SyncProducer
		p, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			return p, nil
		}
		logrus.WithError(err).Warnf("waiting for kafka (%d/%d)", i, attempts)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("kafka producer: %w", err)
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: log.WithField("component", "kafka")}
}

// PublishOrder keys messages by order id so one order's events stay ordered within a partition.
func (p *KafkaPublisher) PublishOrder(_ context.Context, ev OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Type, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(ev.OrderID), 10)),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(ev.Type)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send %s: %w", ev.Type, err)
	}
	p.log.WithFields(logrus.Fields{
		"event":     ev.Type,
		"order_id":  ev.OrderID,
		"partition": partition,
		"offset":    offset,
	}).Debug("published order event")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
