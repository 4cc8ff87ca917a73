package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func TestKafkaPublisher_PublishOrder(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev OrderEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Type != "order.paid" || ev.OrderID != 42 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewKafkaPublisher(sp, "orders", quietLogger())
	if err := p.PublishOrder(context.Background(), OrderEvent{Type: "order.paid", OrderID: 42, Status: "PAID"}); err != nil {
		t.Fatalf("PublishOrder: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestKafkaPublisher_SendFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisher(sp, "orders", quietLogger())
	err := p.PublishOrder(context.Background(), OrderEvent{Type: "order.paid", OrderID: 1})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
	_ = p.Close()
}

type recorder struct {
	got []OrderEvent
	err error
}

func (r *recorder) PublishOrder(_ context.Context, ev OrderEvent) error {
	r.got = append(r.got, ev)
	return r.err
}

func TestFanout(t *testing.T) {
	a := &recorder{}
	b := &recorder{err: errors.New("down")}
	f := Fanout{a, nil, b}

	err := f.PublishOrder(context.Background(), OrderEvent{Type: "order.cancelled", OrderID: 7})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("every publisher must receive the event: a=%d b=%d", len(a.got), len(b.got))
	}
}
