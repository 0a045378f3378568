package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/Aka-Ayaan/courtify/internal/interfaces"
	"github.com/gofiber/fiber/v2/log"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader  *kafka.Reader
	Handler interfaces.ConsumerHandler
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6, //10MB
		MaxWait:  time.Second,
	}
	if username != "" {
		cfg.Dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: plain.Mechanism{Username: username, Password: password},
			TLS:           &tls.Config{},
		}
	}

	return &KafkaConsumer{
		Reader:  kafka.NewReader(cfg),
		Handler: handler,
	}
}

// Listen handles messages until ctx is cancelled. Handler errors are logged
// and the offset still advances.
func (kc *KafkaConsumer) Listen(ctx context.Context) {
	defer func() {
		if err := kc.Reader.Close(); err != nil {
			log.Errorf("[KAFKA] close reader: %v", err)
		}
	}()

	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info("[KAFKA] consumer stopped")
				return
			}
			log.Errorf("[KAFKA] read message: %v", err)
			time.Sleep(time.Second)
			continue
		}

		log.Debugf("[KAFKA] received key=%s partition=%d offset=%d", msg.Key, msg.Partition, msg.Offset)

		if err := kc.Handler.HandleMessage(string(msg.Key), string(msg.Value)); err != nil {
			log.Errorf("[KAFKA] handle key=%s: %v", msg.Key, err)
		}
	}
}
