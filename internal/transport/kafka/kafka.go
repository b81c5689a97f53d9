// kafka — второй хост пробуждений: читает wake-up сообщения из топика и публикует
// готовый контент уведомлений.
package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	readerMinBytes = 1
	readerMaxBytes = 10_000_000 // 10MB
)

// NewReader — consumer group на топик пробуждений; оффсеты коммитятся явно.
func NewReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         groupID,
		Topic:           topic,
		MinBytes:        readerMinBytes,
		MaxBytes:        readerMaxBytes,
		MaxWait:         250 * time.Millisecond,
		ReadLagInterval: -1,
	})
}

// NewWriter — синхронный writer; Hash-балансировщик держит порядок по ключу.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 5 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
}
