package publisher

import (
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const (
	BrokerGoChannel = "gochannel"
	BrokerRedis     = "redis"
	BrokerKafka     = "kafka"
)

type Config struct {
	Broker       string
	ClientID     string
	KafkaBrokers []string
	RedisClient  redis.UniversalClient
}

// New builds the watermill publisher for the configured broker.
func New(cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	switch cfg.Broker {
	case BrokerGoChannel, "":
		return gochannel.NewGoChannel(gochannel.Config{}, logger), nil

	case BrokerRedis:
		if cfg.RedisClient == nil {
			return nil, fmt.Errorf("redis broker requires a redis client")
		}
		return redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     cfg.RedisClient,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, logger)

	case BrokerKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka broker requires at least one broker address")
		}
		saramaConfig := kafka.DefaultSaramaSyncPublisherConfig()
		saramaConfig.Version = sarama.V1_0_0_0
		if cfg.ClientID != "" {
			saramaConfig.ClientID = cfg.ClientID
		}
		return kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:               cfg.KafkaBrokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
		}, logger)

	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
	}
}
