// Package statestore mirrors the RIL state into a Redis hash and
// announces every changed field on a channel of the same name, so other
// services on the device can follow the modem without talking to rild.
package statestore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

//go:generate go tool mockgen -source=statestore.go -destination=mock_statestore.go -package=statestore

// Fields of the state hash.
const (
	FieldRadioState = "radio-state"
	FieldAID        = "aid"
	FieldUSIM       = "usim"
	FieldVersion    = "ril-version"
)

const defaultWriteTimeout = 2 * time.Second

// Client is the part of *redis.Client the store uses.
type Client interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Key is the hash and channel name, e.g. "ril:0".
	Key          string
	WriteTimeout time.Duration
}

// Dial connects to Redis and checks the connection.
func Dial(ctx context.Context, config Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", config.Addr, err)
	}
	return client, nil
}

// Store writes RIL state to one hash.
type Store struct {
	client  Client
	key     string
	timeout time.Duration
	log     logrus.FieldLogger
}

// New returns a Store writing to config.Key through client.
func New(client Client, config Config, log logrus.FieldLogger) *Store {
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaultWriteTimeout
	}
	return &Store{
		client:  client,
		key:     config.Key,
		timeout: config.WriteTimeout,
		log:     log.WithFields(logrus.Fields{"component": "statestore", "key": config.Key}),
	}
}

// SetRadioState records the radio state.
func (s *Store) SetRadioState(state ril.RadioState) {
	s.update(FieldRadioState, state.String())
}

// SetSubscription records the active application.
func (s *Store) SetSubscription(sub uicc.Subscription) {
	s.update(FieldAID, sub.AID, FieldUSIM, strconv.FormatBool(sub.IsUSIM))
}

// SetVersion records the rild version of the current connection.
func (s *Store) SetVersion(version int32) {
	s.update(FieldVersion, strconv.Itoa(int(version)))
}

// update is Write with the failure logged.
func (s *Store) update(pairs ...string) {
	if err := s.Write(pairs...); err != nil {
		s.log.WithError(err).Warn("state update failed")
	}
}

// Write sets field/value pairs and publishes each field name. Nothing is
// published when the hash write fails.
func (s *Store) Write(pairs ...string) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("odd number of field/value arguments: %d", len(pairs))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	values := make([]any, len(pairs))
	for i, v := range pairs {
		values[i] = v
	}
	if err := s.client.HSet(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("HSET %s: %w", s.key, err)
	}

	for i := 0; i < len(pairs); i += 2 {
		if err := s.client.Publish(ctx, s.key, pairs[i]).Err(); err != nil {
			return fmt.Errorf("PUBLISH %s %s: %w", s.key, pairs[i], err)
		}
		s.log.WithField("field", pairs[i]).WithField("value", pairs[i+1]).Debug("published")
	}
	return nil
}
