package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPoll = time.Second

// Options configures a Transport. See Keys for the lists the controller uses.
type Options struct {
	Addr       string
	Password   string
	DB         int
	ReceiveKey string
	SendKey    string
	Poll       time.Duration // Longest single BLPOP wait
}

// Keys returns the lists the controller uses for side: boards are pushed to the first and
// commands are read from the second.
func Keys(side string) (receive, send string) {
	return "tabuleiro_" + side, "jogada_" + side
}

// Transport exchanges messages through two Redis lists: it pops whole messages from the
// receive list and pushes commands onto the send list.
type Transport struct {
	client     *goredis.Client
	receiveKey string
	sendKey    string
	poll       time.Duration
}

// Dial connects to Redis and checks the connection.
func Dial(ctx context.Context, opts Options) (*Transport, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return New(client, opts), nil
}

// New wraps an existing client.
func New(client *goredis.Client, opts Options) *Transport {
	poll := opts.Poll
	if poll <= 0 {
		poll = defaultPoll
	}
	return &Transport{
		client:     client,
		receiveKey: opts.ReceiveKey,
		sendKey:    opts.SendKey,
		poll:       poll,
	}
}

// Receive blocks until a message is available or ctx is done.
func (t *Transport) Receive(ctx context.Context) (string, error) {
	for {
		res, err := t.client.BLPop(ctx, t.poll, t.receiveKey).Result()
		if errors.Is(err, goredis.Nil) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to pop from %s: %w", t.receiveKey, err)
		}
		// BLPOP replies with the key and the value
		return res[1], nil
	}
}

func (t *Transport) Send(ctx context.Context, msg string) error {
	if err := t.client.RPush(ctx, t.sendKey, msg).Err(); err != nil {
		return fmt.Errorf("failed to push to %s: %w", t.sendKey, err)
	}
	return nil
}

func (t *Transport) Close() error {
	return t.client.Close()
}
