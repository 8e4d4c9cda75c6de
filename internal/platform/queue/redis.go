package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"campdir/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

// MailJob is the payload pushed onto the password-reset mail queue and
// consumed by the mail worker.
type MailJob struct {
	ToEmail  string `json:"to_email"`
	ToName   string `json:"to_name"`
	ResetURL string `json:"reset_url"`
}

type MailQueue struct {
	rdb  *redis.Client
	name string
}

func NewMailQueue(rdb *redis.Client, name string) *MailQueue {
	return &MailQueue{rdb: rdb, name: name}
}

func (q *MailQueue) Enqueue(ctx context.Context, job MailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.name, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail job: %w", err)
	}
	return nil
}
