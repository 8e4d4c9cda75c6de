package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"campdir/internal/platform/queue"

	"github.com/redis/go-redis/v9"
)

// Mailer delivers a password-reset mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error
}

// MailWorker consumes password-reset mail jobs from the Redis queue and
// delivers them through the mail API. Delivery is best-effort: a failed
// send is logged and the job dropped, never retried.
type MailWorker struct {
	rdb       *redis.Client
	mailer    Mailer
	queueName string
}

func NewMailWorker(rdb *redis.Client, mailer Mailer, queueName string) *MailWorker {
	return &MailWorker{rdb: rdb, mailer: mailer, queueName: queueName}
}

func (w *MailWorker) Start(ctx context.Context) {
	log.Println("Mail worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Mail worker stopping...")
			return
		default:
			res, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Mail worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", w.queueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// BRPop returns [queueName, payload]
			if len(res) < 2 {
				continue
			}
			var job queue.MailJob
			if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
				log.Printf("ERROR: Failed to unmarshal mail job: %v", err)
				continue
			}
			w.process(ctx, job)
		}
	}
}

func (w *MailWorker) process(ctx context.Context, job queue.MailJob) {
	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := w.mailer.SendPasswordReset(sendCtx, job.ToEmail, job.ToName, job.ResetURL); err != nil {
		log.Printf("ERROR: Failed to send password reset mail to %s: %v", job.ToEmail, err)
		return
	}
	log.Printf("Password reset mail sent to %s", job.ToEmail)
}
