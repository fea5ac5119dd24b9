package locker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// Coordinator concede a lease exclusiva de execução por conta e guarda os
// triggers recebidos enquanto a lease está ocupada (fila FIFO por conta)
type Coordinator interface {
	TryAcquire(ctx context.Context, adAccountID string) (bool, error)
	Release(ctx context.Context, adAccountID string)
	Enqueue(ctx context.Context, adAccountID string, trigger domain.Trigger) error
	DrainNext(ctx context.Context, adAccountID string) (*domain.Trigger, bool)
	PurgeAccount(ctx context.Context, userID int, adAccountID string) error
}

type RedisCoordinator struct {
	rdb     *redis.Client
	lockTTL time.Duration
}

func NewRedisCoordinator(rdb *redis.Client, lockTTL time.Duration) *RedisCoordinator {
	return &RedisCoordinator{
		rdb:     rdb,
		lockTTL: lockTTL,
	}
}

func lockKey(adAccountID string) string {
	return fmt.Sprintf("lock:fetch_campaign:%s", adAccountID)
}

func pendingKey(adAccountID string) string {
	return fmt.Sprintf("pending_schedules:%s", adAccountID)
}

// TryAcquire é não bloqueante: devolve false imediatamente se a lease já
// está concedida. O TTL protege contra um worker que morreu com a lease.
func (c *RedisCoordinator) TryAcquire(ctx context.Context, adAccountID string) (bool, error) {
	acquired, err := c.rdb.SetNX(ctx, lockKey(adAccountID), time.Now().Format(time.RFC3339), c.lockTTL).Result()
	if err != nil {
		return false, err
	}
	return acquired, nil
}

// Release libera a lease incondicionalmente. Roda em todo caminho de saída
// do pipeline, inclusive falhas, então erro aqui só é logado.
func (c *RedisCoordinator) Release(ctx context.Context, adAccountID string) {
	if err := c.rdb.Del(ctx, lockKey(adAccountID)).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": adAccountID,
			"error":         err.Error(),
		}).Error("Erro ao liberar a lease da conta")
	}
}

func (c *RedisCoordinator) Enqueue(ctx context.Context, adAccountID string, trigger domain.Trigger) error {
	payload, err := json.Marshal(trigger)
	if err != nil {
		return err
	}

	return c.rdb.RPush(ctx, pendingKey(adAccountID), payload).Err()
}

// DrainNext retira o trigger mais antigo da fila de pendências da conta
func (c *RedisCoordinator) DrainNext(ctx context.Context, adAccountID string) (*domain.Trigger, bool) {
	payload, err := c.rdb.LPop(ctx, pendingKey(adAccountID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": adAccountID,
			"error":         err.Error(),
		}).Error("Erro ao drenar a fila de pendências")
		return nil, false
	}

	var trigger domain.Trigger
	if err := json.Unmarshal([]byte(payload), &trigger); err != nil {
		logrus.WithField("ad_account_id", adAccountID).
			WithError(err).Error("Trigger corrompido na fila de pendências, descartando")
		return nil, false
	}

	return &trigger, true
}

// PurgeAccount remove lease, fila e mensagens da conta quando o agendamento
// é excluído pelo dono
func (c *RedisCoordinator) PurgeAccount(ctx context.Context, userID int, adAccountID string) error {
	return c.rdb.Del(ctx,
		lockKey(adAccountID),
		pendingKey(adAccountID),
		messagesKey(userID, adAccountID),
	).Err()
}
