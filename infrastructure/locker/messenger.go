package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Messenger é o sink de progresso lido pelo frontend: mensagens legíveis,
// com timestamp, em ordem cronológica, por par (usuário, conta)
type Messenger interface {
	Append(ctx context.Context, userID int, adAccountID, message string)
	Messages(ctx context.Context, userID int, adAccountID string) ([]string, error)
}

type RedisMessenger struct {
	rdb *redis.Client
}

func NewRedisMessenger(rdb *redis.Client) *RedisMessenger {
	return &RedisMessenger{rdb: rdb}
}

func messagesKey(userID int, adAccountID string) string {
	return fmt.Sprintf("%d-%s-key", userID, adAccountID)
}

// Append acrescenta a mensagem prefixada com [YYYY-MM-DD HH:MM:SS].
// O sink é informativo: falha aqui é logada e não interrompe o pipeline.
func (m *RedisMessenger) Append(ctx context.Context, userID int, adAccountID, message string) {
	stamped := fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04:05"), message)

	if err := m.rdb.RPush(ctx, messagesKey(userID, adAccountID), stamped).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":       userID,
			"ad_account_id": adAccountID,
			"error":         err.Error(),
		}).Error("Erro ao registrar mensagem de progresso")
	}
}

func (m *RedisMessenger) Messages(ctx context.Context, userID int, adAccountID string) ([]string, error) {
	return m.rdb.LRange(ctx, messagesKey(userID, adAccountID), 0, -1).Result()
}
