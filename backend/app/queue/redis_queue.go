package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sysai-relay/backend/app/dto"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 5 * time.Second

// RedisQueue keeps each agent's pending commands in a Redis list
// (RPUSH/LRANGE order preserves FIFO). Drain reads and deletes the list in a
// MULTI pipeline so a concurrent enqueue cannot be dropped between the two.
type RedisQueue struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisQueue(rdb *redis.Client) *RedisQueue {
	return &RedisQueue{rdb: rdb, prefix: "relay:cmdq:"}
}

func (q *RedisQueue) key(agentID string) string { return q.prefix + agentID }

func (q *RedisQueue) Enqueue(agentID string, cmd dto.Command) error {
	b, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return q.rdb.RPush(ctx, q.key(agentID), b).Err()
}

func (q *RedisQueue) Drain(agentID string) ([]dto.Command, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	pipe := q.rdb.TxPipeline()
	lrange := pipe.LRange(ctx, q.key(agentID), 0, -1)
	pipe.Del(ctx, q.key(agentID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	raw := lrange.Val()
	cmds := make([]dto.Command, 0, len(raw))
	for _, item := range raw {
		var c dto.Command
		if err := json.Unmarshal([]byte(item), &c); err != nil {
			// skip undecodable entries rather than wedging the queue
			continue
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}
