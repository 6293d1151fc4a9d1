package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"comparaprecos/internal/model"
)

const defaultTTL = 30 * time.Minute

// ResultStore guarda o ComparisonResult de uma busca no Redis, para que
// consultas repetidas dentro da janela não disparem nova coleta.
type ResultStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func cacheKey(query, cep string) string {
	return "comparison:" + query + ":" + cep
}

// Get retorna o resultado cacheado da busca, ou nil se não houver.
func (s *ResultStore) Get(query, cep string) *model.ComparisonResult {
	ctx := context.Background()

	val, err := s.Client.Get(ctx, cacheKey(query, cep)).Result()
	if err != nil {
		return nil
	}

	var result model.ComparisonResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil
	}
	return &result
}

func (s *ResultStore) Set(result model.ComparisonResult) error {
	ctx := context.Background()

	b, err := json.Marshal(result)
	if err != nil {
		return err
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return s.Client.Set(ctx, cacheKey(result.Query, result.CEP), b, ttl).Err()
}
