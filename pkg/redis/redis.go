package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/backsoul/mathquiz/pkg/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "mathquiz:session:"

// RedisClient guarda las sesiones del quiz en Redis
type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisClient crea el cliente y verifica la conexión
func NewRedisClient(ctx context.Context, addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("error conectando a Redis en %s: %w", addr, err)
	}

	log.Info("✅ Conexión exitosa a Redis", zap.String("addr", addr))

	return NewWithClient(rdb, log), nil
}

// NewWithClient envuelve un cliente ya creado
func NewWithClient(rdb *redis.Client, log *zap.Logger) *RedisClient {
	return &RedisClient{
		client: rdb,
		log:    log,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// SaveSession guarda la sesión y renueva su TTL
func (r *RedisClient) SaveSession(ctx context.Context, session *models.SessionSnapshot, ttl time.Duration) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error serializando sesión: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), sessionJSON, ttl).Err(); err != nil {
		return fmt.Errorf("error guardando sesión %s: %w", session.ID, err)
	}
	return nil
}

// GetSession obtiene una sesión por ID
func (r *RedisClient) GetSession(ctx context.Context, id string) (*models.SessionSnapshot, error) {
	sessionJSON, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("error obteniendo sesión %s: %w", id, err)
	}

	var session models.SessionSnapshot
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, fmt.Errorf("error parsing sesión %s: %w", id, err)
	}

	return &session, nil
}

// DeleteSession elimina una sesión
func (r *RedisClient) DeleteSession(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("error eliminando sesión %s: %w", id, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return nil
}

// HealthCheck verifica que Redis esté funcionando
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}
