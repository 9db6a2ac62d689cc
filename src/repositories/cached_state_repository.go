package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/infra/redis"
)

type CachedStateRepository struct {
	stateQueryRepository *StateQueryRepository
	redisClient          *redis.RedisClient
}

func NewCachedStateRepository(
	stateQueryRepository *StateQueryRepository,
	redisClient *redis.RedisClient,
) *CachedStateRepository {
	return &CachedStateRepository{
		stateQueryRepository: stateQueryRepository,
		redisClient:          redisClient,
	}
}

// LoadUserState serve o agregado do cache quando possível. No MISS consulta
// o postgres e grava o resultado em background, registrando a chave sob a
// própria conta e sob cada linked account candidato: qualquer save de uma
// dessas contas pode mudar a visão mesclada, então qualquer um deles
// invalida a entrada.
func (r *CachedStateRepository) LoadUserState(ctx context.Context, userID int64) (domain.UserStateRows, error) {
	if r.redisClient == nil {
		return r.stateQueryRepository.LoadUserState(ctx, userID)
	}

	cacheKey := fmt.Sprintf("state:doc:%d", userID)

	cachedState, found, err := r.getFromCache(ctx, cacheKey)
	if found && err == nil {
		log.Printf("Cache HIT for key: %s", cacheKey)
		return *cachedState, nil
	}

	if err != nil {
		// Log erro de cache mas continua com PostgreSQL
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	log.Printf("Cache MISS for key: %s", cacheKey)

	state, err := r.stateQueryRepository.LoadUserState(ctx, userID)
	if err != nil {
		return domain.UserStateRows{}, fmt.Errorf("postgres query failed: %w", err)
	}

	go func() {
		// Timeout de 30 segundos para operação de cache
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, userID, state)
	}()

	return state, nil
}

func (r *CachedStateRepository) getFromCache(ctx context.Context, cacheKey string) (*domain.UserStateRows, bool, error) {
	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if !found || err != nil {
		return nil, found, err
	}

	var state domain.UserStateRows
	if err := json.Unmarshal([]byte(cachedJSON), &state); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached state: %w", err)
	}

	return &state, true, nil
}

func (r *CachedStateRepository) setInCache(ctx context.Context, cacheKey string, userID int64, state domain.UserStateRows) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		log.Printf("Failed to marshal cache data for key %s: %v", cacheKey, err)
		return
	}

	registrySet := map[int64]bool{userID: true}
	for _, peer := range state.Peers {
		if peer.LinkedAccountID != nil {
			registrySet[*peer.LinkedAccountID] = true
		}
	}

	registryKeys := make([]string, 0, len(registrySet))
	for accountID := range registrySet {
		registryKeys = append(registryKeys, fmt.Sprintf("registry:account:%d", accountID))
	}

	if err := r.redisClient.SetWithRegistry(ctx, cacheKey, string(stateJSON), registryKeys); err != nil {
		log.Printf("Failed to set cache with registry for key %s: %v", cacheKey, err)
		return
	}

	log.Printf("Cache SET with registry for key: %s (%d accounts)", cacheKey, len(registryKeys))
}

// InvalidateByAccountIDs derruba toda visão em cache registrada sob as
// contas informadas: o documento delas e o de quem as lista como peer.
func (r *CachedStateRepository) InvalidateByAccountIDs(ctx context.Context, accountIDs []int64) error {
	if r.redisClient == nil || len(accountIDs) == 0 {
		return nil
	}

	registryKeys := make([]string, len(accountIDs))
	for i, accountID := range accountIDs {
		registryKeys[i] = fmt.Sprintf("registry:account:%d", accountID)
	}

	registryResults, err := r.redisClient.GetMultipleSetMembers(ctx, registryKeys)
	if err != nil {
		return fmt.Errorf("failed to get registry data: %w", err)
	}

	allKeysToDelete := make(map[string]bool)

	for registryKey, relatedKeys := range registryResults {
		// Adicionar o próprio registry
		allKeysToDelete[registryKey] = true

		// Adicionar todas as chaves relacionadas
		for _, relatedKey := range relatedKeys {
			allKeysToDelete[relatedKey] = true
		}
	}

	keysToDelete := make([]string, 0, len(allKeysToDelete))
	for key := range allKeysToDelete {
		keysToDelete = append(keysToDelete, key)
	}

	if len(keysToDelete) > 0 {
		log.Printf("Invalidating %d cache keys for %d accounts", len(keysToDelete), len(accountIDs))
		return r.redisClient.InvalidateKeys(ctx, keysToDelete)
	}

	return nil
}
