package memory

import (
	"fmt"
	"time"

	"github.com/Tigierre/contractguardian/internal/entity"

	"github.com/patrickmn/go-cache"
)

// NormCache keeps recently fetched legal-norm scopes in memory. The norm
// catalog changes rarely, so a short TTL avoids one query per analyzed chunk.
type NormCache struct {
	cache *cache.Cache
}

func NewNormCache() *NormCache {
	// Default expiration of 15 minutes, purge every 5.
	c := cache.New(15*time.Minute, 5*time.Minute)
	return &NormCache{
		cache: c,
	}
}

func scopeKey(contractTypeId, jurisdictionId string) string {
	return fmt.Sprintf("%s|%s", contractTypeId, jurisdictionId)
}

func (r *NormCache) Save(contractTypeId, jurisdictionId string, norms []*entity.LegalNorm) {
	r.cache.Set(scopeKey(contractTypeId, jurisdictionId), norms, cache.DefaultExpiration)
}

func (r *NormCache) Get(contractTypeId, jurisdictionId string) ([]*entity.LegalNorm, bool) {
	if x, found := r.cache.Get(scopeKey(contractTypeId, jurisdictionId)); found {
		return x.([]*entity.LegalNorm), true
	}
	return nil, false
}

func (r *NormCache) Invalidate(contractTypeId, jurisdictionId string) {
	r.cache.Delete(scopeKey(contractTypeId, jurisdictionId))
}
