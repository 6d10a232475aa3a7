package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SurveyPayloadKey returns the cache key for a survey payload, keyed by its
// public token (the participant lookup key, not the internal id).
func (r *CacheKeyStruct) SurveyPayloadKey(token string) string {
	return fmt.Sprintf("survey:%s:payload", token)
}

var CacheKey = NewCacheKeyStruct()
