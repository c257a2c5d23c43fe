package cache

import "fmt"

type EntityType string

const EntityDeal EntityType = "deal"

type KeyType string

const KeySummary KeyType = "summary"

// Namespace prefixes every key written by this service.
const Namespace = "mcacrm"

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%s:%v", Namespace, entity, keyType, value)
}

// PortfolioSummaryKey is the key of the cached deal portfolio summary.
func PortfolioSummaryKey() string {
	return GenerateKey(EntityDeal, KeySummary, "portfolio")
}

// NamespacePattern matches every key this service writes, leaving other
// tenants of a shared redis alone.
func NamespacePattern() string {
	return Namespace + ":*"
}
