package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	PrefixCache     KeyPrefix = "cache"     // cache:{namespace}:{key}
	PrefixRateLimit KeyPrefix = "ratelimit" // ratelimit:{type}:{identifier}
)

// DepartmentNamespace は部門の読み取りキャッシュの名前空間です
const DepartmentNamespace = "departments"

const childrenKeyPrefix = "children"

// CacheKey は汎用キャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}

// RateLimitKey はスライディングウィンドウのキーを生成します
func RateLimitKey(limitType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixRateLimit, limitType, identifier)
}

// DepartmentKey は部門詳細のキーを生成します（名前空間内）
func DepartmentKey(id uuid.UUID) string {
	return id.String()
}

// ChildrenKey は直下の部門一覧のキーを生成します。parentIDがnilならルート一覧です
func ChildrenKey(parentID *uuid.UUID) string {
	if parentID == nil {
		return childrenKeyPrefix + ":root"
	}
	return childrenKeyPrefix + ":" + parentID.String()
}

// ChildrenPattern は全ての一覧キーに一致するパターンです
func ChildrenPattern() string {
	return childrenKeyPrefix + ":*"
}
