package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const catalogVersionKey = "catalog:version"

// CatalogVersion 当前商品目录缓存版本，商品变更后递增使旧 key 失效
func CatalogVersion(ctx context.Context) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	raw, err := redisClient.Get(ctx, BuildKey(catalogVersionKey)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// BumpCatalogVersion 递增目录缓存版本
func BumpCatalogVersion(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	return redisClient.Incr(ctx, BuildKey(catalogVersionKey)).Err()
}

// CatalogKey 生成带版本号的目录缓存 key
func CatalogKey(version int64, kind string, parts ...interface{}) string {
	key := fmt.Sprintf("catalog:v%d:%s", version, kind)
	for _, part := range parts {
		key += fmt.Sprintf(":%v", part)
	}
	return key
}
