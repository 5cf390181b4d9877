package service

import "sync"

// CachedRoute 是一条已渲染的路由输出。
type CachedRoute struct {
	Body        []byte
	ContentType string
}

// RouteCache 缓存整条路由的渲染结果（站点地图、首页）。
// 并发安全；失效由 InvalidationCoordinator 触发。
type RouteCache struct {
	mu      sync.RWMutex
	entries map[string]CachedRoute
}

// NewRouteCache creates an empty route cache.
func NewRouteCache() *RouteCache {
	return &RouteCache{entries: make(map[string]CachedRoute)}
}

// Get returns the cached output for a path, if any.
func (c *RouteCache) Get(path string) (CachedRoute, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[path]
	return entry, ok
}

// Set stores rendered output for a path.
func (c *RouteCache) Set(path string, body []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = CachedRoute{Body: body, ContentType: contentType}
}

// Drop removes cached output for the given paths.
func (c *RouteCache) Drop(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range paths {
		delete(c.entries, path)
	}
}
