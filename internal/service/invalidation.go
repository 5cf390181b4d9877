package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// InvalidationCoordinator keeps derived route output (sitemap, site root) in
// step with content mutations. Every step is best-effort: a dropped signal is
// logged and never surfaces to the caller of the triggering mutation, so the
// sitemap may lag for a bounded window.
type InvalidationCoordinator struct {
	cache       *RouteCache
	http        httpDoer
	baseURL     string
	settleDelay time.Duration
	sleep       func(time.Duration)
}

// NewInvalidationCoordinator 构造协调器。baseURL 指向本服务自身，
// 用于确认回环请求。
func NewInvalidationCoordinator(cache *RouteCache, baseURL string) *InvalidationCoordinator {
	return &InvalidationCoordinator{
		cache:       cache,
		http:        &http.Client{Timeout: 10 * time.Second},
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		settleDelay: 500 * time.Millisecond,
		sleep:       time.Sleep,
	}
}

// SetHTTPClient 替换确认回环使用的 HTTP 客户端。
func (c *InvalidationCoordinator) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
		return
	}
	c.http = client
}

// SetSettleDelay 调整回写后的等待时长。
func (c *InvalidationCoordinator) SetSettleDelay(d time.Duration) {
	c.settleDelay = d
}

// ContentChanged 在任意内容变更后执行失效协议：
// 1. 丢弃站点地图与站点根的缓存输出；
// 2. 调用强制刷新端点，记录实体数量作为交叉检查；
// 3. 等待一小段时间让异步重建落定。
// 任何一步失败只记日志，写路径的成功与失效结果无关。
func (c *InvalidationCoordinator) ContentChanged() {
	if c.cache != nil {
		c.cache.Drop("/sitemap.xml", "/")
	}

	if err := c.confirm(); err != nil {
		log.Printf("sitemap invalidation confirmation failed: %v", err)
	}

	if c.settleDelay > 0 {
		c.sleep(c.settleDelay)
	}
}

func (c *InvalidationCoordinator) confirm() error {
	if c.baseURL == "" {
		return nil
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/sitemap/force-update", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("force-update returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	var counts SitemapCounts
	if err := json.Unmarshal(body, &counts); err != nil {
		return err
	}

	log.Printf("sitemap refreshed: %d pages, %d posts, %d categories",
		counts.Pages, counts.Posts, counts.Categories)
	return nil
}
