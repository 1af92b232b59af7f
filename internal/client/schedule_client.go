package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/campus-hub/schedule-agent/internal/config"
	"github.com/campus-hub/schedule-agent/internal/model"
	"go.uber.org/zap"
)

// ScheduleClient клиент API расписания университета.
// Держит пул keep-alive соединений и кэширует последний успешный
// ответ на время CacheTTL, чтобы не дёргать API чаще необходимого.
type ScheduleClient struct {
	httpClient  *http.Client
	upstreamURL string
	bearerToken string
	cacheTTL    time.Duration

	mu        sync.Mutex
	cached    *model.Schedule
	fetchedAt time.Time

	logger *zap.Logger
}

func NewScheduleClient(cfg *config.Config, logger *zap.Logger) *ScheduleClient {
	transport := &http.Transport{
		DisableKeepAlives:   !cfg.KeepAlive.Enabled,
		IdleConnTimeout:     cfg.KeepAlive.IdleTimeout,
		MaxIdleConns:        cfg.KeepAlive.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.KeepAlive.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.KeepAlive.MaxConnsPerHost,
	}

	return &ScheduleClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		upstreamURL: cfg.UpstreamURL,
		bearerToken: cfg.BearerToken,
		cacheTTL:    cfg.CacheTTL,
		logger:      logger,
	}
}

// FetchSchedule получает расписание студента. Пока закэшированный
// ответ не старше CacheTTL, возвращается он — без похода в сеть.
func (c *ScheduleClient) FetchSchedule(ctx context.Context) (*model.Schedule, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.cacheTTL {
		cached := c.cached
		c.mu.Unlock()
		c.logger.Debug("Returning cached schedule",
			zap.Duration("age", time.Since(c.fetchedAt)))
		return cached, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.upstreamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build schedule request: %w", err)
	}
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schedule: upstream returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read schedule response: %w", err)
	}

	var sched model.Schedule
	if err := json.Unmarshal(body, &sched); err != nil {
		return nil, fmt.Errorf("decode schedule response: %w", err)
	}

	c.mu.Lock()
	c.cached = &sched
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("Schedule fetched",
		zap.Int("plannings", len(sched.Plannings)),
		zap.Int("bytes", len(body)))

	return &sched, nil
}

// Invalidate сбрасывает кэш, следующий FetchSchedule пойдёт в сеть
func (c *ScheduleClient) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
