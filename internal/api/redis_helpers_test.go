package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type memoryCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func (m *memoryCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.counts[key]++
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(m.counts[key])
	return cmd
}

func (m *memoryCounter) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expires[key] = ttl
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func TestSessionCreateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	counter := &memoryCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
	router := gin.New()
	router.POST("/v1/sessions", sessionCreateLimit(counter, 2, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sessions", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	assert.Len(t, counter.expires, 1)
}
