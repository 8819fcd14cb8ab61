package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/service/api/auth"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxRateLimitBuckets 메모리에 유지할 최대 버킷 수입니다.
	maxRateLimitBuckets = 10000

	// bucketIdleTTL 이 시간 동안 요청이 없던 버킷은 가득 찬 상태와 같으므로 정리해도 됩니다.
	bucketIdleTTL = time.Minute

	retryAfterSeconds = "1"
)

// KeyFunc 요청을 같은 제한 단위(버킷)로 묶을 키를 반환합니다.
type KeyFunc func(c echo.Context) string

// KeyByIP 클라이언트 IP 단위로 제한합니다.
func KeyByIP(c echo.Context) string {
	return "ip:" + c.RealIP()
}

// KeyBySession 초기화 토큰이 있으면 미니앱 세션 단위로, 없으면 IP 단위로 제한합니다.
// 모바일 사업자 NAT 뒤의 서로 다른 사용자가 결제 한도를 나눠 쓰지 않게 됩니다.
func KeyBySession(c echo.Context) string {
	token := initdata.Resolve(auth.SourceOf(c)).Token
	if token == "" {
		return KeyByIP(c)
	}

	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:12])
}

// RateLimitConfig RateLimitWithConfig 설정입니다.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int

	// KeyFunc nil이면 KeyByIP를 사용합니다.
	KeyFunc KeyFunc
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketStore 키별 Token Bucket을 관리합니다. 여러 고루틴에서 동시에 사용해도 안전합니다.
type bucketStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit rate.Limit
	burst int
	max   int
	now   func() time.Time
}

func newBucketStore(requestsPerSecond, burst int) *bucketStore {
	return &bucketStore{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		max:     maxRateLimitBuckets,
		now:     time.Now,
	}
}

func (s *bucketStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, ok := s.buckets[key]
	if !ok {
		if len(s.buckets) >= s.max {
			s.evictLocked(now)
		}
		b = &bucket{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// evictLocked 유휴 버킷을 모두 정리하고, 그래도 가득 차 있으면 가장 오래 전에 사용된 버킷 하나를 제거합니다.
func (s *bucketStore) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time

	for key, b := range s.buckets {
		if now.Sub(b.lastSeen) >= bucketIdleTTL {
			delete(s.buckets, key)
			continue
		}
		if oldestKey == "" || b.lastSeen.Before(oldest) {
			oldestKey, oldest = key, b.lastSeen
		}
	}

	if len(s.buckets) >= s.max {
		delete(s.buckets, oldestKey)
	}
}

// RateLimit IP 기반 요청 제한 미들웨어를 반환합니다. 초과한 요청은 429와 Retry-After 헤더로 거부됩니다.
//
// Panics:
//   - requestsPerSecond 또는 burst가 0 이하인 경우
func RateLimit(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{
		RequestsPerSecond: requestsPerSecond,
		Burst:             burst,
		KeyFunc:           KeyByIP,
	})
}

// RateLimitWithConfig KeyFunc로 묶은 단위마다 요청을 제한하는 미들웨어를 반환합니다.
//
// 결제 생성 요청은 원격 서비스에 실제 결제 건을 만들기 때문에 KeyBySession과 함께
// 전역 제한보다 엄격한 값으로 사용합니다.
func RateLimitWithConfig(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, cfg.RequestsPerSecond))
	}
	if cfg.Burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, cfg.Burst))
	}

	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = KeyByIP
	}

	store := newBucketStore(cfg.RequestsPerSecond, cfg.Burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := keyFunc(c)

			if !store.allow(key) {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip":      c.RealIP(),
					"rate_limit_key": key,
					"path":           c.Request().URL.Path,
					"method":         c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.RetryAfter, retryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
