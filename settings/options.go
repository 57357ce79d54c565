package settings

import "go.uber.org/ratelimit"

type ServiceOption func(*Service)

func WithWriteRatelimiter(limiter ratelimit.Limiter) ServiceOption {
	return func(svc *Service) {
		svc.writeRateLimiter = limiter
	}
}
