package fixture

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fulldump/box"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// AccessLog logs one line per request with its status, duration and request
// id. Requests without an X-Request-Id get a fresh one, echoed back.
func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			c := box.GetBoxContext(ctx)
			r := c.Request
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			rec := &statusRecorder{ResponseWriter: c.Response, status: http.StatusOK}
			rec.Header().Set(requestIDHeader, requestID)
			c.Response = rec

			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), formatRemoteAddr(r), r.Method, r.URL.String(), rec.status, time.Since(now), requestID)
			}()

			next(ctx)
		}
	}
}

// FaultInjection delays every request by opts.Latency and answers every
// opts.FailEvery-th request with a 500.
func FaultInjection(opts Options) box.I {
	var count atomic.Int64
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			if opts.Latency > 0 {
				select {
				case <-time.After(time.Duration(opts.Latency) * time.Millisecond):
				case <-ctx.Done():
					return
				}
			}
			if opts.FailEvery > 0 && count.Add(1)%int64(opts.FailEvery) == 0 {
				writeError(box.GetResponse(ctx), http.StatusInternalServerError, msgServerError)
				return
			}
			next(ctx)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}
	if i := strings.LastIndex(r.RemoteAddr, ":"); i >= 0 {
		return r.RemoteAddr[:i]
	}
	return r.RemoteAddr
}
