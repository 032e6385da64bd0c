// Package apilog keeps the rolling request log shown on the admin dashboard.
package apilog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"go.uber.org/zap"
)

// Capacity is how many entries the log retains.
const Capacity = 50

var ErrInvalidTech = errors.New("tech must be Laravel or Node.js")

type Tech string

const (
	TechLaravel Tech = "Laravel"
	TechNode    Tech = "Node.js"
)

func (t Tech) Valid() bool {
	return t == TechLaravel || t == TechNode
}

type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Runtime   string    `json:"runtime"`
	Tech      Tech      `json:"tech"`
}

type Log struct {
	mu      sync.Mutex
	entries []Entry
	tech    Tech
	latency time.Duration
	now     func() time.Time
	metrics *metrics.Storefront
}

func New(tech Tech, latency time.Duration, m *metrics.Storefront) *Log {
	if !tech.Valid() {
		tech = TechNode
	}
	return &Log{tech: tech, latency: latency, now: time.Now, metrics: m}
}

func (l *Log) SetTech(t Tech) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTech, t)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tech = t
	return nil
}

func (l *Log) Tech() Tech {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tech
}

// Entries returns the log newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Record prepends an entry and trims the log to Capacity.
func (l *Log) Record(method, path string, status int, runtime time.Duration) Entry {
	l.mu.Lock()
	e := Entry{
		Timestamp: l.now().UTC(),
		Method:    method,
		Path:      path,
		Status:    status,
		Runtime:   fmt.Sprintf("%.2fms", float64(runtime.Microseconds())/1000),
		Tech:      l.tech,
	}
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > Capacity {
		l.entries = l.entries[:Capacity]
	}
	l.mu.Unlock()

	l.metrics.IncAPIRequest(method, strconv.Itoa(status))
	return e
}

func (l *Log) wait(ctx context.Context) error {
	if l.latency <= 0 {
		return nil
	}
	t := time.NewTimer(l.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Simulate waits out the configured latency and records the call.
func (l *Log) Simulate(ctx context.Context, method, path string, status int) (Entry, error) {
	start := time.Now()
	if err := l.wait(ctx); err != nil {
		return Entry{}, err
	}
	e := l.Record(method, path, status, time.Since(start))
	logger.FromCtx(ctx).Debug("simulated api call",
		zap.String("tech", string(e.Tech)),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
	)
	return e, nil
}

// Middleware delays each request by the simulated latency and records it once served.
func (l *Log) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if err := l.wait(r.Context()); err != nil {
			return
		}
		rec := &logger.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rec, r)
		l.Record(r.Method, r.URL.Path, rec.Status, time.Since(start))
	})
}
