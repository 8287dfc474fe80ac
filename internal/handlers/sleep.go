package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

const defaultSleepMillis = 3000

// SleepHandler blocks for a configurable duration before responding,
// supplementing the distilled spec with a feature present in the
// original implementation (original_source/src/sleep_handler.cc) purely
// to give the worker pool something observably slow to schedule around.
// The duration is read from the route's "sleep_ms" config arg instead of
// the original's hardcoded 3 seconds, since this repo's config already
// supports per-route args.
type SleepHandler struct {
	duration time.Duration
}

// NewSleepFactory builds the registry.Factory for SleepHandler.
func NewSleepFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		var cfg sleepConfig
		if v, ok := argValue(args, "sleep_ms"); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid sleep_ms value %q", v)
			}
			cfg.SleepMillis = n
		}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		millis := cfg.SleepMillis
		if millis == 0 {
			millis = defaultSleepMillis
		}
		return &SleepHandler{duration: time.Duration(millis) * time.Millisecond}, nil
	}
}

func (h *SleepHandler) Handle(req *httpproto.Request) *httpproto.Response {
	time.Sleep(h.duration)
	return httpproto.NewTextResponse(200, "Slept")
}
