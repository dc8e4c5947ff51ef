package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/golf-tournament/internal/config"
	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
)

// Telemetry owns the process-wide tracing and profiling exporters.
type Telemetry struct {
	logger *logging.Logger
	hooks  []shutdownHook
}

type shutdownHook struct {
	name string
	stop func(context.Context) error
}

// Start brings up Uptrace, Pyroscope and the pprof listener as configured. Components that
// are disabled are skipped. On error everything already started is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	for _, start := range []func(config.Config) error{t.startTracing, t.startProfiling, t.startPprof} {
		if err := start(cfg); err != nil {
			_ = t.Shutdown(context.Background())
			return nil, err
		}
	}
	return t, nil
}

// Shutdown stops components in reverse start order and joins their errors.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.hooks) - 1; i >= 0; i-- {
		hook := t.hooks[i]
		if err := hook.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", hook.name, err))
			continue
		}
		t.logger.Info("telemetry component stopped", "component", hook.name)
	}
	t.hooks = nil
	return errors.Join(errs...)
}

// Components lists what is running, in start order.
func (t *Telemetry) Components() []string {
	names := make([]string, 0, len(t.hooks))
	for _, hook := range t.hooks {
		names = append(names, hook.name)
	}
	return names
}

func (t *Telemetry) register(name string, stop func(context.Context) error) {
	t.hooks = append(t.hooks, shutdownHook{name: name, stop: stop})
}
