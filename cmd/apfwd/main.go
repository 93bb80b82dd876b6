// Command apfwd is the smart-home AP firewall's packet-inspection
// daemon. It reads a YAML binding file, opens one nfqueue per
// binding, and runs each through the DPI policy pipeline until
// terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/apfw/dpicore/dnscache"
	"github.com/apfw/dpicore/interaction"
	"github.com/apfw/dpicore/nfqrt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "/etc/apfwd/config.yaml", "Path to the binding configuration file.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "apfwd is the smart-home AP firewall's DPI queue daemon.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	slog := logger.Sugar()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := nfqrt.NewMetrics(reg)
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if cfg.MetricsAddr != "" {
		go func() {
			slog.Infow("metrics listener starting", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				slog.Errorw("metrics listener stopped", "error", err)
			}
		}()
	}

	cache := dnscache.NewLocked(dnscache.New())
	cacheMetrics := dnscache.NewMetrics(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go reportCacheSize(ctx, cache, cacheMetrics)

	runtimes := make([]*nfqrt.Runtime, 0, len(cfg.Bindings))
	for _, b := range cfg.Bindings {
		data := interaction.New(uint32(b.QueueNum), b.NumPolicies, b.NumStates)
		data.TimeoutSec = b.TimeoutSeconds
		if b.ActivityStart != "" && b.ActivityDuration != "" {
			ap, err := interaction.ParseActivityPeriod(b.ActivityStart, b.ActivityDuration)
			if err != nil {
				return fmt.Errorf("binding %s: %w", b.Name, err)
			}
			data.ActivityPeriod = &ap
		}

		rtCfg := nfqrt.Config{
			Name:        b.Name,
			QueueNum:    b.QueueNum,
			MaxQueueLen: b.MaxQueueLen,
			RunAsUID:    b.RunAsUID,
			RunAsGID:    b.RunAsGID,
			SecurityCtx: b.SecurityCtx,
		}
		rt, err := nfqrt.Open(rtCfg, data, slog, metrics, newInspectPolicy(cache))
		if err != nil {
			// Binding failure is fatal: a misconfigured or
			// unavailable queue means traffic for that device would
			// otherwise pass uninspected.
			return fmt.Errorf("binding %s: %w", b.Name, err)
		}
		runtimes = append(runtimes, rt)
	}

	var wg sync.WaitGroup
	for _, rt := range runtimes {
		wg.Add(1)
		go func(rt *nfqrt.Runtime) {
			defer wg.Done()
			if err := rt.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Errorw("queue runtime stopped", "error", err)
			}
		}(rt)
	}

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	slog.Infow("signal received, stopping", "signal", s)
	cancel()

	for _, rt := range runtimes {
		rt.Close()
	}
	wg.Wait()
	return nil
}

// reportCacheSize periodically refreshes the DNS cache's entry-count
// gauge until ctx is cancelled.
func reportCacheSize(ctx context.Context, cache *dnscache.Locked, metrics *dnscache.Metrics) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.Report(cache)
		}
	}
}
