// hlbridge-demo is a host binary exercising hlbridge end-to-end: it
// loads a HashLink bytecode module, drives its cooperative event loop,
// and calls into it, either in host-driven mode (this binary's own main
// loop pumps everything) or dedicated-thread mode (the module's entry
// point runs on its own OS thread while this binary issues calls
// through ThreadCallSync/Async).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/corvidhx/hlbridge/internal/config"
	"github.com/corvidhx/hlbridge/internal/eventloop"
	"github.com/corvidhx/hlbridge/internal/modcache"
	"github.com/corvidhx/hlbridge/internal/vm"
)

func main() {
	modulePath := flag.String("module", "", "path to a .hl bytecode file")
	moduleRef := flag.String("ref", "", "OCI reference to pull a bytecode module from, if -module is unset")
	dedicated := flag.Bool("dedicated-thread", false, "run the module entry point on a dedicated thread")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Merge(nil)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	path := *modulePath
	if path == "" {
		if *moduleRef == "" {
			logger.Error("one of -module or -ref is required")
			os.Exit(1)
		}
		path, err = pullModule(cfg, *moduleRef)
		if err != nil {
			logger.Error("pull module", "ref", *moduleRef, "err", err)
			os.Exit(1)
		}
	}

	inst, err := vm.Create()
	if err != nil {
		logger.Error("create instance", "err", err)
		os.Exit(1)
	}

	mode := vm.ModeHostDriven
	if *dedicated {
		mode = vm.ModeDedicatedThread
	}
	inst.SetMode(mode)

	if err := inst.Init(os.Args); err != nil {
		logger.Error("init VM runtime", "err", err)
		os.Exit(1)
	}
	if err := inst.LoadFile(path); err != nil {
		logger.Error("load bytecode", "path", path, "err", err)
		os.Exit(1)
	}
	if err := inst.CallEntry(); err != nil {
		logger.Error("call entry point", "err", err)
		os.Exit(1)
	}
	logger.Info("module loaded and running", "path", path, "mode", modeName(mode))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver := eventloop.NewDriver()
	ticker := time.NewTicker(cfg.EventLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			if err := inst.Destroy(); err != nil {
				logger.Error("destroy instance", "err", err)
			}
			return
		case <-ticker.C:
			run := func() { driver.Update(cfg.EventLoopInterval.Seconds()) }
			if err := inst.ThreadCallSync(run); err != nil {
				logger.Error("event loop tick", "err", err)
			}
		}
	}
}

func pullModule(cfg *config.Options, ref string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RegistryTimeout)
	defer cancel()

	history, err := modcache.OpenHistory(cfg.HistoryDBPath)
	if err != nil {
		return "", err
	}
	defer history.Close()

	cache := modcache.NewCache(cfg.ModuleCacheDir, history)
	path, _, err := cache.GetOrPull(ctx, ref)
	return path, err
}

func modeName(m vm.Mode) string {
	if m == vm.ModeDedicatedThread {
		return "dedicated-thread"
	}
	return "host-driven"
}
