package app

import (
	"errors"
	"fmt"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/router"
	"github.com/dujiao-next/storefront/internal/worker"
)

// BuildRunner 按运行模式组装服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	return buildRunner(cfg, mode, provider.NewContainer(cfg))
}

func buildRunner(cfg *config.Config, mode string, container *provider.Container) (*Runner, error) {
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
	default:
		return nil, fmt.Errorf("unknown run mode: %s", mode)
	}

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server.Addr(), engine))
	}

	// all 模式下队列未启用只跳过 worker；worker 模式必须启用队列
	if mode == ModeAll || mode == ModeWorker {
		if !cfg.Queue.Enabled {
			if mode == ModeWorker {
				return nil, errors.New("worker mode requires queue.enabled")
			}
			logger.Warnw("app_worker_skipped", "reason", "queue_disabled")
		} else {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	runner := NewRunner(services...)
	if container.QueueClient != nil {
		runner.OnShutdown(container.QueueClient.Close)
	}
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
