package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvim-tech/hyprpower/pkg/config"
	"github.com/lvim-tech/hyprpower/pkg/hypridle"
	"github.com/lvim-tech/hyprpower/pkg/lid"
	"github.com/lvim-tech/hyprpower/pkg/power"
	"github.com/lvim-tech/hyprpower/pkg/utils"
)

const version = "0.1.0"

// eventDebounce lets the system settle after a hotplug event before probing.
const eventDebounce = 500 * time.Millisecond

func main() {
	if err := rootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hyprpower",
		Short:         "Regenerates hypridle configuration on power state changes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "settings file")

	root.AddCommand(&cobra.Command{
		Use:   "lid",
		Short: "Handle a lid-close event once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return lid.Run(settings)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("hyprpower " + version)
		},
	})

	return root
}

func runDaemon(configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	notifier := &utils.Notifier{
		Enabled: settings.General.EnableNotifications,
		Timeout: settings.General.NotificationTimeout,
	}

	strategy := hypridle.Direct
	if settings.General.SystemdMode {
		strategy = hypridle.Supervised
		hypridle.EnsureServiceEnabled()
	}

	restarter := &hypridle.Restarter{
		ConfigPath: settings.General.HypridleConfigPath,
		Strategy:   strategy,
	}

	monitor := hypridle.NewMonitor(settings, power.FindBattery(), restarter, notifier.Notify)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A failed config write or hypridle relaunch takes the daemon down.
	fatal := make(chan error, 1)
	tick := func() {
		if err := monitor.Tick(); err != nil {
			select {
			case fatal <- err:
			default:
			}
			cancel()
		}
	}

	// The first tick always transitions, so hypridle gets a fresh config
	// and a (re)start even if the power state never changes afterwards.
	tick()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(time.Duration(settings.General.PollInterval) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	if watcher, err := power.NewUPowerWatcher(eventDebounce); err != nil {
		logrus.WithError(err).Warn("power supply events unavailable, falling back to polling only")
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer watcher.Close()
			watcher.Watch(ctx, tick)
		}()
		logrus.Info("started real-time power monitoring")
	}

	if err := config.Watch(ctx, settings.Path(), func() {
		logrus.Warn("settings file changed on disk, restart hyprpower to apply")
		notifier.Notify("Settings changed, restart hyprpower to apply")
	}); err != nil {
		logrus.WithError(err).Warn("settings file watch unavailable")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logrus.WithField("signal", sig.String()).Info("shutting down")
		cancel()
	case <-ctx.Done():
	}

	wg.Wait()

	select {
	case err := <-fatal:
		return err
	default:
		return nil
	}
}
