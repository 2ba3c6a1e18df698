package main

import (
	"github.com/Muunneebb/PostureHealthTracker/internal/auth"
	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	"github.com/Muunneebb/PostureHealthTracker/internal/database"
	logger "github.com/Muunneebb/PostureHealthTracker/internal/logging"
	"github.com/Muunneebb/PostureHealthTracker/internal/repository"
	"github.com/Muunneebb/PostureHealthTracker/internal/router"
	"github.com/Muunneebb/PostureHealthTracker/internal/services"
	"github.com/Muunneebb/PostureHealthTracker/internal/tracker"
	"github.com/Muunneebb/PostureHealthTracker/internal/websocket"

	"go.uber.org/zap"
)

func main() {
	// The configuration layer wants a logger and the real logger wants
	// the configuration; bootstrap with a plain console logger.
	bootstrap, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}
	if err := config.Init(".", bootstrap); err != nil {
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Logger
	log, err := logger.Init(logger.Options{
		Directory:  config.Conf.Logging.Directory,
		MaxSize:    config.Conf.Logging.MaxSize,
		MaxBackups: config.Conf.Logging.MaxBackups,
		MaxAge:     config.Conf.Logging.MaxAge,
		Compress:   config.Conf.Logging.Compress,
	})
	if err != nil {
		bootstrap.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Database
	database.Init(log)

	// Live update hub for dashboard clients
	hub := websocket.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	// Session tracking pipeline
	store := repository.NewStore()
	aggregator := tracker.NewAggregator(store, config.Conf.Monitor.ReadingInterval, tracker.Thresholds{
		BreakAlertSeconds: config.Conf.Monitor.BreakAlertSeconds,
		BuzzerAlertCount:  config.Conf.Monitor.BuzzerAlertCount,
	}, log)
	notifier := services.NewLogNotifier(log, true)
	monitor := services.NewMonitor(aggregator, func() tracker.ReadingSource {
		return tracker.NewSyntheticSource(config.Conf.Monitor.ReadingInterval, config.Conf.Monitor.ReadingCount)
	}, notifier, hub, log)
	defer monitor.Shutdown()

	// Reclaim sessions whose feed died without completing
	sweeper := services.NewSweeper(monitor, config.Conf.Monitor.SweepInterval, config.Conf.Monitor.StaleAfter, log)
	sweeper.Start()
	defer sweeper.Stop()

	provider := auth.NewProvider(log)

	// Setup router, passing the logger to it
	r := router.Setup(log, provider, monitor, hub)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
