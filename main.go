package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"i4.energy/across/rilbridge/logging"
	"i4.energy/across/rilbridge/modem"
	"i4.energy/across/rilbridge/qcril"
	"i4.energy/across/rilbridge/statestore"
)

func main() {
	configFile := pflag.String("config", "", "YAML configuration file")
	pflag.String("bind-address", "127.0.0.1:8080", "Bind address for the HTTP status server")
	pflag.String("transport", "socket", "How to reach rild (socket, serial)")
	pflag.String("socket", "/dev/socket/rild", "rild socket path")
	pflag.String("serial-port", "/dev/ttyHS0", "Serial port carrying the rild protocol")
	pflag.Int("baud-rate", 115200, "Baud rate for serial communication")
	pflag.String("phone-type", "gsm", "Phone type (gsm, cdma)")
	pflag.String("instance", "0", "RIL instance id")
	pflag.String("redis-address", "", "Redis address for the state mirror (disabled when empty)")
	pflag.String("log-level", "info", "Log level (debug, info, warn, error)")
	pflag.String("log-format", "text", "Log format (text, json)")
	pflag.String("log-file", "", "Rotating log file (stdout when empty)")
	pflag.Bool("legacy-data-call", false, "Drop unsolicited responses legacy basebands send malformed")
	pflag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configFile), WithEnv(), WithFlags(pflag.CommandLine))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, logCloser, err := logging.New(config.loggingConfig())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create logger")
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	modemConfig, err := modem.NewConfigBuilder().
		WithDialer(newDialer(config)).
		WithRequestTimeout(config.RequestTimeout).
		WithLogger(logger).
		Build()
	if err != nil {
		logger.WithError(err).Fatal("Failed to create RIL config")
	}

	base, err := modem.New(ctx, modemConfig)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to rild")
	}

	ext := qcril.New(base, config.qcrilConfig(), logger)

	if config.RedisAddress != "" {
		client, err := statestore.Dial(ctx, statestore.Config{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer client.Close()

		store := statestore.New(client, statestore.Config{Key: config.redisKey()}, logger)
		base.RegisterForRadioStateChanged(store.SetRadioState)
		base.RegisterForConnected(store.SetVersion)
		ext.RegisterForSubscriptionChanged(store.SetSubscription)
		store.SetRadioState(base.RadioState())
	}

	logger.WithFields(logrus.Fields{
		"transport":  config.Transport,
		"phone_type": config.PhoneType,
		"instance":   config.Instance,
	}).Info("Starting RIL bridge")

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- base.Loop(ctx)
	}()

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: (&Server{
			Logger: logger.WithField("component", "server"),
			RIL:    ext,
		}).Handler(),
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.WithField("address", httpServer.Addr).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-loopDone:
		logger.WithError(err).Error("rild connection lost")
		exitCode = 1
	}

	ext.Close()
	logger.Info("Closing rild connection")
	if err := base.Close(); err != nil && !errors.Is(err, modem.ErrAlreadyClosed) {
		logger.WithError(err).Error("Failed to close rild connection")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to gracefully shutdown server")
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func newDialer(config *Config) modem.Dialer {
	if config.Transport == "serial" {
		mode := modem.DefaultSerialMode
		mode.BaudRate = config.BaudRate
		return modem.SerialDialer{PortName: config.SerialPort, Mode: &mode}
	}
	return modem.SocketDialer{Network: config.SocketNetwork, Address: config.SocketAddress}
}
