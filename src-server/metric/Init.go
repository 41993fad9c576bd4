package metric

import (
	"errors"
	"log/slog"
	"time"

	"guildkeeper/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "guildkeeper"

// collectors are created unregistered, register adds them
var factory = promauto.With(nil)

// register adds c to the default registry. When a collector with the same
// name is already there, that one is returned instead.
func register[T prometheus.Collector](c T, name string) T {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				slog.Debug("metric already registered", "metric", name)
				return existing
			}
		}
		slog.Error("can't register metric", "metric", name, "error", err)
		return c
	}
	slog.Debug("metric registered", "metric", name)
	return c
}

func unregister(c prometheus.Collector, name string) {
	switch prometheus.Unregister(c) {
	case true:
		slog.Debug("metric unregistered", "metric", name)
	case false:
		slog.Warn("metric not registered", "metric", name)
	}
}

func databaseEmptyRead(as *utils.AppState, tickerInterval time.Duration) {
	name := namespace + "_database_empty_read_microsec"
	gauge := register(factory.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The latency of an empty database read in microseconds",
	}), name)
	gauge.Set(0)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				gauge.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

// latency shows the last sample received on samples, and 0 once no sample
// came for clearInterval.
func latency(as *utils.AppState, name, help string, samples <-chan float64, clearInterval time.Duration) {
	gauge := register(factory.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}), name)
	gauge.Set(0)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(clearInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case sample := <-samples:
				gauge.Set(sample)
				clearTicker.Reset(clearInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func discordHeartbeatLatency(as *utils.AppState, tickerInterval time.Duration) {
	name := namespace + "_discord_heartbeat_latency_microsec"
	gauge := register(factory.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The latency of a discord heartbeat in microseconds",
	}), name)
	gauge.Set(0)

	go func() {
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case <-ticker.C:
				gauge.Set(float64(as.Discord.HeartbeatLatency().Microseconds()))
			}
		}
	}()
}

func commandsHandled(as *utils.AppState) {
	name := namespace + "_commands_handled_total"
	counter := register(factory.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: "The number of commands handled, by command",
	}, []string{"command"}), name)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(counter, name)
				return
			case command := <-as.MetricChans.CommandHandled:
				counter.WithLabelValues(command).Inc()
			}
		}
	}()
}

func copypastasSent(as *utils.AppState) {
	name := namespace + "_copypastas_sent_total"
	counter := register(factory.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: "The number of copypastas sent",
	}), name)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(counter, name)
				return
			case <-as.MetricChans.CopypastaSent:
				counter.Inc()
			}
		}
	}()
}

// Init registers the collectors and starts feeding them until the app
// shuts down.
func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, tickerInterval)
	latency(as, namespace+"_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, clearTickerInterval)
	latency(as, namespace+"_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, clearTickerInterval)
	latency(as, namespace+"_discord_send_message_microsec",
		"The latency of a discord message send in microseconds",
		as.MetricChans.DiscordSendMessage, clearTickerInterval)
	discordHeartbeatLatency(as, tickerInterval)
	commandsHandled(as)
	copypastasSent(as)
}
