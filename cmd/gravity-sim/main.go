/*
 * gravity-sim runs a Barnes-Hut n-body simulation. Bodies are read as json
 * from stdin, or spawned from the SPAWN_* environment when SPAWN_COUNT is
 * set. The final body states are written as json to stdout.
 */
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/halbor/gravity-sim/db"
	"github.com/halbor/gravity-sim/db/postgres"
	"github.com/halbor/gravity-sim/internal/controller"
	"github.com/halbor/gravity-sim/live"
	"github.com/halbor/gravity-sim/physics"
)

type Config struct {
	Production bool `env:"PRODUCTION" envDefault:"false"`
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	LogLevel string `env:"LOGLEVEL" envDefault:"debug"`
	// Steps to simulate before writing the final state.
	Steps int `env:"STEPS" envDefault:"1000"`
	// Persist/broadcast every Nth frame.
	SnapshotEvery int `env:"SNAPSHOT_EVERY" envDefault:"10"`
	// ListenAddr enables the live websocket stream when non-empty.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:""`
	// HTTP timeouts (read and write) of the live stream server.
	HTTPTimeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	// SpawnCount > 0 generates initial conditions instead of reading stdin.
	SpawnCount  int     `env:"SPAWN_COUNT" envDefault:"0"`
	SpawnRadius float64 `env:"SPAWN_RADIUS" envDefault:"100"`
	SpawnSpeed  float64 `env:"SPAWN_SPEED" envDefault:"100"`
	CentralMass float64 `env:"CENTRAL_MASS" envDefault:"1e10"`
	OrbiterMass float64 `env:"ORBITER_MASS" envDefault:"1e6"`
	// Physics parameters, see physics.SimulationConfig.
	G         float64 `env:"GRAVITY_G" envDefault:"1e-4"`
	Theta     float64 `env:"THETA" envDefault:"0.75"`
	FrameTime float64 `env:"FRAME_TIME" envDefault:"0.016"`
	HalfSize  float64 `env:"HALF_SIZE" envDefault:"1000"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

func main() {
	conf := GetEnvConfig()
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		println("failed to parse LOGLEVEL: '" + conf.LogLevel + "', setting to debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if !conf.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	var bodies []*physics.Body
	if conf.SpawnCount > 0 {
		bodies = physics.SpawnOrbit(conf.SpawnCount, conf.SpawnRadius, conf.SpawnSpeed, conf.CentralMass, conf.OrbiterMass)
	} else if err := json.NewDecoder(os.Stdin).Decode(&bodies); err != nil {
		log.Fatal().Msgf("decoding bodies from stdin: %v", err)
	}

	var storage db.Storage
	if dbconf := db.GetEnvConfig(); dbconf.PGHost != "" {
		storage, err = postgres.NewPostgresDB(dbconf)
		if err != nil {
			log.Fatal().Msgf("connecting to postgres: %v", err)
		}
	}

	var broadcaster controller.Broadcaster
	if conf.ListenAddr != "" {
		hub := live.NewHub()
		go hub.Run()
		broadcaster = hub
		mux := http.NewServeMux()
		mux.Handle("/live", hub)
		server := http.Server{
			Addr:         conf.ListenAddr,
			Handler:      mux,
			ReadTimeout:  conf.HTTPTimeout,
			WriteTimeout: conf.HTTPTimeout,
		}
		go func() {
			log.Info().Msgf("live stream on ws://%s/live", conf.ListenAddr)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				log.Fatal().Msgf("ListenAndServe: %v", err)
			}
		}()
	}

	sim := physics.NewSimulation(physics.SimulationConfig{
		G:         conf.G,
		Theta:     conf.Theta,
		FrameTime: conf.FrameTime,
		HalfSize:  conf.HalfSize,
	})
	runner := controller.NewRunner(sim, storage, broadcaster, conf.SnapshotEvery)

	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	stats, err := runner.Run(ctx, bodies, conf.Steps)
	if err != nil {
		log.Fatal().Msgf("simulation failed: %v", err)
	}
	log.Info().Msgf("simulation finished: stats{steps: %d, time: %d ms}", stats.Steps, stats.TotalTime.Milliseconds())
	if err := json.NewEncoder(os.Stdout).Encode(bodies); err != nil {
		log.Fatal().Msgf("encoding bodies to stdout: %v", err)
	}
}
