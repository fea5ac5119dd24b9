package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/locker"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/repository"
	"github.com/vfg2006/campaign-autopilot-api/internal/api"
	"github.com/vfg2006/campaign-autopilot-api/internal/config"
	"github.com/vfg2006/campaign-autopilot-api/internal/pipeline"
	"github.com/vfg2006/campaign-autopilot-api/internal/scheduler"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/scheduling"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/verifying"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	rdb := redisClient(ctx, cfg.Redis)
	defer rdb.Close()

	scheduleRepo := repository.NewScheduleRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	coordinator := locker.NewRedisCoordinator(rdb, time.Duration(cfg.Pipeline.LockTTLSeconds)*time.Second)
	messenger := locker.NewRedisMessenger(rdb)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	authenticator := authenticating.NewService(userRepo, cfg)
	scheduleService := scheduling.NewService(scheduleRepo, userRepo, coordinator)
	verifier := verifying.NewService(metaClient)

	engine := pipeline.NewEngine(metaClient, messenger)
	runner := pipeline.NewRunner(coordinator, messenger, metaIntegrator, engine, scheduleRepo, cfg.Pipeline)
	pool := pipeline.NewPool(runner, cfg.Pipeline.MaxConcurrentRuns)

	dispatcher, err := scheduler.NewDispatcherService(cfg, scheduleRepo, pool)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := dispatcher.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o dispatcher de horários")
	} else {
		logrus.Info("Dispatcher de horários iniciado com sucesso")
	}
	defer dispatcher.Stop()

	server, err := api.New(
		cfg,
		authenticator,
		scheduleService,
		verifier,
		messenger,
		pool,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	// Espera os gatilhos em andamento terminarem antes de sair
	pool.Wait()
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisClient cria o cliente Redis usado pela lease, fila e mensagens
func redisClient(ctx context.Context, redisConfig config.Redis) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return rdb
}
