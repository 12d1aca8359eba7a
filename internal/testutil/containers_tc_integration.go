//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	pgrepo "github.com/Gunvolt24/order_intake/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

// tcLogger — общий логгер жизненного цикла контейнеров.
var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// stage — хук, печатающий этап жизненного цикла и короткий id контейнера.
func stage(l *log.Logger, name string) []tc.ContainerHook {
	return []tc.ContainerHook{
		func(ctx context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			l.Printf("%-11s id=%s", name, id)
			return nil
		},
	}
}

func lifecycleLog(l *log.Logger) tc.CustomizeRequestOption {
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("create      image=%s", req.Image)
				return nil
			},
		},
		PostStarts:     stage(l, "started"),
		PostReadies:    stage(l, "ready"),
		PreTerminates:  stage(l, "terminating"),
		PostTerminates: stage(l, "terminated"),
	})
}

// PGContainer — Postgres заказов с готовым пулом.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC — база orders в контейнере; stop закрывает пул и гасит контейнер.
// Схему не создаёт: миграции накатываются отдельно (ApplyMigrationsGoose).
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	ready := wait.ForAll(
		wait.ForListeningPort("5432/tcp"),
		wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	).WithDeadline(60 * time.Second)

	pg, err := postgres.Run(ctx, postgresImage,
		lifecycleLog(tcLogger),
		postgres.WithDatabase("orders"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(ready),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	fail := func(step string, err error) (*PGContainer, func(context.Context) error, error) {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("%s: %w", step, err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail("conn string", err)
	}

	// пул поменьше, чем в сервисе; таймаут запросов — дефолтный
	pool, err := pgrepo.NewPool(ctx, dsn, 5, 0)
	if err != nil {
		return fail("new pool", err)
	}

	env := &PGContainer{Container: pg, DSN: dsn, Pool: pool}
	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return env, stop, nil
}

// KafkaEnv — Redpanda в роли Kafka; топики тестов строятся от BaseTopic.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(ctx, redpandaImage,
		lifecycleLog(tcLogger),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	env := &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
	return env, func(context.Context) error { return tc.TerminateContainer(rp) }, nil
}
