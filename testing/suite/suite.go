package suite

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerExpiry = 120
	readyTimeout    = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	journalKeyPrefix = "session:rounds:"
)

// Suite is a round journal backend for one test: a fresh redis container and a key of its own.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage    *redis.Client
	JournalKey string
}

// New - starts redis for the journal tests. Needs docker, so it is skipped with -short.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("round journal tests need docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	_ = resource.Expire(containerExpiry)

	pool.MaxWait = readyTimeout

	client := redis.NewClient(&redis.Options{
		Addr:       resource.GetHostPort(redisPort),
		MaxRetries: 1,
	})

	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Fatalf("could not purge redis: %v", purgeErr)
		}

		t.Fatalf("redis never became ready: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := client.Close(); closeErr != nil {
			t.Logf("could not close redis client: %v", closeErr)
		}

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Fatalf("could not purge redis: %v", purgeErr)
		}
	})

	return ctx, &Suite{
		T:          t,
		Logger:     slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})),
		Storage:    client,
		JournalKey: journalKeyPrefix + strings.ReplaceAll(t.Name(), "/", ":"),
	}
}

// Seed - writes raw list elements under the journal key, as a previous run would have left them.
func (that *Suite) Seed(ctx context.Context, values ...string) {
	that.Helper()

	if len(values) == 0 {
		return
	}

	elements := make([]any, 0, len(values))
	for _, value := range values {
		elements = append(elements, value)
	}

	if err := that.Storage.RPush(ctx, that.JournalKey, elements...).Err(); err != nil {
		that.Fatalf("could not seed journal: %v", err)
	}
}

// Stored - reads the raw list elements under the journal key.
func (that *Suite) Stored(ctx context.Context) []string {
	that.Helper()

	values, err := that.Storage.LRange(ctx, that.JournalKey, 0, -1).Result()
	if err != nil {
		that.Fatalf("could not read journal: %v", err)
	}

	return values
}
