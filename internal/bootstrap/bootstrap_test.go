package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eloquas/Eloverit-sub002/internal/config"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/sse"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2025-01-%02d_00-00-00", i))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, LogFilePermission))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, LogFilePermission))

	cleanupLogs(dir, 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2025-01-10_00-00-00.log",
		"session_2025-01-11_00-00-00.log",
		"session_2025-01-12_00-00-00.log",
		"notes.txt",
	}, names)
}

func TestCleanupLogs_UnderLimitUntouched(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_a.log"), nil, LogFilePermission))

	cleanupLogs(dir, LogFileRetentionCount)

	_, err := os.Stat(filepath.Join(dir, "session_a.log"))
	assert.NoError(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		st, err := OpenStore(ctx, &config.Config{DBDriver: config.DriverMemory})
		require.NoError(t, err)
		defer st.Close()
		assert.NotNil(t, st.Repo)
		assert.Nil(t, st.Pinger)
	})

	t.Run("sqlite creates its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "achievements.db")
		st, err := OpenStore(ctx, &config.Config{DBDriver: config.DriverSQLite, SQLitePath: path})
		require.NoError(t, err)
		defer st.Close()
		require.NotNil(t, st.Pinger)
		assert.NoError(t, st.Pinger.Ping(ctx))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, &config.Config{DBDriver: "mongo"})
		assert.ErrorContains(t, err, ErrMsgUnsupportedDriver)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{DeadLetterPath: filepath.Join(t.TempDir(), "logs", "deadletter.jsonl")}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Shutdown(context.Background()) })

	received := make(chan event.Event, 1)
	bus.Subscribe(event.LevelUp, func(ctx context.Context, evt event.Event) error {
		received <- evt
		return nil
	})
	publisher.PublishWithRetry(context.Background(), event.NewLevelUpEvent(event.LevelUpPayloadV1{UserID: "u", NewLevel: 2}))

	evt := <-received
	assert.Equal(t, event.LevelUp, evt.Type)
	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))
}

func TestRegisterEventHandlers_WithoutOptionalSinks(t *testing.T) {
	bus := event.NewMemoryBus()
	st, err := OpenStore(context.Background(), &config.Config{DBDriver: config.DriverMemory})
	require.NoError(t, err)

	require.NoError(t, RegisterEventHandlers(context.Background(), EventHandlerDependencies{EventBus: bus, Repo: st.Repo}))
	assert.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent(event.LevelUpPayloadV1{UserID: "u", NewLevel: 2})))
}

func TestGracefulShutdown_AllNil(t *testing.T) {
	assert.NotPanics(t, func() { GracefulShutdown(context.Background(), ShutdownComponents{}) })
}

func TestRegisterEventHandlers_StreamsUnlocks(t *testing.T) {
	bus := event.NewMemoryBus()
	st, err := OpenStore(context.Background(), &config.Config{DBDriver: config.DriverMemory})
	require.NoError(t, err)

	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	require.NoError(t, RegisterEventHandlers(context.Background(), EventHandlerDependencies{EventBus: bus, Repo: st.Repo, Stream: hub}))

	client := hub.Register(sse.Filter{})
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), event.NewAchievementUnlockedEvent(event.AchievementUnlockedPayloadV1{
		UserID: "u", AchievementID: "first_email", Points: 10,
	})))

	select {
	case e := <-client.Events:
		assert.Equal(t, sse.EventTypeUnlocked, e.Type)
	case <-time.After(time.Second):
		t.Fatal("unlock was not streamed")
	}
}

func TestStartIndexResync_DisabledWithoutIndex(t *testing.T) {
	m := StartIndexResync(nil, nil, time.Minute)
	assert.Nil(t, m)
	assert.NotPanics(t, m.Stop)
}

func TestGracefulShutdown_ClosesStreams(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	client := hub.Register(sse.Filter{})
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	GracefulShutdown(context.Background(), ShutdownComponents{Stream: hub})

	_, ok := <-client.Events
	assert.False(t, ok)
}
