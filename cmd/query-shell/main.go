// cmd/query-shell/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"employee-query-workers/internal/assistant/engine"
	"employee-query-workers/internal/assistant/format"
	"employee-query-workers/internal/assistant/history"
	"employee-query-workers/internal/assistant/store"
	"employee-query-workers/internal/common/config"
	"employee-query-workers/internal/common/database"
	"employee-query-workers/internal/common/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(format.Error(err.Error()))
		return 1
	}

	// Logs go to stderr so they never interleave with answers.
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, "stderr")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Println(format.Error(err.Error()))
		return 1
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		fmt.Println(format.Error(fmt.Sprintf("cannot connect to the employee database: %v", err)))
		return 1
	}
	if err := pg.CheckEmployeesTable(ctx); err != nil {
		fmt.Println(format.Error(err.Error()))
		return 1
	}

	recorder, closeHistory, historyEnabled := openHistory(ctx, cfg.Database.Redis, cfg.Assistant, log)
	defer closeHistory()

	eng := engine.New(store.NewPostgresStore(pg.GetDB()), log, engine.Options{
		QueryTimeout: cfg.Assistant.QueryTimeout(),
		History:      recorder,
	})

	sh := &shell{
		engine:         eng,
		in:             os.Stdin,
		out:            os.Stdout,
		historyEnabled: historyEnabled,
	}
	if err := sh.Run(ctx); err != nil {
		fmt.Println(format.Error(err.Error()))
		return 1
	}
	return 0
}

// openHistory connects the optional Redis history. Any failure disables history; the returned
// close func is always safe to call.
func openHistory(ctx context.Context, rc config.RedisConfig, ac config.AssistantConfig, log logger.Logger) (history.Recorder, func(), bool) {
	noop := func() {}
	if !rc.Enabled() {
		return history.Nop{}, noop, false
	}

	rdb, err := database.NewRedis(rc)
	if err != nil {
		log.Warn("redis unavailable, query history disabled", map[string]interface{}{"error": err})
		return history.Nop{}, noop, false
	}
	if err := rdb.Ping(ctx); err != nil {
		rdb.Close()
		log.Warn("redis unavailable, query history disabled", map[string]interface{}{"error": err})
		return history.Nop{}, noop, false
	}
	return history.NewRedisRecorder(rdb.GetClient(), ac.HistoryKey, ac.HistorySize), func() { rdb.Close() }, true
}
