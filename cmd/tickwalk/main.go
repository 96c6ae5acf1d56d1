package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tickwalk/server/internal/config"
	"github.com/tickwalk/server/internal/core/event"
	coresys "github.com/tickwalk/server/internal/core/system"
	"github.com/tickwalk/server/internal/data"
	"github.com/tickwalk/server/internal/handler"
	"github.com/tickwalk/server/internal/monitor"
	gonet "github.com/tickwalk/server/internal/net"
	"github.com/tickwalk/server/internal/net/packet"
	"github.com/tickwalk/server/internal/persist"
	"github.com/tickwalk/server/internal/scripting"
	"github.com/tickwalk/server/internal/system"
	"github.com/tickwalk/server/internal/task"
	"github.com/tickwalk/server/internal/world"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Config
	cfgPath := "config/server.toml"
	if p := os.Getenv("TICKWALK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	if err := packet.SetCharset(cfg.Network.ClientCharset); err != nil {
		return fmt.Errorf("client charset: %w", err)
	}

	// 3. PostgreSQL + migrations
	printSection("資料庫")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	printOK("PostgreSQL 連線成功")

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	printOK("資料庫遷移完成")
	fmt.Println()

	accountRepo := persist.NewAccountRepo(db)
	charRepo := persist.NewCharacterRepo(db)

	// 4. Scripts and data
	printSection("資料載入")
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("Lua 腳本載入完成")

	spawns, err := data.LoadSpawnTable(cfg.Data.SpawnList)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}

	// 5. World, bus, tasks
	worldState := world.NewState()
	bus := event.NewBus()
	scheduler := task.NewScheduler(bus, cfg.Tasks.DeactivateOnFailure, log)
	system.SubscribeEvents(bus, worldState, scheduler, cfg.Tasks, log)

	npcCount := system.SpawnNpcs(worldState, scheduler, spawns.All(), log)
	printStat("NPC 生成", npcCount)
	fmt.Println()

	// 6. Network
	gateway := gonet.NewHostGateway(cfg.Network.MaxConnectionsPerHost)
	netServer, err := gonet.NewServer(cfg.Network.BindAddress, gateway, gonet.SessionOptions{
		InQueueSize:   cfg.Network.InQueueSize,
		OutQueueSize:  cfg.Network.OutQueueSize,
		PacketsPerSec: packetsPerSecond(cfg.Network),
		WriteTimeout:  cfg.Network.WriteTimeout,
		ReadTimeout:   cfg.Network.ReadTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go netServer.AcceptLoop()

	// 7. Monitor
	var publisher system.SnapshotPublisher
	if cfg.Monitor.Enabled {
		hub := monitor.NewHub(log)
		if err := hub.Start(cfg.Monitor.BindAddress); err != nil {
			return fmt.Errorf("monitor: %w", err)
		}
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			hub.Shutdown(sctx)
		}()
		publisher = hub
	}

	// 8. Handlers and systems
	registry := packet.NewRegistry[*gonet.Session](log)
	handler.RegisterAll(registry, &handler.Deps{
		Accounts:   accountRepo,
		Characters: charRepo,
		Config:     cfg,
		Log:        log,
		World:      worldState,
		Scripting:  engine,
		Bus:        bus,
	})

	sessions := gonet.NewSessionStore()
	persistence := system.NewPersistenceSystem(worldState, charRepo, log, cfg.Persist.AutosaveTicks)

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(netServer, registry, sessions, cfg.Network.MaxPacketsPerTick,
		worldState, persistence, bus, log))
	runner.Register(system.NewEventSystem(bus))
	runner.Register(scheduler)
	runner.Register(system.NewMovementSystem(worldState, log))
	runner.Register(system.NewOutputSystem(worldState, sessions, publisher, cfg.Monitor.BroadcastEvery))
	runner.Register(persistence)
	runner.Register(system.NewCleanupSystem(worldState))

	// 9. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("伺服器就緒")
	printReady(fmt.Sprintf("監聽位址 %s", netServer.Addr().String()))
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Network.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			persistence.SaveAllPlayers()
			netServer.Shutdown()
			log.Info("伺服器已停止",
				zap.Uint64("ticks", runner.Ticks()),
				zap.Int("tasks", scheduler.Len()),
			)
			return nil
		}
	}
}

// packetsPerSecond converts the per-tick packet budget into the per-second
// limit enforced by each session's reader.
func packetsPerSecond(nc config.NetworkConfig) int {
	if nc.MaxPacketsPerTick <= 0 {
		return 0
	}
	perSec := int(time.Second / nc.TickRate)
	if perSec < 1 {
		perSec = 1
	}
	return nc.MaxPacketsPerTick * perSec * 2
}
