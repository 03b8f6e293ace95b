package initialize

import (
	"fmt"
	"net/http"
	"time"

	"sysai-relay/backend/app/controllers"
	"sysai-relay/backend/app/db"
	jwtutil "sysai-relay/backend/app/jwt"
	"sysai-relay/backend/app/middleware"
	"sysai-relay/backend/app/models"
	"sysai-relay/backend/app/queue"
	"sysai-relay/backend/app/repo"
	"sysai-relay/backend/app/services"
	"sysai-relay/backend/config"
	"sysai-relay/backend/global"
	"sysai-relay/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Router   http.Handler
	Agents   *services.AgentService
	Commands *services.CommandService
	Users    *services.UserService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath, func() {
		global.Logger.Info().Msg("config reloaded")
	})
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.Agent{}, &models.QueuedCommand{}, &models.CommandResult{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// queue backend: durable db queue by default, redis when configured
	var cmdQueue services.CommandQueue = repo.NewCommandQueueRepository(gdb)
	if cfg.Queue.Backend == "redis" {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Queue.RedisAddr, DB: cfg.Queue.RedisDB})
		cmdQueue = queue.NewRedisQueue(global.Rdb)
	}

	userRepo := repo.NewUserRepository(gdb)
	agentRepo := repo.NewAgentRepository(gdb)
	resultRepo := repo.NewResultRepository(gdb)

	userSvc := services.NewUserService(userRepo)
	agentSvc := services.NewAgentService(agentRepo, cfg.PresenceWindow)
	cmdSvc := services.NewCommandService(cmdQueue, resultRepo)
	if err := userSvc.EnsureAdmin("admin", "admin123"); err != nil {
		global.Logger.Warn().Err(err).Msg("ensure admin user")
	}

	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer, AgentToken: cfg.AgentToken}

	authCtrl := controllers.NewAuthController(userSvc, signer)
	adminCtrl := controllers.NewAdminController(userSvc)
	agentCtrl := controllers.NewAgentController(agentSvc)
	cmdCtrl := controllers.NewCommandController(cmdSvc)

	h := router.NewRouter(authCtrl, adminCtrl, agentCtrl, cmdCtrl, mw)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Agents: agentSvc, Commands: cmdSvc, Users: userSvc}, nil
}

// StartPurgeLoop evicts long-silent agents when purge_after is configured.
// The registry grows forever otherwise, matching the historical behavior.
func (a *App) StartPurgeLoop(stop <-chan struct{}) {
	purgeAfter := a.Cfg.Registry.PurgeAfter
	if purgeAfter <= 0 {
		return
	}
	interval := purgeAfter / 10
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				n, err := a.Agents.PurgeSilent(purgeAfter)
				if err != nil {
					global.Logger.Error().Err(err).Msg("registry purge failed")
					continue
				}
				if n > 0 {
					global.Logger.Info().Int64("purged", n).Msg("evicted silent agents")
				}
			}
		}
	}()
}
