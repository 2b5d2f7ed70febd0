package main

import (
	"embed"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"papershare/backend/api/middleware"
	"papershare/backend/api/route"
	"papershare/backend/common"
	"papershare/backend/model"

	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

//go:embed templates
var templatesFS embed.FS

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := common.InitConfig(); err != nil {
		common.FatalLog(err)
	}
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}

	server := gin.Default()
	server.Use(middleware.CORS())
	if common.GzipEnabled {
		server.Use(middleware.GzipDecodeMiddleware())
		server.Use(middleware.GzipEncodeMiddleware())
	}

	// Session store: redis when configured, signed cookies otherwise
	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, err := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, opt.Username, opt.Password, []byte(common.SessionSecret))
		if err != nil {
			common.FatalLog(err)
		}
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	if common.DebugEnabled {
		pprof.Register(server)
	}

	route.SetRouter(server, templatesFS)
	server.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(404, gin.H{
				"success": false,
				"message": "API route not found",
			})
		} else {
			c.Redirect(302, "/")
		}
	})

	port := strconv.Itoa(*common.Port)
	common.SysLog("server listening on port: " + port)

	setupGracefulShutdown()

	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown registers signal handlers to ensure clean shutdown
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysLog("error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
