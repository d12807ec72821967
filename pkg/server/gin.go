package server

import (
	"Arena/config"
	"Arena/middleware"
	"Arena/pkg/client"
	ctxutil "Arena/pkg/context"
	"Arena/pkg/errtrack"
	"Arena/pkg/log"
	"Arena/pkg/response"
	"Arena/service"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider struct {
	Config   *config.Config
	Engine   *gin.Engine
	Redis    *client.RedisManager
	Pages    *service.PageService
	Reporter errtrack.Reporter
}

// serverId 形如 192.168.1.10:8080
func serverId(port int) string {
	ip, err := getLocalIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("%s:%d", ip, port)
}

func getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		// 检查 ip 网络地址，排除回环地址
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	return "", errors.New("no ip address found")
}

func NewGinEngine(conf *config.Config, h *Handlers) *gin.Engine {
	if !conf.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(CORSMiddleware())
	r.Use(middleware.GinZap(), middleware.PrometheusMiddleware(), response.ErrorMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	api := r.Group("/api")
	h.Forum.RegisterRouter(api)
	r.NoRoute(ctxutil.Wrap(func(c *gin.Context) error {
		return response.NewError(http.StatusNotFound, "route not found")
	}))
	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		// 对于 OPTIONS 请求，直接返回 204
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	// 终止的信号 服务要停止了
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	sid := serverId(app.Config.Server.Http)
	log.L.Info("server starting", zap.String("serverId", sid),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
	)

	// a cold cache only costs latency, so startup does not wait on it
	if err := app.Redis.EnsureConnected(groupCtx); err != nil {
		log.L.Warn("redis unavailable at startup", zap.Error(err))
	}

	return run(c, eg, groupCtx, app, sid)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider, sid string) error {
	serv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler:           app.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 启动 http 服务
	eg.Go(func() error {
		err := serv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("serverId", sid))

			// 等待中断信号以优雅地关闭服务器
			timeCtx, timeCancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Info("server stopping", zap.String("serverId", sid), zap.Error(err))
			}
			app.Pages.Wait()
			_ = app.Redis.Close()
			errtrack.Flush(app.Reporter, 2*time.Second)
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.L.Info("server stopping", zap.Error(err))
	}

	log.L.Info("server stopped", zap.String("serverId", sid))

	return nil
}

// Warm fills the shared page entries ahead of traffic.
func Warm(ctx context.Context, app *AppProvider) error {
	if err := app.Redis.EnsureConnected(ctx); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer app.Redis.Close()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		_, err := app.Pages.GetInitialForumData(ctx)
		return err
	})
	eg.Go(func() error {
		_, err := app.Pages.GetInitialCategoriesPageData(ctx)
		return err
	})
	eg.Go(func() error {
		_, err := app.Pages.GetInitialSidebarData(ctx)
		return err
	})
	eg.Go(func() error {
		_, err := app.Pages.GetInitialTopicsPageData(ctx, 1, app.Config.Cache.DefaultLimit, service.OrderCreatedAt, false)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	log.L.Info("cache warmed", zap.String("prefix", app.Config.Cache.Prefix))
	return nil
}
