// Package main は LearnVocab Web サーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/learnvocab/internal/accounts"
	"github.com/yourusername/learnvocab/internal/auth"
	"github.com/yourusername/learnvocab/internal/config"
	"github.com/yourusername/learnvocab/internal/web"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	store, closeStore, err := setupUserStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to set up user store: %v", err)
	}
	defer closeStore()

	router := newRouter(cfg, store)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting web server on %s (mode: %s, store: %s)", addr, cfg.GinMode, cfg.UserStore)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newRouter はミドルウェアとルーティングを設定したエンジンを返します。
func newRouter(cfg *config.Config, store accounts.Store) *gin.Engine {
	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	web.LoadTemplates(router)

	// セッションストアの設定
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		// フォーム送信後のリダイレクトでクッキーを送るため Lax
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"X-CSRF-Token",
	}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, cfg, store)
	return router
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "learnvocab-web",
		"version": "0.1.0",
	})
}

// setupRoutes は画面ハンドラーと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, store accounts.Store) {
	router.GET("/health", handleHealth)
	router.StaticFS("/static", web.StaticFS())

	manager := auth.NewManager(web.PathLogin)
	service := auth.NewService(store, auth.NewBcryptHasher(cfg.BcryptCost))
	handlers := web.NewHandlers(service, manager, log.Default())

	router.GET(web.PathHome, handlers.Home)
	router.POST(web.PathHome, handlers.Home)

	// 登録・ログイン時はセッション未生成なので CSRF 検証は不要
	router.GET(web.PathSignup, handlers.Signup)
	router.POST(web.PathSignup, handlers.Signup)
	router.GET(web.PathLogin, handlers.Login)
	router.POST(web.PathLogin, handlers.Login)

	router.POST(web.PathLogout,
		manager.RequireLogin(),
		manager.VerifyCSRF(),
		handlers.Logout,
	)
}
