package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/learnvocab/internal/accounts"
	"github.com/yourusername/learnvocab/internal/auth"
	"github.com/yourusername/learnvocab/internal/flash"
)

const (
	msgSignupSucceeded = "Account created successfully! Welcome to LearnVocab."
	msgLoginSucceeded  = "Login successful! Welcome back."
	msgLoggedOut       = "You have been logged out."
)

// AccountService は登録と資格情報の照合を提供します。
type AccountService interface {
	Register(ctx context.Context, in auth.Registration) (*accounts.Account, error)
	Authenticate(ctx context.Context, username, password string) (*accounts.Account, error)
}

// Handlers は画面ハンドラーと依存をまとめた構造体です。
type Handlers struct {
	accounts AccountService
	sessions *auth.Manager
	logger   *log.Logger
}

// NewHandlers は Handlers を作成します。
func NewHandlers(svc AccountService, manager *auth.Manager, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{
		accounts: svc,
		sessions: manager,
		logger:   logger,
	}
}

// Home はランディングページを返します。
func (h *Handlers) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html")
}

// Signup は /signup/ のハンドラーです。POST 以外ではフォームを返します。
func (h *Handlers) Signup(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.render(c, http.StatusOK, "signup.html")
		return
	}

	in := auth.Registration{
		Username:        strings.TrimSpace(c.PostForm("username")),
		Email:           strings.TrimSpace(c.PostForm("email")),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}

	// アカウント作成後にサインインで失敗しないよう、トークンを先に用意する
	token, err := h.sessions.IssueToken()
	if err != nil {
		h.internalError(c, "signup", err)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), in)
	if err != nil {
		var vErr *auth.ValidationError
		if errors.As(err, &vErr) {
			h.redirectWith(c, flash.LevelError, vErr.Message, PathSignup)
			return
		}
		h.internalError(c, "signup", err)
		return
	}

	h.sessions.SignIn(c, account, token)
	h.redirectWith(c, flash.LevelSuccess, msgSignupSucceeded, PathHome)
}

// Login は /login/ のハンドラーです。POST 以外ではフォームを返します。
func (h *Handlers) Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.render(c, http.StatusOK, "login.html")
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	account, err := h.accounts.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.redirectWith(c, flash.LevelError, auth.ErrInvalidCredentials.Message, PathLogin)
			return
		}
		h.internalError(c, "login", err)
		return
	}

	token, err := h.sessions.IssueToken()
	if err != nil {
		h.internalError(c, "login", err)
		return
	}
	h.sessions.SignIn(c, account, token)
	h.redirectWith(c, flash.LevelSuccess, msgLoginSucceeded, PathHome)
}

// Logout は /logout/ のハンドラーです。
func (h *Handlers) Logout(c *gin.Context) {
	h.sessions.SignOut(c)
	h.redirectWith(c, flash.LevelSuccess, msgLoggedOut, PathHome)
}

// render はステータスメッセージを取り出してテンプレートを描画します。
// ログイン中であれば閲覧も操作とみなし、最終操作時刻を更新します。
func (h *Handlers) render(c *gin.Context, status int, name string) {
	session := sessions.Default(c)
	messages := flash.Pop(session)
	user, signedIn := h.sessions.Touch(c)
	if len(messages) > 0 || signedIn {
		if err := session.Save(); err != nil {
			h.logger.Printf("failed to save session while rendering %s: %v", name, err)
		}
	}

	c.HTML(status, name, gin.H{
		"Messages":  messages,
		"User":      user,
		"CSRFToken": h.sessions.CSRFToken(c),
	})
}

func (h *Handlers) redirectWith(c *gin.Context, level flash.Level, text, target string) {
	session := sessions.Default(c)
	flash.Add(session, level, text)
	if err := session.Save(); err != nil {
		h.internalError(c, "save session", err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (h *Handlers) internalError(c *gin.Context, op string, err error) {
	h.logger.Printf("%s failed: %v", op, err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
}
