// Package auth はアカウント登録・ログインとセッション管理を提供します。
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/learnvocab/internal/accounts"
	"github.com/yourusername/learnvocab/internal/flash"
)

const (
	SessionCookieName    = "lv_session"
	sessionKeyUserID     = "auth_user_id"
	sessionKeyUser       = "auth_user"
	sessionKeyIssuedAt   = "issued_at"
	sessionKeyLastActive = "last_activity"
	sessionKeyCSRF       = "csrf_token"

	csrfHeader    = "X-CSRF-Token"
	csrfFormField = "csrf_token"
)

var (
	maxSessionLifetime = 12 * time.Hour
	idleTimeout        = 30 * time.Minute
)

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(maxSessionLifetime.Seconds())
}

// ContextUserKey は、ハンドラー間でログイン済みユーザー名を共有するためのキーです。
const ContextUserKey = "auth.user"

// Manager はセッションへの認証状態の結び付けを担います。
type Manager struct {
	loginPath string
	now       func() time.Time
	newToken  func() (string, error)
}

// Option は Manager の設定を変更します。
type Option func(*Manager)

// WithTokenGenerator は CSRF トークンの生成方法を差し替えます。
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(m *Manager) {
		m.newToken = fn
	}
}

// NewManager はセッションマネージャーを作成します。loginPath は未ログイン時のリダイレクト先です。
func NewManager(loginPath string, opts ...Option) *Manager {
	m := &Manager{
		loginPath: loginPath,
		now:       time.Now,
		newToken:  generateToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IssueToken はサインイン用の CSRF トークンを生成します。
// アカウント作成などの副作用より前に呼び、失敗時は何も変更しないようにします。
func (m *Manager) IssueToken() (string, error) {
	return m.newToken()
}

// SignIn はアカウントを現在のセッションに結び付けます。
// 既存のセッション内容は破棄します。保存は呼び出し側で行います。
func (m *Manager) SignIn(c *gin.Context, account *accounts.Account, csrfToken string) {
	session := sessions.Default(c)
	now := m.now()
	session.Clear()
	session.Set(sessionKeyUserID, account.ID)
	session.Set(sessionKeyUser, account.Username)
	session.Set(sessionKeyIssuedAt, now.Unix())
	session.Set(sessionKeyLastActive, now.Unix())
	session.Set(sessionKeyCSRF, csrfToken)
}

// SignOut はセッションから認証状態を取り除きます。
func (m *Manager) SignOut(c *gin.Context) {
	sessions.Default(c).Clear()
}

// CurrentUser は有効なセッションのユーザー名を返します。
func (m *Manager) CurrentUser(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	user, ok := session.Get(sessionKeyUser).(string)
	if !ok || user == "" {
		return "", false
	}
	if m.expired(session) {
		return "", false
	}
	return user, true
}

// Touch は有効なセッションの最終操作時刻を更新し、ユーザー名を返します。
// 保存は呼び出し側で行います。
func (m *Manager) Touch(c *gin.Context) (string, bool) {
	user, ok := m.CurrentUser(c)
	if !ok {
		return "", false
	}
	sessions.Default(c).Set(sessionKeyLastActive, m.now().Unix())
	return user, true
}

// CSRFToken はセッションに紐づく CSRF トークンを返します（未ログインなら空文字）。
func (m *Manager) CSRFToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(sessionKeyCSRF).(string)
	return token
}

// RequireLogin はセッションを検証するミドルウェアを返します。
// 最終操作時刻の更新は後続のハンドラーがセッションを保存したときに反映されます。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		user, ok := session.Get(sessionKeyUser).(string)
		if !ok || user == "" {
			m.redirectToLogin(c, "Please log in to continue.")
			return
		}

		if m.expired(session) {
			session.Clear()
			m.redirectToLogin(c, "Your session has expired. Please log in again.")
			return
		}

		session.Set(sessionKeyLastActive, m.now().Unix())
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// VerifyCSRF は X-CSRF-Token ヘッダーまたは csrf_token フィールドを検証するミドルウェアです。
func (m *Manager) VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		session := sessions.Default(c)
		expected, ok := session.Get(sessionKeyCSRF).(string)
		if !ok || expected == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "CSRF_MISSING",
				"message": "CSRF token is not set",
			})
			return
		}

		received := c.GetHeader(csrfHeader)
		if received == "" {
			received = c.PostForm(csrfFormField)
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "CSRF_INVALID",
				"message": "CSRF token does not match",
			})
			return
		}

		c.Next()
	}
}

func (m *Manager) expired(session sessions.Session) bool {
	now := m.now()
	issuedAt := readUnix(session.Get(sessionKeyIssuedAt))
	lastActive := readUnix(session.Get(sessionKeyLastActive))

	if issuedAt.IsZero() || now.Sub(issuedAt) > maxSessionLifetime {
		return true
	}
	if lastActive.IsZero() || now.Sub(lastActive) > idleTimeout {
		return true
	}
	return false
}

func (m *Manager) redirectToLogin(c *gin.Context, message string) {
	session := sessions.Default(c)
	flash.Error(session, message)
	_ = session.Save()
	c.Redirect(http.StatusFound, m.loginPath)
	c.Abort()
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func readUnix(v interface{}) time.Time {
	switch t := v.(type) {
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	default:
		return time.Time{}
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
