// Package web はランディング・登録・ログインの HTML ハンドラーを提供します。
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// リダイレクト先（論理名 home, signup, login）
const (
	PathHome   = "/"
	PathSignup = "/signup/"
	PathLogin  = "/login/"
	PathLogout = "/logout/"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// LoadTemplates は埋め込みテンプレートをエンジンに登録します。
func LoadTemplates(router *gin.Engine) {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)
}

// StaticFS は /static 配下で配信する静的ファイルを返します。
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
