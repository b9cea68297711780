// Package flash はリダイレクト後に一度だけ表示するステータスメッセージを提供します。
package flash

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
)

const flashKey = "_messages"

// Level はメッセージの重要度です。
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message はステータスメッセージ1件です。
type Message struct {
	Level Level
	Text  string
}

func init() {
	// cookie ストアは gob でエンコードするため登録が必要
	gob.Register(Message{})
}

// Add はセッションにメッセージを積みます。保存は呼び出し側で行います。
func Add(session sessions.Session, level Level, text string) {
	session.AddFlash(Message{Level: level, Text: text}, flashKey)
}

// Success は成功メッセージを積みます。
func Success(session sessions.Session, text string) {
	Add(session, LevelSuccess, text)
}

// Error はエラーメッセージを積みます。
func Error(session sessions.Session, text string) {
	Add(session, LevelError, text)
}

// Pop は積まれたメッセージを取り出してセッションから取り除きます。
// 取り除いた状態を永続化するには session.Save() が必要です。
func Pop(session sessions.Session) []Message {
	raw := session.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	messages := make([]Message, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(Message); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
