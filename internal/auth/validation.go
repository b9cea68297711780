package auth

import "unicode/utf8"

// MinPasswordLength はパスワードの最小文字数です。
const MinPasswordLength = 8

// Registration は登録フォームの入力値です。
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type registrationCheck func(Registration) error

// registrationChecks は先頭から順に評価し、最初の失敗で打ち切ります。
var registrationChecks = []registrationCheck{
	checkPasswordsMatch,
	checkPasswordLength,
}

// ValidateRegistration は登録入力を検証し、最初に失敗したチェックのエラーを返します。
// ユーザー名の重複はここでは判定しません（ストアの作成処理で判定）。
func ValidateRegistration(in Registration) error {
	for _, check := range registrationChecks {
		if err := check(in); err != nil {
			return err
		}
	}
	return nil
}

func checkPasswordsMatch(in Registration) error {
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

func checkPasswordLength(in Registration) error {
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
