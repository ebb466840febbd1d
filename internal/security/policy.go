package security

import (
	"regexp"
	"unicode/utf8"
)

const MinPasswordLength = 8

// PasswordRequirements is shown next to every registration form.
const PasswordRequirements = "Senha deve ter: 8+ caracteres, maiúscula, minúscula, número e caractere especial"

type PasswordCheck struct {
	Valid   bool
	Message string
}

type passwordRule struct {
	pattern *regexp.Regexp
	message string
}

// Order matters: the first failing rule is reported.
var passwordRules = []passwordRule{
	{regexp.MustCompile(`[A-Z]`), "Senha deve ter pelo menos uma letra maiúscula"},
	{regexp.MustCompile(`[a-z]`), "Senha deve ter pelo menos uma letra minúscula"},
	{regexp.MustCompile(`[0-9]`), "Senha deve ter pelo menos um número"},
	{regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`), "Senha deve ter pelo menos um caractere especial (!@#$%^&*...)"},
}

const passwordLengthMessage = "Senha deve ter pelo menos 8 caracteres"

func ValidatePassword(password string) PasswordCheck {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return PasswordCheck{Message: passwordLengthMessage}
	}
	for _, rule := range passwordRules {
		if !rule.pattern.MatchString(password) {
			return PasswordCheck{Message: rule.message}
		}
	}
	return PasswordCheck{Valid: true}
}
