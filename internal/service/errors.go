package service

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindTransaction
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindTransaction:
		return "transaction"
	default:
		return "internal"
	}
}

// Error carries a message that is safe to show the user next to the
// underlying cause, which is not.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message, or fallback for foreign errors.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// User-facing messages.
const (
	MsgMissingFields      = "Preencha nome e email!"
	MsgUserNotFound       = "Usuário não encontrado!"
	MsgWrongPassword      = "Senha incorreta!"
	MsgLoginFailed        = "Erro no login!"
	MsgPasswordMismatch   = "Senhas não coincidem!"
	MsgEmailTaken         = "Email já cadastrado!"
	MsgRegisterFailed     = "Erro no cadastro!"
	MsgRegistered         = "Cadastro realizado com sucesso!"
	MsgRecoveryNotFound   = "Email não encontrado em nosso sistema"
	MsgRecoverySent       = "Email de recuperação enviado com sucesso! Verifique sua caixa de entrada."
	MsgRecoveryFailed     = "Erro ao processar solicitação. Tente novamente."
	MsgOnboardingRequired = "É necessário informar pelo menos uma instituição e um curso."
	MsgOnboardingFailed   = "Erro ao salvar configurações. Tente novamente."
	MsgOnboardingDone     = "Primeiro acesso já concluído."
)
