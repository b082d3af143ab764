package salesclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrorKind classifica a falha de uma chamada à API
type ErrorKind string

const (
	KindTransport ErrorKind = "transport" // rede, DNS, timeout
	KindStatus    ErrorKind = "status"    // status não 2xx
	KindMalformed ErrorKind = "malformed" // corpo inesperado
)

// APIError é a falha normalizada. Message já é legível para o usuário.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsKind verifica se err é um *APIError do tipo informado
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Message extrai a mensagem legível de qualquer erro
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func transportError(err error) *APIError {
	return &APIError{
		Kind:    KindTransport,
		Message: "Não foi possível conectar ao servidor: " + err.Error(),
		Err:     err,
	}
}

func malformedError(err error) *APIError {
	return &APIError{
		Kind:    KindMalformed,
		Message: "Resposta inesperada do servidor",
		Err:     err,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusError lê o corpo { error } quando existir; caso contrário usa o status HTTP
func statusError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Kind:       KindStatus,
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("Falha na requisição (%s)", resp.Status),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		apiErr.Err = err
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case strings.TrimSpace(body.Error) != "":
			apiErr.Message = body.Error
		case strings.TrimSpace(body.Message) != "":
			apiErr.Message = body.Message
		}
	}

	apiErr.Err = fmt.Errorf("status %d", resp.StatusCode)
	return apiErr
}
