package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorUnsupportedSignatureMethod = "AUTHLIB_UNSUPPORTED_SIGNATURE_METHOD"
	ErrorInvalidKeyMaterial         = "AUTHLIB_INVALID_KEY_MATERIAL"
	ErrorMissingTemporaryCredential = "AUTHLIB_MISSING_TEMPORARY_CREDENTIAL"
	ErrorCallbackNotConfirmed       = "AUTHLIB_CALLBACK_NOT_CONFIRMED"
	ErrorNoTokenAvailable           = "AUTHLIB_NO_TOKEN_AVAILABLE"
	ErrorMalformedCallback          = "AUTHLIB_MALFORMED_CALLBACK"
	ErrorMissingVerifier            = "AUTHLIB_MISSING_VERIFIER"
	ErrorNotAuthorized              = "AUTHLIB_NOT_AUTHORIZED"
	ErrorTokenExchangeFailed        = "AUTHLIB_TOKEN_EXCHANGE_FAILED"
	ErrorBadInput                   = "AUTHLIB_BAD_INPUT"
	ErrorTransportFailure           = "AUTHLIB_TRANSPORT_FAILURE"
	ErrorInternal                   = "AUTHLIB_INTERNAL_ERROR"
)

func ErrUnsupportedSignatureMethod(method string) *goerrors.Error {
	return newError(
		fmt.Sprintf("core: unsupported signature method %q", strings.TrimSpace(method)),
		goerrors.CategoryBadInput,
		ErrorUnsupportedSignatureMethod,
		http.StatusBadRequest,
		map[string]any{"signature_method": strings.TrimSpace(method)},
	)
}

func ErrInvalidKeyMaterial(cause error) *goerrors.Error {
	err := goerrors.Wrap(cause, goerrors.CategoryBadInput, "core: rsa private key parse failed").
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorInvalidKeyMaterial)
	return err
}

func ErrMissingTemporaryCredential(step string, missing ...string) *goerrors.Error {
	return newError(
		fmt.Sprintf("core: response missing %s", strings.Join(missing, ", ")),
		goerrors.CategoryExternal,
		ErrorMissingTemporaryCredential,
		http.StatusBadGateway,
		map[string]any{"step": step, "missing": strings.Join(missing, ",")},
	)
}

func ErrCallbackNotConfirmed(step string) *goerrors.Error {
	return newError(
		"core: server did not confirm oauth_callback",
		goerrors.CategoryExternal,
		ErrorCallbackNotConfirmed,
		http.StatusBadGateway,
		map[string]any{"step": step, "missing": ParamCallbackConfirmed},
	)
}

func ErrNoTokenAvailable(step string) *goerrors.Error {
	return newError(
		"core: no token identifier is available",
		goerrors.CategoryOperation,
		ErrorNoTokenAvailable,
		http.StatusConflict,
		map[string]any{"step": step},
	)
}

func ErrMalformedCallback(missing ...string) *goerrors.Error {
	return newError(
		fmt.Sprintf("core: callback url missing %s", strings.Join(missing, ", ")),
		goerrors.CategoryBadInput,
		ErrorMalformedCallback,
		http.StatusBadRequest,
		map[string]any{"step": "parse_callback", "missing": strings.Join(missing, ",")},
	)
}

func ErrMissingVerifier() *goerrors.Error {
	return newError(
		"core: no oauth_verifier is available",
		goerrors.CategoryOperation,
		ErrorMissingVerifier,
		http.StatusConflict,
		map[string]any{"step": "fetch_access_token", "missing": ParamVerifier},
	)
}

func ErrNotAuthorized(state ClientState) *goerrors.Error {
	return newError(
		"core: access token is required before signing protected-resource requests",
		goerrors.CategoryAuth,
		ErrorNotAuthorized,
		http.StatusUnauthorized,
		map[string]any{"step": "authorized_request", "client_state": string(state)},
	)
}

func ErrTokenExchangeFailed(step string, status int, body []byte) *goerrors.Error {
	return newError(
		fmt.Sprintf("core: token endpoint returned status %d", status),
		goerrors.CategoryExternal,
		ErrorTokenExchangeFailed,
		status,
		map[string]any{"step": step, "status_code": status, "body": truncateBody(body)},
	)
}

func ErrTransportFailure(step string, cause error) *goerrors.Error {
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "core: transport request failed").
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorTransportFailure).
		WithMetadata(map[string]any{"step": step})
}

func newError(message string, category goerrors.Category, textCode string, code int, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// HasTextCode reports whether err carries the given AUTHLIB_* text code.
func HasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}

// MapError folds arbitrary failures into the AUTHLIB_* envelope without
// disturbing errors that already carry one.
func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newError(err.Error(), goerrors.CategoryBadInput, ErrorBadInput, http.StatusBadRequest, nil)
	}
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatusForCategory(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorNotAuthorized
	case goerrors.CategoryExternal:
		return ErrorTransportFailure
	default:
		return ErrorInternal
	}
}

func httpStatusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

const maxErrorBodyBytes = 512

func truncateBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > maxErrorBodyBytes {
		return trimmed[:maxErrorBodyBytes]
	}
	return trimmed
}
