package models

import "net/http"

// MediaTypeJSON — единственный тип содержимого, который понимает REST API мессенджера.
const MediaTypeJSON = "application/json"

// NetworkRequest описывает один HTTP-вызов; строится эндпоинтом, исполняется сессией.
type NetworkRequest struct {
	Path        string
	Method      string
	ContentType string
	AcceptType  string
	// SendCookie — приложить cookie аккаунта (нужно только /access).
	SendCookie bool
}

// JSONRequest — GET-запрос с JSON content/accept.
func JSONRequest(path string) NetworkRequest {
	return NetworkRequest{
		Path:        path,
		Method:      http.MethodGet,
		ContentType: MediaTypeJSON,
		AcceptType:  MediaTypeJSON,
	}
}

// SuccessResponse — 2xx ответ до разбора эндпоинтом.
type SuccessResponse struct {
	Status int
	Data   []byte
}

// ErrorResponse — структурированная ошибка сервера {code,label,message}.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// NetworkResponse — результат транспорта: ровно одно из success/failure.
type NetworkResponse struct {
	success *SuccessResponse
	failure *ErrorResponse
}

// Succeeded оборачивает успешный ответ.
func Succeeded(r SuccessResponse) NetworkResponse { return NetworkResponse{success: &r} }

// Failed оборачивает ошибку сервера.
func Failed(r ErrorResponse) NetworkResponse { return NetworkResponse{failure: &r} }

// Success возвращает успешный ответ и признак его наличия.
func (r NetworkResponse) Success() (SuccessResponse, bool) {
	if r.success == nil {
		return SuccessResponse{}, false
	}

	return *r.success, true
}

// Failure возвращает ошибку сервера и признак её наличия.
func (r NetworkResponse) Failure() (ErrorResponse, bool) {
	if r.failure == nil {
		return ErrorResponse{}, false
	}

	return *r.failure, true
}
