// network исполняет типизированные эндпоинты REST API мессенджера от имени одного аккаунта.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/credentials"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/pkg/redact"
)

var (
	// ErrInvalidRequestURL — из пути запроса и базового URL не собирается URL.
	ErrInvalidRequestURL = errors.New("invalid request url")
	// ErrInvalidResponse — нет HTTP-ответа, ответ не JSON или тело ошибки не разбирается.
	ErrInvalidResponse = errors.New("invalid response")
)

// DefaultBaseURL — продовый REST API.
const DefaultBaseURL = "https://prod-nginz-https.wire.com"

// maxBodyBytes ограничивает чтение тела ответа.
const maxBodyBytes = 4 << 20

// Doer — транспорт; *http.Client ему удовлетворяет.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session — сетевая сессия одного аккаунта на время одной Job.
// AccessToken пишется один раз после получения токена и читается последующими Send.
type Session struct {
	userID    uuid.UUID
	baseURL   string
	doer      Doer
	log       *slog.Logger
	userAgent string
	cookie    string

	mu    sync.RWMutex
	token models.AccessToken
}

// Option настраивает Session.
type Option func(*Session)

func WithBaseURL(u string) Option { return func(s *Session) { s.baseURL = u } }

func WithTransport(d Doer) Option {
	return func(s *Session) {
		if d != nil {
			s.doer = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithUserAgent(ua string) Option { return func(s *Session) { s.userAgent = ua } }

// NewSession создаёт сессию аккаунта.
// Контракт:
//  1. cookie аккаунта читается из store один раз; отсутствие cookie — не ошибка,
//     сессия просто не аутентифицирована;
//  2. любая другая ошибка хранилища — ошибка конструирования.
func NewSession(ctx context.Context, userID uuid.UUID, store credentials.Store, opts ...Option) (*Session, error) {
	const op = "network.session.NewSession"

	if store == nil {
		return nil, fmt.Errorf("%s: nil credentials store", op)
	}

	s := &Session{
		userID:  userID,
		baseURL: DefaultBaseURL,
		doer:    http.DefaultClient,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cookie, err := store.Cookie(ctx, userID)
	switch {
	case err == nil:
		s.cookie = cookie
	case errors.Is(err, credentials.ErrNotFound):
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// UserID — аккаунт, от имени которого работает сессия.
func (s *Session) UserID() uuid.UUID { return s.userID }

// IsAuthenticated — для аккаунта сохранена cookie.
func (s *Session) IsAuthenticated() bool { return s.cookie != "" }

func (s *Session) SetAccessToken(t models.AccessToken) {
	s.mu.Lock()
	s.token = t
	s.mu.Unlock()
}

func (s *Session) AccessToken() models.AccessToken {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Send выполняет один запрос без повторов.
// Контракт:
//  1. пустой путь или несобираемый URL — ErrInvalidRequestURL;
//  2. заголовки Content-Type/Accept из запроса, Authorization при наличии токена,
//     Cookie при SendCookie, User-Agent;
//  3. ошибки транспорта (включая отмену ctx) возвращаются как есть;
//  4. нет ответа или ответ не application/json — ErrInvalidResponse;
//  5. 2xx — SuccessResponse, иначе тело разбирается как ErrorResponse.
func (s *Session) Send(ctx context.Context, req models.NetworkRequest) (models.NetworkResponse, error) {
	const op = "network.session.Send"

	target, err := s.requestURL(req.Path)
	if err != nil {
		return models.NetworkResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return models.NetworkResponse{}, fmt.Errorf("%s: %w: %v", op, ErrInvalidRequestURL, err)
	}
	s.applyHeaders(httpReq, req)

	resp, err := s.doer.Do(httpReq)
	if err != nil {
		return models.NetworkResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if resp == nil {
		return models.NetworkResponse{}, fmt.Errorf("%s: %w: no response", op, ErrInvalidResponse)
	}
	defer resp.Body.Close()

	if !isJSON(resp.Header.Get("Content-Type")) {
		s.log.Debug("session_unexpected_content_type",
			slog.String("op", op),
			slog.String("path", req.Path),
			slog.String("content_type", resp.Header.Get("Content-Type")),
		)
		return models.NetworkResponse{}, fmt.Errorf("%s: %w: content type %q", op, ErrInvalidResponse, resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.NetworkResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return models.Succeeded(models.SuccessResponse{Status: resp.StatusCode, Data: body}), nil
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return models.NetworkResponse{}, fmt.Errorf("%s: %w: undecodable error body", op, ErrInvalidResponse)
	}

	return models.Failed(errResp), nil
}

func (s *Session) requestURL(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidRequestURL
	}

	base, err := url.Parse(s.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", ErrInvalidRequestURL
	}

	ref, err := url.Parse(path)
	if err != nil || ref.IsAbs() || ref.Host != "" {
		return "", ErrInvalidRequestURL
	}

	u := base.JoinPath(ref.Path)
	u.RawQuery = ref.RawQuery

	return u.String(), nil
}

func (s *Session) applyHeaders(httpReq *http.Request, req models.NetworkRequest) {
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if req.AcceptType != "" {
		httpReq.Header.Set("Accept", req.AcceptType)
	}
	if t := s.AccessToken(); !t.IsZero() {
		httpReq.Header.Set("Authorization", t.AuthorizationHeader())
	}
	if req.SendCookie && s.cookie != "" {
		httpReq.Header.Set("Cookie", s.cookie)
	}
	if s.userAgent != "" {
		httpReq.Header.Set("User-Agent", s.userAgent)
	}
}

// LogValue — сессия в логах без секретов.
func (s *Session) LogValue() slog.Value {
	tok := s.AccessToken()
	attrs := []slog.Attr{
		slog.String("user_id", s.userID.String()),
		slog.Bool("authenticated", s.IsAuthenticated()),
	}
	if !tok.IsZero() {
		attrs = append(attrs, slog.String("authorization", redact.Authorization(tok.AuthorizationHeader())))
	}

	return slog.GroupValue(attrs...)
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mt == models.MediaTypeJSON
}
