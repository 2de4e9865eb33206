package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// Заголовки сессии, которые выставляет шлюз после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderSchoolID = "X-School-ID"
	HeaderBranchID = "X-Branch-ID"
)

const msgUnauthorized = "требуется авторизация: заголовки X-User-ID, X-School-ID и X-Branch-ID обязательны"

type sessionKey struct{}

// Auth заполняет domain.SessionContext из заголовков запроса
// Это единственное место, где читается сессия; use cases получают её явно
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromHeaders(r)
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// WithSession кладёт сессию в контекст
func WithSession(ctx context.Context, session domain.SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext возвращает сессию, установленную Auth
func SessionFromContext(ctx context.Context) (domain.SessionContext, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.SessionContext)
	return session, ok
}

func sessionFromHeaders(r *http.Request) (domain.SessionContext, bool) {
	var session domain.SessionContext
	for header, dst := range map[string]*int64{
		HeaderUserID:   &session.UserID,
		HeaderSchoolID: &session.SchoolID,
		HeaderBranchID: &session.BranchID,
	} {
		v, err := strconv.ParseInt(r.Header.Get(header), 10, 64)
		if err != nil {
			return domain.SessionContext{}, false
		}
		*dst = v
	}
	return session, session.IsValid()
}
