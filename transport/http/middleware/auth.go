package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"trekking/infras/otel"
	authService "trekking/internal/domains/auth/service"
	"trekking/shared/constant"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	auth authService.Auth
	otel otel.Otel
}

func NewAuthMiddleware(auth authService.Auth, otel otel.Otel) Auth {
	return &authImpl{
		auth: auth,
		otel: otel,
	}
}

// Auth puts the caller's booking API token on the context when one can be resolved.
// It never rejects a request: an unusable token is dropped, the booking API answers 401
// and the page turns that into a login redirect that returns to where the traveller was.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		ctx, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		sessionID := request.Header.Get(constant.RequestHeaderSessionID)

		if authHeader == constant.Empty && sessionID == constant.Empty {
			scope.SetAttribute("auth.source", "anonymous")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		creds, err := m.auth.Authenticate(ctx, authHeader, sessionID)
		if err != nil {
			log.Debug().Err(err).Msg("dropping unusable credentials")

			scope.SetAttribute("auth.source", "rejected")
			scope.AddEvent(err.Error())
			scope.End()

			next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), constant.ContextKeySessionID, sessionID)))

			return
		}

		ctx = request.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyAccessToken, creds.AccessToken)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, creds.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, creds.Email)
		ctx = context.WithValue(ctx, constant.ContextKeySessionID, sessionID)

		scope.SetAttribute("auth.source", "token")
		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
