package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

const contextSessionKey = "session"

type (
	LoginRequest struct {
		Identifier string `json:"identifier"` // teacher email, student ID or email
		Password   string `json:"password"`
		Role       string `json:"role"`
	}

	LoginResponse struct {
		Token   string       `json:"token"`
		Session auth.Session `json:"session"`
	}
)

// sessionMiddleware restores the session carried by the "Authorization: Bearer <token>" header.
func sessionMiddleware(svc *auth.Service) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, ctx echo.Context) (bool, error) {
			sess, ok := svc.Restore(token)
			if ok {
				ctx.Set(contextSessionKey, sess)
			}
			return ok, nil
		},
		ErrorHandler: func(error, echo.Context) error {
			return errUnauthorized
		},
	})
}

func contextSession(ctx echo.Context) (auth.Session, bool) {
	sess, ok := ctx.Get(contextSessionKey).(auth.Session)
	return sess, ok
}

func mustContextSession(ctx echo.Context) (auth.Session, error) {
	if sess, ok := contextSession(ctx); ok {
		return sess, nil
	}
	return auth.Session{}, errUnauthorized
}

func roleMiddleware(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := mustContextSession(ctx)
			if err != nil {
				return err
			}
			if sess.Role != role {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

var (
	teacherOnly = roleMiddleware(user.RoleTeacher)
	studentOnly = roleMiddleware(user.RoleStudent)
)

type authApi struct {
	svc *auth.Service
}

func registerAuthAPI(g *echo.Group, authn echo.MiddlewareFunc, svc *auth.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.GET("/me", api.me, authn)
	ag.POST("/logout", api.logout, authn)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	sess, token, err := api.svc.Login(ctx.Request().Context(), data.Identifier, data.Password, user.ParseRole(data.Role))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Session: sess})
}

func (api *authApi) me(ctx echo.Context) error {
	sess, err := mustContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess)
}

// logout has nothing to revoke: tokens are stateless and the client drops its copy.
func (api *authApi) logout(ctx echo.Context) error {
	return ctx.NoContent(http.StatusNoContent)
}
