package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"trackline/internal/auth"
	"trackline/internal/config"
	"trackline/internal/handler"
	"trackline/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	userService service.UserService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	runHandler *handler.RunHandler,
	featureHandler *handler.FeatureHandler,
	todoHandler *handler.ToDoHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/users/register", userHandler.Register)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), principalMiddleware(authService, userService))

	secured.POST("/auth/logout", authHandler.Logout)

	// Profile routes
	secured.GET("/me", userHandler.Me)
	secured.PUT("/me/password", userHandler.ChangePassword)

	// User management routes
	secured.GET("/users", userHandler.Search)
	secured.PUT("/users/:id/role", userHandler.ChangeRole)
	secured.POST("/users/:id/password-reset", userHandler.ForcePasswordReset)

	// Project routes
	secured.POST("/projects", projectHandler.Create)
	secured.GET("/projects", projectHandler.Search)
	secured.GET("/projects/:id", projectHandler.Get)
	secured.PUT("/projects/:id", projectHandler.Update)
	secured.DELETE("/projects/:id", projectHandler.Delete)
	secured.POST("/projects/:id/members/:userId", projectHandler.AddMember)
	secured.DELETE("/projects/:id/members/:userId", projectHandler.RemoveMember)

	// Run routes
	secured.POST("/projects/:projectId/runs", runHandler.Create)
	secured.GET("/projects/:projectId/runs", runHandler.Search)
	secured.GET("/runs/:id", runHandler.Get)
	secured.PUT("/runs/:id", runHandler.Update)
	secured.DELETE("/runs/:id", runHandler.Delete)

	// Feature routes
	secured.POST("/projects/:projectId/features", featureHandler.Create)
	secured.GET("/projects/:projectId/features", featureHandler.SearchByProject)
	secured.GET("/runs/:runId/features", featureHandler.SearchByRun)
	secured.GET("/features/:id", featureHandler.Get)
	secured.PUT("/features/:id", featureHandler.Update)
	secured.DELETE("/features/:id/run", featureHandler.Unschedule)
	secured.DELETE("/features/:id", featureHandler.Delete)

	// ToDo routes
	secured.POST("/features/:featureId/todos", todoHandler.Create)
	secured.GET("/features/:featureId/todos", todoHandler.Search)
	secured.GET("/todos/:id", todoHandler.Get)
	secured.PUT("/todos/:id", todoHandler.Update)
	secured.DELETE("/todos/:id", todoHandler.Delete)

	// Comment routes
	secured.POST("/todos/:todoId/comments", commentHandler.Create)
	secured.GET("/todos/:todoId/comments", commentHandler.Search)
	secured.GET("/comments/:id", commentHandler.Get)
	secured.PUT("/comments/:id", commentHandler.Update)
	secured.DELETE("/comments/:id", commentHandler.Delete)
}

// principalMiddleware turns validated JWT claims into a fully resolved
// principal, rejecting revoked tokens. Every access-checked operation
// downstream receives the loaded User, never raw claims.
func principalMiddleware(authService service.AuthService, userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			revoked, err := authService.IsRevoked(c.Request().Context(), claims)
			if err != nil || revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			user, err := userService.GetByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown principal")
			}

			c.Set(handler.PrincipalKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
