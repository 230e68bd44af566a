package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reviewhub/internal/auth"
	"reviewhub/internal/config"
	"reviewhub/internal/handler"
	"reviewhub/internal/repository"
)

// Register wires routes and middleware. Reads are public; mutating
// groups sit behind JWT auth plus the per-endpoint policy checks in the
// handlers.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	genreHandler *handler.GenreHandler,
	titleHandler *handler.TitleHandler,
	reviewHandler *handler.ReviewHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/token", authHandler.Token)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/categories", categoryHandler.List)
	api.GET("/genres", genreHandler.List)
	api.GET("/titles", titleHandler.List)
	api.GET("/titles/:id", titleHandler.Get)
	api.GET("/titles/:title_id/reviews", reviewHandler.List)
	api.GET("/titles/:title_id/reviews/:id", reviewHandler.Get)
	api.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.List)
	api.GET("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.Get)

	// Secured routes: valid JWT required, claims resolved to an identity
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
		}),
		resolveCurrentUser(userRepo),
	)

	secured.POST("/categories", categoryHandler.Create)
	secured.DELETE("/categories/:slug", categoryHandler.Delete)
	secured.POST("/genres", genreHandler.Create)
	secured.DELETE("/genres/:slug", genreHandler.Delete)

	secured.POST("/titles", titleHandler.Create)
	secured.PATCH("/titles/:id", titleHandler.Update)
	secured.DELETE("/titles/:id", titleHandler.Delete)

	secured.POST("/titles/:title_id/reviews", reviewHandler.Create)
	secured.PATCH("/titles/:title_id/reviews/:id", reviewHandler.Update)
	secured.DELETE("/titles/:title_id/reviews/:id", reviewHandler.Delete)

	secured.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.Create)
	secured.PATCH("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.Update)
	secured.DELETE("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.Delete)

	secured.GET("/users/me", userHandler.Me)
	secured.PATCH("/users/me", userHandler.UpdateMe)
	secured.GET("/users", userHandler.List)
	secured.POST("/users", userHandler.Create)
	secured.GET("/users/:username", userHandler.Get)
	secured.PATCH("/users/:username", userHandler.Update)
	secured.DELETE("/users/:username", userHandler.Delete)
}

// resolveCurrentUser loads the identity behind validated JWT claims and
// places it on the request context for policy checks.
func resolveCurrentUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return next(c)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			user, err := userRepo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown identity")
			}
			c.Set(handler.ContextUserKey, user)
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
