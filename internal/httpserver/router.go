package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"merchstore/internal/domain"
	"merchstore/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionCookie = "merch_session"

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type identityService interface {
	SessionToken(sessionID string) string
	UserByToken(ctx context.Context, token string) (*domain.User, error)
}

type orderReader interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Deps carries the wired collaborators for the router.
type Deps struct {
	Sessions   *session.Manager
	CatalogSvc catalogService
	Identity   identityService
	OrderRepo  orderReader
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if deps.Sessions == nil {
		return nil, errors.New("session manager required")
	}
	if deps.CatalogSvc == nil {
		return nil, errors.New("catalog service required")
	}
	if deps.Identity == nil {
		return nil, errors.New("identity service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))

	withSession := router.Group("", sessionMiddleware(deps.Sessions))
	{
		withSession.GET("/cart", getCartHandler())
		withSession.POST("/cart/items", addCartItemHandler(deps.CatalogSvc))
		withSession.PATCH("/cart/items/:id", updateCartItemHandler())
		withSession.DELETE("/cart/items/:id", removeCartItemHandler())
		withSession.DELETE("/cart", clearCartHandler())

		withSession.POST("/auth/signup", signUpHandler())
		withSession.POST("/auth/signin", signInHandler(deps.Identity))
		withSession.POST("/auth/signout", signOutHandler())
		withSession.GET("/auth/me", currentUserHandler(deps.Identity))

		withSession.POST("/checkout", checkoutHandler())
		withSession.GET("/orders", listOrdersHandler(deps.OrderRepo))
	}

	return router, nil
}

// sessionMiddleware resolves the caller's session from a cookie, creating a
// fresh session (and cookie) when absent or unknown.
func sessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess := sessions.GetOrCreate(id)
		if sess.ID != id {
			c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
		}
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

const sessionCtxKey = "storefront.session"

func currentSession(c *gin.Context) *session.Session {
	v, _ := c.Get(sessionCtxKey)
	sess, _ := v.(*session.Session)
	return sess
}

func notFoundResponse(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}
