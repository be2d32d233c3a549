package http_account

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/common"
	http_identity_middleware "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/middleware/identity"
	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_account "github.com/MachariaP/RiffTrax-v2/internal/usecase/account"
)

type Controller struct {
	usecase     *usecase_account.Usecase
	identity    *http_identity_middleware.Middleware
	frontendURL string
	logger      *slog.Logger
}

func New(usecase *usecase_account.Usecase, identity *http_identity_middleware.Middleware, frontendURL string) *Controller {
	return &Controller{
		usecase:     usecase,
		identity:    identity,
		frontendURL: frontendURL,
		logger:      slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth/spotify")
	{
		auth.GET("/url", c.authURL)
		auth.GET("/callback", c.callback)
		auth.GET("/status", c.identity.Required(), c.status)
	}
}

type AuthURLResponseDTO struct {
	URL string `json:"url"`
}

// authURL hands the client the provider consent URL. The identity
// token rides in the OAuth state so the callback can attribute the
// exchanged tokens.
func (c *Controller) authURL(ctx *gin.Context) {
	userID := http_identity_middleware.EnsureUserID(ctx)

	ctx.JSON(http.StatusOK, AuthURLResponseDTO{
		URL: c.usecase.AuthURL(userID),
	})
}

// callback is hit by the provider redirect, not by our frontend.
// After storing the tokens the browser is sent back home.
func (c *Controller) callback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")
	if code == "" || state == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "missing code or state",
		})
		return
	}

	if err := c.usecase.HandleCallback(ctx, model.UserID(state), code); err != nil {
		c.logger.Error("spotify callback failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "authorization failed",
		})
		return
	}

	ctx.Redirect(http.StatusFound, c.frontendURL)
}

type AuthStatusResponseDTO struct {
	Status bool `json:"status"`
}

func (c *Controller) status(ctx *gin.Context) {
	userID := http_identity_middleware.UserID(ctx)

	ok, err := c.usecase.IsAuthenticated(ctx, userID)
	if err != nil {
		c.logger.Error("failed to check auth status", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, AuthStatusResponseDTO{Status: ok})
}
