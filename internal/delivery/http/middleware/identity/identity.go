package http_identity_middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/common"
	"github.com/MachariaP/RiffTrax-v2/internal/model"
)

// Header carries the opaque per-client identity token.
const Header = "X-user-token"

const contextKey = "user_id"

type Middleware struct {
	logger *slog.Logger
}

func New() *Middleware {
	return &Middleware{
		logger: slog.Default(),
	}
}

// Required rejects requests without an identity token. Use on routes
// where the requester must be attributable (votes, transport control,
// room mutations).
func (m *Middleware) Required() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(Header)
		if t == "" {
			m.logger.Error("no identity header", slog.String("path", ctx.FullPath()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + Header + " header",
			})
			ctx.Abort()
			return
		}

		ctx.Set(contextKey, model.UserID(t))
		ctx.Next()
	}
}

// UserID returns the requester's identity, empty when absent.
func UserID(ctx *gin.Context) model.UserID {
	if v, ok := ctx.Get(contextKey); ok {
		if id, ok := v.(model.UserID); ok {
			return id
		}
	}
	return model.UserID(ctx.GetHeader(Header))
}

// EnsureUserID returns the requester's identity, minting a fresh one
// and echoing it in the response header when the client has none yet.
func EnsureUserID(ctx *gin.Context) model.UserID {
	if id := UserID(ctx); id != model.EmptyUserID {
		return id
	}
	id := model.UserID(uuid.New().String())
	ctx.Header(Header, string(id))
	return id
}
