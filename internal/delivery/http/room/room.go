package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/common"
	http_identity_middleware "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/middleware/identity"
	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_account "github.com/MachariaP/RiffTrax-v2/internal/usecase/account"
	usecase_room "github.com/MachariaP/RiffTrax-v2/internal/usecase/room"
)

// SessionBinder remembers which room a client joined so the frontend
// can restore its session after a reload.
type SessionBinder interface {
	Bind(userID model.UserID, code string) error
	BoundRoom(userID model.UserID) (string, error)
	Unbind(userID model.UserID) error
}

type Controller struct {
	usecase  *usecase_room.Usecase
	accounts *usecase_account.Usecase
	sessions SessionBinder
	identity *http_identity_middleware.Middleware
	logger   *slog.Logger
}

func New(
	usecase *usecase_room.Usecase,
	accounts *usecase_account.Usecase,
	sessions SessionBinder,
	identity *http_identity_middleware.Middleware,
) *Controller {
	return &Controller{
		usecase:  usecase,
		accounts: accounts,
		sessions: sessions,
		identity: identity,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_code", c.detail)
		rooms.PATCH("/:room_code", c.identity.Required(), c.update)
		rooms.DELETE("/:room_code", c.identity.Required(), c.leave)
		rooms.POST("/:room_code/participants", c.join)
	}
	router.GET("/me/room", c.identity.Required(), c.currentRoom)
}

type RoomPolicyRequestDTO struct {
	GuestCanPause bool `json:"guest_can_pause"`
	VotesToSkip   int  `json:"votes_to_skip" binding:"required,min=1"`
}

type RoomResponseDTO struct {
	Code                 string `json:"code"`
	GuestCanPause        bool   `json:"guest_can_pause"`
	VotesToSkip          int    `json:"votes_to_skip"`
	IsHost               bool   `json:"is_host"`
	SpotifyAuthenticated bool   `json:"spotify_authenticated"`
}

// create books a room for the requester, or updates the policy of the
// room they already host. Issues an identity token when the client has
// none.
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Success 201 {object} RoomResponseDTO
// @Header 201 {string} X-user-token "Identity token for the host"
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 503 {object} http_common.ErrorResponse
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req RoomPolicyRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	userID := http_identity_middleware.EnsureUserID(ctx)

	room, err := c.usecase.Create(ctx, userID, req.GuestCanPause, req.VotesToSkip)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrInvalidThreshold):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "votes_to_skip must be positive",
			})
		case errors.Is(err, usecase_room.ErrRoomsUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	if err := c.sessions.Bind(userID, room.Code); err != nil {
		c.logger.Error("failed to bind session", slog.String("error", err.Error()))
	}

	ctx.JSON(http.StatusCreated, c.roomDTO(ctx, room, userID))
}

// @Summary Join a room by code
// @Tags Rooms
// @Produce json
// @Param room_code path string true "Room code"
// @Success 200 {object} RoomResponseDTO
// @Header 200 {string} X-user-token "Identity token for the guest"
// @Failure 404 {object} http_common.ErrorResponse
// @Router /rooms/{room_code}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("room_code")
	userID := http_identity_middleware.EnsureUserID(ctx)

	room, err := c.usecase.Join(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to join room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	if err := c.sessions.Bind(userID, room.Code); err != nil {
		c.logger.Error("failed to bind session", slog.String("error", err.Error()))
	}

	ctx.JSON(http.StatusOK, c.roomDTO(ctx, room, userID))
}

// @Summary Room details
// @Tags Rooms
// @Produce json
// @Param room_code path string true "Room code"
// @Success 200 {object} RoomResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /rooms/{room_code} [get]
func (c *Controller) detail(ctx *gin.Context) {
	code := ctx.Param("room_code")
	userID := http_identity_middleware.UserID(ctx)

	room, err := c.usecase.Get(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, c.roomDTO(ctx, room, userID))
}

// @Summary Update room policy
// @Tags Rooms
// @Accept json
// @Param room_code path string true "Room code"
// @Success 200 {object} RoomResponseDTO
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Security UserToken
// @Router /rooms/{room_code} [patch]
func (c *Controller) update(ctx *gin.Context) {
	code := ctx.Param("room_code")
	userID := http_identity_middleware.UserID(ctx)

	var req RoomPolicyRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.usecase.UpdatePolicy(ctx, code, userID, req.GuestCanPause, req.VotesToSkip)
	if err != nil {
		c.logger.Error("failed to update room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_room.ErrNotHost):
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "only the host may change room policy",
			})
		case errors.Is(err, usecase_room.ErrInvalidThreshold):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "votes_to_skip must be positive",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, c.roomDTO(ctx, room, userID))
}

// leave unbinds the session. When the host leaves, the room is torn
// down and its votes cascade away with it.
// @Summary Leave a room
// @Tags Rooms
// @Param room_code path string true "Room code"
// @Success 204
// @Failure 404 {object} http_common.ErrorResponse
// @Security UserToken
// @Router /rooms/{room_code} [delete]
func (c *Controller) leave(ctx *gin.Context) {
	code := ctx.Param("room_code")
	userID := http_identity_middleware.UserID(ctx)

	room, err := c.usecase.Get(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to leave room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	if room.IsHost(userID) {
		if err := c.usecase.Teardown(ctx, code, userID); err != nil {
			c.logger.Error("failed to tear down room", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
	}

	if err := c.sessions.Unbind(userID); err != nil {
		c.logger.Error("failed to unbind session", slog.String("error", err.Error()))
	}

	ctx.Status(http.StatusNoContent)
}

type CurrentRoomResponseDTO struct {
	Code string `json:"code"`
}

// currentRoom answers "which room did this session join".
func (c *Controller) currentRoom(ctx *gin.Context) {
	userID := http_identity_middleware.UserID(ctx)

	code, err := c.sessions.BoundRoom(userID)
	if err != nil {
		c.logger.Error("failed to read session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	if code == "" {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not in a room",
		})
		return
	}

	// The bound room may have been torn down since.
	if _, err := c.usecase.Get(ctx, code); err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			_ = c.sessions.Unbind(userID)
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not in a room",
			})
			return
		}
		c.logger.Error("failed to verify room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, CurrentRoomResponseDTO{Code: code})
}

func (c *Controller) roomDTO(ctx *gin.Context, room model.Room, viewer model.UserID) RoomResponseDTO {
	dto := RoomResponseDTO{
		Code:          room.Code,
		GuestCanPause: room.GuestCanPause,
		VotesToSkip:   room.VotesToSkip,
		IsHost:        room.IsHost(viewer),
	}

	linked, err := c.accounts.IsAuthenticated(ctx, room.HostID)
	if err != nil {
		c.logger.Error("failed to check provider link", slog.String("error", err.Error()))
		return dto
	}
	dto.SpotifyAuthenticated = linked

	return dto
}
