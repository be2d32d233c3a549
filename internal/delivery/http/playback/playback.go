package http_playback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/common"
	http_identity_middleware "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/middleware/identity"
	"github.com/MachariaP/RiffTrax-v2/internal/model"
	usecase_playback "github.com/MachariaP/RiffTrax-v2/internal/usecase/playback"
)

type Controller struct {
	usecase  *usecase_playback.Usecase
	identity *http_identity_middleware.Middleware
	logger   *slog.Logger
}

func New(usecase *usecase_playback.Usecase, identity *http_identity_middleware.Middleware) *Controller {
	return &Controller{
		usecase:  usecase,
		identity: identity,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	playback := router.Group("/rooms/:room_code/playback")
	{
		playback.GET("", c.currentTrack)
		playback.PUT("/play", c.identity.Required(), c.play)
		playback.PUT("/pause", c.identity.Required(), c.pause)
		playback.POST("/skip", c.identity.Required(), c.skip)
	}
}

// CurrentTrackResponseDTO mirrors the shape the player UI polls for.
type CurrentTrackResponseDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Duration      int    `json:"duration"`
	Time          int    `json:"time"`
	ImageURL      string `json:"image_url"`
	IsPlaying     bool   `json:"is_playing"`
	Votes         int    `json:"votes"`
	VotesRequired int    `json:"votes_required"`
}

// currentTrack is the polling endpoint. 204 when the host's account
// reports no playback; a track change observed here resets the vote
// tally.
func (c *Controller) currentTrack(ctx *gin.Context) {
	code := ctx.Param("room_code")

	now, err := c.usecase.CurrentTrack(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, usecase_playback.ErrNoPlayback):
			ctx.Status(http.StatusNoContent)
		case errors.Is(err, usecase_playback.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		default:
			c.logger.Error("failed to poll current track", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, CurrentTrackResponseDTO{
		ID:            now.TrackID,
		Title:         now.Title,
		Artist:        now.ArtistLine(),
		Duration:      now.DurationMS,
		Time:          now.ProgressMS,
		ImageURL:      now.ImageURL,
		IsPlaying:     now.Playing,
		Votes:         now.Votes,
		VotesRequired: now.VotesRequired,
	})
}

func (c *Controller) play(ctx *gin.Context) {
	c.transport(ctx, c.usecase.Play)
}

func (c *Controller) pause(ctx *gin.Context) {
	c.transport(ctx, c.usecase.Pause)
}

func (c *Controller) transport(ctx *gin.Context, command func(ctx context.Context, code string, requester model.UserID) error) {
	code := ctx.Param("room_code")
	userID := http_identity_middleware.UserID(ctx)

	if err := command(ctx, code, userID); err != nil {
		switch {
		case errors.Is(err, usecase_playback.ErrForbidden):
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "forbidden",
			})
		case errors.Is(err, usecase_playback.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_playback.ErrProvider):
			c.logger.Error("transport command failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
				Message: "provider call failed",
			})
		default:
			c.logger.Error("transport command failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// skip always answers 204 on success: either the skip executed or the
// vote was recorded, and the client learns which from the next poll.
func (c *Controller) skip(ctx *gin.Context) {
	code := ctx.Param("room_code")
	userID := http_identity_middleware.UserID(ctx)

	if err := c.usecase.RequestSkip(ctx, code, userID); err != nil {
		switch {
		case errors.Is(err, usecase_playback.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_playback.ErrProvider):
			c.logger.Error("skip failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
				Message: "provider call failed",
			})
		default:
			c.logger.Error("skip failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
