package app

import (
	"time"

	"github.com/MachariaP/RiffTrax-v2/internal/config"
	http_account "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/account"
	http_init "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/init"
	http_identity_middleware "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/middleware/identity"
	http_playback "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/playback"
	http_room "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/room"
	http_swagger "github.com/MachariaP/RiffTrax-v2/internal/delivery/http/swagger"
	infra_pg_init "github.com/MachariaP/RiffTrax-v2/internal/infra/postgres/init"
	infra_postgres_credential "github.com/MachariaP/RiffTrax-v2/internal/infra/postgres/credential"
	infra_postgres_room "github.com/MachariaP/RiffTrax-v2/internal/infra/postgres/room"
	infra_postgres_vote "github.com/MachariaP/RiffTrax-v2/internal/infra/postgres/vote"
	infra_redis_init "github.com/MachariaP/RiffTrax-v2/internal/infra/redis/init"
	infra_session_cache "github.com/MachariaP/RiffTrax-v2/internal/infra/redis/session"
	infra_spotify "github.com/MachariaP/RiffTrax-v2/internal/infra/spotify"
	usecase_account "github.com/MachariaP/RiffTrax-v2/internal/usecase/account"
	usecase_playback "github.com/MachariaP/RiffTrax-v2/internal/usecase/playback"
	usecase_room "github.com/MachariaP/RiffTrax-v2/internal/usecase/room"
)

const sessionTTL = 24 * time.Hour

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustMigrate(pgConn)

	roomRepository := infra_postgres_room.New(pgConn)
	voteLedger := infra_postgres_vote.New(pgConn)
	credentialStore := infra_postgres_credential.New(pgConn)
	sessionCache := infra_session_cache.New(redisConn, "room_binding", sessionTTL)

	provider := infra_spotify.New(cfg.Spotify, credentialStore)

	roomUC := usecase_room.New(roomRepository)
	accountUC := usecase_account.New(credentialStore, provider)
	playbackUC := usecase_playback.New(roomRepository, voteLedger, provider)

	identity := http_identity_middleware.New()

	controllerPool := http_init.NewControllerPool(cfg.HTTP.Mode)
	controllerPool.Add(http_room.New(roomUC, accountUC, sessionCache, identity))
	controllerPool.Add(http_playback.New(playbackUC, identity))
	controllerPool.Add(http_account.New(accountUC, identity, cfg.Spotify.FrontendURL))
	controllerPool.Add(http_swagger.New())

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
