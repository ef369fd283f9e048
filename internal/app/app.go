package app

import (
	"context"
	"log/slog"

	"github.com/Skotchmaster/academic_records/internal/config"
	"github.com/Skotchmaster/academic_records/internal/db"
	"github.com/Skotchmaster/academic_records/internal/events"
	"github.com/Skotchmaster/academic_records/internal/hash"
	"github.com/Skotchmaster/academic_records/internal/httpserver"
	"github.com/Skotchmaster/academic_records/internal/middleware"
	"github.com/Skotchmaster/academic_records/internal/repo"
	"github.com/Skotchmaster/academic_records/internal/service"
	"github.com/Skotchmaster/academic_records/internal/tokens"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type App struct {
	Echo   *echo.Echo
	Repo   *repo.GormRepo
	Codec  *tokens.Codec
	Events events.Publisher
}

// New wires the store, hasher, codec and guard into an echo instance.
// Every collaborator is built here and passed down explicitly.
func New(cfg config.Config, gdb *gorm.DB, logger *slog.Logger, pub events.Publisher) *App {
	if pub == nil {
		pub = events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	rp := repo.NewGormRepo(gdb)
	codec := tokens.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:   rp,
				Hasher: hash.NewHasher(cfg.BcryptCost),
				Tokens: codec,
				Events: pub,
			},
		},
		StaffHandler: &httpserver.StaffHTTP{Roles: rp},
		Guard:        middleware.NewGuard(codec, rp),
		Ready:        func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}

	return &App{
		Echo:   httpserver.New(deps, logger, cfg.RequestTimeout),
		Repo:   rp,
		Codec:  codec,
		Events: pub,
	}
}
