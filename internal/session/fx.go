package session

import (
	"github.com/smallbiznis/seatcounter/internal/session/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("session.repository",
	fx.Provide(repository.Provide),
)
