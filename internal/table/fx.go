package table

import (
	"github.com/smallbiznis/seatcounter/internal/table/repository"
	"github.com/smallbiznis/seatcounter/internal/table/service"
	"go.uber.org/fx"
)

var Module = fx.Module("table.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
