package contestantservice

import (
	"log/slog"

	httpadapter "ovation/contexts/event-voting/contestant-service/adapters/http"
	"ovation/contexts/event-voting/contestant-service/adapters/memory"
	"ovation/contexts/event-voting/contestant-service/application/commands"
	"ovation/contexts/event-voting/contestant-service/application/queries"
	"ovation/contexts/event-voting/contestant-service/domain/entities"
	"ovation/contexts/event-voting/contestant-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Contestants ports.ContestantRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Contestants: commands.ContestantUseCase{
				Contestants: deps.Contestants,
				Clock:       deps.Clock,
				IDGen:       deps.IDGen,
				Logger:      deps.Logger,
			},
			Listing: queries.ListingUseCase{Contestants: deps.Contestants},
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Contestant, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Contestants: store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
