package votingengine

import (
	"log/slog"
	"time"

	httpadapter "ovation/contexts/event-voting/voting-engine/adapters/http"
	"ovation/contexts/event-voting/voting-engine/adapters/memory"
	"ovation/contexts/event-voting/voting-engine/application/commands"
	"ovation/contexts/event-voting/voting-engine/application/queries"
	"ovation/contexts/event-voting/voting-engine/domain/entities"
	"ovation/contexts/event-voting/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ledger      ports.VerificationLedger
	Tally       ports.TallyRepository
	Contestants ports.ContestantDirectory
	Weights     ports.WeightResolver
	Delivery    ports.CodeDelivery
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	CodeGen     ports.CodeGenerator
	RecordTTL   time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteUseCase := commands.VoteUseCase{
		Ledger:      deps.Ledger,
		Tally:       deps.Tally,
		Contestants: deps.Contestants,
		Weights:     deps.Weights,
		Delivery:    deps.Delivery,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		CodeGen:     deps.CodeGen,
		RecordTTL:   deps.RecordTTL,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:      voteUseCase,
			Statistics: queries.StatisticsUseCase{Ledger: deps.Ledger},
			Dashboard: queries.DashboardUseCase{
				Ledger:      deps.Ledger,
				Contestants: deps.Contestants,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.VerificationRecord, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Ledger:      store,
		Tally:       store,
		Contestants: store,
		Weights:     store,
		Delivery:    store,
		Clock:       store,
		IDGen:       store,
		CodeGen:     store,
		RecordTTL:   time.Hour,
		Logger:      logger,
	})
	module.Store = store
	return module
}
