package adminservice

import (
	"context"
	"log/slog"

	httpadapter "ovation/contexts/identity-access/admin-service/adapters/http"
	"ovation/contexts/identity-access/admin-service/adapters/memory"
	"ovation/contexts/identity-access/admin-service/adapters/token"
	"ovation/contexts/identity-access/admin-service/application/commands"
	"ovation/contexts/identity-access/admin-service/application/queries"
	"ovation/contexts/identity-access/admin-service/domain/entities"
	"ovation/contexts/identity-access/admin-service/ports"

	votingports "ovation/contexts/event-voting/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Admins ports.AdminRepository
	Tokens ports.TokenCodec
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Admins: commands.AdminUseCase{
				Admins: deps.Admins,
				Tokens: deps.Tokens,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Resolver: queries.ResolverUseCase{Admins: deps.Admins},
			Auth: queries.AuthUseCase{
				Admins: deps.Admins,
				Tokens: deps.Tokens,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Admin, jwtSecret string, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Admins: store,
		Tokens: token.NewJWTCodec(jwtSecret),
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}

// WeightResolver adapts the admin resolver to the voting engine's issuance
// port, converting between the two contexts' grant shapes.
type WeightResolver struct {
	Resolver queries.ResolverUseCase
}

func (r WeightResolver) Resolve(ctx context.Context, email string) (votingports.WeightGrant, error) {
	grant, err := r.Resolver.Resolve(ctx, email)
	if err != nil {
		return votingports.WeightGrant{}, err
	}
	return votingports.WeightGrant{IsAdmin: grant.IsAdmin, Weight: grant.Weight}, nil
}
