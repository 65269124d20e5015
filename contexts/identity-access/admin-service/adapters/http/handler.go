package httpadapter

import (
	"context"
	"log/slog"

	"ovation/contexts/identity-access/admin-service/application/commands"
	"ovation/contexts/identity-access/admin-service/application/queries"
	"ovation/contexts/identity-access/admin-service/domain/entities"
	httptransport "ovation/contexts/identity-access/admin-service/transport/http"
)

type Handler struct {
	Admins   commands.AdminUseCase
	Resolver queries.ResolverUseCase
	Auth     queries.AuthUseCase
	Logger   *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Admins.Login(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		Admin: httptransport.AdminView{
			AdminID:    result.AdminID,
			Email:      result.Email,
			VoteWeight: result.VoteWeight,
		},
	}, nil
}

func (h Handler) UpdateSettingsHandler(
	ctx context.Context,
	adminID string,
	req httptransport.UpdateSettingsRequest,
) (httptransport.UpdateSettingsResponse, error) {
	admin, err := h.Admins.UpdateSettings(ctx, commands.UpdateSettingsCommand{
		AdminID:    adminID,
		VoteWeight: req.VoteWeight,
	})
	if err != nil {
		return httptransport.UpdateSettingsResponse{}, err
	}
	return httptransport.UpdateSettingsResponse{
		Message: "Settings updated successfully",
		Admin: httptransport.AdminView{
			AdminID:    admin.AdminID,
			Email:      admin.Email,
			VoteWeight: admin.VoteWeight,
		},
	}, nil
}

// AuthenticateHandler backs the bearer-token middleware on admin-gated routes.
func (h Handler) AuthenticateHandler(ctx context.Context, token string) (entities.Admin, error) {
	return h.Auth.Authenticate(ctx, token)
}
