package unit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contestantservice "ovation/contexts/event-voting/contestant-service"
	"ovation/contexts/event-voting/contestant-service/domain/entities"
	domainerrors "ovation/contexts/event-voting/contestant-service/domain/errors"
	httptransport "ovation/contexts/event-voting/contestant-service/transport/http"
)

func TestContestantLifecycle(t *testing.T) {
	module := contestantservice.NewInMemoryModule(nil, nil)

	created, err := module.Handler.CreateContestantHandler(context.Background(), httptransport.CreateContestantRequest{
		Name:        "Aurora Belle",
		Description: "Vocalist from the northern heats.",
		AvatarURL:   "/uploads/aurora.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ContestantID == "" || !created.IsActive || created.Votes != 0 {
		t.Fatalf("unexpected created contestant: %+v", created)
	}

	updated, err := module.Handler.UpdateContestantHandler(context.Background(), created.ContestantID, httptransport.UpdateContestantRequest{
		Description: "Returning vocalist, season three.",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Aurora Belle" || updated.Description != "Returning vocalist, season three." {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}

	if _, err := module.Handler.DeleteContestantHandler(context.Background(), created.ContestantID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	listed, err := module.Handler.ListContestantsHandler(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed.Items) != 0 {
		t.Fatalf("expected deactivated contestant hidden from listing, got %+v", listed.Items)
	}

	// Direct fetch still resolves after a soft delete.
	fetched, err := module.Handler.GetContestantHandler(context.Background(), created.ContestantID)
	if err != nil {
		t.Fatalf("get after deactivate failed: %v", err)
	}
	if fetched.IsActive {
		t.Fatalf("expected inactive contestant, got %+v", fetched)
	}
}

func TestContestantNameUniqueness(t *testing.T) {
	module := contestantservice.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.CreateContestantHandler(context.Background(), httptransport.CreateContestantRequest{
		Name:        "Aurora Belle",
		Description: "First entry.",
		AvatarURL:   "/uploads/aurora.png",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := module.Handler.CreateContestantHandler(context.Background(), httptransport.CreateContestantRequest{
		Name:        "aurora belle",
		Description: "Duplicate entry.",
		AvatarURL:   "/uploads/other.png",
	})
	if !errors.Is(err, domainerrors.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestContestantInputValidation(t *testing.T) {
	module := contestantservice.NewInMemoryModule(nil, nil)

	cases := []struct {
		name    string
		request httptransport.CreateContestantRequest
		want    error
	}{
		{
			name: "empty name",
			request: httptransport.CreateContestantRequest{
				Description: "d", AvatarURL: "/uploads/a.png",
			},
			want: domainerrors.ErrInvalidContestantInput,
		},
		{
			name: "name too long",
			request: httptransport.CreateContestantRequest{
				Name:        strings.Repeat("x", entities.MaxNameLength+1),
				Description: "d", AvatarURL: "/uploads/a.png",
			},
			want: domainerrors.ErrInvalidContestantInput,
		},
		{
			name: "description too long",
			request: httptransport.CreateContestantRequest{
				Name:        "Valid",
				Description: strings.Repeat("x", entities.MaxDescriptionLength+1),
				AvatarURL:   "/uploads/a.png",
			},
			want: domainerrors.ErrInvalidContestantInput,
		},
		{
			name: "bad avatar reference",
			request: httptransport.CreateContestantRequest{
				Name: "Valid", Description: "d", AvatarURL: "ftp://nope",
			},
			want: domainerrors.ErrInvalidAvatar,
		},
	}
	for _, tc := range cases {
		if _, err := module.Handler.CreateContestantHandler(context.Background(), tc.request); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestContestantListingStripsVoterEmails(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module := contestantservice.NewInMemoryModule([]entities.Contestant{
		{
			ContestantID: "contestant-1",
			Name:         "Aurora Belle",
			Description:  "Vocalist.",
			AvatarURL:    "/uploads/aurora.png",
			Votes:        3,
			Voters: []entities.VoterRecord{
				{Email: "alice@example.com", VotedAt: now, IsAdmin: false},
				{Email: "boss@example.com", VotedAt: now.Add(time.Minute), IsAdmin: true},
			},
			IsActive:  true,
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ContestantID: "contestant-2",
			Name:         "Marcus Vane",
			Description:  "Spoken word.",
			AvatarURL:    "/uploads/marcus.png",
			IsActive:     true,
			CreatedAt:    now,
		},
	}, nil)

	listed, err := module.Handler.ListContestantsHandler(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed.Items) != 2 {
		t.Fatalf("expected 2 contestants, got %d", len(listed.Items))
	}
	if listed.Items[0].ContestantID != "contestant-2" {
		t.Fatalf("expected newest first, got %+v", listed.Items)
	}

	aurora := listed.Items[1]
	if len(aurora.Voters) != 2 {
		t.Fatalf("expected voter entries preserved, got %+v", aurora.Voters)
	}
	if !aurora.Voters[1].IsAdmin {
		t.Fatalf("expected admin flag preserved, got %+v", aurora.Voters)
	}
}
