package cli

import (
	"context"

	"gym-app-go/internal/domain/gym"
)

func (h *Handlers) AddMember(ctx context.Context, args []string) error {
	fs := newFlagSet("member add")
	var input gym.CreateMemberInput
	fs.StringVar(&input.Name, "name", "", "member name")
	fs.StringVar(&input.Email, "email", "", "member email")
	fs.StringVar(&input.Password, "password", "", "member password")
	fs.StringVar(&input.JoinDate, "join-date", "", "join date, YYYY-MM-DD (default today)")
	fs.StringVar(&input.Tier, "tier", "", "none, standard or premium")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	member, err := h.Members.AddMember(ctx, input)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toMemberResponse(*member))
}

func (h *Handlers) ListMembers(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("member list"), args); err != nil {
		return err
	}

	members, err := h.Members.ListMembers(ctx)
	if err != nil {
		return err
	}
	return writeEach(h.out, members, toMemberResponse)
}

func (h *Handlers) GetMember(ctx context.Context, args []string) error {
	fs := newFlagSet("member get")
	id := fs.Int("id", 0, "member id")
	email := fs.String("email", "", "look up by email instead of id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		member *gym.Member
		err    error
	)
	if *email != "" {
		member, err = h.Members.FindMemberByEmail(ctx, *email)
	} else {
		if err := requireID(fs, "id", *id); err != nil {
			return err
		}
		member, err = h.Members.GetMember(ctx, *id)
	}
	if err != nil {
		return err
	}
	return writeJSON(h.out, toMemberResponse(*member))
}

func (h *Handlers) SetSubscriptionTier(ctx context.Context, args []string) error {
	fs := newFlagSet("member tier")
	id := fs.Int("id", 0, "member id")
	tier := fs.String("tier", "", "none, standard or premium")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	member, err := h.Members.SetSubscriptionTier(ctx, *id, *tier)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toMemberResponse(*member))
}

func (h *Handlers) UpdateMember(ctx context.Context, args []string) error {
	fs := newFlagSet("member update")
	var input gym.UpdateMemberInput
	fs.IntVar(&input.ID, "id", 0, "member id")
	fs.StringVar(&input.Name, "name", "", "new name")
	fs.StringVar(&input.Email, "email", "", "new email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	member, err := h.Members.UpdateMember(ctx, input)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toMemberResponse(*member))
}

func (h *Handlers) DeleteMember(ctx context.Context, args []string) error {
	fs := newFlagSet("member delete")
	id := fs.Int("id", 0, "member id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	if err := h.Members.DeleteMember(ctx, *id); err != nil {
		return err
	}
	return writeJSON(h.out, deletedResponse{Deleted: gym.KindMember, ID: *id})
}
