package cli

import (
	"context"

	"gym-app-go/internal/domain/gym"
)

func (h *Handlers) Login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	admin, err := h.Admins.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return writeJSON(h.out, loginResponse{Authenticated: true, Admin: toAdminResponse(*admin)})
}

func (h *Handlers) RegisterAdmin(ctx context.Context, args []string) error {
	fs := newFlagSet("admin add")
	var input gym.CreateAdminInput
	fs.StringVar(&input.Name, "name", "", "admin name")
	fs.StringVar(&input.Email, "email", "", "admin email")
	fs.StringVar(&input.Password, "password", "", "admin password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	admin, err := h.Admins.RegisterAdmin(ctx, input)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toAdminResponse(*admin))
}

func (h *Handlers) ListAdmins(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("admin list"), args); err != nil {
		return err
	}

	admins, err := h.Admins.ListAdmins(ctx)
	if err != nil {
		return err
	}
	return writeEach(h.out, admins, toAdminResponse)
}

func (h *Handlers) DeleteAdmin(ctx context.Context, args []string) error {
	fs := newFlagSet("admin delete")
	id := fs.Int("id", 0, "admin id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	if err := h.Admins.DeleteAdmin(ctx, *id); err != nil {
		return err
	}
	return writeJSON(h.out, deletedResponse{Deleted: gym.KindAdmin, ID: *id})
}
