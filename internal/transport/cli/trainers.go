package cli

import (
	"context"

	"gym-app-go/internal/domain/gym"
)

func (h *Handlers) AddTrainer(ctx context.Context, args []string) error {
	fs := newFlagSet("trainer add")
	var input gym.CreateTrainerInput
	fs.StringVar(&input.Name, "name", "", "trainer name")
	fs.StringVar(&input.Email, "email", "", "trainer email")
	fs.StringVar(&input.Password, "password", "", "trainer password")
	fs.StringVar(&input.Specialty, "specialty", "", "training specialty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	trainer, err := h.Trainers.AddTrainer(ctx, input)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toTrainerResponse(*trainer))
}

func (h *Handlers) ListTrainers(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("trainer list"), args); err != nil {
		return err
	}

	trainers, err := h.Trainers.ListTrainers(ctx)
	if err != nil {
		return err
	}
	return writeEach(h.out, trainers, toTrainerResponse)
}

func (h *Handlers) GetTrainer(ctx context.Context, args []string) error {
	fs := newFlagSet("trainer get")
	id := fs.Int("id", 0, "trainer id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	trainer, err := h.Trainers.GetTrainer(ctx, *id)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toTrainerResponse(*trainer))
}

func (h *Handlers) SetSpecialty(ctx context.Context, args []string) error {
	fs := newFlagSet("trainer specialty")
	id := fs.Int("id", 0, "trainer id")
	specialty := fs.String("specialty", "", "new specialty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	trainer, err := h.Trainers.SetSpecialty(ctx, *id, *specialty)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toTrainerResponse(*trainer))
}

func (h *Handlers) AssignMember(ctx context.Context, args []string) error {
	return h.changeAssignment(ctx, "trainer assign", args, h.Trainers.AssignMember)
}

func (h *Handlers) UnassignMember(ctx context.Context, args []string) error {
	return h.changeAssignment(ctx, "trainer unassign", args, h.Trainers.UnassignMember)
}

func (h *Handlers) ListAssignedMembers(ctx context.Context, args []string) error {
	fs := newFlagSet("trainer members")
	id := fs.Int("id", 0, "trainer id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	members, err := h.Trainers.ListAssignedMembers(ctx, *id)
	if err != nil {
		return err
	}
	return writeEach(h.out, members, toMemberResponse)
}

func (h *Handlers) DeleteTrainer(ctx context.Context, args []string) error {
	fs := newFlagSet("trainer delete")
	id := fs.Int("id", 0, "trainer id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "id", *id); err != nil {
		return err
	}

	if err := h.Trainers.DeleteTrainer(ctx, *id); err != nil {
		return err
	}
	return writeJSON(h.out, deletedResponse{Deleted: gym.KindTrainer, ID: *id})
}

func (h *Handlers) changeAssignment(ctx context.Context, name string, args []string, change func(context.Context, int, int) (*gym.Trainer, error)) error {
	fs := newFlagSet(name)
	trainerID := fs.Int("trainer", 0, "trainer id")
	memberID := fs.Int("member", 0, "member id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs, "trainer", *trainerID); err != nil {
		return err
	}
	if err := requireID(fs, "member", *memberID); err != nil {
		return err
	}

	trainer, err := change(ctx, *trainerID, *memberID)
	if err != nil {
		return err
	}
	return writeJSON(h.out, toTrainerResponse(*trainer))
}
