// Package cli maps command-line invocations onto the gym services. Every
// command writes JSON lines to the output writer; failures end in a single
// error envelope.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/pkg/logger"
)

var ErrUnknownCommand = fmt.Errorf("%w: unknown command", gym.ErrValidation)

type command func(ctx context.Context, args []string) error

type Handlers struct {
	Members  *gym.MemberService
	Trainers *gym.TrainerService
	Admins   *gym.AdminService

	out    io.Writer
	log    logger.Logger
	routes map[string]command
}

func New(members *gym.MemberService, trainers *gym.TrainerService, admins *gym.AdminService, out io.Writer, log logger.Logger) *Handlers {
	h := &Handlers{
		Members:  members,
		Trainers: trainers,
		Admins:   admins,
		out:      out,
		log:      log.Component("cli"),
	}
	h.routes = map[string]command{
		"login": h.Login,

		"member add":    h.AddMember,
		"member list":   h.ListMembers,
		"member get":    h.GetMember,
		"member tier":   h.SetSubscriptionTier,
		"member update": h.UpdateMember,
		"member delete": h.DeleteMember,

		"trainer add":       h.AddTrainer,
		"trainer list":      h.ListTrainers,
		"trainer get":       h.GetTrainer,
		"trainer specialty": h.SetSpecialty,
		"trainer assign":    h.AssignMember,
		"trainer unassign":  h.UnassignMember,
		"trainer members":   h.ListAssignedMembers,
		"trainer delete":    h.DeleteTrainer,

		"admin add":    h.RegisterAdmin,
		"admin list":   h.ListAdmins,
		"admin delete": h.DeleteAdmin,
	}
	return h
}

// Run executes one command. Errors are written to the output as an envelope
// and also returned, so the caller can pick an exit code.
func (h *Handlers) Run(ctx context.Context, args []string) error {
	name, rest, err := h.resolve(args)
	if err == nil {
		err = h.routes[name](ctx, rest)
	}
	if err == nil {
		return nil
	}

	kind := gym.KindOf(err)
	switch kind {
	case "internal_error", "storage_unavailable":
		h.log.InternalError("cli: command failed", err, "command", name)
	default:
		h.log.BusinessError("cli: command rejected", err, "command", name, "kind", kind)
	}
	if writeErr := writeError(h.out, kind, err.Error()); writeErr != nil {
		return errors.Join(err, writeErr)
	}
	return err
}

// Commands lists every route, sorted.
func (h *Handlers) Commands() []string {
	names := make([]string, 0, len(h.routes))
	for name := range h.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve matches "group action" before single-word commands.
func (h *Handlers) resolve(args []string) (string, []string, error) {
	if len(args) >= 2 {
		name := args[0] + " " + args[1]
		if _, ok := h.routes[name]; ok {
			return name, args[2:], nil
		}
	}
	if len(args) >= 1 {
		if _, ok := h.routes[args[0]]; ok {
			return args[0], args[1:], nil
		}
	}
	return strings.Join(args, " "), nil, fmt.Errorf("%w %q", ErrUnknownCommand, strings.Join(args, " "))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", gym.ErrValidation, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", gym.ErrValidation, fs.Name(), fs.Arg(0))
	}
	return nil
}

func requireID(fs *flag.FlagSet, name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s: -%s must be a positive id", gym.ErrValidation, fs.Name(), name)
	}
	return nil
}
