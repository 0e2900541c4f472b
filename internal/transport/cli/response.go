package cli

import (
	"encoding/json"
	"io"

	"gym-app-go/internal/domain/gym"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type adminResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type memberResponse struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	JoinDate         string `json:"join_date"`
	SubscriptionTier string `json:"subscription_tier"`
}

type trainerResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Specialty       string `json:"specialty"`
	AssignedMembers []int  `json:"assigned_members"`
}

type loginResponse struct {
	Authenticated bool          `json:"authenticated"`
	Admin         adminResponse `json:"admin"`
}

type deletedResponse struct {
	Deleted gym.Kind `json:"deleted"`
	ID      int      `json:"id"`
}

func toAdminResponse(admin gym.Admin) adminResponse {
	return adminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email}
}

func toMemberResponse(member gym.Member) memberResponse {
	return memberResponse{
		ID:               member.ID,
		Name:             member.Name,
		Email:            member.Email,
		JoinDate:         member.JoinDate,
		SubscriptionTier: member.SubscriptionTier.String(),
	}
}

func toTrainerResponse(trainer gym.Trainer) trainerResponse {
	assigned := trainer.AssignedMembers
	if assigned == nil {
		assigned = []int{}
	}
	return trainerResponse{
		ID:              trainer.ID,
		Name:            trainer.Name,
		Email:           trainer.Email,
		Specialty:       trainer.Specialty,
		AssignedMembers: assigned,
	}
}

// writeJSON emits payload as one line.
func writeJSON(w io.Writer, payload any) error {
	return json.NewEncoder(w).Encode(payload)
}

func writeError(w io.Writer, code, message string) error {
	return writeJSON(w, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeEach[T, R any](w io.Writer, items []T, convert func(T) R) error {
	for _, item := range items {
		if err := writeJSON(w, convert(item)); err != nil {
			return err
		}
	}
	return nil
}
