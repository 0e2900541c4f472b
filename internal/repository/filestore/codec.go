package filestore

import (
	"fmt"
	"strconv"
	"strings"

	"gym-app-go/internal/domain/gym"
	"gym-app-go/internal/flatfile"
)

// Field order per file:
//
//	admins.txt   name,email,password[,id]
//	members.txt  id,name,email,password,joinDate,tier
//	trainers.txt id,name,email,password,specialty[,memberID;memberID...]
//
// The password column always holds gym.PasswordPlaceholder.

const assignedSeparator = ";"

var adminCodec = codec[gym.Admin]{
	fields: 3,
	encode: func(a gym.Admin) []string {
		fields := []string{a.Name, a.Email, gym.PasswordPlaceholder}
		if a.ID > 0 {
			fields = append(fields, strconv.Itoa(a.ID))
		}
		return fields
	},
	decode: func(fields []string) (gym.Admin, error) {
		admin := gym.Admin{User: gym.User{Name: fields[0], Email: fields[1], Password: fields[2]}}
		if len(fields) > 3 && fields[3] != "" {
			id, err := parseID(fields[3])
			if err != nil {
				return gym.Admin{}, err
			}
			admin.ID = id
		}
		return admin, nil
	},
	idOf:    func(a gym.Admin) int { return a.ID },
	emailOf: func(a gym.Admin) string { return a.Email },
	withID: func(a gym.Admin, id int) gym.Admin {
		a.ID = id
		return a
	},
}

var memberCodec = codec[gym.Member]{
	fields: 6,
	encode: func(m gym.Member) []string {
		return []string{
			strconv.Itoa(m.ID),
			m.Name,
			m.Email,
			gym.PasswordPlaceholder,
			m.JoinDate,
			strconv.Itoa(int(m.SubscriptionTier)),
		}
	},
	decode: func(fields []string) (gym.Member, error) {
		id, err := parseID(fields[0])
		if err != nil {
			return gym.Member{}, err
		}
		tier, err := strconv.Atoi(fields[5])
		if err != nil || !gym.Tier(tier).Valid() {
			return gym.Member{}, malformed("invalid tier %q", fields[5])
		}
		return gym.Member{
			User:             gym.User{ID: id, Name: fields[1], Email: fields[2], Password: fields[3]},
			JoinDate:         fields[4],
			SubscriptionTier: gym.Tier(tier),
		}, nil
	},
	idOf:    func(m gym.Member) int { return m.ID },
	emailOf: func(m gym.Member) string { return m.Email },
}

var trainerCodec = codec[gym.Trainer]{
	fields: 5,
	encode: func(t gym.Trainer) []string {
		fields := []string{
			strconv.Itoa(t.ID),
			t.Name,
			t.Email,
			gym.PasswordPlaceholder,
			t.Specialty,
		}
		if len(t.AssignedMembers) > 0 {
			fields = append(fields, formatAssigned(t.AssignedMembers))
		}
		return fields
	},
	decode: func(fields []string) (gym.Trainer, error) {
		id, err := parseID(fields[0])
		if err != nil {
			return gym.Trainer{}, err
		}
		trainer := gym.Trainer{
			User:      gym.User{ID: id, Name: fields[1], Email: fields[2], Password: fields[3]},
			Specialty: fields[4],
		}
		if len(fields) > 5 {
			trainer.AssignedMembers = parseAssigned(fields[5])
		}
		return trainer, nil
	},
	idOf:    func(t gym.Trainer) int { return t.ID },
	emailOf: func(t gym.Trainer) string { return t.Email },
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, malformed("invalid id %q", value)
	}
	return id, nil
}

// parseAssigned ignores tokens that are not positive integers, repeats, and
// anything past the trainer capacity.
func parseAssigned(value string) []int {
	var ids []int
	for _, token := range strings.Split(value, assignedSeparator) {
		id, err := strconv.Atoi(flatfile.Trim(token))
		if err != nil || id <= 0 {
			continue
		}
		trainer := gym.Trainer{AssignedMembers: ids}
		if trainer.Assign(id) != nil {
			continue
		}
		ids = trainer.AssignedMembers
	}
	return ids
}

func formatAssigned(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, assignedSeparator)
}

func joinFields(fields []string) string {
	return strings.Join(fields, flatfile.Delimiter)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", gym.ErrMalformedRecord, fmt.Sprintf(format, args...))
}
