package inmemory

import "gym-app-go/internal/domain/gym"

// FixtureMembers returns the demo members used when seeding is enabled.
func FixtureMembers() []gym.Member {
	return []gym.Member{
		{
			User:             gym.User{ID: 1, Name: "John Doe", Email: "john@gmail.com", Password: "password123"},
			JoinDate:         "2024-01-15",
			SubscriptionTier: gym.TierStandard,
		},
		{
			User:             gym.User{ID: 2, Name: "Sarah Johnson", Email: "sarah@gmail.com", Password: "password456"},
			JoinDate:         "2024-02-20",
			SubscriptionTier: gym.TierPremium,
		},
		{
			User:             gym.User{ID: 3, Name: "Mike Wilson", Email: "mike@gmail.com", Password: "password789"},
			JoinDate:         "2024-03-10",
			SubscriptionTier: gym.TierNone,
		},
	}
}

// FixtureTrainers returns the demo trainers used when seeding is enabled.
func FixtureTrainers() []gym.Trainer {
	return []gym.Trainer{
		{User: gym.User{ID: 1, Name: "Amir", Email: "amir@gmail.com", Password: "trainer123"}, Specialty: "Cardio"},
		{User: gym.User{ID: 2, Name: "Kareem", Email: "kareem@gmail.com", Password: "trainer456"}, Specialty: "Strength Training"},
		{User: gym.User{ID: 3, Name: "Maged", Email: "maged@gmail.com", Password: "trainer789"}, Specialty: "Yoga"},
	}
}
