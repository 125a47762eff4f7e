package repository

import (
	"context"
	"time"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// Fixture data for bootstrapping a demo process. Mirrors the directory
// the service originally shipped with.

// FixtureTeams returns the demo teams.
func FixtureTeams() []model.Team {
	return []model.Team{
		{ID: "team1", Name: "Engineering"},
		{ID: "team2", Name: "Product"},
		{ID: "team3", Name: "Marketing"},
	}
}

// FixtureUsers returns the demo users.
func FixtureUsers() []model.User {
	return []model.User{
		{ID: "user1", Email: "john@company.com", Name: "John Doe", Role: model.RoleEmployee, TeamID: "team1"},
		{ID: "user2", Email: "jane@company.com", Name: "Jane Smith", Role: model.RoleManager, TeamID: "team1"},
		{ID: "user3", Email: "bob@company.com", Name: "Bob Wilson", Role: model.RoleEmployee, TeamID: "team1"},
		{ID: "user4", Email: "alice@company.com", Name: "Alice Johnson", Role: model.RoleEmployee, TeamID: "team2"},
		{ID: "user5", Email: "charlie@company.com", Name: "Charlie Brown", Role: model.RoleManager, TeamID: "team2"},
		{ID: "user6", Email: "diana@company.com", Name: "Diana Prince", Role: model.RoleAdmin},
		{ID: "user7", Email: "eve@company.com", Name: "Eve Adams", Role: model.RoleEmployee, TeamID: "team3"},
		{ID: "user8", Email: "frank@company.com", Name: "Frank Castle", Role: model.RoleEmployee, TeamID: "team3"},
		{ID: "user9", Email: "grace@company.com", Name: "Grace Hopper", Role: model.RoleManager, TeamID: "team3"},
		{ID: "user10", Email: "henry@company.com", Name: "Henry Ford", Role: model.RoleEmployee, TeamID: "team1"},
	}
}

// seedRecognition pairs a draft with how long ago it was created.
type seedRecognition struct {
	draft model.Draft
	age   time.Duration
}

// fixtureRecognitions returns the demo feed, oldest first so insertion
// order matches chronological order.
func fixtureRecognitions() []seedRecognition {
	const day = 24 * time.Hour
	return []seedRecognition{
		{
			draft: model.Draft{
				Message:     "Thanks for the code review feedback",
				Emoji:       "👍",
				Visibility:  model.VisibilityPrivate,
				SenderID:    "user3",
				RecipientID: "user1",
			},
			age: 5 * day,
		},
		{
			draft: model.Draft{
				Message:     "Excellent problem-solving skills during the incident",
				Emoji:       "🔧",
				Visibility:  model.VisibilityAnonymous,
				SenderID:    "user2",
				RecipientID: "user1",
			},
			age: 3 * day,
		},
		{
			draft: model.Draft{
				Message:     "Great job on the quarterly presentation! 🎯",
				Emoji:       "🎯",
				Visibility:  model.VisibilityPublic,
				SenderID:    "user2",
				RecipientID: "user1",
			},
			age: 2 * day,
		},
		{
			draft: model.Draft{
				Message:     "Thank you for staying late to help with the deployment",
				Emoji:       "🚀",
				Visibility:  model.VisibilityPublic,
				SenderID:    "user1",
				RecipientID: "user3",
			},
			age: 1 * day,
		},
		{
			draft: model.Draft{
				Message:     "Amazing work on the new feature launch!",
				Emoji:       "🌟",
				Visibility:  model.VisibilityPublic,
				SenderID:    "user5",
				RecipientID: "user4",
			},
			age: 1 * day,
		},
		{
			draft: model.Draft{
				Message:     "Your presentation was inspiring",
				Emoji:       "💡",
				Visibility:  model.VisibilityPublic,
				SenderID:    "user7",
				RecipientID: "user9",
			},
			age: 6 * time.Hour,
		},
	}
}

// Seed loads the fixture directory into dir and appends the fixture
// recognitions to feed with backdated timestamps. It returns the created
// records so the caller can fold them into the analytics index through
// the same path live creations use.
func Seed(ctx context.Context, dir *Directory, feed *Feed) ([]model.Recognition, error) {
	for _, t := range FixtureTeams() {
		dir.AddTeam(t)
	}
	for _, u := range FixtureUsers() {
		dir.AddUser(u)
	}

	now := time.Now().UTC()
	seeds := fixtureRecognitions()
	created := make([]model.Recognition, 0, len(seeds))
	for _, s := range seeds {
		rec, err := feed.createAt(ctx, s.draft, now.Add(-s.age))
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}

	return created, nil
}
