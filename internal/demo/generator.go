// Package demo generates randomized recognition traffic against a
// running server, for load checks and populating a fresh instance.
package demo

import (
	"math/rand"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/repository"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// phrases is the message bank; entries deliberately share keywords so
// the analytics tables fill with recognizable terms.
var phrases = []string{
	"Great teamwork on the release this week",
	"Amazing support during the incident review",
	"Excellent presentation at the planning meeting",
	"Thanks for the thorough code review feedback",
	"Outstanding teamwork getting the migration done",
	"Brilliant debugging under pressure yesterday",
	"Really appreciated your support onboarding the intern",
	"Fantastic presentation to the customer council",
	"Superb attention to detail in the release notes",
	"Thanks for jumping on the incident so quickly",
}

var emojis = []string{"🎉", "🙌", "🚀", "🌟", "👏", "💡", "🔥", ""}

// visibilityMix weights the generated visibility distribution toward
// PUBLIC, mirroring real usage.
var visibilityMix = []model.Visibility{
	model.VisibilityPublic,
	model.VisibilityPublic,
	model.VisibilityPublic,
	model.VisibilityPublic,
	model.VisibilityPublic,
	model.VisibilityPublic,
	model.VisibilityPublic,
	model.VisibilityPrivate,
	model.VisibilityPrivate,
	model.VisibilityAnonymous,
}

// Recognition is one generated submission: the payload plus the sender
// identity to impersonate.
type Recognition struct {
	SenderID    string
	RecipientID string
	Message     string
	Emoji       string
	Visibility  model.Visibility
}

// Generator produces random sender/recipient pairs from the fixture
// directory. A fixed seed yields a reproducible sequence.
type Generator struct {
	rng   *rand.Rand
	users []model.User
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		users: repository.FixtureUsers(),
	}
}

// Next returns the next random recognition. Sender and recipient are
// always distinct, matching the server's validation.
func (g *Generator) Next() Recognition {
	sender := g.users[g.rng.Intn(len(g.users))]
	recipient := g.users[g.rng.Intn(len(g.users))]
	for recipient.ID == sender.ID {
		recipient = g.users[g.rng.Intn(len(g.users))]
	}

	return Recognition{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Message:     phrases[g.rng.Intn(len(phrases))],
		Emoji:       emojis[g.rng.Intn(len(emojis))],
		Visibility:  visibilityMix[g.rng.Intn(len(visibilityMix))],
	}
}
