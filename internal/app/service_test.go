package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/repository"
	service "github.com/Teenu24/employee-recognition-api/internal/app"
	"github.com/Teenu24/employee-recognition-api/internal/domain/access"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// captureNotifier records deliveries for assertions.
type captureNotifier struct {
	mu        sync.Mutex
	delivered []model.Recognition
}

func (n *captureNotifier) Deliver(ctx context.Context, rec model.Recognition) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, rec)
	return nil
}

func (n *captureNotifier) all() []model.Recognition {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.Recognition, len(n.delivered))
	copy(out, n.delivered)
	return out
}

func startFixtureService(opts ...service.Option) *service.Service {
	svc := service.New(append([]service.Option{service.WithFixtures(true)}, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func mustUser(svc *service.Service, id string) model.User {
	u, ok := svc.User(context.Background(), id)
	if !ok {
		panic("missing fixture user " + id)
	}
	return u
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()

		Convey("Then stats reflect the fixture directory", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["users"], ShouldEqual, 10)
			So(stats["teams"], ShouldEqual, 3)
			So(stats["recognitions"], ShouldEqual, 6)
		})

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Convey("And stopping again is a no-op", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Authenticate(t *testing.T) {
	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When authenticating a known user", func() {
			u, err := svc.Authenticate(ctx, "user1")

			Convey("Then the directory record is returned", func() {
				So(err, ShouldBeNil)
				So(u.Name, ShouldEqual, "John Doe")
				So(u.Role, ShouldEqual, model.RoleEmployee)
			})
		})

		Convey("When the caller id is empty", func() {
			_, err := svc.Authenticate(ctx, "")

			Convey("Then it is an authentication failure", func() {
				So(errors.Is(err, access.ErrUnauthenticated), ShouldBeTrue)
			})
		})

		Convey("When the caller id is unknown", func() {
			_, err := svc.Authenticate(ctx, "ghost")

			Convey("Then it is an authentication failure, not a not-found", func() {
				So(errors.Is(err, access.ErrUnauthenticated), ShouldBeTrue)
			})
		})
	})
}

func TestService_CreateRecognition(t *testing.T) {
	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()
		ctx := context.Background()
		sender := mustUser(svc, "user1")

		Convey("When creating a valid public recognition", func() {
			rec, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
				Message:     "Fantastic pairing session today",
				Emoji:       "🙌",
				Visibility:  model.VisibilityPublic,
			})

			Convey("Then the record is accepted and attributed to the caller", func() {
				So(err, ShouldBeNil)
				So(rec.ID, ShouldNotBeEmpty)
				So(rec.SenderID, ShouldEqual, "user1")
				So(rec.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And it appears first in the sender's feed", func() {
				list := svc.ListRecognitions(ctx, sender, access.Filter{})
				So(len(list), ShouldBeGreaterThan, 0)
				So(list[0].ID, ShouldEqual, rec.ID)
			})
		})

		Convey("When the visibility is omitted", func() {
			rec, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
				Message:     "Defaults to public",
			})

			So(err, ShouldBeNil)
			So(rec.Visibility, ShouldEqual, model.VisibilityPublic)
		})

		Convey("When the message is empty", func() {
			_, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
			})

			Convey("Then the draft is rejected with no side effects", func() {
				So(errors.Is(err, repository.ErrEmptyMessage), ShouldBeTrue)
				So(svc.GetStats()["recognitions"], ShouldEqual, 6)
			})
		})

		Convey("When the recipient does not exist", func() {
			_, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "ghost",
				Message:     "hello",
			})

			So(errors.Is(err, repository.ErrRecipientNotFound), ShouldBeTrue)
		})

		Convey("When the caller recognizes themselves", func() {
			_, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user1",
				Message:     "I am great",
			})

			So(errors.Is(err, repository.ErrSelfRecognition), ShouldBeTrue)
		})
	})
}

func TestService_VisibilityRules(t *testing.T) {
	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()
		ctx := context.Background()

		sender := mustUser(svc, "user1")    // EMPLOYEE, team1
		stranger := mustUser(svc, "user7")  // EMPLOYEE, team3
		manager1 := mustUser(svc, "user2")  // MANAGER, team1
		manager3 := mustUser(svc, "user9")  // MANAGER, team3
		admin := mustUser(svc, "user6")     // ADMIN
		recipient := mustUser(svc, "user3") // EMPLOYEE, team1

		anon, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
			RecipientID: "user3",
			Message:     "Quietly brilliant debugging",
			Visibility:  model.VisibilityAnonymous,
		})
		So(err, ShouldBeNil)

		priv, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
			RecipientID: "user3",
			Message:     "Between us, well done",
			Visibility:  model.VisibilityPrivate,
		})
		So(err, ShouldBeNil)

		contains := func(viewer model.User, id string) bool {
			for _, rec := range svc.ListRecognitions(ctx, viewer, access.Filter{}) {
				if rec.ID == id {
					return true
				}
			}
			return false
		}

		Convey("Then a private record is visible only to sender and recipient", func() {
			So(contains(sender, priv.ID), ShouldBeTrue)
			So(contains(recipient, priv.ID), ShouldBeTrue)
			So(contains(manager1, priv.ID), ShouldBeFalse)
			So(contains(admin, priv.ID), ShouldBeFalse)
		})

		Convey("Then an anonymous record is visible to recipient, admin and the recipient's manager", func() {
			So(contains(recipient, anon.ID), ShouldBeTrue)
			So(contains(admin, anon.ID), ShouldBeTrue)
			So(contains(manager1, anon.ID), ShouldBeTrue)
			So(contains(manager3, anon.ID), ShouldBeFalse)
			So(contains(stranger, anon.ID), ShouldBeFalse)
		})

		Convey("Then the anonymous sender stays hidden from the sender themselves", func() {
			// The sender sees their own record in listings only if some
			// other rule admits it; here the sender is neither recipient
			// nor privileged, so the record is invisible to them.
			So(contains(sender, anon.ID), ShouldBeFalse)
		})

		Convey("Then sender identity redaction follows the same rule as anonymous visibility", func() {
			So(svc.SenderRevealed(ctx, anon, recipient), ShouldBeTrue)
			So(svc.SenderRevealed(ctx, anon, admin), ShouldBeTrue)
			So(svc.SenderRevealed(ctx, anon, manager1), ShouldBeTrue)
			So(svc.SenderRevealed(ctx, anon, manager3), ShouldBeFalse)
			So(svc.SenderRevealed(ctx, priv, manager3), ShouldBeTrue)
		})

		Convey("Then the sender filter is dropped for employee viewers", func() {
			byStrangerSender := svc.ListRecognitions(ctx, stranger, access.Filter{SenderID: "user5"})
			unfiltered := svc.ListRecognitions(ctx, stranger, access.Filter{})
			So(len(byStrangerSender), ShouldEqual, len(unfiltered))

			adminFiltered := svc.ListRecognitions(ctx, admin, access.Filter{SenderID: "user5"})
			for _, rec := range adminFiltered {
				So(rec.SenderID, ShouldEqual, "user5")
			}
		})

		Convey("Then MyRecognitions returns sent and received records the viewer may see", func() {
			mine := svc.MyRecognitions(ctx, recipient)
			ids := make(map[string]bool, len(mine))
			for _, rec := range mine {
				So(rec.SenderID == "user3" || rec.RecipientID == "user3", ShouldBeTrue)
				ids[rec.ID] = true
			}
			So(ids[anon.ID], ShouldBeTrue)
			So(ids[priv.ID], ShouldBeTrue)
		})
	})
}

func TestService_Analytics(t *testing.T) {
	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()
		ctx := context.Background()

		employee := mustUser(svc, "user1")
		manager1 := mustUser(svc, "user2")
		manager3 := mustUser(svc, "user9")
		admin := mustUser(svc, "user6")

		Convey("When a manager reads their own team analytics", func() {
			ta, err := svc.TeamAnalytics(ctx, manager1, "team1")

			Convey("Then the fixture aggregates are reported", func() {
				So(err, ShouldBeNil)
				So(ta.TeamName, ShouldEqual, "Engineering")
				So(ta.TotalRecognitions, ShouldEqual, 4)
				So(ta.MostRecognized, ShouldNotBeNil)
				So(ta.MostRecognized.ID, ShouldEqual, "user1")
			})
		})

		Convey("When a manager reads another team's analytics", func() {
			_, err := svc.TeamAnalytics(ctx, manager3, "team1")

			Convey("Then access is denied", func() {
				So(errors.Is(err, access.ErrUnauthorized), ShouldBeTrue)
			})
		})

		Convey("When an employee reads any team analytics", func() {
			_, err := svc.TeamAnalytics(ctx, employee, "team1")
			So(errors.Is(err, access.ErrUnauthorized), ShouldBeTrue)
		})

		Convey("When an admin reads organization analytics", func() {
			all, err := svc.OrganizationAnalytics(ctx, admin)

			Convey("Then every directory team is reported", func() {
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 3)
				byID := make(map[string]service.TeamAnalytics, len(all))
				for _, ta := range all {
					byID[ta.TeamID] = ta
				}
				So(byID["team1"].TotalRecognitions, ShouldEqual, 4)
				So(byID["team2"].TotalRecognitions, ShouldEqual, 1)
				So(byID["team3"].TotalRecognitions, ShouldEqual, 1)
			})
		})

		Convey("When a non-admin reads organization analytics", func() {
			_, err := svc.OrganizationAnalytics(ctx, manager1)
			So(errors.Is(err, access.ErrUnauthorized), ShouldBeTrue)
		})

		Convey("When recognitions land in different calendar months", func() {
			// Fixture history spans at most two adjacent months; a fresh
			// record lands in the current one.
			_, err := svc.CreateRecognition(ctx, manager1, service.CreateInput{
				RecipientID: "user1",
				Message:     "Another strong sprint",
			})
			So(err, ShouldBeNil)

			ta, err := svc.TeamAnalytics(ctx, admin, "team1")
			So(err, ShouldBeNil)

			Convey("Then monthly volume is keyed by month and sorted ascending", func() {
				So(len(ta.RecognitionsByMonth), ShouldBeGreaterThan, 0)
				total := 0
				for i, mc := range ta.RecognitionsByMonth {
					So(len(mc.Month), ShouldEqual, 7) // YYYY-MM
					if i > 0 {
						So(ta.RecognitionsByMonth[i-1].Month, ShouldBeLessThan, mc.Month)
					}
					total += mc.Count
				}
				So(total, ShouldEqual, ta.TotalRecognitions)
			})
		})
	})
}

func TestService_Subscriptions(t *testing.T) {
	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()
		ctx := context.Background()
		sender := mustUser(svc, "user1")

		Convey("When subscribed to a recipient's stream", func() {
			sub := svc.SubscribeRecognitionsFor(ctx, "user3")
			defer sub.Close()

			rec, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
				Message:     "Live event test",
				Visibility:  model.VisibilityPrivate,
			})
			So(err, ShouldBeNil)

			Convey("Then the event arrives regardless of visibility", func() {
				select {
				case got := <-sub.C():
					So(got.ID, ShouldEqual, rec.ID)
				case <-time.After(time.Second):
					So("timeout", ShouldBeEmpty)
				}
			})
		})

		Convey("When subscribed to a team feed", func() {
			sub := svc.SubscribeTeamFeed(ctx, "team1")
			defer sub.Close()

			_, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
				Message:     "Not for the team feed",
				Visibility:  model.VisibilityPrivate,
			})
			So(err, ShouldBeNil)

			pub, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
				Message:     "For the whole team",
				Visibility:  model.VisibilityPublic,
			})
			So(err, ShouldBeNil)

			Convey("Then only public recognitions reach the team stream", func() {
				select {
				case got := <-sub.C():
					So(got.ID, ShouldEqual, pub.ID)
				case <-time.After(time.Second):
					So("timeout", ShouldBeEmpty)
				}
				select {
				case extra := <-sub.C():
					So(extra.ID, ShouldBeEmpty)
				default:
				}
			})
		})
	})
}

func TestService_NotificationModes(t *testing.T) {
	Convey("Given an immediate-mode service with a capture notifier", t, func() {
		capture := &captureNotifier{}
		svc := startFixtureService(service.WithNotifier(capture))
		defer svc.Stop()
		ctx := context.Background()
		sender := mustUser(svc, "user1")

		Convey("When a recognition is created", func() {
			rec, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
				RecipientID: "user3",
				Message:     "Immediate delivery",
			})
			So(err, ShouldBeNil)

			Convey("Then the notification goes out without waiting for a flush", func() {
				deadline := time.After(2 * time.Second)
				for len(capture.all()) == 0 {
					select {
					case <-deadline:
						So("delivery timeout", ShouldBeEmpty)
					case <-time.After(5 * time.Millisecond):
					}
				}
				So(capture.all()[0].ID, ShouldEqual, rec.ID)
			})
		})
	})

	Convey("Given a batching service with a capture notifier", t, func() {
		capture := &captureNotifier{}
		svc := startFixtureService(
			service.WithNotifier(capture),
			service.WithBatching(true),
			service.WithFlushInterval(time.Hour),
		)
		defer svc.Stop()
		ctx := context.Background()
		sender := mustUser(svc, "user1")

		Convey("When three recognitions are created", func() {
			var ids []string
			for _, msg := range []string{"first", "second", "third"} {
				rec, err := svc.CreateRecognition(ctx, sender, service.CreateInput{
					RecipientID: "user3",
					Message:     msg,
				})
				So(err, ShouldBeNil)
				ids = append(ids, rec.ID)
			}

			Convey("Then nothing is delivered before a flush", func() {
				So(len(capture.all()), ShouldEqual, 0)
				So(svc.GetStats()["notificationBacklog"], ShouldEqual, 3)
			})

			Convey("And a flush delivers exactly the backlog in creation order", func() {
				svc.FlushNotifications(ctx)

				got := capture.all()
				So(len(got), ShouldEqual, 3)
				for i, id := range ids {
					So(got[i].ID, ShouldEqual, id)
				}
				So(svc.GetStats()["notificationBacklog"], ShouldEqual, 0)

				svc.FlushNotifications(ctx)
				So(len(capture.all()), ShouldEqual, 3)
			})
		})
	})
}

func TestService_UpdateProfile(t *testing.T) {
	Convey("Given a started service with fixtures", t, func() {
		svc := startFixtureService()
		defer svc.Stop()
		ctx := context.Background()
		viewer := mustUser(svc, "user1")

		Convey("When updating name and team", func() {
			name := "Johnathan Doe"
			team := "team2"
			updated, err := svc.UpdateProfile(ctx, viewer, &name, &team)

			Convey("Then both fields change", func() {
				So(err, ShouldBeNil)
				So(updated.Name, ShouldEqual, "Johnathan Doe")
				So(updated.TeamID, ShouldEqual, "team2")
			})
		})

		Convey("When moving to an unknown team", func() {
			team := "team99"
			updated, err := svc.UpdateProfile(ctx, viewer, nil, &team)

			Convey("Then the unknown team is ignored, not rejected", func() {
				So(err, ShouldBeNil)
				So(updated.TeamID, ShouldEqual, "team1")
			})
		})
	})
}
