package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/http/api"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/http/swagger"
	app "github.com/Teenu24/employee-recognition-api/internal/app"
	"github.com/Teenu24/employee-recognition-api/internal/config"
	"github.com/Teenu24/employee-recognition-api/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("RECOGNITION_ADDR", ":8080")
			_ = os.Setenv("RECOGNITION_TOP_KEYWORDS", "3")
			_ = os.Setenv("RECOGNITION_BATCH_NOTIFICATIONS", "true")
			defer func() {
				_ = os.Unsetenv("RECOGNITION_ADDR")
				_ = os.Unsetenv("RECOGNITION_TOP_KEYWORDS")
				_ = os.Unsetenv("RECOGNITION_BATCH_NOTIFICATIONS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TopKeywords, convey.ShouldEqual, 3)
				convey.So(cfg.BatchNotifications, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithBatching(true),
					app.WithTopKeywords(10),
					app.WithSubscriberBuffer(32),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When wiring all components together", func() {
			ctx := context.Background()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)

			svc := app.New(
				app.WithBatching(cfg.BatchNotifications),
				app.WithTopKeywords(cfg.TopKeywords),
				app.WithSubscriberBuffer(cfg.SubscriberBuffer),
				app.WithFixtures(false),
			)
			convey.So(svc, convey.ShouldNotBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.Convey("Then the service reports started", func() {
				convey.So(svc.GetStats()["started"], convey.ShouldEqual, true)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When the listen address is cleared", func() {
			_ = os.Setenv("RECOGNITION_ADDR", "")
			defer func() { _ = os.Unsetenv("RECOGNITION_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When options carry out-of-range values", func() {
			convey.Convey("Then defaults are kept", func() {
				svc := app.New(
					app.WithTopKeywords(0),
					app.WithSubscriberBuffer(-1),
					app.WithFlushInterval(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
