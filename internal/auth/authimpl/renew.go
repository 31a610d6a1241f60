package authimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/nbcommunication/instagram-media-display/internal/auth"
)

// ScheduleRenewal sets up a daily job that walks every stored account and
// refreshes any token inside the renewal window. Resolve already refreshes
// lazily on access; the sweep covers accounts that are rarely requested.
func (a *AuthImpl) ScheduleRenewal(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return fmt.Errorf("failed to create renewal scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)), // At 3:00 AM
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				a.Logger.Info("Context cancelled, stopping token renewal job")
				return
			}

			sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			a.sweep(sweepCtx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule token renewal: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		a.Logger.Info("Stopping token renewal scheduler")
		if err := scheduler.Shutdown(); err != nil {
			a.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}

func (a *AuthImpl) sweep(ctx context.Context) {
	a.Logger.Info("Starting scheduled token renewal sweep")

	accounts, err := a.Accounts.List(ctx)
	if err != nil {
		a.Logger.Error("Failed to list accounts for renewal", "error", err)
		return
	}

	refreshed := 0
	for _, acc := range accounts {
		if time.Until(acc.TokenRenews) >= auth.RenewalWindow {
			continue
		}
		if err := a.refresh(ctx, acc); err != nil {
			a.Logger.Error("Could not refresh long-lived access token",
				"username", acc.Username,
				"error", err,
			)
			continue
		}
		refreshed++
	}

	a.Logger.Info("Token renewal sweep completed", "accounts", len(accounts), "refreshed", refreshed)
}
