package handlers

import (
	"context"
	"errors"

	"kasmoni-backend/database"
	"kasmoni-backend/engine"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	slotResolver    *engine.Resolver
	reconciler      *engine.Reconciler
	reporter        *engine.Reporter
	recomputeOutbox *engine.RecomputeOutbox
	paymentStore    *database.PaymentStore
)

// InitEngine wires the settlement engine to the gorm-backed stores. Must be
// called after database.Connect().
func InitEngine() {
	slots := database.NewSlotStore()
	payouts := database.NewPayoutStore()
	paymentStore = database.NewPaymentStore()

	slotResolver = engine.NewResolver(slots)
	reconciler = engine.NewReconciler(payouts, paymentStore)
	reporter = engine.NewReporter(slotResolver, payouts, paymentStore)
	recomputeOutbox = engine.NewRecomputeOutbox(func(ctx context.Context, slotID uuid.UUID, t engine.Toggles) error {
		rec, err := reconciler.RecomputeAndPersist(ctx, slotID, t)
		if err != nil {
			return err
		}
		invalidateSummary(rec.PayoutMonth)
		return nil
	})
}

// WaitForOutbox drains in-flight recompute writes. Called on shutdown.
func WaitForOutbox() {
	if recomputeOutbox != nil {
		recomputeOutbox.Wait()
	}
}

func summaryCacheKey(month string) string {
	return "summary:" + month
}

func invalidateSummary(month string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), summaryCacheKey(month))
}

// engineError maps the engine's error taxonomy onto HTTP responses.
func engineError(c *gin.Context, err error) {
	switch {
	case engine.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, engine.ErrPrerequisiteNotMet):
		utils.Conflict(c, "Payout record must be saved first")
	case engine.IsStoreUnavailable(err):
		utils.ServiceUnavailable(c, "Store unavailable, please retry")
	default:
		utils.InternalError(c, err.Error())
	}
}
