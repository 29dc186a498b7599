// Package costs computes the derived cost breakdown and lifecycle
// figures for a house.
package costs

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"homeledger/server/internal/models"
)

// Reader is the slice of the data-access layer the aggregator needs.
// Every method returns only rows that are not soft-deleted.
type Reader interface {
	HousePurchasePrice(ctx context.Context, houseID uint) (decimal.Decimal, error)
	ListActiveAppliances(ctx context.Context, houseID uint) ([]models.Appliance, error)
	ListRepairsForAppliances(ctx context.Context, applianceIDs []uint) ([]models.Repair, error)
	ListActiveExteriorFeatures(ctx context.Context, houseID uint) ([]models.ExteriorFeature, error)
	ListActiveExteriorMaintenance(ctx context.Context, houseID uint) ([]models.ExteriorMaintenance, error)
}

// Aggregator reduces a house's cost-bearing records into a CostBreakdown.
type Aggregator struct {
	reader Reader
	logger *logrus.Logger
}

// NewAggregator creates a new cost aggregator.
func NewAggregator(reader Reader, logger *logrus.Logger) *Aggregator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Aggregator{
		reader: reader,
		logger: logger,
	}
}

// Aggregate fetches all non-deleted cost-bearing rows for a house and
// sums them into a breakdown. Reads run as a two-phase fan-out: purchase
// price, appliances, exterior features and exterior maintenance in
// parallel, then repairs for the collected appliance IDs. A house with no
// appliances never issues the repair lookup.
//
// Aggregation is read-only and takes no locks; the result reflects
// whatever was last committed. If any read fails the whole aggregation
// fails. A partial breakdown is never returned.
func (a *Aggregator) Aggregate(ctx context.Context, houseID uint) (models.CostBreakdown, error) {
	var (
		purchase    decimal.Decimal
		appliances  []models.Appliance
		features    []models.ExteriorFeature
		maintenance []models.ExteriorMaintenance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		purchase, err = a.reader.HousePurchasePrice(gctx, houseID)
		return err
	})
	g.Go(func() error {
		var err error
		appliances, err = a.reader.ListActiveAppliances(gctx, houseID)
		return err
	})
	g.Go(func() error {
		var err error
		features, err = a.reader.ListActiveExteriorFeatures(gctx, houseID)
		return err
	})
	g.Go(func() error {
		var err error
		maintenance, err = a.reader.ListActiveExteriorMaintenance(gctx, houseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.CostBreakdown{}, fmt.Errorf("aggregate costs for house %d: %w", houseID, err)
	}

	// Phase 2 runs on the request context: the group context is canceled
	// once Wait returns.
	var repairs []models.Repair
	if len(appliances) > 0 {
		ids := make([]uint, len(appliances))
		for i, appliance := range appliances {
			ids[i] = appliance.ID
		}

		var err error
		repairs, err = a.reader.ListRepairsForAppliances(ctx, ids)
		if err != nil {
			return models.CostBreakdown{}, fmt.Errorf("aggregate repairs for house %d: %w", houseID, err)
		}
	}

	breakdown := models.CostBreakdown{HousePurchase: purchase}
	for _, appliance := range appliances {
		breakdown.Appliances = breakdown.Appliances.Add(appliance.PurchaseCost)
		breakdown.ApplianceInstallation = breakdown.ApplianceInstallation.Add(appliance.InstallationCost)
	}
	for _, repair := range repairs {
		breakdown.ApplianceRepairs = breakdown.ApplianceRepairs.Add(repair.Cost)
	}
	for _, feature := range features {
		breakdown.ExteriorFeatures = breakdown.ExteriorFeatures.Add(feature.BuildCost)
	}
	for _, record := range maintenance {
		breakdown.ExteriorMaintenance = breakdown.ExteriorMaintenance.Add(record.Cost)
	}

	breakdown.TotalCost = breakdown.HousePurchase.
		Add(breakdown.Appliances).
		Add(breakdown.ApplianceInstallation).
		Add(breakdown.ApplianceRepairs).
		Add(breakdown.ExteriorFeatures).
		Add(breakdown.ExteriorMaintenance)

	a.logger.WithFields(logrus.Fields{
		"house_id":   houseID,
		"appliances": len(appliances),
		"repairs":    len(repairs),
		"total_cost": breakdown.TotalCost.String(),
	}).Debug("Aggregated house costs")

	return breakdown, nil
}
