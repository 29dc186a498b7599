package database

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeledger/server/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	db, err := NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *Database, email string) *models.User {
	user := &models.User{Email: email, PasswordHash: "hash", DisplayName: "Test"}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func createTestHouse(t *testing.T, db *Database, userID uint) *models.House {
	house := &models.House{
		UserID:        userID,
		Nickname:      "Main house",
		Country:       "United States",
		PurchasePrice: decimal.RequireFromString("300000"),
	}
	require.NoError(t, db.CreateHouse(context.Background(), house))
	return house
}

func TestHouseOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	house := createTestHouse(t, db, owner.ID)

	got, err := db.GetHouse(ctx, owner.ID, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main house", got.Nickname)

	_, err = db.GetHouse(ctx, stranger.ID, house.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	houses, err := db.ListHouses(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, houses)
}

func TestUpdateHouseClearsOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "u@example.com")
	house := createTestHouse(t, db, user.ID)

	year := 2018
	sale := decimal.RequireFromString("410000")
	house.PurchaseYear = &year
	house.SalePrice = &sale
	require.NoError(t, db.UpdateHouse(ctx, house))

	got, err := db.GetHouse(ctx, user.ID, house.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SalePrice)
	assert.True(t, sale.Equal(*got.SalePrice))

	// Clearing the sale price persists the nil.
	house.SalePrice = nil
	require.NoError(t, db.UpdateHouse(ctx, house))
	got, err = db.GetHouse(ctx, user.ID, house.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SalePrice)
}

func TestSoftDeleteHouseCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "cascade@example.com")
	house := createTestHouse(t, db, user.ID)

	room := &models.Room{HouseID: house.ID, Kind: models.RoomKindKitchen}
	require.NoError(t, db.CreateRoom(ctx, room))

	appliance := &models.Appliance{HouseID: house.ID, Name: "Fridge", PurchaseCost: decimal.RequireFromString("1200")}
	require.NoError(t, db.CreateAppliance(ctx, appliance))
	repair := &models.Repair{ApplianceID: appliance.ID, Date: time.Now(), Description: "Compressor", Cost: decimal.RequireFromString("150")}
	require.NoError(t, db.CreateRepair(ctx, repair))

	feature := &models.ExteriorFeature{HouseID: house.ID, Name: "Deck", BuildCost: decimal.RequireFromString("5000")}
	require.NoError(t, db.CreateExteriorFeature(ctx, feature))

	require.NoError(t, db.SoftDeleteHouse(ctx, user.ID, house.ID))

	_, err := db.GetHouse(ctx, user.ID, house.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	appliances, err := db.ListActiveAppliances(ctx, house.ID)
	require.NoError(t, err)
	assert.Empty(t, appliances)

	rooms, err := db.ListRooms(ctx, house.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	features, err := db.ListActiveExteriorFeatures(ctx, house.ID)
	require.NoError(t, err)
	assert.Empty(t, features)

	repairs, err := db.ListRepairsForAppliances(ctx, []uint{appliance.ID})
	require.NoError(t, err)
	assert.Empty(t, repairs)
}

func TestSoftDeleteApplianceHidesChildren(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "appliance@example.com")
	house := createTestHouse(t, db, user.ID)

	appliance := &models.Appliance{HouseID: house.ID, Name: "Washer"}
	require.NoError(t, db.CreateAppliance(ctx, appliance))
	repair := &models.Repair{ApplianceID: appliance.ID, Date: time.Now(), Description: "Belt", Cost: decimal.RequireFromString("60")}
	require.NoError(t, db.CreateRepair(ctx, repair))

	require.NoError(t, db.SoftDeleteAppliance(ctx, appliance.ID))

	_, err := db.GetAppliance(ctx, user.ID, appliance.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	repairs, err := db.ListRepairs(ctx, appliance.ID)
	require.NoError(t, err)
	assert.Empty(t, repairs)
}

func TestPermanentDeleteApplianceRemovesRows(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "permanent@example.com")
	house := createTestHouse(t, db, user.ID)

	appliance := &models.Appliance{HouseID: house.ID, Name: "Dryer"}
	require.NoError(t, db.CreateAppliance(ctx, appliance))
	require.NoError(t, db.CreateRepair(ctx, &models.Repair{
		ApplianceID: appliance.ID, Date: time.Now(), Description: "Drum", Cost: decimal.RequireFromString("90"),
	}))
	require.NoError(t, db.CreateAttachment(ctx, &models.Attachment{
		ApplianceID: appliance.ID, FileName: "manual.pdf", FileURL: "data:application/pdf;base64,aGk=", FileSize: 2,
	}))

	require.NoError(t, db.PermanentDeleteAppliance(ctx, appliance.ID))

	// Rows are gone even when soft-delete filtering is bypassed.
	var repairCount, attachmentCount int64
	require.NoError(t, db.GetDB().Unscoped().Model(&models.Repair{}).
		Where("appliance_id = ?", appliance.ID).Count(&repairCount).Error)
	require.NoError(t, db.GetDB().Unscoped().Model(&models.Attachment{}).
		Where("appliance_id = ?", appliance.ID).Count(&attachmentCount).Error)
	assert.Zero(t, repairCount)
	assert.Zero(t, attachmentCount)

	// Deleting again reports not found.
	assert.ErrorIs(t, db.PermanentDeleteAppliance(ctx, appliance.ID), ErrNotFound)
}

func TestPermanentDeleteRoomDetachesAppliances(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "room@example.com")
	house := createTestHouse(t, db, user.ID)

	room := &models.Room{HouseID: house.ID, Kind: models.RoomKindKitchen}
	require.NoError(t, db.CreateRoom(ctx, room))

	appliance := &models.Appliance{HouseID: house.ID, RoomID: &room.ID, Name: "Oven"}
	require.NoError(t, db.CreateAppliance(ctx, appliance))

	require.NoError(t, db.PermanentDeleteRoom(ctx, room.ID))

	got, err := db.GetAppliance(ctx, user.ID, appliance.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoomID)
}

func TestAttachmentCountExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "att@example.com")
	house := createTestHouse(t, db, user.ID)
	appliance := &models.Appliance{HouseID: house.ID, Name: "Dishwasher"}
	require.NoError(t, db.CreateAppliance(ctx, appliance))

	first := &models.Attachment{ApplianceID: appliance.ID, FileName: "a.png", FileURL: "data:image/png;base64,aGk=", FileSize: 2}
	second := &models.Attachment{ApplianceID: appliance.ID, FileName: "b.png", FileURL: "data:image/png;base64,aGk=", FileSize: 2}
	require.NoError(t, db.CreateAttachment(ctx, first))
	require.NoError(t, db.CreateAttachment(ctx, second))

	count, err := db.CountAttachments(ctx, appliance.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, db.SoftDeleteAttachment(ctx, first.ID))
	count, err = db.CountAttachments(ctx, appliance.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHousePurchasePrice(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "price@example.com")
	house := createTestHouse(t, db, user.ID)

	price, err := db.HousePurchasePrice(ctx, house.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("300000").Equal(price))

	_, err = db.HousePurchasePrice(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMaintenanceStaleHouses(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cutoff := time.Now().AddDate(0, -12, 0)

	user := createTestUser(t, db, "stale@example.com")

	// A house with a feature and only old maintenance is stale.
	stale := createTestHouse(t, db, user.ID)
	require.NoError(t, db.CreateExteriorFeature(ctx, &models.ExteriorFeature{HouseID: stale.ID, Name: "Fence"}))
	require.NoError(t, db.CreateExteriorMaintenance(ctx, &models.ExteriorMaintenance{
		HouseID: stale.ID, Date: cutoff.AddDate(0, -6, 0), Description: "Stain",
	}))

	// A recently maintained house is not.
	fresh := createTestHouse(t, db, user.ID)
	require.NoError(t, db.CreateExteriorFeature(ctx, &models.ExteriorFeature{HouseID: fresh.ID, Name: "Deck"}))
	require.NoError(t, db.CreateExteriorMaintenance(ctx, &models.ExteriorMaintenance{
		HouseID: fresh.ID, Date: time.Now(), Description: "Wash",
	}))

	// A house with no exterior features is never stale.
	bare := createTestHouse(t, db, user.ID)

	houses, err := db.ListMaintenanceStaleHouses(ctx, cutoff)
	require.NoError(t, err)

	ids := make([]uint, len(houses))
	for i, h := range houses {
		ids[i] = h.ID
	}
	assert.Contains(t, ids, stale.ID)
	assert.NotContains(t, ids, fresh.ID)
	assert.NotContains(t, ids, bare.ID)
}
