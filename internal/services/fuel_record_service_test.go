package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ynym/garage-api/internal/models"
	"github.com/ynym/garage-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type FuelRecordServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	service        *FuelRecordService
	vehicleService *VehicleService
	userID         uuid.UUID
	vehicle        *models.Vehicle
}

func (suite *FuelRecordServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.FuelRecord{})
	suite.Require().NoError(err)

	vehicleRepo := repository.NewVehicleRepository(suite.db)
	suite.service = NewFuelRecordService(repository.NewFuelRecordRepository(suite.db), vehicleRepo)
	suite.vehicleService = NewVehicleService(vehicleRepo)
	suite.userID = uuid.New()

	suite.vehicle, err = suite.vehicleService.CreateVehicle(suite.userID, CreateVehicleInput{
		Name:  "daily driver",
		Maker: "Toyota",
		Model: "Corolla",
	})
	suite.Require().NoError(err)
}

func (suite *FuelRecordServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *FuelRecordServiceTestSuite) createRecord(mileage, unitPrice, totalCost int, refueledAt time.Time) *models.FuelRecord {
	record, err := suite.service.CreateFuelRecord(suite.userID, CreateFuelRecordInput{
		VehicleID:      suite.vehicle.ID,
		RefuelDatetime: refueledAt,
		TotalMileage:   mileage,
		FuelType:       "regular",
		UnitPrice:      unitPrice,
		TotalCost:      totalCost,
	})
	suite.Require().NoError(err)
	return record
}

func (suite *FuelRecordServiceTestSuite) TestListFuelRecords_DerivesStatsForVehicle() {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.createRecord(500, 170, 8500, base)
	suite.createRecord(1000, 160, 8000, base.Add(7*24*time.Hour))

	results, total, err := suite.service.ListFuelRecords(ListFuelRecordsInput{
		UserID:    suite.userID,
		VehicleID: &suite.vehicle.ID,
		Limit:     100,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(2), total)
	suite.Require().Len(results, 2)

	// Listing is newest first; derivation follows chronological order.
	newest, oldest := results[0], results[1]
	assert.Equal(suite.T(), 1000, newest.Record.TotalMileage)
	assert.Equal(suite.T(), 500, *newest.DistanceTraveled)
	assert.Equal(suite.T(), 50.0, *newest.FuelAmount)
	assert.Equal(suite.T(), 10.0, *newest.FuelEfficiency)

	assert.Equal(suite.T(), 500, *oldest.DistanceTraveled)
	assert.Equal(suite.T(), 50.0, *oldest.FuelAmount)
	assert.Equal(suite.T(), 10.0, *oldest.FuelEfficiency)
}

func (suite *FuelRecordServiceTestSuite) TestListFuelRecords_PageUsesFullChain() {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.createRecord(400, 150, 6000, base)
	suite.createRecord(900, 150, 6000, base.Add(24*time.Hour))
	suite.createRecord(1500, 150, 6000, base.Add(48*time.Hour))

	results, total, err := suite.service.ListFuelRecords(ListFuelRecordsInput{
		UserID:    suite.userID,
		VehicleID: &suite.vehicle.ID,
		Limit:     1,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(3), total)
	suite.Require().Len(results, 1)

	// The predecessor lives outside the requested page but still anchors
	// the distance calculation.
	assert.Equal(suite.T(), 1500, results[0].Record.TotalMileage)
	assert.Equal(suite.T(), 600, *results[0].DistanceTraveled)
}

func (suite *FuelRecordServiceTestSuite) TestListFuelRecords_NoVehicleFilterNoStats() {
	suite.createRecord(500, 170, 8500, time.Now())

	results, _, err := suite.service.ListFuelRecords(ListFuelRecordsInput{
		UserID: suite.userID,
		Limit:  100,
	})
	suite.Require().NoError(err)

	suite.Require().Len(results, 1)
	assert.Nil(suite.T(), results[0].DistanceTraveled)
	assert.Nil(suite.T(), results[0].FuelAmount)
	assert.Nil(suite.T(), results[0].FuelEfficiency)
}

func (suite *FuelRecordServiceTestSuite) TestDeleteFuelRecord_ReconnectsChain() {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.createRecord(400, 150, 6000, base)
	middle := suite.createRecord(900, 150, 6000, base.Add(24*time.Hour))
	suite.createRecord(1500, 150, 6000, base.Add(48*time.Hour))

	suite.Require().NoError(suite.service.DeleteFuelRecord(suite.userID, middle.ID))

	results, total, err := suite.service.ListFuelRecords(ListFuelRecordsInput{
		UserID:    suite.userID,
		VehicleID: &suite.vehicle.ID,
		Limit:     100,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(2), total)
	suite.Require().Len(results, 2)

	// With the middle record gone the newest record chains directly to the
	// oldest one.
	assert.Equal(suite.T(), 1500, results[0].Record.TotalMileage)
	assert.Equal(suite.T(), 1100, *results[0].DistanceTraveled)
}

func (suite *FuelRecordServiceTestSuite) TestCreateFuelRecord_ForeignVehicleRejected() {
	otherVehicle, err := suite.vehicleService.CreateVehicle(uuid.New(), CreateVehicleInput{
		Name:  "not mine",
		Maker: "Honda",
		Model: "Fit",
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateFuelRecord(suite.userID, CreateFuelRecordInput{
		VehicleID:      otherVehicle.ID,
		RefuelDatetime: time.Now(),
		TotalMileage:   100,
		FuelType:       "regular",
		UnitPrice:      170,
		TotalCost:      5000,
	})
	assert.ErrorIs(suite.T(), err, ErrVehicleNotFound)
}

func (suite *FuelRecordServiceTestSuite) TestCreateFuelRecord_Validation() {
	var validationErr *ValidationError

	input := CreateFuelRecordInput{
		VehicleID:      suite.vehicle.ID,
		RefuelDatetime: time.Now(),
		TotalMileage:   0,
		FuelType:       "regular",
		UnitPrice:      170,
		TotalCost:      5000,
	}
	_, err := suite.service.CreateFuelRecord(suite.userID, input)
	suite.Require().ErrorAs(err, &validationErr)
	assert.Equal(suite.T(), "total_mileage", validationErr.Field)

	input.TotalMileage = 100
	input.UnitPrice = 0
	_, err = suite.service.CreateFuelRecord(suite.userID, input)
	suite.Require().ErrorAs(err, &validationErr)
	assert.Equal(suite.T(), "unit_price", validationErr.Field)

	input.UnitPrice = 170
	input.TotalCost = -1
	_, err = suite.service.CreateFuelRecord(suite.userID, input)
	suite.Require().ErrorAs(err, &validationErr)
	assert.Equal(suite.T(), "total_cost", validationErr.Field)
}

func (suite *FuelRecordServiceTestSuite) TestUpdateFuelRecord_Partial() {
	record := suite.createRecord(500, 170, 8500, time.Now())

	mileage := 550
	updated, err := suite.service.UpdateFuelRecord(suite.userID, record.ID, UpdateFuelRecordInput{
		TotalMileage: &mileage,
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 550, updated.TotalMileage)
	assert.Equal(suite.T(), 170, updated.UnitPrice)
	assert.Equal(suite.T(), 8500, updated.TotalCost)
}

func (suite *FuelRecordServiceTestSuite) TestUpdateFuelRecord_BlankStationNameIgnored() {
	station := "ENEOS Shibuya"
	record, err := suite.service.CreateFuelRecord(suite.userID, CreateFuelRecordInput{
		VehicleID:      suite.vehicle.ID,
		RefuelDatetime: time.Now(),
		TotalMileage:   500,
		FuelType:       "regular",
		UnitPrice:      170,
		TotalCost:      8500,
		GasStationName: &station,
	})
	suite.Require().NoError(err)

	blank := "   "
	updated, err := suite.service.UpdateFuelRecord(suite.userID, record.ID, UpdateFuelRecordInput{
		GasStationName: &blank,
	})
	suite.Require().NoError(err)

	// A name that trims to nothing leaves the stored value alone.
	suite.Require().NotNil(updated.GasStationName)
	assert.Equal(suite.T(), station, *updated.GasStationName)
}

func (suite *FuelRecordServiceTestSuite) TestGetFuelRecord_OtherUsersRecordNotFound() {
	record := suite.createRecord(500, 170, 8500, time.Now())

	_, err := suite.service.GetFuelRecord(uuid.New(), record.ID)
	assert.ErrorIs(suite.T(), err, ErrFuelRecordNotFound)
}

func (suite *FuelRecordServiceTestSuite) TestDeleteFuelRecord_ThenNotFound() {
	record := suite.createRecord(500, 170, 8500, time.Now())

	suite.Require().NoError(suite.service.DeleteFuelRecord(suite.userID, record.ID))

	_, err := suite.service.GetFuelRecord(suite.userID, record.ID)
	assert.ErrorIs(suite.T(), err, ErrFuelRecordNotFound)

	err = suite.service.DeleteFuelRecord(suite.userID, record.ID)
	assert.ErrorIs(suite.T(), err, ErrFuelRecordNotFound)
}

func TestFuelRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FuelRecordServiceTestSuite))
}
