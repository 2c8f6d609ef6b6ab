package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	"github.com/plantulas/plantbot/internal/schedule"
	userdomain "github.com/plantulas/plantbot/internal/user/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDemoGrower seeds a demo account with two indoors, three plants and
// some watering history. Idempotent: existing rows are left alone.
func EnsureDemoGrower(db *gorm.DB, telegramUserID int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ensureDemoUserTx(ctx, tx, node, telegramUserID)
		if err != nil {
			return err
		}

		indoors, err := ensureDemoIndoorsTx(ctx, tx, node, user.ID)
		if err != nil {
			return err
		}

		plants, err := ensureDemoPlantsTx(ctx, tx, node, user.ID, indoors)
		if err != nil {
			return err
		}

		return ensureDemoWateringsTx(ctx, tx, node, plants)
	})
}

func ensureDemoUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, telegramUserID int64) (userdomain.User, error) {
	var user userdomain.User
	err := tx.WithContext(ctx).Where("telegram_user_id = ?", telegramUserID).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, err
	}

	user = userdomain.User{
		ID:             node.Generate(),
		TelegramUserID: telegramUserID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return user, err
	}
	return user, nil
}

func ensureDemoIndoorsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, userID snowflake.ID) ([]indoordomain.Indoor, error) {
	now := time.Now().UTC()

	wanted := []indoordomain.Indoor{
		{
			Name:            "Main Tent",
			TempC:           f64(24.5),
			Humidity:        f64(65.0),
			FanLocation:     str("top left corner"),
			ExtractorTop:    true,
			ExtractorBottom: false,
			Fan:             true,
			LightHeightCm:   f64(50.0),
			LightPowerPct:   i(80),
			LightSchedule:   str("18/6"),
		},
		{
			Name:            "Herb Garden",
			TempC:           f64(22.0),
			Humidity:        f64(55.0),
			ExtractorTop:    false,
			ExtractorBottom: false,
			Fan:             true,
			LightHeightCm:   f64(40.0),
			LightPowerPct:   i(60),
			LightSchedule:   str("16/8"),
		},
	}

	indoors := make([]indoordomain.Indoor, 0, len(wanted))
	for _, indoor := range wanted {
		var existing indoordomain.Indoor
		err := tx.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, indoor.Name).
			First(&existing).Error
		if err == nil {
			indoors = append(indoors, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		indoor.ID = node.Generate()
		indoor.UserID = userID
		indoor.CreatedAt = now
		indoor.UpdatedAt = now
		if err := tx.WithContext(ctx).Create(&indoor).Error; err != nil {
			return nil, err
		}

		history := indoordomain.IndoorHistory{
			ID:       node.Generate(),
			IndoorID: indoor.ID,
			EventTS:  now,
			Message:  "Indoor created.",
		}
		if err := tx.WithContext(ctx).Create(&history).Error; err != nil {
			return nil, err
		}
		indoors = append(indoors, indoor)
	}

	return indoors, nil
}

func ensureDemoPlantsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, userID snowflake.ID, indoors []indoordomain.Indoor) ([]plantdomain.Plant, error) {
	now := time.Now().UTC()
	today := schedule.Date(now)

	type demoPlant struct {
		plantdomain.Plant
		lastWateredDaysAgo int
		plantedDaysAgo     int
		indoorIdx          int
	}

	wanted := []demoPlant{
		{
			Plant: plantdomain.Plant{
				Name:                 "Monstera",
				Species:              str("Monstera deliciosa"),
				WateringIntervalDays: 7,
				DefaultLiters:        1.5,
				Notes:                str("Needs bright indirect light"),
			},
			lastWateredDaysAgo: 3,
			plantedDaysAgo:     60,
			indoorIdx:          0,
		},
		{
			Plant: plantdomain.Plant{
				Name:                 "Ficus",
				Species:              str("Ficus elastica"),
				WateringIntervalDays: 5,
				DefaultLiters:        1.0,
				Notes:                str("Water when the topsoil feels dry"),
			},
			// One day overdue, so the dashboard has something urgent to show.
			lastWateredDaysAgo: 6,
			plantedDaysAgo:     45,
			indoorIdx:          0,
		},
		{
			Plant: plantdomain.Plant{
				Name:                 "Basil",
				Species:              str("Ocimum basilicum"),
				WateringIntervalDays: 3,
				DefaultLiters:        0.5,
				Notes:                str("Kitchen herbs"),
			},
			lastWateredDaysAgo: 1,
			plantedDaysAgo:     30,
			indoorIdx:          1,
		},
	}

	plants := make([]plantdomain.Plant, 0, len(wanted))
	for _, demo := range wanted {
		var existing plantdomain.Plant
		err := tx.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, demo.Name).
			First(&existing).Error
		if err == nil {
			plants = append(plants, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		plant := demo.Plant
		plant.ID = node.Generate()
		plant.UserID = userID
		if demo.indoorIdx < len(indoors) {
			indoorID := indoors[demo.indoorIdx].ID
			plant.IndoorID = &indoorID
		}

		plantedAt := today.AddDate(0, 0, -demo.plantedDaysAgo)
		lastWatered := today.AddDate(0, 0, -demo.lastWateredDaysAgo)
		plant.PlantedAt = &plantedAt
		plant.LastWateredAt = &lastWatered
		plant.NextWaterAt = schedule.NextWaterAt(&lastWatered, plant.WateringIntervalDays)
		plant.CreatedAt = now
		plant.UpdatedAt = now

		if err := tx.WithContext(ctx).Create(&plant).Error; err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}

	return plants, nil
}

func ensureDemoWateringsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, plants []plantdomain.Plant) error {
	now := time.Now().UTC()

	for _, plant := range plants {
		if plant.LastWateredAt == nil {
			continue
		}

		var count int64
		err := tx.WithContext(ctx).
			Model(&plantdomain.WateringHistory{}).
			Where("plant_id = ?", plant.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		previous := plant.LastWateredAt.AddDate(0, 0, -plant.WateringIntervalDays)
		records := []plantdomain.WateringHistory{
			{
				ID:      node.Generate(),
				PlantID: plant.ID,
				EventTS: atTimeOfDay(previous, now),
				Liters:  plant.DefaultLiters,
				Note:    str("Routine watering"),
			},
			{
				ID:      node.Generate(),
				PlantID: plant.ID,
				EventTS: atTimeOfDay(*plant.LastWateredAt, now),
				Liters:  plant.DefaultLiters,
				Note:    str("Watering with fertilizer"),
				Ferts:   datatypes.JSONMap{"NPK 10-10-10": "5ml/l"},
			},
		}

		for _, record := range records {
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func atTimeOfDay(day, clock time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		time.UTC,
	)
}

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }
func str(v string) *string   { return &v }
