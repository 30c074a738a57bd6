package services

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fidelity-club/fidelity-be/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the real schema.
// TranslateError matches production so unique violations surface as
// gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	// One connection so every session sees the same :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Coupon{},
		&models.Purchase{},
		&models.Redemption{},
	); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}

	return db
}

// storageFake satisfies storage.Storage without touching disk.
type storageFake struct {
	saved    int
	payloads []string
	failQR   bool
}

func (s *storageFake) Save(data []byte, folder, ext string) (string, error) {
	s.saved++
	return fmt.Sprintf("mem://%s/%d%s", folder, s.saved, ext), nil
}

func (s *storageFake) IssueQR(payload, folder string) (string, error) {
	if s.failQR {
		return "", errors.New("qr backend down")
	}
	s.payloads = append(s.payloads, payload)
	return s.Save([]byte(payload), folder, ".png")
}

// fixedCodes returns a generator whose random suffixes are all "A"
// (source of zero bytes).
func fixedCodes() *CodeGenerator {
	return NewCodeGeneratorWithSource(bytes.NewReader(make([]byte, 1024)))
}

func seedUser(t *testing.T, db *gorm.DB, points int, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Ana Torres",
		DNI:      fmt.Sprintf("dni-%d-%s", points, role),
		Email:    fmt.Sprintf("user%d%s@test.com", points, role),
		Password: "hashed",
		Role:     role,
		Points:   points,
		Level:    models.LevelForPoints(points),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedCoupon(t *testing.T, db *gorm.DB, cost int, active bool) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Title:        fmt.Sprintf("Cupón %d", cost),
		CostInPoints: cost,
		IsActive:     active,
		RedeemCode:   "ABCD1234",
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("seeding coupon: %v", err)
	}
	// IsActive carries gorm:"default:true", so GORM swaps a zero-value
	// false for the default during Create; persist inactive explicitly.
	if !active {
		if err := db.Model(coupon).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivating seeded coupon: %v", err)
		}
	}
	return coupon
}

func userPoints(t *testing.T, db *gorm.DB, id uint) (int, models.Level) {
	t.Helper()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("reloading user: %v", err)
	}
	return user.Points, user.Level
}
