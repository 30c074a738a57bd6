package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/fidelity-club/fidelity-be/models"
	"gorm.io/gorm"
)

func setupRedemption(t *testing.T) (*gorm.DB, *RedemptionService, *storageFake) {
	t.Helper()
	db := newTestDB(t)
	store := &storageFake{}
	return db, NewRedemptionService(db, store, fixedCodes()), store
}

func TestRedeemExactBalanceLeavesZero(t *testing.T) {
	db, svc, store := setupRedemption(t)
	user := seedUser(t, db, 500, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	redemption, err := svc.Redeem(user.ID, coupon.ID)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	if redemption.Status != models.RedemptionPending {
		t.Errorf("status = %s, want pending", redemption.Status)
	}
	wantPrefix := "1-1-"
	if !strings.HasPrefix(redemption.RedeemCode, wantPrefix) || len(redemption.RedeemCode) != len(wantPrefix)+6 {
		t.Errorf("redeem code = %q, want %sXXXXXX", redemption.RedeemCode, wantPrefix)
	}
	if redemption.QRCodeImage == "" {
		t.Error("expected an issued QR image URL")
	}
	if len(store.payloads) != 1 || store.payloads[0] != redemption.RedeemCode {
		t.Errorf("QR payloads = %v, want the voucher code", store.payloads)
	}

	points, _ := userPoints(t, db, user.ID)
	if points != 0 {
		t.Errorf("balance = %d, want 0", points)
	}
}

func TestRedeemOnePointShort(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 499, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	_, err := svc.Redeem(user.ID, coupon.ID)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	points, _ := userPoints(t, db, user.ID)
	if points != 499 {
		t.Errorf("balance = %d, want unchanged 499", points)
	}
	var count int64
	db.Model(&models.Redemption{}).Count(&count)
	if count != 0 {
		t.Errorf("redemptions = %d, want 0", count)
	}
}

func TestRedeemSamePairTwice(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 2000, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	first, err := svc.Redeem(user.ID, coupon.ID)
	if err != nil {
		t.Fatalf("first Redeem: %v", err)
	}

	_, err = svc.Redeem(user.ID, coupon.ID)
	if !errors.Is(err, ErrAlreadyRedeemed) {
		t.Fatalf("second Redeem err = %v, want ErrAlreadyRedeemed", err)
	}

	// First redemption and its debit stay intact.
	var reloaded models.Redemption
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reloading first redemption: %v", err)
	}
	if reloaded.Status != models.RedemptionPending {
		t.Errorf("status = %s, want pending", reloaded.Status)
	}
	points, _ := userPoints(t, db, user.ID)
	if points != 1500 {
		t.Errorf("balance = %d, want a single 500 debit from 2000", points)
	}
}

func TestRedeemDuplicateKeyFromConcurrentWriter(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 2000, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	// The pair already exists at insert time, as when a concurrent redeem
	// commits between our pre-check and create.
	if err := db.Create(&models.Redemption{
		UserID:   user.ID,
		CouponID: coupon.ID,
		Status:   models.RedemptionPending,
	}).Error; err != nil {
		t.Fatalf("seeding redemption: %v", err)
	}

	_, err := svc.Redeem(user.ID, coupon.ID)
	if !errors.Is(err, ErrAlreadyRedeemed) {
		t.Fatalf("err = %v, want ErrAlreadyRedeemed", err)
	}
}

func TestRedeemInactiveCoupon(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 1000, models.RoleClient)
	coupon := seedCoupon(t, db, 100, false)

	_, err := svc.Redeem(user.ID, coupon.ID)
	if !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("err = %v, want ErrCouponInactive", err)
	}
}

func TestRedeemMissingUserOrCoupon(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 1000, models.RoleClient)
	coupon := seedCoupon(t, db, 100, true)

	if _, err := svc.Redeem(999, coupon.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.Redeem(user.ID, 999); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("err = %v, want ErrCouponNotFound", err)
	}
}

// The catalog advertises the level-discounted cost, but redemption
// charges the full one. This pins the legacy behavior down on purpose.
func TestRedeemChargesFullCostNotDiscounted(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 2000, models.RoleClient) // Gold
	coupon := &models.Coupon{
		Title:        "Cena para dos",
		CostInPoints: 500,
		DiscountGold: 20,
		IsActive:     true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("seeding coupon: %v", err)
	}

	annotated := AnnotateForLevel([]models.Coupon{*coupon}, models.LevelGold)
	if annotated[0].FinalCostInPoints != 400 {
		t.Fatalf("catalog cost = %d, want 400", annotated[0].FinalCostInPoints)
	}

	if _, err := svc.Redeem(user.ID, coupon.ID); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	points, _ := userPoints(t, db, user.ID)
	if points != 1500 {
		t.Errorf("balance = %d, want 1500: full 500 charged, not 400", points)
	}
}

func TestRedeemRecomputesLevelAfterDebit(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 2100, models.RoleClient) // Gold
	coupon := seedCoupon(t, db, 1500, true)

	if _, err := svc.Redeem(user.ID, coupon.ID); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	points, level := userPoints(t, db, user.ID)
	if points != 600 || level != models.LevelBlanco {
		t.Errorf("after debit = %d/%s, want 600/Blanco", points, level)
	}
}

func TestRedeemQRFailureRollsBackDebit(t *testing.T) {
	db := newTestDB(t)
	store := &storageFake{failQR: true}
	svc := NewRedemptionService(db, store, fixedCodes())
	user := seedUser(t, db, 1000, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	if _, err := svc.Redeem(user.ID, coupon.ID); err == nil {
		t.Fatal("expected QR issuance failure to propagate")
	}

	points, _ := userPoints(t, db, user.ID)
	if points != 1000 {
		t.Errorf("balance = %d, want 1000 restored by rollback", points)
	}
	var count int64
	db.Model(&models.Redemption{}).Count(&count)
	if count != 0 {
		t.Errorf("redemptions = %d, want 0", count)
	}
}

func TestUseTransitionsOnce(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 1000, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	redemption, err := svc.Redeem(user.ID, coupon.ID)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	used, err := svc.Use(redemption.ID)
	if err != nil {
		t.Fatalf("Use: %v", err)
	}
	if used.Status != models.RedemptionUsed {
		t.Errorf("status = %s, want used", used.Status)
	}

	if _, err := svc.Use(redemption.ID); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("second Use err = %v, want ErrAlreadyUsed", err)
	}

	var reloaded models.Redemption
	if err := db.First(&reloaded, redemption.ID).Error; err != nil {
		t.Fatalf("reloading redemption: %v", err)
	}
	if reloaded.Status != models.RedemptionUsed {
		t.Errorf("status after rejected Use = %s, want used", reloaded.Status)
	}
}

// The transition to used is claimed with a conditional update, so a
// caller whose initial read still saw pending loses when another caller
// flips the voucher first.
func TestUseRejectsVoucherClaimedAfterRead(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 1000, models.RoleClient)
	coupon := seedCoupon(t, db, 500, true)

	redemption, err := svc.Redeem(user.ID, coupon.ID)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	claimed := false
	err = db.Callback().Query().After("gorm:query").Register("claim_after_read", func(q *gorm.DB) {
		if claimed || q.Statement.Table != "redemptions" {
			return
		}
		claimed = true
		session := q.Session(&gorm.Session{NewDB: true})
		if err := session.Exec("UPDATE redemptions SET status = ? WHERE id = ?",
			models.RedemptionUsed, redemption.ID).Error; err != nil {
			t.Errorf("claiming mid-flight: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("registering callback: %v", err)
	}

	if _, err := svc.Use(redemption.ID); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("err = %v, want ErrAlreadyUsed", err)
	}
	if !claimed {
		t.Fatal("mid-flight claim never ran")
	}
}

func TestUseUnknownRedemption(t *testing.T) {
	_, svc, _ := setupRedemption(t)

	if _, err := svc.Use(42); !errors.Is(err, ErrRedemptionNotFound) {
		t.Fatalf("err = %v, want ErrRedemptionNotFound", err)
	}
}

func TestGetUserRedemptionsJoinsCouponNewestFirst(t *testing.T) {
	db, svc, _ := setupRedemption(t)
	user := seedUser(t, db, 5000, models.RoleClient)
	first := seedCoupon(t, db, 100, true)
	second := seedCoupon(t, db, 200, true)

	r1, err := svc.Redeem(user.ID, first.ID)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if _, err := svc.Redeem(user.ID, second.ID); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	// Using the older voucher bumps its update time to the top.
	if _, err := svc.Use(r1.ID); err != nil {
		t.Fatalf("Use: %v", err)
	}

	redemptions, err := svc.GetUserRedemptions(user.ID)
	if err != nil {
		t.Fatalf("GetUserRedemptions: %v", err)
	}
	if len(redemptions) != 2 {
		t.Fatalf("redemptions = %d, want 2", len(redemptions))
	}
	if redemptions[0].ID != r1.ID {
		t.Errorf("first redemption = %d, want the most recently updated %d", redemptions[0].ID, r1.ID)
	}
	if redemptions[0].Coupon.ID != first.ID {
		t.Errorf("joined coupon = %d, want %d", redemptions[0].Coupon.ID, first.ID)
	}
}
