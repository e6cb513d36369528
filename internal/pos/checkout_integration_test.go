package pos

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"
	"shopstock-backend/internal/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	db    *gorm.DB
	shop  models.Shop
	owner models.User
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.StockMovement{},
		&models.Notification{},
	))
	database.DB = db

	f := &checkoutFixture{db: db}
	f.shop = models.Shop{Name: "Checkout Shop"}
	require.NoError(t, db.Create(&f.shop).Error)
	f.owner = models.User{
		ShopID:       f.shop.ID,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleOwner,
	}
	require.NoError(t, db.Create(&f.owner).Error)

	t.Cleanup(func() {
		db.Where("shop_id = ?", f.shop.ID).Delete(&models.StockMovement{})
		db.Where("shop_id = ?", f.shop.ID).Delete(&models.Notification{})
		db.Where("shop_id = ?", f.shop.ID).Delete(&models.Product{})
		db.Where("shop_id = ?", f.shop.ID).Delete(&models.User{})
		db.Delete(&f.shop)
	})
	return f
}

func (f *checkoutFixture) product(t *testing.T, name string, qty int, price string) models.Product {
	t.Helper()
	p := models.Product{
		ShopID:        f.shop.ID,
		Name:          name,
		SKU:           fmt.Sprintf("TST-%s", uuid.NewString()[:6]),
		Price:         decimal.RequireFromString(price),
		StockQuantity: qty,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *checkoutFixture) quantity(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.StockQuantity
}

func TestCheckoutLastUnitReceipt(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.product(t, "Blue Shirt", 1, "9.99")

	receipt, err := Checkout(f.shop.ID, f.owner.ID, []CartLine{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)

	assert.Equal(t, "9.99", receipt.Subtotal.StringFixed(2))
	assert.Equal(t, "1.00", receipt.Tax.StringFixed(2))
	assert.Equal(t, "10.99", receipt.GrandTotal.StringFixed(2))
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Blue Shirt", receipt.Items[0].ProductName)

	assert.Equal(t, 0, f.quantity(t, p.ID))

	// Out-of-stock alert landed as an in-app notification after commit.
	var notifications []models.Notification
	require.NoError(t, f.db.Where("shop_id = ?", f.shop.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationAlert, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "OUT OF STOCK")

	var movements []models.StockMovement
	require.NoError(t, f.db.Where("product_id = ?", p.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, -1, movements[0].QuantityChange)
	assert.Equal(t, "POS Sale", movements[0].Reason)
}

func TestCheckoutRollsBackWholeCart(t *testing.T) {
	f := newCheckoutFixture(t)
	a := f.product(t, "Plenty", 10, "2.00")
	b := f.product(t, "Scarce", 1, "3.00")
	c := f.product(t, "Untouched", 7, "4.00")

	_, err := Checkout(f.shop.ID, f.owner.ID, []CartLine{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 5}, // insufficient
		{ProductID: c.ID, Quantity: 1},
	})

	var insufficient *stock.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Scarce", insufficient.ProductName)

	// Nothing from any line persisted.
	assert.Equal(t, 10, f.quantity(t, a.ID))
	assert.Equal(t, 1, f.quantity(t, b.ID))
	assert.Equal(t, 7, f.quantity(t, c.ID))

	var count int64
	f.db.Model(&models.StockMovement{}).Where("shop_id = ?", f.shop.ID).Count(&count)
	assert.Zero(t, count)
	f.db.Model(&models.Notification{}).Where("shop_id = ?", f.shop.ID).Count(&count)
	assert.Zero(t, count, "a rolled-back sale must not produce phantom alerts")
}

func TestCheckoutValidatesCart(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.product(t, "Thing", 5, "1.00")

	_, err := Checkout(f.shop.ID, f.owner.ID, nil)
	assert.ErrorIs(t, err, stock.ErrEmptyCart)

	_, err = Checkout(f.shop.ID, f.owner.ID, []CartLine{{ProductID: p.ID, Quantity: 0}})
	assert.ErrorIs(t, err, stock.ErrInvalidCartLine)

	_, err = Checkout(f.shop.ID, f.owner.ID, []CartLine{{ProductID: 0, Quantity: 1}})
	assert.ErrorIs(t, err, stock.ErrInvalidCartLine)

	assert.Equal(t, 5, f.quantity(t, p.ID))
}

func TestConcurrentCheckoutsOfLastUnit(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.product(t, "Final Item", 1, "9.99")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Checkout(f.shop.ID, f.owner.ID, []CartLine{{ProductID: p.ID, Quantity: 1}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, failures int
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		var insufficient *stock.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		failures++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 0, f.quantity(t, p.ID))
}
