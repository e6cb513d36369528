package pos

import (
	"time"

	"shopstock-backend/internal/database"
	"shopstock-backend/internal/models"
	"shopstock-backend/internal/stock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxRate is the fixed sales tax applied to every checkout.
var TaxRate = decimal.NewFromFloat(0.10)

type CartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type ReceiptItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Receipt struct {
	Items      []ReceiptItem   `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Checkout processes one sale as a single unit of work: every cart line goes
// through the stock mutator in submission order, and any failure rolls the
// whole sale back so partial sales never persist. Alert side effects queue on
// an outbox and are flushed only after the commit.
func Checkout(shopID uint, userID uint, lines []CartLine) (*Receipt, error) {
	if len(lines) == 0 {
		return nil, stock.ErrEmptyCart
	}

	out := stock.NewOutbox()
	var (
		receipt    *Receipt
		ownerEmail string
	)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Resolved once per sale: only the owner gets stock alerts, not the
		// staff member ringing up the sale.
		ownerEmail = stock.OwnerEmail(tx, shopID)

		items := make([]ReceiptItem, 0, len(lines))
		for _, line := range lines {
			if line.ProductID == 0 || line.Quantity <= 0 {
				return stock.ErrInvalidCartLine
			}

			res, err := stock.ApplyDelta(tx, out, stock.ApplyDeltaParams{
				ShopID:    shopID,
				ProductID: line.ProductID,
				Delta:     -line.Quantity,
				Reason:    "POS Sale",
				UserID:    &userID,
			})
			if err != nil {
				return err
			}

			// Price read under the row lock, so a concurrent price edit
			// cannot tear the total.
			qty := decimal.NewFromInt(int64(line.Quantity))
			items = append(items, ReceiptItem{
				ProductID:   res.Product.ID,
				ProductName: res.Product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   res.Product.Price,
				LineTotal:   res.Product.Price.Mul(qty),
			})
		}

		receipt = buildReceipt(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Flush(shopID, ownerEmail)
	return receipt, nil
}

// buildReceipt totals the line items: subtotal, 10% tax and grand total, all
// rounded to two decimal places.
func buildReceipt(items []ReceiptItem) *Receipt {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(TaxRate).Round(2)

	return &Receipt{
		Items:      items,
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
		Timestamp:  time.Now(),
	}
}

// availableProducts lists what the POS screen can sell.
func availableProducts(shopID uint) ([]models.Product, error) {
	var products []models.Product
	err := database.DB.
		Where("shop_id = ? AND stock_quantity > 0", shopID).
		Order("name asc").
		Find(&products).Error
	return products, err
}
