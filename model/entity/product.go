package entity

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a sellable item. Imports create one row per valid input line.
type Product struct {
	ProductID  uint            `gorm:"column:ProductID;primaryKey;autoIncrement" json:"ProductID"`
	Name       string          `gorm:"column:Name;type:varchar(150);not null;index" json:"Name"`
	Price      decimal.Decimal `gorm:"column:Price;type:decimal(10,2);not null" json:"Price"`
	CategoryID uint            `gorm:"column:CategoryID;index" json:"CategoryID"`
}

func (Product) TableName() string {
	return "Product"
}

func (p *Product) PrimaryKey() uint { return p.ProductID }
func (p *Product) SetPrimaryKey(id uint) { p.ProductID = id }
