package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a receipt header.
type Sale struct {
	SaleID     uint      `gorm:"column:SaleID;primaryKey;autoIncrement" json:"SaleID"`
	SaleDate   time.Time `gorm:"column:SaleDate;not null" json:"SaleDate"`
	StoreID    uint      `gorm:"column:StoreID;index" json:"StoreID"`
	EmployeeID uint      `gorm:"column:EmployeeID;index" json:"EmployeeID"`
	CustomerID *uint     `gorm:"column:CustomerID;index" json:"CustomerID"`
}

func (Sale) TableName() string {
	return "Sale"
}

func (s *Sale) PrimaryKey() uint { return s.SaleID }
func (s *Sale) SetPrimaryKey(id uint) { s.SaleID = id }

// SaleItem is a receipt line.
type SaleItem struct {
	SaleItemID uint            `gorm:"column:SaleItemID;primaryKey;autoIncrement" json:"SaleItemID"`
	SaleID     uint            `gorm:"column:SaleID;index" json:"SaleID"`
	ProductID  uint            `gorm:"column:ProductID;index" json:"ProductID"`
	Quantity   int             `gorm:"column:Quantity;not null" json:"Quantity"`
	Price      decimal.Decimal `gorm:"column:Price;type:decimal(10,2);not null" json:"Price"`
}

func (SaleItem) TableName() string {
	return "SaleItem"
}

func (s *SaleItem) PrimaryKey() uint { return s.SaleItemID }
func (s *SaleItem) SetPrimaryKey(id uint) { s.SaleItemID = id }
