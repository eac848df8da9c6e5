package inventory

import "gorm.io/datatypes"

// Inventory is the on-hand quantity of a product in a store, unique per (StoreID, ProductID).
type Inventory struct {
	InventoryID uint `gorm:"column:InventoryID;primaryKey;autoIncrement" json:"InventoryID"`
	StoreID     uint `gorm:"column:StoreID;not null;uniqueIndex:ux_inventory_store_product" json:"StoreID"`
	ProductID   uint `gorm:"column:ProductID;not null;uniqueIndex:ux_inventory_store_product" json:"ProductID"`
	Quantity    int  `gorm:"column:Quantity;not null;default:0" json:"Quantity"`
}

func (Inventory) TableName() string {
	return "Inventory"
}

func (i *Inventory) PrimaryKey() uint { return i.InventoryID }
func (i *Inventory) SetPrimaryKey(id uint) { i.InventoryID = id }

// Supply records a delivery of Quantity units of a product by a supplier.
type Supply struct {
	SupplyID   uint           `gorm:"column:SupplyID;primaryKey;autoIncrement" json:"SupplyID"`
	SupplierID uint           `gorm:"column:SupplierID;index" json:"SupplierID"`
	ProductID  uint           `gorm:"column:ProductID;index" json:"ProductID"`
	SupplyDate datatypes.Date `gorm:"column:SupplyDate;not null" json:"SupplyDate"`
	Quantity   int            `gorm:"column:Quantity;not null" json:"Quantity"`
}

func (Supply) TableName() string {
	return "Supply"
}

func (s *Supply) PrimaryKey() uint { return s.SupplyID }
func (s *Supply) SetPrimaryKey(id uint) { s.SupplyID = id }
