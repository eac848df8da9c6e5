package entity

// Store is a retail location. Name is unique.
type Store struct {
	StoreID uint   `gorm:"column:StoreID;primaryKey;autoIncrement" json:"StoreID"`
	Name    string `gorm:"column:Name;type:varchar(100);not null;uniqueIndex" json:"Name"`
	Address string `gorm:"column:Address;type:varchar(255);not null" json:"Address"`
}

func (Store) TableName() string {
	return "Store"
}

func (s *Store) PrimaryKey() uint { return s.StoreID }
func (s *Store) SetPrimaryKey(id uint) { s.StoreID = id }

// Supplier delivers products to stores. Name is unique.
type Supplier struct {
	SupplierID uint   `gorm:"column:SupplierID;primaryKey;autoIncrement" json:"SupplierID"`
	Name       string `gorm:"column:Name;type:varchar(150);not null;uniqueIndex" json:"Name"`
}

func (Supplier) TableName() string {
	return "Supplier"
}

func (s *Supplier) PrimaryKey() uint { return s.SupplierID }
func (s *Supplier) SetPrimaryKey(id uint) { s.SupplierID = id }
