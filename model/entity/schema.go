package entity

import (
	"gorm.io/gorm"

	"retail.GO/model/entity/inventory"
)

// Tables lists every persisted model in creation order.
func Tables() []interface{} {
	return []interface{}{
		&ProductCategory{},
		&EmployeePosition{},
		&Store{},
		&Employee{},
		&Customer{},
		&Product{},
		&Sale{},
		&SaleItem{},
		&Supplier{},
		&inventory.Supply{},
		&inventory.Inventory{},
		&EtlRun{},
	}
}

// Migrate creates missing tables, columns and indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables()...)
}
