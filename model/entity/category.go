package entity

// ProductCategory is a product category; Name is the natural key used by imports.
type ProductCategory struct {
	CategoryID uint   `gorm:"column:CategoryID;primaryKey;autoIncrement" json:"CategoryID"`
	Name       string `gorm:"column:Name;type:varchar(100);not null;uniqueIndex" json:"Name"`
}

func (ProductCategory) TableName() string {
	return "ProductCategory"
}

func (c *ProductCategory) PrimaryKey() uint { return c.CategoryID }
func (c *ProductCategory) SetPrimaryKey(id uint) { c.CategoryID = id }

// EmployeePosition is a job title employees are assigned to.
type EmployeePosition struct {
	PositionID uint   `gorm:"column:PositionID;primaryKey;autoIncrement" json:"PositionID"`
	Name       string `gorm:"column:Name;type:varchar(100);not null" json:"Name"`
}

func (EmployeePosition) TableName() string {
	return "EmployeePosition"
}

func (p *EmployeePosition) PrimaryKey() uint { return p.PositionID }
func (p *EmployeePosition) SetPrimaryKey(id uint) { p.PositionID = id }
