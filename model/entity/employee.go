package entity

type Employee struct {
	EmployeeID uint   `gorm:"column:EmployeeID;primaryKey;autoIncrement" json:"EmployeeID"`
	FullName   string `gorm:"column:FullName;type:varchar(150);not null" json:"FullName"`
	PositionID uint   `gorm:"column:PositionID;index" json:"PositionID"`
	StoreID    uint   `gorm:"column:StoreID;index" json:"StoreID"`
}

func (Employee) TableName() string {
	return "Employee"
}

func (e *Employee) PrimaryKey() uint { return e.EmployeeID }
func (e *Employee) SetPrimaryKey(id uint) { e.EmployeeID = id }

type Customer struct {
	CustomerID uint    `gorm:"column:CustomerID;primaryKey;autoIncrement" json:"CustomerID"`
	FullName   *string `gorm:"column:FullName;type:varchar(150)" json:"FullName"`
	Phone      *string `gorm:"column:Phone;type:varchar(20)" json:"Phone"`
}

func (Customer) TableName() string {
	return "Customer"
}

func (c *Customer) PrimaryKey() uint { return c.CustomerID }
func (c *Customer) SetPrimaryKey(id uint) { c.CustomerID = id }
