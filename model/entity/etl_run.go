package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ETL run statuses.
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// EtlRun is the audit record of one import pass.
type EtlRun struct {
	EtlRunID   uint           `gorm:"column:EtlRunID;primaryKey;autoIncrement" json:"EtlRunID"`
	RunID      string         `gorm:"column:RunID;type:varchar(36);not null;uniqueIndex" json:"RunID"`
	Source     string         `gorm:"column:Source;type:varchar(255)" json:"Source"`
	Status     string         `gorm:"column:Status;type:varchar(16);not null" json:"Status"`
	ValidRows  int            `gorm:"column:ValidRows;not null;default:0" json:"ValidRows"`
	ErrorRows  int            `gorm:"column:ErrorRows;not null;default:0" json:"ErrorRows"`
	Loaded     int            `gorm:"column:Loaded;not null;default:0" json:"Loaded"`
	Error      string         `gorm:"column:Error;type:text" json:"Error,omitempty"`
	Rejections datatypes.JSON `gorm:"column:Rejections" json:"Rejections,omitempty"`
	StartedAt  time.Time      `gorm:"column:StartedAt" json:"StartedAt"`
	FinishedAt time.Time      `gorm:"column:FinishedAt" json:"FinishedAt"`
}

func (EtlRun) TableName() string {
	return "EtlRun"
}

func (r *EtlRun) PrimaryKey() uint { return r.EtlRunID }
func (r *EtlRun) SetPrimaryKey(id uint) { r.EtlRunID = id }
