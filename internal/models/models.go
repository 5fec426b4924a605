package models

import (
	"time"

	"gorm.io/datatypes"
)

// Store is one facility account; every other row hangs off its ID.
type Store struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name         string `gorm:"not null"`
	LoginID      string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

type Staff struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time

	StoreID string `gorm:"index;not null;size:36"`
	Name    string `gorm:"not null"`
}

// TableName keeps "staff" singular; gorm would pluralise it to "staffs".
func (Staff) TableName() string { return "staff" }

type Child struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time

	StoreID string `gorm:"index;not null;size:36"`
	Name    string `gorm:"not null"`
}

// Activity is a store-authored catalog entry. Defaults are never stored.
type Activity struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time

	StoreID string `gorm:"index:idx_activity_store_domain;not null;size:36"`
	Domain  string `gorm:"index:idx_activity_store_domain;not null"`
	Name    string `gorm:"not null"`
}

// HiddenActivity suppresses one default catalog entry for one store.
type HiddenActivity struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time

	StoreID string `gorm:"uniqueIndex:idx_hidden_store_domain_name;not null;size:36"`
	Domain  string `gorm:"uniqueIndex:idx_hidden_store_domain_name;not null"`
	Name    string `gorm:"uniqueIndex:idx_hidden_store_domain_name;not null"`
}

type StaffConfig struct {
	Main    string   `json:"main"`
	Sub     string   `json:"sub"`
	Members []string `json:"members"`
}

// DailyPlan is an append-only snapshot; nothing updates or deletes it.
type DailyPlan struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time

	StoreID string    `gorm:"index:idx_plan_store_date;not null;size:36"`
	Date    time.Time `gorm:"index:idx_plan_store_date"`

	StaffConfig   datatypes.JSONType[StaffConfig]
	ChildrenNames datatypes.JSONSlice[string]

	ActivityDomain string
	ActivityName   string
	Purpose        string
	Flow           string
	StaffActions   string
	Preparations   string
	Notes          string
}
