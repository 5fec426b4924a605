package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a row of either roster table, and its wire shape.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StoreID   string    `json:"storeId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Roster is a store-scoped list of named people backed by one table.
type Roster struct {
	table string
}

var (
	StaffRoster = Roster{table: "staff"}
	ChildRoster = Roster{table: "children"}
)

// List returns the store's members in creation order.
func (r Roster) List(db *gorm.DB, storeID string) ([]Member, error) {
	out := []Member{}
	err := db.Table(r.table).
		Where("store_id = ?", storeID).
		Order("created_at asc").Order("id asc").
		Find(&out).Error
	return out, err
}

func (r Roster) Add(db *gorm.DB, storeID, name string) (Member, error) {
	name = NormName(name)
	if name == "" {
		return Member{}, invalid("名前を入力してください")
	}
	m := Member{ID: uuid.NewString(), Name: name, StoreID: storeID}
	if err := db.Table(r.table).Create(&m).Error; err != nil {
		return Member{}, err
	}
	return m, nil
}

// Remove deletes the member if it belongs to the store; otherwise it is a no-op.
func (r Roster) Remove(db *gorm.DB, storeID, id string) error {
	if id == "" {
		return nil
	}
	return db.Table(r.table).Where("id = ? AND store_id = ?", id, storeID).Delete(&Member{}).Error
}
