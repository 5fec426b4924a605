package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hokago/nichian/internal/catalog"
	"github.com/hokago/nichian/internal/models"
)

// ActivityView is one entry of a store's presented catalog.
type ActivityView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	IsDefault bool   `json:"isDefault"`
}

type hiddenKey struct {
	domain string
	name   string
}

// ListActivities presents the default catalog minus the store's hidden
// markers, followed by the store's custom activities by name. An empty
// domain lists every domain.
func ListActivities(db *gorm.DB, storeID, domain string) ([]ActivityView, error) {
	var hidden []models.HiddenActivity
	q := db.Where("store_id = ?", storeID)
	if domain != "" {
		q = q.Where("domain = ?", domain)
	}
	if err := q.Find(&hidden).Error; err != nil {
		return nil, err
	}
	hiddenSet := make(map[hiddenKey]struct{}, len(hidden))
	for _, h := range hidden {
		hiddenSet[hiddenKey{h.Domain, h.Name}] = struct{}{}
	}

	out := []ActivityView{}
	for _, d := range catalog.DefaultRefs(catalog.Domain(domain)) {
		if _, ok := hiddenSet[hiddenKey{string(d.Domain), d.Name}]; ok {
			continue
		}
		out = append(out, ActivityView{
			ID:        d.Ref.String(),
			Name:      d.Name,
			Domain:    string(d.Domain),
			IsDefault: true,
		})
	}

	var custom []models.Activity
	q = db.Where("store_id = ?", storeID)
	if domain != "" {
		q = q.Where("domain = ?", domain)
	}
	if err := q.Order("name asc").Order("created_at asc").Find(&custom).Error; err != nil {
		return nil, err
	}
	for _, c := range custom {
		out = append(out, customView(c))
	}
	return out, nil
}

// CountActivities is the number of activities ListActivities would present.
func CountActivities(db *gorm.DB, storeID string) (int, error) {
	var hidden int64
	if err := db.Model(&models.HiddenActivity{}).Where("store_id = ?", storeID).Count(&hidden).Error; err != nil {
		return 0, err
	}
	var custom int64
	if err := db.Model(&models.Activity{}).Where("store_id = ?", storeID).Count(&custom).Error; err != nil {
		return 0, err
	}
	visible := len(catalog.Defaults()) - int(hidden)
	if visible < 0 {
		visible = 0
	}
	return visible + int(custom), nil
}

// CreateActivity stores a custom activity. Duplicate names are allowed.
func CreateActivity(db *gorm.DB, storeID, name, domain string) (ActivityView, error) {
	name = NormName(name)
	if name == "" || domain == "" {
		return ActivityView{}, invalid("活動名と領域を入力してください")
	}
	a := models.Activity{
		ID:      uuid.NewString(),
		StoreID: storeID,
		Name:    name,
		Domain:  domain,
	}
	if err := db.Create(&a).Error; err != nil {
		return ActivityView{}, err
	}
	return customView(a), nil
}

// DeleteActivity removes an activity from the store's view. A default is
// hidden, a custom activity is deleted. Unknown ids and ids of other stores
// are no-ops; only storage failures are reported.
func DeleteActivity(db *gorm.DB, storeID, id string) error {
	switch ref := catalog.ParseRef(id).(type) {
	case catalog.DefaultRef:
		entry, ok := ref.Entry()
		if !ok {
			return nil
		}
		marker := models.HiddenActivity{
			ID:      uuid.NewString(),
			StoreID: storeID,
			Domain:  string(entry.Domain),
			Name:    entry.Name,
		}
		return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&marker).Error
	case catalog.CustomRef:
		if ref.ID == "" {
			return nil
		}
		return db.Where("id = ? AND store_id = ?", ref.ID, storeID).Delete(&models.Activity{}).Error
	}
	return nil
}

// RestoreHiddenDefaults drops every hidden marker of the store and returns
// how many defaults became visible again.
func RestoreHiddenDefaults(db *gorm.DB, storeID string) (int64, error) {
	res := db.Where("store_id = ?", storeID).Delete(&models.HiddenActivity{})
	return res.RowsAffected, res.Error
}

func customView(a models.Activity) ActivityView {
	return ActivityView{ID: a.ID, Name: a.Name, Domain: a.Domain, IsDefault: false}
}
