package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hokago/nichian/internal/models"
)

// HistoryLimit is how many plans ListDailyPlans returns.
const HistoryLimit = 50

// PlanInput is the body shared by plan creation and export.
type PlanInput struct {
	Date           string             `json:"date"`
	StaffConfig    models.StaffConfig `json:"staffConfig"`
	ChildrenNames  []string           `json:"childrenNames"`
	ActivityDomain string             `json:"activityDomain"`
	ActivityName   string             `json:"activityName"`
	Purpose        string             `json:"purpose"`
	Flow           string             `json:"flow"`
	StaffActions   string             `json:"staffActions"`
	Preparations   string             `json:"preparations"`
	Notes          string             `json:"notes"`
}

// PlanView is a stored plan as returned to clients.
type PlanView struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	CreatedAt time.Time `json:"createdAt"`
	PlanInput
}

func CreateDailyPlan(db *gorm.DB, storeID string, in PlanInput) (PlanView, error) {
	date, ok := ParseDate(in.Date)
	if !ok {
		return PlanView{}, invalid("日付を YYYY-MM-DD 形式で入力してください")
	}
	in = NormalizePlan(in)

	p := models.DailyPlan{
		ID:             uuid.NewString(),
		StoreID:        storeID,
		Date:           date,
		StaffConfig:    datatypes.NewJSONType(in.StaffConfig),
		ChildrenNames:  datatypes.JSONSlice[string](in.ChildrenNames),
		ActivityDomain: in.ActivityDomain,
		ActivityName:   in.ActivityName,
		Purpose:        in.Purpose,
		Flow:           in.Flow,
		StaffActions:   in.StaffActions,
		Preparations:   in.Preparations,
		Notes:          in.Notes,
	}
	if err := db.Create(&p).Error; err != nil {
		return PlanView{}, err
	}
	return planView(p), nil
}

// ListDailyPlans returns the store's most recent plans, newest date first.
func ListDailyPlans(db *gorm.DB, storeID string) ([]PlanView, error) {
	var rows []models.DailyPlan
	if err := db.Where("store_id = ?", storeID).
		Order("date desc").Order("created_at desc").
		Limit(HistoryLimit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]PlanView, 0, len(rows))
	for _, p := range rows {
		out = append(out, planView(p))
	}
	return out, nil
}

func GetDailyPlan(db *gorm.DB, storeID, id string) (PlanView, error) {
	var p models.DailyPlan
	if err := db.Where("id = ? AND store_id = ?", id, storeID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PlanView{}, ErrNotFound
		}
		return PlanView{}, err
	}
	return planView(p), nil
}

func planView(p models.DailyPlan) PlanView {
	sc := p.StaffConfig.Data()
	if sc.Members == nil {
		sc.Members = []string{}
	}
	children := []string(p.ChildrenNames)
	if children == nil {
		children = []string{}
	}
	return PlanView{
		ID:        p.ID,
		StoreID:   p.StoreID,
		CreatedAt: p.CreatedAt,
		PlanInput: PlanInput{
			Date:           FormatDate(p.Date),
			StaffConfig:    sc,
			ChildrenNames:  children,
			ActivityDomain: p.ActivityDomain,
			ActivityName:   p.ActivityName,
			Purpose:        p.Purpose,
			Flow:           p.Flow,
			StaffActions:   p.StaffActions,
			Preparations:   p.Preparations,
			Notes:          p.Notes,
		},
	}
}
