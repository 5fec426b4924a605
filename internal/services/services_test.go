package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hokago/nichian/internal/catalog"
	"github.com/hokago/nichian/internal/db"
	"github.com/hokago/nichian/internal/models"
)

// openTestDB returns an isolated in-file SQLite database in a temp directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func mustStore(t *testing.T, gdb *gorm.DB, loginID string) *models.Store {
	t.Helper()
	s, err := RegisterStore(gdb, "店舗 "+loginID, loginID, "pw")
	if err != nil {
		t.Fatalf("register %s: %v", loginID, err)
	}
	return s
}

func TestRegisterAndAuthenticate(t *testing.T) {
	gdb := openTestDB(t)

	s, err := RegisterStore(gdb, "  ひまわり  ", "himawari", "pass1234")
	if err != nil {
		t.Fatalf("RegisterStore: %v", err)
	}
	if s.Name != "ひまわり" {
		t.Errorf("name not trimmed: %q", s.Name)
	}
	if s.PasswordHash == "pass1234" {
		t.Error("password stored in clear")
	}

	if _, err := RegisterStore(gdb, "other", "himawari", "x"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate login id: want ErrConflict, got %v", err)
	}
	if _, err := RegisterStore(gdb, "", "a", "b"); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: want ErrValidation, got %v", err)
	}

	got, err := AuthenticateStore(gdb, "himawari", "pass1234")
	if err != nil || got.ID != s.ID {
		t.Fatalf("AuthenticateStore: %+v, %v", got, err)
	}
	if _, err := AuthenticateStore(gdb, "himawari", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := AuthenticateStore(gdb, "nobody", "pass1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown login: want ErrInvalidCredentials, got %v", err)
	}
}

func viewIDs(vs []ActivityView) map[string]ActivityView {
	out := make(map[string]ActivityView, len(vs))
	for _, v := range vs {
		out[v.ID] = v
	}
	return out
}

func TestListActivitiesOverlay(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")

	all, err := ListActivities(gdb, s.ID, "")
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(all) != len(catalog.Defaults()) {
		t.Fatalf("fresh store: want %d defaults, got %d", len(catalog.Defaults()), len(all))
	}
	for i, v := range all {
		if !v.IsDefault || v.ID != (catalog.DefaultRef{Index: i}).String() {
			t.Fatalf("entry %d: %+v", i, v)
		}
	}

	// ids in a filtered list keep their canonical index
	social, _ := ListActivities(gdb, s.ID, string(catalog.Social))
	for _, v := range social {
		ref := catalog.ParseRef(v.ID).(catalog.DefaultRef)
		e, _ := ref.Entry()
		if e.Name != v.Name || v.Domain != "social" {
			t.Errorf("%s does not point at %q", v.ID, v.Name)
		}
	}

	if _, err := CreateActivity(gdb, s.ID, "ダンス", "social"); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateActivity(gdb, s.ID, "あいさつ練習", "social"); err != nil {
		t.Fatal(err)
	}
	social2, _ := ListActivities(gdb, s.ID, "social")
	if len(social2) != len(social)+2 {
		t.Fatalf("want %d, got %d", len(social)+2, len(social2))
	}
	tail := social2[len(social):]
	if tail[0].Name != "あいさつ練習" || tail[1].Name != "ダンス" || tail[0].IsDefault {
		t.Errorf("customs must follow defaults in name order: %+v", tail)
	}
}

func TestHideAndRestoreDefault(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")

	health, _ := ListActivities(gdb, s.ID, "health")
	target := health[0]

	if err := DeleteActivity(gdb, s.ID, target.ID); err != nil {
		t.Fatalf("hide: %v", err)
	}
	// second delete of the same default is a no-op
	if err := DeleteActivity(gdb, s.ID, target.ID); err != nil {
		t.Fatalf("hide again: %v", err)
	}
	var markers int64
	gdb.Model(&models.HiddenActivity{}).Where("store_id = ?", s.ID).Count(&markers)
	if markers != 1 {
		t.Errorf("want 1 hidden marker, got %d", markers)
	}

	after, _ := ListActivities(gdb, s.ID, "health")
	if _, ok := viewIDs(after)[target.ID]; ok {
		t.Fatalf("%s still listed after hide", target.ID)
	}
	if n, _ := CountActivities(gdb, s.ID); n != len(catalog.Defaults())-1 {
		t.Errorf("CountActivities: want %d, got %d", len(catalog.Defaults())-1, n)
	}

	n, err := RestoreHiddenDefaults(gdb, s.ID)
	if err != nil || n != 1 {
		t.Fatalf("RestoreHiddenDefaults: %d, %v", n, err)
	}
	restored, _ := ListActivities(gdb, s.ID, "health")
	if _, ok := viewIDs(restored)[target.ID]; !ok {
		t.Fatalf("%s missing after restore", target.ID)
	}
	if n, _ := RestoreHiddenDefaults(gdb, s.ID); n != 0 {
		t.Errorf("nothing left to restore, got %d", n)
	}
}

func TestDeleteActivityIgnoresUnknownIDs(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")

	for _, id := range []string{"default-9999", "default--1", "default-abc", "no-such-id", ""} {
		if err := DeleteActivity(gdb, s.ID, id); err != nil {
			t.Errorf("DeleteActivity(%q): %v", id, err)
		}
	}
	all, _ := ListActivities(gdb, s.ID, "")
	if len(all) != len(catalog.Defaults()) {
		t.Errorf("unknown ids changed the catalog: %d entries", len(all))
	}
}

func TestCreateActivityValidation(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")

	if _, err := CreateActivity(gdb, s.ID, "", "health"); !errors.Is(err, ErrValidation) {
		t.Errorf("empty name: want ErrValidation, got %v", err)
	}
	if _, err := CreateActivity(gdb, s.ID, "   ", "health"); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: want ErrValidation, got %v", err)
	}
	if _, err := CreateActivity(gdb, s.ID, "x", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("missing domain: want ErrValidation, got %v", err)
	}

	a, err := CreateActivity(gdb, s.ID, " Trim Me ", "health")
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	if a.Name != "Trim Me" || a.IsDefault {
		t.Errorf("unexpected activity %+v", a)
	}
	var stored models.Activity
	gdb.First(&stored, "id = ?", a.ID)
	if stored.Name != "Trim Me" {
		t.Errorf("stored name %q", stored.Name)
	}

	// duplicates within a domain are accepted
	if _, err := CreateActivity(gdb, s.ID, "Trim Me", "health"); err != nil {
		t.Errorf("duplicate custom name rejected: %v", err)
	}
}

func TestTenantIsolation(t *testing.T) {
	gdb := openTestDB(t)
	t1 := mustStore(t, gdb, "t1")
	t2 := mustStore(t, gdb, "t2")

	act, _ := CreateActivity(gdb, t1.ID, "T1だけ", "language")
	staff, _ := StaffRoster.Add(gdb, t1.ID, "佐藤")
	child, _ := ChildRoster.Add(gdb, t1.ID, "たろう")
	_ = DeleteActivity(gdb, t1.ID, "default-0")

	// T2 sees none of T1's rows
	l2, _ := ListActivities(gdb, t2.ID, "")
	if _, ok := viewIDs(l2)[act.ID]; ok {
		t.Error("T2 sees T1's custom activity")
	}
	if _, ok := viewIDs(l2)["default-0"]; !ok {
		t.Error("T1's hide leaked into T2")
	}
	if s2, _ := StaffRoster.List(gdb, t2.ID); len(s2) != 0 {
		t.Errorf("T2 staff: %+v", s2)
	}
	if c2, _ := ChildRoster.List(gdb, t2.ID); len(c2) != 0 {
		t.Errorf("T2 children: %+v", c2)
	}

	// T2 deletes with T1's ids are silent no-ops
	if err := DeleteActivity(gdb, t2.ID, act.ID); err != nil {
		t.Fatal(err)
	}
	if err := StaffRoster.Remove(gdb, t2.ID, staff.ID); err != nil {
		t.Fatal(err)
	}
	if err := ChildRoster.Remove(gdb, t2.ID, child.ID); err != nil {
		t.Fatal(err)
	}
	l1, _ := ListActivities(gdb, t1.ID, "language")
	if _, ok := viewIDs(l1)[act.ID]; !ok {
		t.Error("T2 deleted T1's activity")
	}
	if s1, _ := StaffRoster.List(gdb, t1.ID); len(s1) != 1 {
		t.Errorf("T2 deleted T1's staff: %+v", s1)
	}
	if c1, _ := ChildRoster.List(gdb, t1.ID); len(c1) != 1 {
		t.Errorf("T2 deleted T1's child: %+v", c1)
	}
}

func TestRosterLifecycle(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")

	if _, err := StaffRoster.Add(gdb, s.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: want ErrValidation, got %v", err)
	}
	names := []string{"佐藤", "鈴木", "高橋"}
	for _, n := range names {
		if _, err := StaffRoster.Add(gdb, s.ID, n); err != nil {
			t.Fatal(err)
		}
	}
	list, err := StaffRoster.List(gdb, s.ID)
	if err != nil || len(list) != 3 {
		t.Fatalf("List: %+v, %v", list, err)
	}
	for _, m := range list {
		if m.StoreID != s.ID || m.CreatedAt.IsZero() {
			t.Errorf("unexpected member %+v", m)
		}
	}
	if err := StaffRoster.Remove(gdb, s.ID, list[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := StaffRoster.Remove(gdb, s.ID, list[0].ID); err != nil {
		t.Fatalf("second remove must be a no-op: %v", err)
	}
	list, _ = StaffRoster.List(gdb, s.ID)
	if len(list) != 2 {
		t.Errorf("want 2 after remove, got %d", len(list))
	}
}

func TestDailyPlanRoundTrip(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")
	other := mustStore(t, gdb, "b")

	in := PlanInput{
		Date:           "2026-10-14",
		StaffConfig:    models.StaffConfig{Main: "佐藤", Sub: "鈴木", Members: []string{"高橋", ""}},
		ChildrenNames:  []string{"たろう", "はなこ"},
		ActivityDomain: "exercise",
		ActivityName:   "サーキット運動",
		Purpose:        "体幹を鍛える\n順番を守る",
		Flow:           "到着\n自由遊び",
		StaffActions:   "【メイン】進行",
		Preparations:   "マット\nコーン",
	}
	created, err := CreateDailyPlan(gdb, s.ID, in)
	if err != nil {
		t.Fatalf("CreateDailyPlan: %v", err)
	}
	if created.Notes != "" {
		t.Errorf("notes should default to empty, got %q", created.Notes)
	}

	list, err := ListDailyPlans(gdb, s.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListDailyPlans: %+v, %v", list, err)
	}
	got := list[0]
	if got.Date != in.Date || got.ActivityName != in.ActivityName || got.ActivityDomain != in.ActivityDomain ||
		got.Purpose != in.Purpose || got.Flow != in.Flow || got.StaffActions != in.StaffActions ||
		got.Preparations != in.Preparations {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got.PlanInput, in)
	}
	if got.StaffConfig.Main != "佐藤" || len(got.StaffConfig.Members) != 1 {
		t.Errorf("staff config: %+v", got.StaffConfig)
	}
	if len(got.ChildrenNames) != 2 || got.ChildrenNames[1] != "はなこ" {
		t.Errorf("children: %+v", got.ChildrenNames)
	}

	if _, err := GetDailyPlan(gdb, other.ID, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant get: want ErrNotFound, got %v", err)
	}
	if l, _ := ListDailyPlans(gdb, other.ID); len(l) != 0 {
		t.Errorf("other store sees plans: %+v", l)
	}
}

func TestCreateDailyPlanRejectsBadDate(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")
	for _, d := range []string{"", "14/10/2026", "2026-13-01"} {
		if _, err := CreateDailyPlan(gdb, s.ID, PlanInput{Date: d}); !errors.Is(err, ErrValidation) {
			t.Errorf("date %q: want ErrValidation, got %v", d, err)
		}
	}
	if _, err := CreateDailyPlan(gdb, s.ID, PlanInput{Date: "2026-10-14T09:00:00.000Z"}); err != nil {
		t.Errorf("timestamp date rejected: %v", err)
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2026-10-14":                "2026-10-14",
		" 2026-10-14 ":              "2026-10-14",
		"2026-10-14T20:00:00Z":      "2026-10-15",
		"2026-10-14T09:00:00.000Z":  "2026-10-14",
		"2026-10-15T01:00:00+09:00": "2026-10-15",
		"2026-10-14T23:30":          "2026-10-14",
	}
	for in, want := range cases {
		d, ok := ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q) rejected", in)
			continue
		}
		if d.Location() != time.UTC || d.Hour() != 0 {
			t.Errorf("ParseDate(%q) = %v, want midnight UTC", in, d)
		}
		if got := FormatDate(d); got != want {
			t.Errorf("ParseDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDateIgnoresZone(t *testing.T) {
	d := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d.In(time.FixedZone("PDT", -7*60*60))); got != "2026-10-14" {
		t.Errorf("FormatDate in a negative offset: %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("zero date: %q", got)
	}
}

func TestTimestampDateIsStoredAsTokyoDay(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")
	created, err := CreateDailyPlan(gdb, s.ID, PlanInput{Date: "2026-10-14T20:00:00Z"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := GetDailyPlan(gdb, s.ID, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != "2026-10-15" {
		t.Errorf("stored date: %q", got.Date)
	}
}

func TestNormalizePlan(t *testing.T) {
	in := PlanInput{
		StaffConfig:   models.StaffConfig{Main: "佐藤", Members: []string{" ", "高橋　"}},
		ChildrenNames: []string{"", "あ", "  い "},
	}
	got := NormalizePlan(in)
	if len(got.StaffConfig.Members) != 1 || got.StaffConfig.Members[0] != "高橋" {
		t.Errorf("members: %q", got.StaffConfig.Members)
	}
	if len(got.ChildrenNames) != 2 || got.ChildrenNames[0] != "あ" || got.ChildrenNames[1] != "い" {
		t.Errorf("children: %q", got.ChildrenNames)
	}
	if len(in.ChildrenNames) != 3 {
		t.Error("input slice must not be modified")
	}
}

func TestListDailyPlansNewestFirstAndCapped(t *testing.T) {
	gdb := openTestDB(t)
	s := mustStore(t, gdb, "a")

	for i := 0; i < HistoryLimit+5; i++ {
		d := "2026-01-01"
		if i == HistoryLimit+4 {
			d = "2026-12-31"
		}
		if _, err := CreateDailyPlan(gdb, s.ID, PlanInput{Date: d, ActivityName: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	list, err := ListDailyPlans(gdb, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != HistoryLimit {
		t.Errorf("want %d plans, got %d", HistoryLimit, len(list))
	}
	if list[0].Date != "2026-12-31" {
		t.Errorf("newest plan first, got %s", list[0].Date)
	}
}
