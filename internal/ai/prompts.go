package ai

import (
	"fmt"
	"strings"

	"github.com/hokago/nichian/internal/catalog"
)

const (
	expertRole = "あなたは放課後等デイサービスの熟練支援員です。"
	staffRole  = "あなたは放課後等デイサービスの支援員です。"
)

// BuildStaffLabels returns the role labels for n staff: メイン, サブ, then
// メンバー1.. for the rest. At least one label is returned.
func BuildStaffLabels(n int) []string {
	labels := []string{"メイン", "サブ"}
	for i := 3; i <= n; i++ {
		labels = append(labels, fmt.Sprintf("メンバー%d", i-2))
	}
	return labels[:max(min(n, len(labels)), 1)]
}

func DomainLabel(key string) string {
	return catalog.Domain(key).Label()
}

func draftPrompt(req DraftRequest) string {
	labels := BuildStaffLabels(req.StaffCount)
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = `"` + l + `"`
	}

	var b strings.Builder
	b.WriteString(expertRole + "\n")
	b.WriteString("以下の条件で日案の4項目をJSON形式のみで出力してください。説明文や前置きは一切不要です。\n\n")
	fmt.Fprintf(&b, "【活動】%s\n", strings.Join(req.ActivityNames, "、"))
	fmt.Fprintf(&b, "【領域】%s\n", DomainLabel(req.Domain))
	fmt.Fprintf(&b, "【参加児童数】%d名\n", req.ChildCount)
	fmt.Fprintf(&b, "【スタッフ】%s（計%d名）\n\n", strings.Join(labels, "・"), req.StaffCount)
	b.WriteString(`出力するJSONの形式（この形式以外は禁止）:
{
  "purposeAim": "目的・狙いを3〜5行で記述",
  "schedule": [
    { "time": "HH:MM", "title": "項目名", "detail": "具体的な内容" }
  ],
  "staffPlan": [
    { "staffLabel": "メイン", "assignment": "担当内容", "notes": "留意点" }
  ],
  "preparations": ["準備物1", "準備物2"]
}

制約:
- scheduleは到着〜帰宅の流れを6〜10項目
`)
	fmt.Fprintf(&b, "- staffPlanは%sそれぞれ1項目ずつ\n", strings.Join(quoted, "・"))
	b.WriteString(`- preparationsは5〜10項目の文字列配列
- timeはHH:MM形式（例: "15:00"）
- 全フィールドを日本語で記述`)
	return b.String()
}

func subject(activityName, domain string) string {
	return fmt.Sprintf("領域: %s\n活動名: %s\n", DomainLabel(domain), activityName)
}

func purposePrompt(activityName, domain string) string {
	return staffRole + "\n" +
		"以下の活動について、目的・狙いを簡潔に3〜5行で記述してください。\n\n" +
		subject(activityName, domain) + "\n" +
		"具体的な療育目標を含めて記述してください。"
}

// flowStages is the fixed day structure every generated flow follows.
func flowStages(activityName string) []string {
	return []string{
		"到着〜健康チェック",
		"自由遊び",
		"はじまりの会",
		"活動（" + activityName + "）",
		"おやつ",
		"帰りの会",
		"帰宅準備〜送迎",
	}
}

func flowPrompt(activityName, domain string) string {
	var b strings.Builder
	b.WriteString(staffRole + "\n")
	b.WriteString("以下の活動を含む、施設到着から帰宅までの一日の流れ（スケジュール）を作成してください。\n\n")
	b.WriteString(subject(activityName, domain) + "\n")
	b.WriteString("以下の形式で時系列に記述してください：\n")
	for _, s := range flowStages(activityName) {
		b.WriteString("・" + s + "\n")
	}
	b.WriteString("\n各項目に簡単な説明を付けてください。")
	return b.String()
}

func staffActionsPrompt(activityName, domain string, staffCount int) string {
	roles := "メイン1名、サブ1名"
	each := "メインスタッフ、サブスタッフ"
	if staffCount > 2 {
		roles += fmt.Sprintf("、メンバー%d名", staffCount-2)
		each += "、各メンバー"
	}
	return staffRole + "\n" +
		fmt.Sprintf("以下の活動におけるスタッフ%d名の動き・役割分担を記述してください。\n\n", staffCount) +
		subject(activityName, domain) +
		fmt.Sprintf("スタッフ人数: %d名（%s）\n\n", staffCount, roles) +
		each + "それぞれの具体的な役割と動きを記述してください。"
}

func preparationsPrompt(activityName, domain string) string {
	return staffRole + "\n" +
		"以下の活動に必要な準備物をリストアップしてください。\n\n" +
		subject(activityName, domain) + "\n" +
		"箇条書きで準備物を列挙してください。"
}
