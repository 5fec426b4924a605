package handlers

// User-facing messages by key. Handlers never send raw error text except
// for validation messages produced by the services.
var errText = map[string]string{
	"unauthenticated": "未認証",
	"login_taken":     "このログインIDは既に使用されています",
	"bad_credentials": "ログインIDまたはパスワードが正しくありません",
	"invalid_type":    "無効な生成タイプ",
	"ai_failed":       "AI生成中にエラーが発生しました。APIキーを確認してください。",
	"missing_api_key": "GEMINI_API_KEY が設定されていません",
	"ai_parse":        "AIの応答を解析できませんでした",
	"ai_schema":       "AIの応答が日案の形式と一致しませんでした",
	"not_found":       "見つかりません",
	"bad_json":        "リクエストの形式が正しくありません",
	"export_failed":   "Excelの作成に失敗しました",
	"internal":        "サーバーエラーが発生しました",
}

var okText = map[string]string{
	"restored": "%d件のデフォルト活動を復元しました",
	"nothing":  "非表示のデフォルト活動はありません",
}

func msg(key string) string {
	if t, ok := errText[key]; ok {
		return t
	}
	return errText["internal"]
}
