package catalog

// Entry is one default activity. Its position in defaultActivities is its
// stable index and must never change for an existing entry; append only.
type Entry struct {
	Name   string
	Domain Domain
}

var defaultActivities = [...]Entry{
	{"手洗い・うがいの練習", Health},
	{"着替えの練習", Health},
	{"歯みがき指導", Health},
	{"おやつ作り（食育）", Health},
	{"身の回りの片付け", Health},
	{"生活リズムの振り返り", Health},

	{"サーキット運動", Exercise},
	{"トランポリン", Exercise},
	{"バランスボール", Exercise},
	{"リトミック", Exercise},
	{"ボール遊び", Exercise},
	{"公園への散歩", Exercise},
	{"感触遊び（スライム・粘土）", Exercise},

	{"パズル", Cognition},
	{"色・形の仲間分け", Cognition},
	{"買い物ごっこ", Cognition},
	{"時計の読み方", Cognition},
	{"ビジョントレーニング", Cognition},
	{"工作（はさみ・のり）", Cognition},

	{"絵本の読み聞かせ", Language},
	{"しりとり", Language},
	{"かるた", Language},
	{"伝言ゲーム", Language},
	{"スピーチ練習", Language},
	{"絵カードで気持ちを伝える", Language},

	{"すごろく", Social},
	{"フルーツバスケット", Social},
	{"順番を待つゲーム", Social},
	{"共同制作", Social},
	{"ごっこ遊び（役割遊び）", Social},
	{"ソーシャルスキルトレーニング", Social},
}

// Defaults returns a copy of the canonical default list in catalog order.
func Defaults() []Entry {
	out := make([]Entry, len(defaultActivities))
	copy(out, defaultActivities[:])
	return out
}

// Default returns the entry at the canonical index.
func Default(index int) (Entry, bool) {
	if index < 0 || index >= len(defaultActivities) {
		return Entry{}, false
	}
	return defaultActivities[index], true
}

// DefaultRefs pairs every default entry with its reference, optionally
// restricted to one domain. Indexes stay canonical under the filter.
func DefaultRefs(domain Domain) []Indexed {
	out := make([]Indexed, 0, len(defaultActivities))
	for i, e := range defaultActivities {
		if domain != "" && e.Domain != domain {
			continue
		}
		out = append(out, Indexed{Ref: DefaultRef{Index: i}, Entry: e})
	}
	return out
}

type Indexed struct {
	Ref DefaultRef
	Entry
}
