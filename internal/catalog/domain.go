package catalog

// Domain is one of the five developmental-support categories. The type is
// open: stores may file custom activities under any non-empty key.
type Domain string

const (
	Health    Domain = "health"
	Exercise  Domain = "exercise"
	Cognition Domain = "cognition"
	Language  Domain = "language"
	Social    Domain = "social"
)

var Domains = []Domain{Health, Exercise, Cognition, Language, Social}

var domainLabels = map[Domain]string{
	Health:    "健康・生活",
	Exercise:  "運動・感覚",
	Cognition: "認知・行動",
	Language:  "言語・コミュニケーション",
	Social:    "人間関係・社会性",
}

// Label returns the Japanese display label. Unknown keys are their own label.
func (d Domain) Label() string {
	if l, ok := domainLabels[d]; ok {
		return l
	}
	return string(d)
}

func (d Domain) Known() bool {
	_, ok := domainLabels[d]
	return ok
}
