package export

import "github.com/hokago/nichian/internal/services"

const blankDate = "月　　日"

// dateLabel renders e.g. "4月5日", or the blank form for handwriting.
func dateLabel(date string) string {
	d, ok := services.ParseDate(date)
	if !ok {
		return blankDate
	}
	return d.Format("1月2日")
}
