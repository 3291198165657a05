package feed

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/kianlavi/onlyfan/models"
)

type interval struct {
	label   string
	seconds int64
}

var intervals = []interval{
	{"y", 31536000},
	{"mo", 2592000},
	{"w", 604800},
	{"d", 86400},
	{"h", 3600},
	{"m", 60},
}

// FormatNumber abbreviates n with one decimal: 1500 → "1.5K",
// 2000000 → "2.0M". Values below 1000 are printed as is.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// TimeAgo describes how long before now t was, using the largest whole
// unit: "3d ago", "1mo ago". Anything under a minute, and any t in the
// future, is "just now".
func TimeAgo(now, t time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	for _, iv := range intervals {
		if count := seconds / iv.seconds; count >= 1 {
			return fmt.Sprintf("%d%s ago", count, iv.label)
		}
	}
	return "just now"
}

// FormatMoney prints an amount in dollars with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Sort returns a copy of posts ordered newest first. Posts with the same
// date keep their collection order.
func Sort(posts []models.Post) []models.Post {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
