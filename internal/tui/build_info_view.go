package tui

import (
	"fmt"
	"strings"

	"github.com/kianlavi/onlyfan/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, subject string) string {
	rows := [][2]string{
		{"Application", "onlyfan admin"},
		{"Version", info.BuildVersion()},
		{"Date", info.BuildDate()},
		{"Commit", info.BuildCommit()},
		{"Repository", subject},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		value := strings.TrimSpace(row[1])
		if value == "" {
			value = models.NotAvailable
		}
		fmt.Fprintf(&b, "%-11s %s", row[0]+":", value)
	}

	return renderPage("ABOUT", b.String(), "esc: back")
}
