package server

import (
	"fmt"
	"time"

	"sqlprobe/internal/models"
)

const pageSkeleton = `<!DOCTYPE html>
<html>
<head>
<title>SQL connectivity probe</title>
</head>
<body>
<h1>Welcome to the SQL connectivity probe</h1>
%s
</body>
</html>
`

// renderPage wraps the probe fragment in the fixed page skeleton.
func renderPage(result models.ProbeResult) string {
	return fmt.Sprintf(pageSkeleton, renderFragment(result))
}

func renderFragment(result models.ProbeResult) string {
	switch result.State {
	case models.ProbeStateNotConfigured:
		return `<p class="warning">No database connection string configured.</p>`
	case models.ProbeStateSuccess:
		serverTime := ""
		if result.ServerTime != nil {
			serverTime = result.ServerTime.Format(time.RFC3339)
		}
		return fmt.Sprintf("<p class=\"success\">Successfully connected to the database.</p>\n<p>Server time: %s</p>", serverTime)
	default:
		// Error text is interpolated unescaped; see DESIGN.md.
		return fmt.Sprintf(`<p class="error">Database connection failed: %s</p>`, result.Error)
	}
}
