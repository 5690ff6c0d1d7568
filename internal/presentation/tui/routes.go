package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/gatepost/internal/dto"
)

// RoutesMarkdown renders the route table as a markdown document, suitable
// for glamour on a TTY or raw output in pipelines.
func RoutesMarkdown(views []dto.RouteView) string {
	var b strings.Builder

	b.WriteString("# Routes\n\n")
	b.WriteString("| Name | Methods | URI | Versions | Protected | Scopes | Limit |\n")
	b.WriteString("|------|---------|-----|----------|-----------|--------|-------|\n")

	for _, v := range views {
		limit := "-"
		if v.RateLimit > 0 {
			limit = fmt.Sprintf("%d/%ds", v.RateLimit, v.RateExpires)
		}
		b.WriteString(fmt.Sprintf("| %s | %s | `%s` | %s | %v | %s | %s |\n",
			v.Name,
			strings.Join(v.Methods, ","),
			v.URI,
			orDash(strings.Join(v.Versions, ",")),
			v.Protected,
			orDash(strings.Join(v.Scopes, ", ")),
			limit,
		))
	}

	return b.String()
}

// RouteMarkdown renders one route in detail.
func RouteMarkdown(v dto.RouteView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", v.Name)
	if v.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", v.Summary)
	}
	fmt.Fprintf(&b, "- **URI**: `%s`\n", v.URI)
	fmt.Fprintf(&b, "- **Methods**: %s\n", strings.Join(v.Methods, ", "))
	fmt.Fprintf(&b, "- **Versions**: %s\n", orDash(strings.Join(v.Versions, ", ")))
	fmt.Fprintf(&b, "- **Protected**: %v\n", v.Protected)
	fmt.Fprintf(&b, "- **Scopes**: %s\n", orDash(strings.Join(v.Scopes, ", ")))
	fmt.Fprintf(&b, "- **Providers**: %s\n", orDash(strings.Join(v.Providers, ", ")))
	if v.RateLimit > 0 {
		fmt.Fprintf(&b, "- **Rate limit**: %d requests per %ds\n", v.RateLimit, v.RateExpires)
	} else {
		b.WriteString("- **Rate limit**: none\n")
	}
	fmt.Fprintf(&b, "- **Conditional requests**: %v\n", v.Conditional)
	if v.Uses != "" {
		fmt.Fprintf(&b, "- **Controller**: `%s`\n", v.Uses)
	}
	if v.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", v.Description)
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
