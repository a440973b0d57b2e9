package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗ ███╗   ██╗███████╗██╗
 ██║  ██║██╔══██╗████╗  ██║╚══███╔╝██║
 ███████║███████║██╔██╗ ██║  ███╔╝ ██║
 ██╔══██║██╔══██║██║╚██╗██║ ███╔╝  ██║
 ██║  ██║██║  ██║██║ ╚████║███████╗██║
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝`

const bannerCompact = "H A N Z I"

// RenderBanner returns the HANZI banner, or a compact form below 44 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 44 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
