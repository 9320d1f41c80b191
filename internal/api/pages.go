package api

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// Pages serves the frontend. Two variants exist: when the static dir ships an
// index.html the vanilla pages are served directly, otherwise every page
// route falls back to the react redirect shell.
type Pages struct {
	staticDir string
	vanilla   bool
}

// NewPages probes the static assets directory and picks the frontend variant.
func NewPages(staticDir string) *Pages {
	_, err := os.Stat(filepath.Join(staticDir, "index.html"))
	return &Pages{
		staticDir: staticDir,
		vanilla:   err == nil,
	}
}

// Vanilla reports whether the vanilla frontend variant is active.
func (p *Pages) Vanilla() bool {
	return p.vanilla
}

// Landing serves the landing page.
func (p *Pages) Landing(c *fiber.Ctx) error {
	return p.render(c, "index.html")
}

// Signup serves the signup page.
func (p *Pages) Signup(c *fiber.Ctx) error {
	return p.render(c, "signup.html")
}

// Leaderboard serves the leaderboard page.
func (p *Pages) Leaderboard(c *fiber.Ctx) error {
	return p.render(c, "leaderboard.html")
}

func (p *Pages) render(c *fiber.Ctx, name string) error {
	if p.vanilla {
		return c.SendFile(filepath.Join(p.staticDir, name))
	}
	return c.SendFile(filepath.Join(p.staticDir, "react_redirect.html"))
}
