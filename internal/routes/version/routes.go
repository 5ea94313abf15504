package version

import (
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
)

var Version = models.VersionResponse{Commit: commit()}

// commit returns the VCS revision embedded by the go tool, falling back to asking git.
func commit() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
