package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const fallbackIndex = "<h1>Nearest Animals API</h1><p>index.html not found.</p>"

// IndexHandler - отдаёт статическую страницу клиента
type IndexHandler struct {
	path   string
	logger *zap.Logger
}

func NewIndexHandler(path string, logger *zap.Logger) *IndexHandler {
	return &IndexHandler{
		path:   path,
		logger: logger,
	}
}

// Index отдаёт настроенную HTML страницу или заглушку, если файла нет
func (h *IndexHandler) Index(c *fiber.Ctx) error {
	if info, err := os.Stat(h.path); err == nil && !info.IsDir() {
		return c.SendFile(h.path)
	}

	h.logger.Debug("Index page not found, serving fallback", zap.String("path", h.path))
	c.Type("html", "utf-8")
	return c.SendString(fallbackIndex)
}
