// Package handler exposes the JSON surface of the frontend service: thin
// proxies from UI routes to the per-session entity facades.
package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/no-thing-project/hub-frontend/internal/markdown"
)

type Handler struct {
	markdown *markdown.Renderer
	validate *validator.Validate
}

func New(renderer *markdown.Renderer) *Handler {
	return &Handler{
		markdown: renderer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
