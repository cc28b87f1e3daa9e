package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PageFox/app/models"
	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/slug"
	"github.com/ManuelReschke/PageFox/internal/pkg/usercontext"
)

// randomSlugLength sizes generated slugs; 8 Base62 chars keep published URLs
// short but unguessable.
const randomSlugLength = 8

// ProjectRequest is the payload for creating or updating a page project.
// A missing slug is generated, a provided one is normalized to URL form.
type ProjectRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Slug         string `json:"slug" validate:"max=255"`
	HTML         string `json:"html"`
	CSS          string `json:"css"`
	JS           string `json:"js"`
	IsHosted     bool   `json:"is_hosted"`
	DurationDays int    `json:"duration_days" validate:"min=1,max=365"`
	ProductName  string `json:"product_name" validate:"max=255"`
	ProductPrice string `json:"product_price" validate:"max=100"`
	ButtonLabel  string `json:"button_label" validate:"max=255"`
}

// HandleCreateProject creates a new page project for the current user.
// POST /api/v1/projects
func HandleCreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "malformed payload",
		})
	}
	if err := trackValidate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": err.Error(),
		})
	}

	pageSlug := slug.Normalize(req.Slug)
	if pageSlug == "" {
		generated, err := slug.Random(randomSlugLength)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "internal",
				"message": "could not generate slug",
			})
		}
		pageSlug = generated
	}

	project := &models.Project{
		UserID:       usercontext.GetUserID(c),
		Name:         req.Name,
		Slug:         pageSlug,
		HTML:         req.HTML,
		CSS:          req.CSS,
		JS:           req.JS,
		IsHosted:     req.IsHosted,
		DurationDays: req.DurationDays,
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		ButtonLabel:  req.ButtonLabel,
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Project.Create(project); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "conflict",
			"message": "could not create project, slug may already exist",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleListProjects lists the current user's projects.
// GET /api/v1/projects
func HandleListProjects(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	projects, err := repos.Project.GetByUserID(usercontext.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not load projects",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"projects": projects})
}

// HandleUpdateProject updates a project owned by the current user.
// PUT /api/v1/projects/:uuid
func HandleUpdateProject(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	project, err := repos.Project.GetByUUID(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "unknown project",
		})
	}
	if project.UserID != usercontext.GetUserID(c) && !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "not your project",
		})
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "malformed payload",
		})
	}
	if err := trackValidate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": err.Error(),
		})
	}

	project.Name = req.Name
	if normalized := slug.Normalize(req.Slug); normalized != "" {
		project.Slug = normalized
	}
	project.HTML = req.HTML
	project.CSS = req.CSS
	project.JS = req.JS
	project.IsHosted = req.IsHosted
	project.DurationDays = req.DurationDays
	project.ProductName = req.ProductName
	project.ProductPrice = req.ProductPrice
	project.ButtonLabel = req.ButtonLabel

	if err := repos.Project.Update(project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not update project",
		})
	}

	return c.Status(fiber.StatusOK).JSON(project)
}

// HandleServePage serves a hosted page publicly. Pages past their configured
// duration are gone, not found. The page source is stored verbatim and served
// as a single HTML document with the styles and script inlined.
// GET /p/:slug
func HandleServePage(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	project, err := repos.Project.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("page not found")
	}
	if time.Now().After(project.ExpiresAt()) {
		return c.Status(fiber.StatusGone).SendString("this page has expired")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf("<!DOCTYPE html><html><head><style>%s</style></head><body>%s<script>%s</script></body></html>",
		project.CSS, project.HTML, project.JS))
}
