package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"products/internal/models"
	"products/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleHealthCheck reports service liveness.
func (h *ProductHandler) HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "OK"})
}

// HandleIndex serves the root metadata document.
func (h *ProductHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"name":    "Product REST API Service",
		"version": "1.0",
		"paths": fiber.Map{
			"products": "/products",
		},
	})
}

// HandleListProducts returns all products, optionally narrowed by a single
// query filter. When several filters are supplied, the first one in the
// order name, category, size, color wins.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)

	switch {
	case c.Query("name") != "":
		products, err = h.service.GetProductsByName(c.Query("name"))
	case c.Query("category") != "":
		products, err = h.service.GetProductsByCategory(c.Query("category"))
	case c.Query("size") != "":
		products, err = h.service.GetProductsBySize(c.Query("size"))
	case c.Query("color") != "":
		products, err = h.service.GetProductsByColor(c.Query("color"))
	default:
		products, err = h.service.GetAllProducts()
	}
	if err != nil {
		return h.renderError(c, err)
	}

	results := make([]map[string]any, 0, len(products))
	for i := range products {
		results = append(results, products[i].Serialize())
	}
	h.logger.Info("returning products", zap.Int("count", len(results)))
	return c.Status(fiber.StatusOK).JSON(results)
}

// HandleGetProduct retrieves a single product by its id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderUnknownID(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(product.Serialize())
}

// HandleCreateProduct creates a new product from a JSON body. The response
// carries a Location header pointing at the new resource.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return renderUnsupportedMediaType(c)
	}

	data, err := parseRecord(c.Body())
	if err != nil {
		return h.renderError(c, err)
	}

	product := &models.Product{}
	if err := product.Deserialize(data); err != nil {
		return h.renderError(c, err)
	}
	if err := h.service.CreateProduct(product); err != nil {
		return h.renderError(c, err)
	}

	h.logger.Info("created product", zap.Int("id", product.ID), zap.String("name", product.Name))
	c.Location(fmt.Sprintf("/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product.Serialize())
}

// HandleUpdateProduct replaces an existing product's fields with a full
// JSON body. The id is taken from the path and never from the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return renderUnsupportedMediaType(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderUnknownID(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.renderError(c, err)
	}

	data, err := parseRecord(c.Body())
	if err != nil {
		return h.renderError(c, err)
	}
	if err := product.Deserialize(data); err != nil {
		return h.renderError(c, err)
	}
	product.ID = id
	if err := h.service.UpdateProduct(product); err != nil {
		return h.renderError(c, err)
	}

	h.logger.Info("updated product", zap.Int("id", product.ID))
	return c.Status(fiber.StatusOK).JSON(product.Serialize())
}

// HandleDeleteProduct removes a product. Deleting an id that no longer
// exists is still a 204; the operation is idempotent.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderUnknownID(c)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return h.renderError(c, err)
	}
	h.logger.Info("deleted product", zap.Int("id", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// hasJSONContentType reports whether the request declares a JSON body.
func hasJSONContentType(c *fiber.Ctx) bool {
	contentType := c.Get(fiber.HeaderContentType)
	return strings.HasPrefix(contentType, fiber.MIMEApplicationJSON)
}

// parseRecord decodes the request body into a key/value record. Anything
// that is not a JSON object is an InvalidFormat error.
func parseRecord(body []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return nil, &models.ValidationError{
			Kind:    models.InvalidFormat,
			Message: "invalid product: body of request contained bad or no data",
		}
	}
	return data, nil
}

// renderUnsupportedMediaType rejects a request whose declared content type
// is not application/json, before any deserialization is attempted.
func renderUnsupportedMediaType(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"error":   "unsupported_media_type",
		"message": "Content-Type must be " + fiber.MIMEApplicationJSON,
	})
}

// renderUnknownID answers 404 for ids that are not well-formed integers,
// matching the route-converter behavior of a path that names no resource.
func (h *ProductHandler) renderUnknownID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": fmt.Sprintf("product with id %s was not found", c.Params("id")),
	})
}

// renderError maps domain errors onto response status codes. Validation
// kinds become client errors, NotFound becomes 404 and everything else is a
// 500 with no internal detail leaked.
func (h *ProductHandler) renderError(c *fiber.Ctx, err error) error {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": notFound.Error(),
		})
	}
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   string(validation.Kind),
			"message": validation.Error(),
		})
	}
	h.logger.Error("request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_error",
		"message": "an internal error occurred",
	})
}
