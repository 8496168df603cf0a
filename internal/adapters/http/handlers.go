package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/freshconnect/api/internal/adapters/geolocation"
	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
	"github.com/freshconnect/api/internal/core/usecases"
	"github.com/freshconnect/api/internal/pkg/geospatial"
	"github.com/freshconnect/api/internal/pkg/metrics"
)

// DiscoveryResponse is the result of a vendor search: the ranked
// vendors plus their distance from the user, when a location is known.
type DiscoveryResponse struct {
	Vendors   []domain.Vendor   `json:"vendors"`
	Distances map[string]string `json:"distances,omitempty"` // vendor ID -> formatted distance
	Count     int               `json:"count"`
}

// parseFilters reads discovery criteria from the query string. Unknown
// category values are passed through; they simply match nothing.
func parseFilters(c *fiber.Ctx) domain.FilterOptions {
	filters := domain.FilterOptions{
		SearchTerm:  c.Query("q"),
		MaxDistance: c.QueryFloat("max_distance", 0),
		SortBy:      domain.SortMode(c.Query("sort", string(domain.SortByDistance))),
	}
	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filters.Categories = append(filters.Categories, domain.Category(part))
			}
		}
	}
	return filters
}

// requestLocation resolves the location a discovery request ranks
// against: explicit lat/lon when given, otherwise the last saved fix.
func requestLocation(c *fiber.Ctx, deps *Dependencies) (*domain.GeoPoint, error) {
	if c.Query("lat") != "" && c.Query("lon") != "" {
		return &domain.GeoPoint{
			Lat: c.QueryFloat("lat"),
			Lon: c.QueryFloat("lon"),
		}, nil
	}
	fix, err := deps.Location.LastKnown(c.Context())
	if err != nil {
		return nil, err
	}
	if fix == nil {
		return nil, nil
	}
	return &fix.GeoPoint, nil
}

// DiscoverVendorsHandler runs the filter and ranking pipeline over all
// vendors.
func DiscoverVendorsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := parseFilters(c)
		switch filters.SortBy {
		case domain.SortByDistance, domain.SortByRating, domain.SortByName:
		default:
			return errBadRequest(c, "sort must be distance, rating or name")
		}
		if filters.MaxDistance < 0 {
			return errBadRequest(c, "max_distance must not be negative")
		}

		loc, err := requestLocation(c, deps)
		if err != nil {
			return errInternal(c, err.Error())
		}

		result, err := deps.Discovery.Discover(c.Context(), loc, filters)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.DiscoverySearches.WithLabelValues(string(filters.SortBy)).Inc()
		metrics.DiscoveryResults.Observe(float64(len(result.Vendors)))

		resp := DiscoveryResponse{
			Vendors: result.Vendors,
			Count:   len(result.Vendors),
		}
		if len(result.Distances) > 0 {
			resp.Distances = make(map[string]string, len(result.Distances))
			for id, km := range result.Distances {
				resp.Distances[id] = geospatial.FormatDistance(km)
			}
		}
		return c.JSON(resp)
	}
}

// GetVendorHandler returns a single vendor by ID.
func GetVendorHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "vendor id is required")
		}
		vendor, err := deps.Discovery.GetVendor(c.Context(), id)
		if err != nil {
			return errNotFound(c, "vendor not found")
		}
		return c.JSON(vendor)
	}
}

// VendorItemsHandler returns a vendor's produce items.
func VendorItemsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "vendor id is required")
		}
		items, err := deps.Discovery.VendorItems(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if items == nil {
			items = []domain.ProduceItem{}
		}
		return c.JSON(items)
	}
}

// ListItemsHandler returns all produce items with offset pagination.
func ListItemsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := deps.Discovery.ListItems(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 50)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		total := len(items)
		if offset >= total {
			items = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			items = items[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: items, Pagination: pg})
	}
}

// CategoriesHandler lists the known produce categories.
func CategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(domain.Categories())
	}
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string         `json:"token"`
	Vendor *domain.Vendor `json:"vendor"`
}

// LoginHandler authenticates a vendor and issues a JWT. Failures are
// reported with a single generic message.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		vendor, err := deps.Auth.Login(c.Context(), req.Username, req.Password)
		if errors.Is(err, usecases.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			return errUnauthorized(c, usecases.ErrInvalidCredentials.Error())
		}
		if err != nil {
			metrics.LoginAttempts.WithLabelValues("error").Inc()
			return errInternal(c, err.Error())
		}

		token, err := mintToken(deps.JWTSecret, vendor.ID, req.Username, deps.TokenTTL)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.LoginAttempts.WithLabelValues("ok").Inc()
		return c.JSON(loginResponse{Token: token, Vendor: vendor})
	}
}

// LogoutHandler closes the current session.
func LogoutHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Auth.Logout(c.Context()); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "logged out"})
	}
}

// MeHandler returns the authenticated vendor's own record.
func MeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendor, err := deps.Discovery.GetVendor(c.Context(), vendorID(c))
		if err != nil {
			return errNotFound(c, "vendor not found")
		}
		return c.JSON(vendor)
	}
}

// --- Dashboard ---

// DashboardItemsHandler lists the authenticated vendor's inventory.
func DashboardItemsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := deps.Inventory.Items(c.Context(), vendorID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		if items == nil {
			items = []domain.ProduceItem{}
		}
		return c.JSON(items)
	}
}

// AddItemHandler creates a new item in the vendor's inventory.
func AddItemHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.NewItem
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		item, err := deps.Inventory.AddItem(c.Context(), vendorID(c), in)
		if errors.Is(err, usecases.ErrInvalidItem) {
			return errBadRequest(c, err.Error())
		}
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.InventoryMutations.WithLabelValues("add").Inc()
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateItemHandler replaces an item's fields.
func UpdateItemHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.NewItem
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		item, err := deps.Inventory.UpdateItem(c.Context(), vendorID(c), c.Params("id"), in)
		switch {
		case errors.Is(err, usecases.ErrInvalidItem):
			return errBadRequest(c, err.Error())
		case errors.Is(err, ports.ErrItemNotFound):
			return errNotFound(c, "item not found")
		case err != nil:
			return errInternal(c, err.Error())
		}

		metrics.InventoryMutations.WithLabelValues("update").Inc()
		return c.JSON(item)
	}
}

// DeleteItemHandler removes an item from the vendor's inventory.
func DeleteItemHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := deps.Inventory.DeleteItem(c.Context(), vendorID(c), c.Params("id"))
		switch {
		case errors.Is(err, ports.ErrItemNotFound):
			return errNotFound(c, "item not found")
		case err != nil:
			return errInternal(c, err.Error())
		}

		metrics.InventoryMutations.WithLabelValues("delete").Inc()
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ToggleItemHandler flips an item's availability.
func ToggleItemHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := deps.Inventory.ToggleAvailability(c.Context(), vendorID(c), c.Params("id"))
		switch {
		case errors.Is(err, ports.ErrItemNotFound):
			return errNotFound(c, "item not found")
		case err != nil:
			return errInternal(c, err.Error())
		}

		metrics.InventoryMutations.WithLabelValues("toggle").Inc()
		return c.JSON(item)
	}
}

// DashboardSummaryHandler returns stock aggregates for the vendor.
func DashboardSummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := deps.Inventory.Summary(c.Context(), vendorID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(sum)
	}
}

// UpdateProfileHandler applies a partial update to the vendor profile.
func UpdateProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var update usecases.ProfileUpdate
		if err := c.BodyParser(&update); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		vendor, err := deps.Inventory.UpdateProfile(c.Context(), vendorID(c), update)
		if errors.Is(err, usecases.ErrInvalidItem) {
			return errBadRequest(c, err.Error())
		}
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.InventoryMutations.WithLabelValues("profile").Inc()
		return c.JSON(vendor)
	}
}

// --- Location ---

// AcquireLocationHandler requests a fresh fix from the configured
// provider and persists it.
func AcquireLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := deps.Location.Acquire(c.Context())
		if err != nil {
			metrics.LocationFixes.WithLabelValues(deps.GeoProvider, locationStatus(err)).Inc()
			switch {
			case errors.Is(err, geolocation.ErrPermissionDenied):
				return errForbidden(c, "location permission denied")
			case errors.Is(err, geolocation.ErrTimeout):
				return newError(c, fiber.StatusGatewayTimeout, "timeout", "location acquisition timed out")
			case errors.Is(err, geolocation.ErrUnsupported):
				return newError(c, fiber.StatusNotImplemented, "unsupported", "no location provider configured")
			default:
				return newError(c, fiber.StatusBadGateway, "position_unavailable", "could not determine a position")
			}
		}

		metrics.LocationFixes.WithLabelValues(deps.GeoProvider, "ok").Inc()
		return c.JSON(loc)
	}
}

func locationStatus(err error) string {
	switch {
	case errors.Is(err, geolocation.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, geolocation.ErrTimeout):
		return "timeout"
	case errors.Is(err, geolocation.ErrUnsupported):
		return "unsupported"
	default:
		return "position_unavailable"
	}
}

// GetLocationHandler returns the last saved fix.
func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := deps.Location.LastKnown(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		if loc == nil {
			return errNotFound(c, "no location saved")
		}
		return c.JSON(loc)
	}
}

// PutLocationHandler saves a caller-supplied location pin.
func PutLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var loc domain.UserLocation
		if err := c.BodyParser(&loc); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
			return errBadRequest(c, "lat/lon out of range")
		}

		if err := deps.Location.SaveFix(c.Context(), loc); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(loc)
	}
}
