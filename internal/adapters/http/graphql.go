package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/freshconnect/api/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	contactType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Contact",
		Fields: graphql.Fields{
			"phone": &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
		},
	})

	businessHoursType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BusinessHours",
		Fields: graphql.Fields{
			"open":  &graphql.Field{Type: graphql.String},
			"close": &graphql.Field{Type: graphql.String},
			"days":  &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	vendorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Vendor",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"name":           &graphql.Field{Type: graphql.String},
			"location":       &graphql.Field{Type: geoPointType},
			"contact":        &graphql.Field{Type: contactType},
			"business_hours": &graphql.Field{Type: businessHoursType},
			"specialties":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"rating":         &graphql.Field{Type: graphql.Float},
			"description":    &graphql.Field{Type: graphql.String},
			"is_active":      &graphql.Field{Type: graphql.Boolean},
			"distance":       &graphql.Field{Type: graphql.Float},
		},
	})

	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProduceItem",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
			"category":     &graphql.Field{Type: graphql.String},
			"price_per_kg": &graphql.Field{Type: graphql.Float},
			"quantity":     &graphql.Field{Type: graphql.Int},
			"description":  &graphql.Field{Type: graphql.String},
			"vendor_id":    &graphql.Field{Type: graphql.String},
			"is_available": &graphql.Field{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"vendors": &graphql.Field{
				Type:        graphql.NewList(vendorType),
				Description: "Search and rank produce vendors",
				Args: graphql.FieldConfigArgument{
					"q":           &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"category":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"maxDistance": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
					"sort":        &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "rating"},
					"lat":         &graphql.ArgumentConfig{Type: graphql.Float},
					"lon":         &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filters := domain.FilterOptions{
						SearchTerm:  p.Args["q"].(string),
						MaxDistance: p.Args["maxDistance"].(float64),
						SortBy:      domain.SortMode(p.Args["sort"].(string)),
					}
					if cat := p.Args["category"].(string); cat != "" {
						filters.Categories = []domain.Category{domain.Category(cat)}
					}
					var loc *domain.GeoPoint
					if lat, ok := p.Args["lat"].(float64); ok {
						if lon, ok := p.Args["lon"].(float64); ok {
							loc = &domain.GeoPoint{Lat: lat, Lon: lon}
						}
					}
					result, err := deps.Discovery.Discover(p.Context, loc, filters)
					if err != nil {
						return nil, err
					}
					return result.Vendors, nil
				},
			},
			"vendor": &graphql.Field{
				Type:        vendorType,
				Description: "Get a vendor by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Discovery.GetVendor(p.Context, p.Args["id"].(string))
				},
			},
			"vendorItems": &graphql.Field{
				Type:        graphql.NewList(itemType),
				Description: "List a vendor's produce items",
				Args: graphql.FieldConfigArgument{
					"vendor_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Discovery.VendorItems(p.Context, p.Args["vendor_id"].(string))
				},
			},
			"items": &graphql.Field{
				Type:        graphql.NewList(itemType),
				Description: "List all produce items",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Discovery.ListItems(p.Context)
				},
			},
			"categories": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "List the known produce categories",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return domain.Categories(), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
