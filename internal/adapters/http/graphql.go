package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/usecases"
	"github.com/samirrijal/touristapi/internal/pkg/locale"
)

// buildSchema creates the GraphQL schema wired to the lookup service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"title":                 &graphql.Field{Type: graphql.String},
			"normalized_title":      &graphql.Field{Type: graphql.String},
			"description":           &graphql.Field{Type: graphql.String},
			"extract":               &graphql.Field{Type: graphql.String},
			"coordinates":           &graphql.Field{Type: geoPointType},
			"page_url":              &graphql.Field{Type: graphql.String},
			"thumbnail_url":         &graphql.Field{Type: graphql.String},
			"original_image_url":    &graphql.Field{Type: graphql.String},
			"pageid":                &graphql.Field{Type: graphql.Float},
			"lang":                  &graphql.Field{Type: graphql.String},
			"content_lang":          &graphql.Field{Type: graphql.String},
			"used_english_fallback": &graphql.Field{Type: graphql.Boolean},
			"translated":            &graphql.Field{Type: graphql.Boolean},
			"short_summary":         &graphql.Field{Type: graphql.String},
			"more_summary":          &graphql.Field{Type: graphql.String},
			"ai_blurb":              &graphql.Field{Type: graphql.String},
		},
	})

	lookupType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LookupResult",
		Fields: graphql.Fields{
			"best":       &graphql.Field{Type: placeType},
			"candidates": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(placeType)))},
		},
	})

	languageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Language",
		Fields: graphql.Fields{
			"code": &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"lookup": &graphql.Field{
				Type:        lookupType,
				Description: "Find and describe places near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lang":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"radius": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: usecases.DefaultRadius},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: usecases.DefaultLimit},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := domain.LookupRequest{
						Lat:          p.Args["lat"].(float64),
						Lng:          p.Args["lng"].(float64),
						Lang:         locale.Resolve(p.Args["lang"].(string), deps.Settings.DefaultLang),
						RadiusMeters: p.Args["radius"].(int),
						Limit:        p.Args["limit"].(int),
					}
					if err := validateLookup(req); err != nil {
						return nil, err
					}
					return deps.Lookups.Lookup(p.Context, req), nil
				},
			},
			"languages": &graphql.Field{
				Type:        graphql.NewList(languageType),
				Description: "Supported target languages",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return Languages(), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func validateLookup(req domain.LookupRequest) error {
	if !(domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}).Valid() {
		return errors.New("lat must be within [-90, 90] and lng within [-180, 180]")
	}
	if req.RadiusMeters < usecases.MinRadius || req.RadiusMeters > usecases.MaxRadius {
		return fmt.Errorf("radius must be between %d and %d meters", usecases.MinRadius, usecases.MaxRadius)
	}
	if req.Limit < usecases.MinLimit || req.Limit > usecases.MaxLimit {
		return fmt.Errorf("limit must be between %d and %d", usecases.MinLimit, usecases.MaxLimit)
	}
	return nil
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// Programming error in the schema definition
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
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(result)
	}
}
