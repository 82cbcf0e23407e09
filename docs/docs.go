// Package docs registers the OpenAPI document served under /swagger.
// It mirrors the handler annotations and is maintained by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/brent-wti/calibrated": {
            "get": {
                "description": "Live futures re-based by the smoothed EIA basis, daily and intraday history, and the resolution status of the tracked question",
                "produces": ["application/json"],
                "tags": ["spread"],
                "summary": "Calibrated Brent/WTI spread",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Snapshot date (YYYY-MM-DD or RFC3339); defaults to now. A past date replays from data published by then",
                        "name": "as_of",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CalibratedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/bund-yield": {
            "get": {
                "description": "Latest daily yield on 10-year German federal securities from the Bundesbank",
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "German 10Y yield",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BundYieldResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/currencies": {
            "get": {
                "description": "USD value of each tracked currency; individual quote failures are reported as warnings",
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "USD currency rates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CurrencyRatesResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.RawBasisPoint": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "value": {"type": "number"},
                "eia": {"type": "number"},
                "futures": {"type": "number"}
            }
        },
        "models.LegSummary": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "eia_series": {"type": "string"},
                "calibrated_spot": {"type": "number"},
                "live_futures": {"type": "number"},
                "live_timestamp": {"type": "string"},
                "smoothed_basis": {"type": "number"},
                "smoothed_basis_method": {"type": "string"},
                "basis_last_date": {"type": "string"},
                "basis_age_days": {"type": "integer"},
                "basis_stale": {"type": "boolean"},
                "raw_basis": {"type": "array", "items": {"$ref": "#/definitions/models.RawBasisPoint"}}
            }
        },
        "models.CalibratedResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "generated_at": {"type": "string"},
                "as_of": {"type": "string"},
                "next_market_update": {"type": "string"},
                "stale": {"type": "boolean"},
                "metaculus": {
                    "type": "object",
                    "properties": {
                        "target_date": {"type": "string"},
                        "interpolation_deadline": {"type": "string"},
                        "resolution": {"type": "object", "description": "exact, pending, interpolated or unavailable, tagged by status"}
                    }
                },
                "wti": {"$ref": "#/definitions/models.LegSummary"},
                "brent": {"$ref": "#/definitions/models.LegSummary"},
                "spread": {
                    "type": "object",
                    "properties": {
                        "calibrated": {"type": "number"},
                        "live_futures": {"type": "number"},
                        "basis": {"type": "number"}
                    }
                },
                "basis": {
                    "type": "object",
                    "properties": {
                        "window_days": {"type": "integer"},
                        "half_life_days": {"type": "number"}
                    }
                },
                "history": {"type": "object"},
                "intraday": {"type": "object"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.CurrencyRatesResponse": {
            "type": "object",
            "properties": {
                "base": {"type": "string"},
                "rates": {"type": "object", "additionalProperties": {"type": "number"}},
                "updated_at": {"type": "string"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.BundYieldResponse": {
            "type": "object",
            "properties": {
                "series": {"type": "string"},
                "yield": {"type": "number"},
                "date": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Brent/WTI Spread Tracker API",
	Description:      "Calibrated Brent/WTI spread and auxiliary market quotes for the tracker dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
