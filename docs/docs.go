// Package docs holds the OpenAPI description served at /docs/*, in the
// layout swag init produces from the handler annotations.
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
        "/insights": {
            "get": {
                "description": "Returns totals and breakdown groups with display labels",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Insights"
                ],
                "summary": "Query a labelled insight",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event name",
                        "name": "event_name",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "From timestamp",
                        "name": "from",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "To timestamp",
                        "name": "to",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Channel filter",
                        "name": "channel",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Breakdown type: event | cohort | time",
                        "name": "breakdown_type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Property key, or interval (hour | day | week | month) for time",
                        "name": "breakdown",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Bucket a numeric property breakdown",
                        "name": "histogram",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Histogram bucket count",
                        "name": "bins",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Math: total | sum",
                        "name": "math",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Property summed when math=sum",
                        "name": "math_property",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.InsightResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/insights/filter-changes": {
            "post": {
                "description": "Diffs the previous and current filters and stores the changed fields with idempotency handling",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Insights"
                ],
                "summary": "Record an insight filter change",
                "parameters": [
                    {
                        "description": "Filter change payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fiber.TrackFilterChangeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Duplicate or unchanged",
                        "schema": {
                            "$ref": "#/definitions/fiber.TrackFilterChangeResponse"
                        }
                    },
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/fiber.TrackFilterChangeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/labels/breakdown": {
            "post": {
                "description": "Resolves raw breakdown values (cohort ids, histogram buckets, property values) to display labels",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labels"
                ],
                "summary": "Label breakdown values",
                "parameters": [
                    {
                        "description": "Breakdown values",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fiber.BreakdownLabelsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.BreakdownLabelsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/labels/paths": {
            "post": {
                "description": "Humanizes the event types included in a paths insight",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labels"
                ],
                "summary": "Describe path event types",
                "parameters": [
                    {
                        "description": "Included event types",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fiber.PathLabelsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.PathLabelsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "fiber.BreakdownLabelsRequest": {
            "description": "Raw breakdown values to label",
            "type": "object",
            "required": [
                "values"
            ],
            "properties": {
                "breakdown": {
                    "type": "string",
                    "maxLength": 200
                },
                "breakdown_type": {
                    "type": "string",
                    "enum": [
                        "event",
                        "cohort",
                        "time"
                    ]
                },
                "histogram": {
                    "type": "boolean"
                },
                "values": {
                    "type": "array",
                    "maxItems": 1000,
                    "minItems": 1,
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "fiber.BreakdownLabelsResponse": {
            "type": "object",
            "properties": {
                "labels": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "invalid_query"
                },
                "message": {
                    "type": "string",
                    "example": "invalid time range"
                }
            }
        },
        "fiber.InsightGroupResponse": {
            "type": "object",
            "properties": {
                "aggregate": {
                    "type": "number"
                },
                "count": {
                    "type": "integer"
                },
                "formatted_value": {
                    "type": "string"
                },
                "in_progress": {
                    "type": "boolean"
                },
                "label": {
                    "type": "string"
                },
                "unique_users": {
                    "type": "integer"
                },
                "value": {
                    "type": "object"
                }
            }
        },
        "fiber.InsightResponse": {
            "type": "object",
            "properties": {
                "aggregate": {
                    "type": "number"
                },
                "breakdown": {
                    "type": "string"
                },
                "breakdown_title": {
                    "type": "string"
                },
                "breakdown_type": {
                    "type": "string"
                },
                "event_name": {
                    "type": "string"
                },
                "formatted_total": {
                    "type": "string"
                },
                "from": {
                    "type": "integer"
                },
                "groups": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.InsightGroupResponse"
                    }
                },
                "histogram": {
                    "type": "boolean"
                },
                "math": {
                    "type": "string"
                },
                "math_property": {
                    "type": "string"
                },
                "series_label": {
                    "type": "string"
                },
                "to": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                },
                "unique_users": {
                    "type": "integer"
                }
            }
        },
        "fiber.PathLabelsRequest": {
            "type": "object",
            "properties": {
                "include_event_types": {
                    "type": "array",
                    "maxItems": 16,
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "fiber.PathLabelsResponse": {
            "type": "object",
            "properties": {
                "labels": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "fiber.TrackFilterChangeRequest": {
            "description": "Previous and current filters of an insight",
            "type": "object",
            "required": [
                "insight_id",
                "user_id"
            ],
            "properties": {
                "current": {
                    "type": "object"
                },
                "insight_id": {
                    "type": "string",
                    "maxLength": 128
                },
                "previous": {
                    "type": "object"
                },
                "timestamp": {
                    "type": "integer",
                    "minimum": 0
                },
                "user_id": {
                    "type": "string",
                    "maxLength": 128
                }
            }
        },
        "fiber.TrackFilterChangeResponse": {
            "type": "object",
            "properties": {
                "change_id": {
                    "type": "string"
                },
                "changes": {
                    "type": "object"
                },
                "status": {
                    "type": "string",
                    "example": "created"
                }
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
	Title:            "Insights Display Service API",
	Description:      "Labelled insight queries, breakdown label resolution and filter change tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
