// Package docs registers the OpenAPI description served under /swagger/.
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
        "/api/events": {
            "post": {
                "description": "Create an event at a station with 1-3 candidate date-times. Returns the event id and both access tokens; they are not retrievable later.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create a new event",
                "parameters": [
                    {
                        "description": "Station and candidate date-times",
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.CreateEventRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "data contains event_id, organizer_token, participant_token", "schema": {"$ref": "#/definitions/controllers.CreateEventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "429": {"description": "error.code: too_many_requests", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/{eventID}": {
            "get": {
                "description": "Returns candidate slots with AVAILABLE counts, participant responses and five recommended venues. A missing event and a wrong token give the same 404.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event with availability and venue recommendations",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "description": "Participant or organizer token", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "data contains the event detail", "schema": {"$ref": "#/definitions/controllers.GetEventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/{eventID}/participants": {
            "post": {
                "description": "Records one status per candidate slot, in slot order, plus an optional comment. Requires the participant token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Submit a participant response",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true},
                    {
                        "description": "Token, availabilities and comment",
                        "name": "response",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.AddParticipantRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "data contains participant_id", "schema": {"$ref": "#/definitions/controllers.AddParticipantSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "429": {"description": "error.code: too_many_requests", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and database check",
                "responses": {
                    "200": {"description": "data.status: ok", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.CandidateDatetime": {
            "type": "object",
            "required": ["datetime"],
            "properties": {"datetime": {"type": "string", "format": "date-time"}}
        },
        "controllers.CreateEventRequest": {
            "type": "object",
            "required": ["candidate_datetimes", "station_name"],
            "properties": {
                "candidate_datetimes": {"type": "array", "maxItems": 3, "minItems": 1, "items": {"$ref": "#/definitions/controllers.CandidateDatetime"}},
                "station_name": {"type": "string", "maxLength": 100}
            }
        },
        "controllers.CreateEventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.EventCreated"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.GetEventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.EventDetail"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.AvailabilityInput": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "datetime": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["AVAILABLE", "UNAVAILABLE", "MAYBE"]}
            }
        },
        "controllers.AddParticipantRequest": {
            "type": "object",
            "required": ["availabilities", "token"],
            "properties": {
                "availabilities": {"type": "array", "maxItems": 3, "minItems": 1, "items": {"$ref": "#/definitions/controllers.AvailabilityInput"}},
                "comment": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "controllers.AddParticipantResponse": {
            "type": "object",
            "properties": {"participant_id": {"type": "string"}}
        },
        "controllers.AddParticipantSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.AddParticipantResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.EventCreated": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "organizer_token": {"type": "string"},
                "participant_token": {"type": "string"}
            }
        },
        "domain.EventDetail": {
            "type": "object",
            "properties": {
                "candidate_datetimes": {"type": "array", "items": {"$ref": "#/definitions/domain.SlotSummary"}},
                "event_id": {"type": "string"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/domain.ParticipantAvailability"}},
                "restaurants": {"type": "array", "items": {"$ref": "#/definitions/domain.Venue"}},
                "station_name": {"type": "string"}
            }
        },
        "domain.SlotSummary": {
            "type": "object",
            "properties": {
                "datetime": {"type": "string", "format": "date-time"},
                "participant_count": {"type": "integer"}
            }
        },
        "domain.SlotAvailability": {
            "type": "object",
            "properties": {
                "datetime": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["AVAILABLE", "UNAVAILABLE", "MAYBE"]}
            }
        },
        "domain.ParticipantAvailability": {
            "type": "object",
            "properties": {
                "availabilities": {"type": "array", "items": {"$ref": "#/definitions/domain.SlotAvailability"}},
                "comment": {"type": "string"},
                "participant_id": {"type": "string"}
            }
        },
        "domain.Venue": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "distance_from_station": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "genre": {"type": "string"},
                "matching_comments": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "price_range": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "gatherplan API",
	Description:      "Group event scheduling with venue recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
