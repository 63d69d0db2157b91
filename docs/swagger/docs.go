// Package swagger provides the generated OpenAPI document registration.
package swagger

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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service and database health",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["version"],
                "summary": "Build version information",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get station settings",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update station settings",
                "parameters": [
                    {"name": "settings", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid timezone or payload"}
                }
            }
        },
        "/api/v1/shows": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shows"],
                "summary": "List shows",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shows"],
                "summary": "Create a show",
                "parameters": [
                    {"name": "show", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/api/v1/shows/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shows"],
                "summary": "Get a show with its schedule slots",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shows"],
                "summary": "Update a show",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "show", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid payload"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["shows"],
                "summary": "Delete a show and its schedule slots",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/schedule/slots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "List slots intersecting a time range",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "required": true},
                    {"name": "to", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing or invalid range"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Create a single schedule slot",
                "parameters": [
                    {"name": "slot", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid range or payload"},
                    "409": {"description": "Schedule conflict"}
                }
            }
        },
        "/api/v1/schedule/slots/recurring": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Create weekly recurring slots",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid range, timezone, or occurrence count"},
                    "409": {"description": "Schedule conflict"}
                }
            }
        },
        "/api/v1/schedule/slots/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Get a schedule slot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Delete a schedule slot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/schedule/on-air": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Slots on air right now",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/schedule/purge-corrupt": {
            "post": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Remove zero-or-negative-duration slots",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/recordings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recordings"],
                "summary": "List recordings",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "show_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid filter"}
                }
            }
        },
        "/api/v1/recordings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recordings"],
                "summary": "Get a recording",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["recordings"],
                "summary": "Delete a recording row and its file",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Recording still in progress"}
                }
            }
        },
        "/api/v1/recordings/{id}/download": {
            "get": {
                "produces": ["audio/mpeg"],
                "tags": ["recordings"],
                "summary": "Download the recorded audio file",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Recording still in progress"}
                }
            }
        },
        "/api/v1/recordings/{id}/trim": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recordings"],
                "summary": "Trim a completed recording in place",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "range", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid range"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Another edit is running"},
                    "422": {"description": "Recording is not completed"},
                    "502": {"description": "Audio engine failed"}
                }
            }
        },
        "/api/v1/recordings/{id}/fade": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recordings"],
                "summary": "Apply fade-in/fade-out to a completed recording",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "fades", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid fade lengths"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Another edit is running"},
                    "422": {"description": "Recording is not completed"},
                    "502": {"description": "Audio engine failed"}
                }
            }
        },
        "/api/v1/recordings/{id}/normalize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recordings"],
                "summary": "Normalize loudness of a completed recording",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "target", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid loudness target"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Another edit is running"},
                    "422": {"description": "Recording is not completed"},
                    "502": {"description": "Audio engine failed"}
                }
            }
        },
        "/api/v1/recorder/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recorder"],
                "summary": "Active captures and poll state",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Recorder is not running"}
                }
            }
        },
        "/api/v1/episodes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["episodes"],
                "summary": "List published episodes, newest first",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["episodes"],
                "summary": "Publish a completed recording as an episode",
                "parameters": [
                    {"name": "episode", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload"},
                    "404": {"description": "Recording not found"},
                    "409": {"description": "Recording already published"},
                    "422": {"description": "Recording is not completed"}
                }
            }
        },
        "/api/v1/episodes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["episodes"],
                "summary": "Get an episode",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["episodes"],
                "summary": "Update episode title or description",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "episode", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid payload"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["episodes"],
                "summary": "Unpublish an episode",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/feed": {
            "get": {
                "produces": ["application/rss+xml"],
                "tags": ["feed"],
                "summary": "Episode RSS feed",
                "responses": {
                    "200": {"description": "RSS XML"},
                    "500": {"description": "Feed generation failed"},
                    "503": {"description": "Feed is not enabled"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Radio Calendar API",
	Description:      "Broadcast calendar and automated stream recording",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
