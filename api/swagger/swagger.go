package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PI Lab Daily API",
        "description": "Daily report submission and weekly digest service for a research lab",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Reports", "description": "Daily report submission and status"},
        {"name": "Digest", "description": "Weekly rollups and exports"},
        {"name": "Leads", "description": "Trial-interest capture"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reports/students": {
            "get": {
                "tags": ["Reports"],
                "summary": "List the lab roster",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentsResponse"}}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List reports for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "YYYY-MM-DD, default today"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReportsResponse"}}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Submit or overwrite today's report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/reports/status": {
            "get": {
                "tags": ["Reports"],
                "summary": "Submission status for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "YYYY-MM-DD, default today"},
                    {"name": "student_name", "in": "query", "type": "string", "description": "Single student to check"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusSummary"}}
                }
            }
        },
        "/reports/week": {
            "get": {
                "tags": ["Digest"],
                "summary": "Weekly digest",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "Any day of the target week"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WeeklyDigestResponse"}}
                }
            }
        },
        "/reports/export": {
            "post": {
                "tags": ["Digest"],
                "summary": "Render a weekly export file",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ExportResponse"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Digest"],
                "summary": "Download a rendered export",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "410": {"description": "Link expired", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/leads": {
            "get": {
                "tags": ["Leads"],
                "summary": "List captured leads",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LeadsResponse"}}
                }
            },
            "post": {
                "tags": ["Leads"],
                "summary": "Record trial interest",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLeadRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Lead"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitReportRequest": {
            "type": "object",
            "required": ["student_name", "work_done"],
            "properties": {
                "student_name": {"type": "string"},
                "work_done": {"type": "string"},
                "problems": {"type": "string"},
                "plan_tomorrow": {"type": "string"}
            }
        },
        "Report": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "student_name": {"type": "string"},
                "report_date": {"type": "string"},
                "work_done": {"type": "string"},
                "problems": {"type": "string"},
                "plan_tomorrow": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "StudentsResponse": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ReportsResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "reports": {"type": "array", "items": {"$ref": "#/definitions/Report"}}
            }
        },
        "StatusSummary": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "total": {"type": "integer"},
                "submitted_count": {"type": "integer"},
                "submitted": {"type": "array", "items": {"type": "string"}},
                "not_submitted": {"type": "array", "items": {"type": "string"}}
            }
        },
        "WeeklyDigestResponse": {
            "type": "object",
            "properties": {
                "week_start": {"type": "string"},
                "week_end": {"type": "string"},
                "days": {"type": "array", "items": {"type": "object"}},
                "students": {"type": "array", "items": {"type": "object"}},
                "tag_frequency": {"type": "array", "items": {"type": "object"}},
                "problems": {"type": "array", "items": {"type": "object"}},
                "week_rate": {"type": "integer"}
            }
        },
        "ExportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "date": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "ExportResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "CreateLeadRequest": {
            "type": "object",
            "required": ["name", "contact"],
            "properties": {
                "name": {"type": "string"},
                "contact": {"type": "string"},
                "lab_size": {"type": "string"}
            }
        },
        "Lead": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "lab_size": {"type": "string"},
                "contact": {"type": "string"},
                "submitted_at": {"type": "string"}
            }
        },
        "LeadsResponse": {
            "type": "object",
            "properties": {
                "leads": {"type": "array", "items": {"$ref": "#/definitions/Lead"}}
            }
        },
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
