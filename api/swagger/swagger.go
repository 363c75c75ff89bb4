package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutor Support API",
        "description": "Scheduling, booking and calendar service for the tutor support system",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and session identity"},
        {"name": "Schedule", "description": "Weekly availability template and dated appointments"},
        {"name": "Booking", "description": "Student session booking"},
        {"name": "Calendar", "description": "Derived week views"},
        {"name": "Profiles", "description": "User profiles and tutor search"},
        {"name": "Evaluations", "description": "Session ratings"},
        {"name": "Documents", "description": "Shared document metadata"},
        {"name": "Admin", "description": "User administration and analytics"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/schedule/weekly-slots": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Get weekly availability template",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Open a weekly template hour",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            },
            "delete": {
                "tags": ["Schedule"],
                "summary": "Close a weekly template hour",
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Slot is not open"}
                }
            }
        },
        "/schedule/appointments": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List appointments",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing party filter"}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Create an appointment",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Scheduling conflict"}
                }
            }
        },
        "/schedule/appointments/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete an appointment",
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/booking": {
            "post": {
                "tags": ["Booking"],
                "summary": "Book a session",
                "responses": {
                    "201": {"description": "Booked"},
                    "409": {"description": "Scheduling conflict"}
                }
            }
        },
        "/booking/{id}": {
            "delete": {
                "tags": ["Booking"],
                "summary": "Cancel a booking",
                "responses": {
                    "204": {"description": "Cancelled"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/calendar/tutor/{id}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get a tutor's calendar",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown tutor"}
                }
            }
        },
        "/calendar/student/{id}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get a student's calendar",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/profiles": {
            "get": {
                "tags": ["Profiles"],
                "summary": "List profiles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/profiles/{id}": {
            "get": {
                "tags": ["Profiles"],
                "summary": "Get a profile",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/search/tutors": {
            "get": {
                "tags": ["Profiles"],
                "summary": "Search tutors",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/evaluations": {
            "post": {
                "tags": ["Evaluations"],
                "summary": "Submit an evaluation",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/evaluations/tutor/{id}": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "List a tutor's evaluations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/documents": {
            "post": {
                "tags": ["Documents"],
                "summary": "Upload document metadata",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/documents/user/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "List a user's documents",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/analytics": {
            "get": {
                "tags": ["Admin"],
                "summary": "Admin analytics overview",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
