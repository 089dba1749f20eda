package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academia API",
        "description": "Course management backend: students, modules, lessons and per-student progress",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login, registration and password recovery"},
        {"name": "Students", "description": "Student roster and statistics"},
        {"name": "Instructors", "description": "Instructor management"},
        {"name": "Modules", "description": "Course modules"},
        {"name": "Lessons", "description": "Module lessons"},
        {"name": "Questions", "description": "Lesson questions"},
        {"name": "Progress", "description": "Per-student lesson and module progress"},
        {"name": "Countries", "description": "Continents and countries reference data"},
        {"name": "Roles", "description": "RBAC roles"},
        {"name": "Dashboard", "description": "Admin analytics"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register student account",
                "responses": {
                    "201": {"description": "Account created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Request password reset",
                "responses": {
                    "200": {"description": "Reset link sent"},
                    "404": {"description": "Unknown email"}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Reset password",
                "responses": {
                    "200": {"description": "Password updated"},
                    "400": {"description": "Invalid or expired token"}
                }
            }
        },
        "/alumnos": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/progreso-alumnos": {
            "get": {
                "tags": ["Progress"],
                "summary": "List all students' progress",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Progress"],
                "summary": "Open a lesson for a student",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Progress already exists"}
                }
            }
        },
        "/dashboard/admin": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Admin dashboard",
                "security": [{"BearerAuth": []}],
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
                "pagination": {"type": "object"},
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
