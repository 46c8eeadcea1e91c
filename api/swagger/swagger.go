package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Educore API",
        "description": "School e-learning backend: session auth, profiles, materials and completion tracking",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "SessionToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Registration, login, logout"},
        {"name": "Profile", "description": "Role-shaped student/teacher profiles"},
        {"name": "Catalog", "description": "Subjects, classes and enrollments"},
        {"name": "Materials", "description": "Learning materials and completion"},
        {"name": "Roster", "description": "Teacher-facing student views and exports"},
        {"name": "Uploads", "description": "Attachment management"},
        {"name": "Files", "description": "Signed file downloads"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/auth/register/student": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/register/teacher": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a teacher account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate by email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token issued", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Invalidate the presented session token",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Logged out", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Missing token", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get own profile",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Profile missing", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "put": {
                "tags": ["Profile"],
                "summary": "Update own profile",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Updated profile", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List subjects",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Subjects", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List classes",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Classes", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/enrollments": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List own enrollments for a subject",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "subject", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrollments", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Unknown subject", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/materials": {
            "get": {
                "tags": ["Materials"],
                "summary": "List materials of a class, newest first",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "class", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Materials", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Unknown class", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["Materials"],
                "summary": "Create a material (teacher only)",
                "security": [{"SessionToken": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Unknown subject or class", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Not a teacher", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/materials/{id}": {
            "get": {
                "tags": ["Materials"],
                "summary": "Get a material",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Material", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "put": {
                "tags": ["Materials"],
                "summary": "Update a material (owner only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Owned by another teacher", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "delete": {
                "tags": ["Materials"],
                "summary": "Delete a material (owner only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Owned by another teacher", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/materials/{id}/download": {
            "get": {
                "tags": ["Materials"],
                "summary": "Download a material attachment",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Signed token payload", "schema": {"$ref": "#/definitions/Envelope"}},
                    "302": {"description": "Redirect to external media"},
                    "404": {"description": "No attachment", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/materials/{id}/complete": {
            "post": {
                "tags": ["Materials"],
                "summary": "Mark a material as completed (student only, idempotent)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Completion mark", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Material not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/materials/{id}/completion": {
            "get": {
                "tags": ["Materials"],
                "summary": "Check completion of a material (student only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Completion status", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/teacher/students": {
            "get": {
                "tags": ["Roster"],
                "summary": "List all registered students (teacher only)",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Students", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/teacher/students/active": {
            "get": {
                "tags": ["Roster"],
                "summary": "List students with an active session (teacher only)",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Active students", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/teacher/students/export": {
            "get": {
                "tags": ["Roster"],
                "summary": "Export the student roster as CSV or PDF (teacher only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/teacher/completions": {
            "get": {
                "tags": ["Roster"],
                "summary": "List completions on own materials (teacher only)",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Completion entries", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/uploads": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload a file (teacher only)",
                "security": [{"SessionToken": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "folder", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Stored file", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Invalid file", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "get": {
                "tags": ["Uploads"],
                "summary": "List upload folders (teacher only)",
                "security": [{"SessionToken": []}],
                "responses": {
                    "200": {"description": "Folders", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/uploads/{folder}": {
            "get": {
                "tags": ["Uploads"],
                "summary": "List files in a folder (teacher only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "folder", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Files", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Path rejected", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "delete": {
                "tags": ["Uploads"],
                "summary": "Delete a folder and its files (teacher only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "folder", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Path rejected", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/uploads/{folder}/{file}": {
            "get": {
                "tags": ["Uploads"],
                "summary": "Download a stored file (teacher only)",
                "produces": ["application/octet-stream"],
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "folder", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "delete": {
                "tags": ["Uploads"],
                "summary": "Delete a stored file (teacher only)",
                "security": [{"SessionToken": []}],
                "parameters": [
                    {"name": "folder", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Path rejected", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/files/download": {
            "get": {
                "tags": ["Files"],
                "summary": "Download a file by signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "Metrics exposition"}
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "error"]},
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {"type": "object"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["email", "password", "full_name", "grade_level", "guardian_name", "guardian_phone"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "grade_level": {"type": "string"},
                "guardian_name": {"type": "string"},
                "guardian_phone": {"type": "string"}
            }
        },
        "RegisterTeacherRequest": {
            "type": "object",
            "required": ["email", "password", "full_name"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"}
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
