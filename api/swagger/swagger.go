package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PawCare Grooming API",
        "description": "Stylist availability, roster and appointment booking for grooming facilities",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Conflict, capacity and skill checks"},
        {"name": "Appointments", "description": "Booking and appointment lifecycle"},
        {"name": "Stylists", "description": "Groomer roster and capacity profiles"},
        {"name": "Facilities", "description": "Facility settings and daily schedule export"},
        {"name": "System", "description": "Health and runtime metrics"}
    ],
    "paths": {
        "/availability/check": {
            "post": {
                "tags": ["Availability"],
                "summary": "Check one stylist for a slot",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CheckStylistRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StylistAvailabilityCheck"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/stylists": {
            "post": {
                "tags": ["Availability"],
                "summary": "List stylists free for a slot, ranked by skill and rating",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RosterAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Stylist"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/suitable": {
            "post": {
                "tags": ["Availability"],
                "summary": "List stylists qualified for a pet regardless of schedule",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SuitableStylistsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Stylist"}}}
                }
            }
        },
        "/stylists/{id}": {
            "get": {
                "tags": ["Stylists"],
                "summary": "Get stylist",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Stylist"}}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["Stylists"],
                "summary": "Update stylist",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Stylist"}}}
            },
            "delete": {
                "tags": ["Stylists"],
                "summary": "Deactivate stylist",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/stylists/{id}/capacity": {
            "get": {
                "tags": ["Stylists"],
                "summary": "Get capacity profile",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StylistCapacity"}}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["Stylists"],
                "summary": "Create or replace capacity profile",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/StylistCapacity"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StylistCapacity"}}}
            }
        },
        "/stylists/{id}/open-slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List bookable start times for a stylist on a date",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "query", "name": "date", "type": "string", "required": true},
                    {"in": "query", "name": "duration", "type": "integer", "required": true},
                    {"in": "query", "name": "open", "type": "string"},
                    {"in": "query", "name": "close", "type": "string"},
                    {"in": "query", "name": "step", "type": "integer"},
                    {"in": "query", "name": "pet_size", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/OpenSlots"}}}
            }
        },
        "/facilities/{facilityId}/stylists": {
            "get": {
                "tags": ["Stylists"],
                "summary": "List facility roster",
                "parameters": [{"in": "path", "name": "facilityId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Stylists"],
                "summary": "Add stylist to facility",
                "parameters": [{"in": "path", "name": "facilityId", "type": "string", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Stylist"}}}
            }
        },
        "/facilities/{facilityId}/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "List facility appointments",
                "parameters": [
                    {"in": "path", "name": "facilityId", "type": "string", "required": true},
                    {"in": "query", "name": "date", "type": "string"},
                    {"in": "query", "name": "status", "type": "string"},
                    {"in": "query", "name": "stylist_id", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/facilities/{facilityId}/settings": {
            "get": {
                "tags": ["Facilities"],
                "summary": "Get facility availability settings",
                "parameters": [{"in": "path", "name": "facilityId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/FacilitySettings"}}}
            },
            "put": {
                "tags": ["Facilities"],
                "summary": "Update facility availability settings",
                "parameters": [{"in": "path", "name": "facilityId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/FacilitySettings"}}}
            }
        },
        "/facilities/{facilityId}/schedule/export": {
            "get": {
                "tags": ["Facilities"],
                "summary": "Export the daily grooming sheet",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "path", "name": "facilityId", "type": "string", "required": true},
                    {"in": "query", "name": "date", "type": "string", "required": true},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/appointments": {
            "post": {
                "tags": ["Appointments"],
                "summary": "Book appointment",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/BookAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Appointment"}},
                    "409": {"description": "Stylist unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/appointments/{id}": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Get appointment",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Appointment"}}}
            }
        },
        "/appointments/{id}/schedule": {
            "put": {
                "tags": ["Appointments"],
                "summary": "Reschedule appointment",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Appointment"}}, "409": {"description": "Stylist unavailable"}}
            }
        },
        "/appointments/{id}/status": {
            "patch": {
                "tags": ["Appointments"],
                "summary": "Advance appointment status",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Appointment"}}, "409": {"description": "Invalid transition"}}
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Runtime metrics summary",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "PetProfile": {
            "type": "object",
            "required": ["pet_size"],
            "properties": {
                "pet_size": {"type": "string", "enum": ["small", "medium", "large", "giant"]},
                "coat_condition": {"type": "string", "enum": ["normal", "matted", "severely-matted"]},
                "is_anxious": {"type": "boolean"},
                "is_aggressive": {"type": "boolean"}
            }
        },
        "CheckStylistRequest": {
            "type": "object",
            "required": ["stylist_id", "date", "start_time", "end_time"],
            "properties": {
                "stylist_id": {"type": "string"},
                "date": {"type": "string", "example": "2026-03-14"},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "10:30"},
                "exclude_appointment_id": {"type": "string"},
                "pet": {"$ref": "#/definitions/PetProfile"}
            }
        },
        "RosterAvailabilityRequest": {
            "type": "object",
            "required": ["facility_id", "date", "start_time", "end_time"],
            "properties": {
                "facility_id": {"type": "string"},
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "exclude_appointment_id": {"type": "string"},
                "pet": {"$ref": "#/definitions/PetProfile"}
            }
        },
        "SuitableStylistsRequest": {
            "type": "object",
            "required": ["facility_id"],
            "properties": {
                "facility_id": {"type": "string"},
                "pet": {"$ref": "#/definitions/PetProfile"}
            }
        },
        "BookAppointmentRequest": {
            "type": "object",
            "required": ["facility_id", "stylist_id", "pet_name", "date", "start_time", "end_time"],
            "properties": {
                "facility_id": {"type": "string"},
                "stylist_id": {"type": "string"},
                "pet_name": {"type": "string"},
                "pet": {"$ref": "#/definitions/PetProfile"},
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "StylistCapacity": {
            "type": "object",
            "properties": {
                "stylist_id": {"type": "string"},
                "max_daily_appointments": {"type": "integer"},
                "preferred_pet_sizes": {"type": "array", "items": {"type": "string"}},
                "can_handle_matted": {"type": "boolean"},
                "can_handle_anxious": {"type": "boolean"},
                "can_handle_aggressive": {"type": "boolean"},
                "skill_level": {"type": "string", "enum": ["junior", "intermediate", "senior", "master"]}
            }
        },
        "Stylist": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "facility_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "inactive", "on-leave"]},
                "rating": {"type": "number"},
                "capacity": {"$ref": "#/definitions/StylistCapacity"}
            }
        },
        "Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "facility_id": {"type": "string"},
                "stylist_id": {"type": "string"},
                "pet_name": {"type": "string"},
                "pet_size": {"type": "string"},
                "coat_condition": {"type": "string"},
                "is_anxious": {"type": "boolean"},
                "is_aggressive": {"type": "boolean"},
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "status": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "ConflictDetail": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["overlap", "capacity", "skill"]},
                "appointment_id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "StylistAvailabilityCheck": {
            "type": "object",
            "properties": {
                "stylist_id": {"type": "string"},
                "is_available": {"type": "boolean"},
                "can_handle_pet": {"type": "boolean"},
                "conflict": {
                    "type": "object",
                    "properties": {
                        "has_conflict": {"type": "boolean"},
                        "conflicts": {"type": "array", "items": {"$ref": "#/definitions/ConflictDetail"}},
                        "reason": {"type": "string"}
                    }
                },
                "capacity": {
                    "type": "object",
                    "properties": {
                        "has_capacity": {"type": "boolean"},
                        "current_count": {"type": "integer"},
                        "remaining": {"type": "integer"},
                        "max": {"type": "integer"}
                    }
                }
            }
        },
        "OpenSlots": {
            "type": "object",
            "properties": {
                "stylist_id": {"type": "string"},
                "date": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "slots": {"type": "array", "items": {"type": "string"}}
            }
        },
        "FacilitySettings": {
            "type": "object",
            "properties": {
                "facility_id": {"type": "string"},
                "allow_parallel": {"type": "boolean"},
                "global_max_per_day": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
