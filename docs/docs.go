// Package docs holds the OpenAPI document served under /swagger. It mirrors
// the handler annotations; `swag init -g cmd/dealdesk/main.go` rewrites it.
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
        "/deals": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a deal in initial_interest with buyer/seller participants and seeded milestones. The caller becomes the buyer unless buyer_id is given.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Create a deal",
                "parameters": [
                    {
                        "description": "New deal",
                        "name": "deal",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.createDealRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.Deal"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "List my deals",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Only non-terminal deals",
                        "name": "active",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Deal"
                            }
                        }
                    }
                }
            }
        },
        "/deals/summary": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Timeline health across my active deals",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.PortfolioSummary"
                        }
                    }
                }
            }
        },
        "/deals/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Deal with milestones and timeline metrics",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.DealView"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/activities": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Deal activity log, oldest first",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Activity"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/assignee": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Set or clear the assigned intermediary",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Intermediary user, null clears",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.assignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Deal"
                        }
                    }
                }
            }
        },
        "/deals/{id}/milestones/{mid}/complete": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Idempotent. Rejected while an earlier critical milestone is open unless override is set.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Milestones"
                ],
                "summary": "Complete a milestone",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Milestone ID",
                        "name": "mid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Notes and override",
                        "name": "body",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/handlers.completeMilestoneRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Milestone"
                        }
                    }
                }
            }
        },
        "/deals/{id}/milestones/{mid}/due-date": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "The date must stay within the deal dates and in sequence with its neighbours.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Milestones"
                ],
                "summary": "Move an open milestone's due date",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Milestone ID",
                        "name": "mid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New due date (YYYY-MM-DD)",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.dueDateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Milestone"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/milestones/{mid}/notes": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Milestones"
                ],
                "summary": "Append notes to a milestone",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Milestone ID",
                        "name": "mid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Notes",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.annotateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Milestone"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/milestones/{mid}/reopen": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Milestones"
                ],
                "summary": "Clear a milestone completion",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Milestone ID",
                        "name": "mid",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Expected version",
                        "name": "body",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/handlers.versionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Milestone"
                        }
                    }
                }
            }
        },
        "/deals/{id}/offer": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Record a new current offer",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Offer amount",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.updateOfferRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Deal"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/participants": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Participants"
                ],
                "summary": "List deal participants, including deactivated rows",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Participant"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Participants"
                ],
                "summary": "Add a participant to a deal",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "User and role",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.addParticipantRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.Participant"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/participants/{pid}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "The last active buyer or seller cannot be removed.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Participants"
                ],
                "summary": "Deactivate a participant",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Participant ID",
                        "name": "pid",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Participant"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/priority": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Change deal priority",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "low, medium, high or urgent",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.updatePriorityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Deal"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/schedule": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Refused with milestone_regeneration_blocked once any milestone is completed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Change offer/closing dates and regenerate milestones",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New dates",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.rescheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.DealView"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/status": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Transition deal status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Target status",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.updateDealStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Deal"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/deals/{id}/timeline.pdf": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "Deals"
                ],
                "summary": "Timeline report as PDF",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Deal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.addParticipantRequest": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                }
            },
            "required": [
                "role",
                "user_id"
            ]
        },
        "handlers.annotateRequest": {
            "type": "object",
            "properties": {
                "expected_version": {
                    "type": "integer"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "handlers.assignRequest": {
            "type": "object",
            "properties": {
                "assigned_to": {
                    "type": "string"
                },
                "expected_version": {
                    "type": "integer"
                }
            }
        },
        "handlers.completeMilestoneRequest": {
            "type": "object",
            "properties": {
                "expected_version": {
                    "type": "integer"
                },
                "notes": {
                    "type": "string"
                },
                "override": {
                    "type": "boolean"
                }
            }
        },
        "handlers.createDealRequest": {
            "type": "object",
            "properties": {
                "assigned_to": {
                    "type": "string"
                },
                "buyer_id": {
                    "type": "string"
                },
                "closing_date": {
                    "type": "string",
                    "format": "date"
                },
                "initial_offer": {
                    "type": "string"
                },
                "listing_id": {
                    "type": "string"
                },
                "offer_date": {
                    "type": "string",
                    "format": "date"
                },
                "priority": {
                    "type": "string"
                },
                "seller_id": {
                    "type": "string"
                }
            },
            "required": [
                "closing_date",
                "listing_id",
                "offer_date",
                "seller_id"
            ]
        },
        "handlers.dueDateRequest": {
            "type": "object",
            "properties": {
                "due_date": {
                    "type": "string",
                    "format": "date"
                },
                "expected_version": {
                    "type": "integer"
                }
            },
            "required": [
                "due_date"
            ]
        },
        "handlers.rescheduleRequest": {
            "type": "object",
            "properties": {
                "closing_date": {
                    "type": "string",
                    "format": "date"
                },
                "expected_version": {
                    "type": "integer"
                },
                "offer_date": {
                    "type": "string",
                    "format": "date"
                }
            },
            "required": [
                "closing_date",
                "offer_date"
            ]
        },
        "handlers.updateDealStatusRequest": {
            "type": "object",
            "properties": {
                "expected_version": {
                    "type": "integer"
                },
                "to": {
                    "type": "string"
                }
            }
        },
        "handlers.updateOfferRequest": {
            "type": "object",
            "properties": {
                "current_offer": {
                    "type": "string"
                },
                "expected_version": {
                    "type": "integer"
                }
            },
            "required": [
                "current_offer"
            ]
        },
        "handlers.updatePriorityRequest": {
            "type": "object",
            "properties": {
                "expected_version": {
                    "type": "integer"
                },
                "priority": {
                    "type": "string"
                }
            }
        },
        "handlers.versionRequest": {
            "type": "object",
            "properties": {
                "expected_version": {
                    "type": "integer"
                }
            }
        },
        "models.Activity": {
            "type": "object",
            "properties": {
                "actor_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "deal_id": {
                    "type": "string"
                },
                "detail": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "id": {
                    "type": "string"
                },
                "kind": {
                    "$ref": "#/definitions/models.ActivityKind"
                }
            }
        },
        "models.ActivityKind": {
            "type": "string",
            "enum": [
                "deal_created",
                "status_changed",
                "offer_updated",
                "priority_updated",
                "assignee_updated",
                "deal_rescheduled",
                "milestone_completed",
                "milestone_reopened",
                "milestone_annotated",
                "milestone_rescheduled",
                "participant_added",
                "participant_removed"
            ]
        },
        "models.Deal": {
            "type": "object",
            "properties": {
                "assigned_to": {
                    "type": "string"
                },
                "buyer_id": {
                    "type": "string"
                },
                "closing_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "current_offer": {
                    "type": "string"
                },
                "deal_number": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "initial_offer": {
                    "type": "string"
                },
                "listing_id": {
                    "type": "string"
                },
                "offer_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "priority": {
                    "$ref": "#/definitions/models.DealPriority"
                },
                "seller_id": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/models.DealStatus"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "models.DealPriority": {
            "type": "string",
            "enum": [
                "low",
                "medium",
                "high",
                "urgent"
            ]
        },
        "models.DealStatus": {
            "type": "string",
            "enum": [
                "initial_interest",
                "nda_signed",
                "due_diligence",
                "negotiation",
                "financing",
                "legal_review",
                "closing",
                "completed",
                "cancelled",
                "expired"
            ]
        },
        "models.DealView": {
            "type": "object",
            "properties": {
                "allowed_transitions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.DealStatus"
                    }
                },
                "deal": {
                    "$ref": "#/definitions/models.Deal"
                },
                "metrics": {
                    "$ref": "#/definitions/models.TimelineMetrics"
                },
                "milestones": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Milestone"
                    }
                }
            }
        },
        "models.Milestone": {
            "type": "object",
            "properties": {
                "completed_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "deal_id": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "id": {
                    "type": "string"
                },
                "is_completed": {
                    "type": "boolean"
                },
                "is_critical": {
                    "type": "boolean"
                },
                "key": {
                    "type": "string"
                },
                "milestone_name": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "sequence_index": {
                    "type": "integer"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "models.Participant": {
            "type": "object",
            "properties": {
                "deal_id": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                },
                "joined_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "left_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "role": {
                    "$ref": "#/definitions/models.ParticipantRole"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "models.ParticipantRole": {
            "type": "string",
            "enum": [
                "buyer",
                "seller",
                "broker",
                "attorney",
                "lender",
                "accountant",
                "admin"
            ]
        },
        "models.PortfolioHealth": {
            "type": "string",
            "enum": [
                "excellent",
                "good",
                "fair",
                "poor"
            ]
        },
        "models.PortfolioSummary": {
            "type": "object",
            "properties": {
                "deals_at_risk": {
                    "type": "integer"
                },
                "timeline_health": {
                    "$ref": "#/definitions/models.PortfolioHealth"
                },
                "total_active_deals": {
                    "type": "integer"
                },
                "total_overdue_milestones": {
                    "type": "integer"
                },
                "total_upcoming_deadlines": {
                    "type": "integer"
                }
            }
        },
        "models.TimelineMetrics": {
            "type": "object",
            "properties": {
                "completed_milestones": {
                    "type": "integer"
                },
                "critical_path": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Milestone"
                    }
                },
                "elapsed_days": {
                    "type": "integer"
                },
                "on_track": {
                    "type": "boolean"
                },
                "overdue_critical": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Milestone"
                    }
                },
                "overdue_milestones": {
                    "type": "integer"
                },
                "progress_percentage": {
                    "type": "integer"
                },
                "remaining_days": {
                    "type": "integer"
                },
                "time_progress_percentage": {
                    "type": "integer"
                },
                "timeline_status": {
                    "$ref": "#/definitions/models.TimelineStatus"
                },
                "total_days": {
                    "type": "integer"
                },
                "total_milestones": {
                    "type": "integer"
                },
                "upcoming_deadlines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Milestone"
                    }
                }
            }
        },
        "models.TimelineStatus": {
            "type": "string",
            "enum": [
                "on_track",
                "at_risk",
                "delayed"
            ]
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Deal Desk API",
	Description:      "Deal lifecycle and milestone tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
