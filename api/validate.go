package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/qri-io/jsonschema"
)

// Request bodies are validated against JSON Schemas before decoding, so
// validation failures carry field-level messages instead of ad hoc checks.

const maxBodyBytes = 1 << 20

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return rs
}

var (
	signupSchema = mustSchema(`{
		"type": "object",
		"required": ["email", "password", "name"],
		"properties": {
			"email": {"type": "string", "format": "email", "minLength": 3},
			"password": {"type": "string", "minLength": 8},
			"name": {"type": "string", "minLength": 1},
			"occupation": {"type": "string"},
			"gender": {"type": "string"},
			"birthDate": {"type": "string"}
		}
	}`)

	loginSchema = mustSchema(`{
		"type": "object",
		"required": ["email", "password"],
		"properties": {
			"email": {"type": "string", "minLength": 1},
			"password": {"type": "string", "minLength": 1}
		}
	}`)

	profileSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"occupation": {"type": "string"},
			"gender": {"type": "string"},
			"birthDate": {"type": "string"},
			"bio": {"type": "string"},
			"location": {"type": "string"},
			"latitude": {"type": "number", "minimum": -90, "maximum": 90},
			"longitude": {"type": "number", "minimum": -180, "maximum": 180},
			"radius": {"type": "number", "minimum": 0},
			"profileImageUrl": {"type": "string"},
			"interests": {"type": "array", "items": {"type": "string"}}
		}
	}`)

	skillSchema = mustSchema(`{
		"type": "object",
		"required": ["skillName", "skillCategory", "skillLevel"],
		"properties": {
			"skillName": {"type": "string", "minLength": 1},
			"skillCategory": {"type": "string", "minLength": 1},
			"skillLevel": {"type": "string", "enum": ["Beginner", "Intermediate", "Advanced", "Expert"]},
			"description": {"type": "string"},
			"isOffering": {"type": "boolean"}
		}
	}`)

	favoriteSchema = mustSchema(`{
		"type": "object",
		"required": ["userId"],
		"properties": {
			"userId": {"type": "integer", "minimum": 1}
		}
	}`)

	messageSchema = mustSchema(`{
		"type": "object",
		"required": ["receiverId", "messageText"],
		"properties": {
			"receiverId": {"type": "integer", "minimum": 1},
			"messageText": {"type": "string", "minLength": 1},
			"requestId": {"type": "integer", "minimum": 1}
		}
	}`)

	reviewSchema = mustSchema(`{
		"type": "object",
		"required": ["revieweeId", "rating"],
		"properties": {
			"revieweeId": {"type": "integer", "minimum": 1},
			"rating": {"type": "integer", "minimum": 1, "maximum": 5},
			"reviewText": {"type": "string"},
			"requestId": {"type": "integer", "minimum": 1}
		}
	}`)

	skillRequestSchema = mustSchema(`{
		"type": "object",
		"required": ["providerId", "skillId"],
		"properties": {
			"providerId": {"type": "integer", "minimum": 1},
			"skillId": {"type": "integer", "minimum": 1},
			"message": {"type": "string"}
		}
	}`)

	statusSchema = mustSchema(`{
		"type": "object",
		"required": ["status"],
		"properties": {
			"status": {"type": "string", "enum": ["accepted", "rejected", "completed", "cancelled"]}
		}
	}`)
)

// decodeValid reads the request body, validates it against the schema, and
// unmarshals it into dst. The returned message is suitable for a 400 body.
func decodeValid(ctx context.Context, r *http.Request, rs *jsonschema.Schema, dst any) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return "Invalid request", err
	}
	if !json.Valid(body) {
		return "Invalid request", fmt.Errorf("body is not valid JSON")
	}

	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return "Invalid request", err
	}
	if len(keyErrs) > 0 {
		e := keyErrs[0]
		return fmt.Sprintf("invalid field %q: %s", e.PropertyPath, e.Message), fmt.Errorf("schema validation failed")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return "Invalid request", err
	}

	return "", nil
}
