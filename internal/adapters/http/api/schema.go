package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const definitions = `
  "definitions": {
    "nullableString": {"type": ["string", "null"]},
    "stringList": {"type": ["array", "null"], "items": {"type": "string"}},
    "language": {
      "type": "object",
      "required": ["title", "rating"],
      "properties": {
        "title": {"type": "string"},
        "rating": {"type": "string"},
        "must_have": {"type": "boolean"}
      }
    },
    "languageList": {"type": ["array", "null"], "items": {"$ref": "#/definitions/language"}},
    "talent": {
      "type": "object",
      "required": ["talent_id"],
      "properties": {
        "talent_id": {"type": "string", "minLength": 1},
        "languages": {"$ref": "#/definitions/languageList"},
        "job_roles": {"$ref": "#/definitions/stringList"},
        "seniority": {"$ref": "#/definitions/nullableString"},
        "salary_expectation": {"type": ["integer", "null"]},
        "degree": {"$ref": "#/definitions/nullableString"}
      }
    },
    "job": {
      "type": "object",
      "required": ["job_id"],
      "properties": {
        "job_id": {"type": "string", "minLength": 1},
        "languages": {"$ref": "#/definitions/languageList"},
        "job_roles": {"$ref": "#/definitions/stringList"},
        "seniorities": {"$ref": "#/definitions/stringList"},
        "max_salary": {"type": ["integer", "null"]},
        "min_degree": {"$ref": "#/definitions/nullableString"}
      }
    }
  }`

const matchSchemaSrc = `{
  "type": "object",
  "required": ["talent", "job"],
  "properties": {
    "talent": {"$ref": "#/definitions/talent"},
    "job": {"$ref": "#/definitions/job"}
  },` + definitions + `
}`

const matchBulkSchemaSrc = `{
  "type": "object",
  "required": ["talents", "jobs"],
  "properties": {
    "talents": {"type": "array", "items": {"$ref": "#/definitions/talent"}},
    "jobs": {"type": "array", "items": {"$ref": "#/definitions/job"}},
    "filter_false_predictions": {"type": "boolean"}
  },` + definitions + `
}`

const rankSchemaSrc = `{
  "type": "object",
  "required": ["talent", "jobs"],
  "properties": {
    "talent": {"$ref": "#/definitions/talent"},
    "jobs": {"type": "array", "items": {"$ref": "#/definitions/job"}},
    "criteria": {"type": ["object", "null"]}
  },` + definitions + `
}`

//nolint:gochecknoglobals // compiled once, read-only
var (
	matchSchema     = mustSchema(matchSchemaSrc)
	matchBulkSchema = mustSchema(matchBulkSchemaSrc)
	rankSchema      = mustSchema(rankSchemaSrc)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return s
}

// validateBody checks body against schema. Violations are reported as a
// single ErrSchema error listing every failing field.
func validateBody(op string, schema *gojsonschema.Schema, body []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.Field()+": "+e.Description())
	}
	return WrapKind(op, ErrSchema, errors.New(strings.Join(msgs, "; ")))
}
