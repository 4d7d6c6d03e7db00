package content

const eventSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "options"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "category": {"type": "string"},
      "options": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "required": ["text", "effects"],
          "properties": {
            "text": {"type": "string"},
            "effects": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["kind", "delta"],
                "properties": {
                  "kind": {"enum": ["scalar", "nested"]},
                  "delta": {"type": "number"}
                },
                "oneOf": [
                  {"properties": {"kind": {"const": "scalar"}}, "required": ["field"]},
                  {"properties": {"kind": {"const": "nested"}}, "required": ["category", "key"]}
                ]
              }
            }
          }
        }
      }
    }
  }
}`

var schemas = map[string]string{
	"universities": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "prestige", "programs"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "prestige": {"type": "integer", "minimum": 1, "maximum": 10},
      "programs": {"type": "array", "items": {"type": "string"}}
    }
  }
}`,
	"programs": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "semesters"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "semesters": {"type": "integer", "minimum": 1}
    }
  }
}`,
	"courses": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "semester", "credits"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "semester": {"type": "integer", "minimum": 1},
      "credits": {"type": "integer", "minimum": 1}
    }
  }
}`,
	"companies": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "reputation"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "reputation": {"type": "integer", "minimum": 1, "maximum": 10},
      "international": {"type": "boolean"}
    }
  }
}`,
	"job_titles": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "category", "level"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "level": {"enum": ["entry", "professional", "distinguished", "executive"]}
    }
  }
}`,
	"skills": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "kind"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "kind": {"enum": ["technical", "soft", "language"]},
      "jobCategories": {"type": "array", "items": {"type": "string"}}
    }
  }
}`,
	"certifications": `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "skill"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "skill": {"type": "string"},
      "prestige": {"type": "integer", "minimum": 1, "maximum": 10}
    }
  }
}`,
	"education_events": eventSchema,
	"life_events":      eventSchema,
}
